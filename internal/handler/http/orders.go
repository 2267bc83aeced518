package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/service"
	"github.com/MKhiriev/go-shop/internal/utils"
	"github.com/MKhiriev/go-shop/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidOrderData, err))
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	order, err := h.services.OrderService.CreateOrder(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, order, http.StatusCreated)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.services.OrderService.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, order, http.StatusOK)
}

// payOrder stores the payment-provider callback on the order as is.
func (h *Handler) payOrder(w http.ResponseWriter, r *http.Request) {
	var callback models.PaymentCallback
	if err := utils.DecodeJSON(r, &callback); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidOrderData, err))
		return
	}

	order, err := h.services.OrderService.PayOrder(r.Context(), chi.URLParam(r, "id"), callback)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().
		Str("order_id", order.ID.Hex()).
		Str("payment_id", callback.ID).
		Str("payment_status", callback.Status).
		Msg("order paid")
	utils.WriteJSON(w, order, http.StatusOK)
}

func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.services.OrderService.ListUserOrders(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, orders, http.StatusOK)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.services.OrderService.ListOrders(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, orders, http.StatusOK)
}

func (h *Handler) deliverOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.services.OrderService.DeliverOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, order, http.StatusOK)
}
