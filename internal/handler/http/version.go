package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-shop/internal/utils"
	"github.com/MKhiriev/go-shop/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetBuildInfo(r.Context()), http.StatusOK)
}

func (h *Handler) apiIsRunning(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("API is running"))
}

// notFound answers unknown paths and unsupported methods on known paths
// alike, so route existence is not revealed.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{
		Message: fmt.Sprintf("Not Found - %s", r.URL.RequestURI()),
	}, http.StatusNotFound)
}
