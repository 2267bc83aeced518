package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-shop/internal/adapter"
	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/utils"
	"github.com/MKhiriev/go-shop/models"
)

// app carries the state shared by all shopctl commands.
type app struct {
	out io.Writer

	// flag overrides of the adapter configuration
	address string
	token   string
	verbose bool

	timeout time.Duration
	client  adapter.ShopClient
	logger  *logger.Logger
}

func newApp(out io.Writer) *app {
	return &app{out: out, logger: logger.Nop()}
}

// connect builds the API client unless one was injected.
func (a *app) connect() error {
	a.logger = logger.NewCLILogger("shopctl", a.verbose)
	if a.client != nil {
		return nil
	}

	cfg, err := config.GetClientConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.address != "" {
		cfg.Adapter.HTTPAddress = a.address
	}
	if a.token != "" {
		cfg.Adapter.Token = a.token
	}
	a.timeout = cfg.Adapter.RequestTimeout

	a.client, err = adapter.NewHTTPShopClient(cfg.Adapter, a.logger)
	if err != nil {
		return err
	}

	event := a.logger.Debug().Str("address", cfg.Adapter.HTTPAddress)
	if userID, err := utils.ParseUserIDFromJWT(cfg.Adapter.Token); err == nil {
		event = event.Str("user_id", userID)
	}
	event.Msg("client configured")
	return nil
}

func (a *app) context(parent context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, a.timeout)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printUsers(users []models.User) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tADMIN")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.ID.Hex(), u.Name, u.Email, u.IsAdmin)
	}
	return w.Flush()
}

func (a *app) printOrders(orders []models.Order) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSER\tTOTAL\tPAID\tDELIVERED\tCREATED")
	for _, o := range orders {
		user := o.UserID.Hex()
		if o.Owner != nil && o.Owner.Name != "" {
			user = o.Owner.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%t\t%t\t%s\n",
			o.ID.Hex(), user, o.TotalPrice, o.IsPaid, o.IsDelivered, o.CreatedAt.Format(time.DateOnly))
	}
	return w.Flush()
}
