package main

import (
	"time"

	"github.com/MKhiriev/go-shop/models"
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "shopctl",
		Short:         "shopctl - go-shop operator CLI",
		Long:          "shopctl talks to a running go-shop API: log in, inspect users and orders, mark orders paid or delivered.",
		Version:       models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.connect()
		},
	}
	root.SetOut(a.out)

	root.PersistentFlags().StringVarP(&a.address, "address", "a", "", "API address (overrides ADAPTER_ADDRESS)")
	root.PersistentFlags().StringVarP(&a.token, "token", "t", "", "bearer token (overrides ADAPTER_TOKEN)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newLoginCmd(a),
		newProfileCmd(a),
		newUsersCmd(a),
		newOrdersCmd(a),
		newOrderCmd(a),
		newPayCmd(a),
		newDeliverCmd(a),
		newVersionCmd(a),
	)

	return root
}

// shopctl login --email admin@example.com --password 123456
func newLoginCmd(a *app) *cobra.Command {
	var req models.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the issued token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			identity, err := a.client.Login(ctx, req)
			if err != nil {
				return err
			}

			a.logger.Info().Str("user", identity.Email).Bool("admin", identity.IsAdmin).Msg("logged in")
			_, err = cmd.OutOrStdout().Write([]byte(identity.Token + "\n"))
			return err
		},
	}

	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the profile of the token owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			identity, err := a.client.Profile(ctx)
			if err != nil {
				return err
			}
			return a.printJSON(identity)
		},
	}
}

func newUsersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all users (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			users, err := a.client.ListUsers(ctx)
			if err != nil {
				return err
			}
			return a.printUsers(users)
		},
	}
}

// shopctl orders [--mine]
func newOrdersCmd(a *app) *cobra.Command {
	var mine bool

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List all orders (admin) or your own with --mine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			var (
				orders []models.Order
				err    error
			)
			if mine {
				orders, err = a.client.MyOrders(ctx)
			} else {
				orders, err = a.client.ListOrders(ctx)
			}
			if err != nil {
				return err
			}
			return a.printOrders(orders)
		},
	}

	cmd.Flags().BoolVarP(&mine, "mine", "m", false, "only orders of the token owner")
	return cmd
}

func newOrderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "order <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			order, err := a.client.GetOrder(ctx, args[0])
			if err != nil {
				return err
			}
			return a.printJSON(order)
		},
	}
}

// shopctl pay <id> --payment-id PAY-1 --email buyer@example.com
//
// The callback is signed with ADAPTER_PAYMENT_HASH_KEY when it is set.
func newPayCmd(a *app) *cobra.Command {
	var callback models.PaymentCallback

	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Send a payment callback for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			if callback.UpdateTime == "" {
				callback.UpdateTime = time.Now().UTC().Format(time.RFC3339)
			}

			order, err := a.client.PayOrder(ctx, args[0], callback)
			if err != nil {
				return err
			}

			a.logger.Info().Str("order_id", order.ID.Hex()).Str("payment_id", callback.ID).Msg("order paid")
			return a.printJSON(order)
		},
	}

	cmd.Flags().StringVar(&callback.ID, "payment-id", "", "payment provider transaction id")
	cmd.Flags().StringVar(&callback.Status, "status", "COMPLETED", "payment status")
	cmd.Flags().StringVar(&callback.UpdateTime, "update-time", "", "provider update time (default now, RFC 3339)")
	cmd.Flags().StringVarP(&callback.Payer.EmailAddress, "email", "e", "", "payer email")
	_ = cmd.MarkFlagRequired("payment-id")

	return cmd
}

func newDeliverCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deliver <id>",
		Short: "Mark an order as delivered (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			order, err := a.client.DeliverOrder(ctx, args[0])
			if err != nil {
				return err
			}

			a.logger.Info().Str("order_id", order.ID.Hex()).Msg("order delivered")
			return a.printJSON(order)
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "server-version",
		Short: "Show the build information of the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			info, err := a.client.Version(ctx)
			if err != nil {
				return err
			}
			return a.printJSON(info)
		},
	}
}
