package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dorahnaks/jill-project/internal/api"
	"github.com/dorahnaks/jill-project/internal/guard"
	"github.com/dorahnaks/jill-project/internal/session"
)

var anySignedIn = guard.NewRoleGate(session.RoleAdmin, session.RoleCustomer, session.RoleStaff)

func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "View and place orders",
	}
	cmd.AddCommand(newOrderListCmd())
	cmd.AddCommand(newOrderShowCmd())
	cmd.AddCommand(newOrderPlaceCmd())
	return cmd
}

func newOrderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List orders (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireRole(a, adminOnly); err != nil {
				return err
			}
			orders, err := a.api.Orders(context.Background())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Println("No orders yet.")
				return nil
			}
			for _, o := range orders {
				fmt.Printf("#%-4d %s  total=%s  payment=%s  delivery=%s\n",
					o.ID, o.OrderDate, o.TotalAmount, o.PaymentStatus, o.DeliveryStatus)
			}
			return nil
		},
	}
}

func newOrderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one order (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireRole(a, adminOnly); err != nil {
				return err
			}
			o, err := a.api.OrderByID(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Order #%d\n  date:     %s\n  total:    %s\n  payment:  %s\n  delivery: %s\n  note:     %s\n",
				o.ID, o.OrderDate, o.TotalAmount, o.PaymentStatus, o.DeliveryStatus, o.Description)
			return nil
		},
	}
}

func newOrderPlaceCmd() *cobra.Command {
	var (
		total       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place an order for the signed-in customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if total == "" {
				return fmt.Errorf("--total is required")
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireSignedIn(a); err != nil {
				return err
			}
			snap := a.sess.Snapshot()
			o, err := a.api.CreateOrder(context.Background(), api.OrderInput{
				CustomerID:     snap.User.ID,
				TotalAmount:    total,
				PaymentStatus:  "PENDING",
				DeliveryStatus: "PENDING",
				Description:    description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Order #%d placed\n", o.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&total, "total", "", "order total amount, e.g. 15000")
	cmd.Flags().StringVar(&description, "description", "", "order note")
	return cmd
}

// requireSignedIn hydrates and accepts any authenticated role.
func requireSignedIn(a *app) error {
	a.sess.Hydrate(context.Background())
	if guard.Authorize(a.sess.Snapshot(), anySignedIn).Decision != guard.Allow {
		return fmt.Errorf("sign in first: run 'jill login'")
	}
	return nil
}
