package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dorahnaks/jill-project/internal/api"
)

func newSignupCmd() *cobra.Command {
	var req api.RegisterCustomerRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a customer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Mirror the backend's required-field and password rules so
			// obvious mistakes fail before a network call.
			for field, val := range map[string]string{
				"full-name":     req.FullName,
				"contact":       req.Contact,
				"email":         req.Email,
				"password":      req.Password,
				"address":       req.Address,
				"customer-type": req.CustomerType,
			} {
				if val == "" {
					return fmt.Errorf("--%s is required", field)
				}
			}
			if len(req.Password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}
			if !strings.Contains(req.Email, "@") {
				return fmt.Errorf("invalid email address")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.api.RegisterCustomer(context.Background(), req); err != nil {
				return err
			}
			fmt.Printf("%s has been registered. Run 'jill login' to sign in.\n", req.FullName)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FullName, "full-name", "", "full name")
	cmd.Flags().StringVar(&req.Contact, "contact", "", "phone contact")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (min 8 characters)")
	cmd.Flags().StringVar(&req.Address, "address", "", "delivery address")
	cmd.Flags().StringVar(&req.CustomerType, "customer-type", "individual", "customer type")
	cmd.Flags().StringVar(&req.Biography, "biography", "", "optional biography")
	return cmd
}
