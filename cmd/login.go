package cmd

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dorahnaks/jill-project/internal/session"
)

func newLoginCmd() *cobra.Command {
	var (
		email    string
		password string
		roleFlag string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			role, err := session.ParseRole(roleFlag)
			if err != nil {
				return err
			}

			if email == "" {
				fmt.Print("Email: ")
				if _, err := fmt.Scanln(&email); err != nil {
					return fmt.Errorf("read email: %w", err)
				}
			}
			if password == "" {
				fmt.Print("Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = string(raw)
			}

			// A rejection flows back through RunE like any other error;
			// Execute prints it and owns the exit code.
			if err := a.sess.Login(context.Background(), email, password, role); err != nil {
				return err
			}
			snap := a.sess.Snapshot()
			fmt.Printf("Signed in as %s (%s)\n", snap.User.DisplayName, snap.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	cmd.Flags().StringVarP(&roleFlag, "role", "r", "customer", "login role: admin or customer")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.sess.Logout()
			fmt.Println("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.sess.Hydrate(context.Background())
			snap := a.sess.Snapshot()
			if snap.Status != session.StatusAuthenticated {
				fmt.Println("Not signed in")
				return nil
			}
			fmt.Printf("%s <%s> role=%s\n", snap.User.DisplayName, snap.User.Email, snap.User.Role)
			return nil
		},
	}
}
