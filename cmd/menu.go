package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dorahnaks/jill-project/internal/api"
	"github.com/dorahnaks/jill-project/internal/guard"
	"github.com/dorahnaks/jill-project/internal/session"
)

func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Browse and manage the menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return printMenu(a)
		},
	}
	cmd.AddCommand(newMenuAddCmd())
	cmd.AddCommand(newMenuUpdateCmd())
	cmd.AddCommand(newMenuRemoveCmd())
	return cmd
}

// printMenu lists the menu grouped by category. Browsing needs no session.
func printMenu(a *app) error {
	items, err := a.api.MenuItems(context.Background())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("The menu is empty.")
		return nil
	}

	byCategory := make(map[string][]api.MenuItem)
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		fmt.Printf("%s\n", c)
		for _, item := range byCategory[c] {
			marker := " "
			if !item.Available {
				marker = "x"
			}
			fmt.Printf("  [%s] #%-4d %-28s %10.0f  %s\n", marker, item.ID, item.Name, item.Price, item.Description)
		}
	}
	return nil
}

// requireRole hydrates the session and checks the gate. Commands call it
// before any admin-only operation; hydration has settled by the time the
// guard runs, so Pending cannot come back here.
func requireRole(a *app, gate guard.RoleGate) error {
	a.sess.Hydrate(context.Background())
	res := guard.Authorize(a.sess.Snapshot(), gate)
	if res.Decision != guard.Allow {
		return fmt.Errorf("this command requires an admin session; run 'jill login --role admin'")
	}
	return nil
}

var adminOnly = guard.NewRoleGate(session.RoleAdmin)

func newMenuAddCmd() *cobra.Command {
	var in api.MenuItemInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a menu item (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Name == "" || in.Category == "" || in.Price <= 0 {
				return fmt.Errorf("--name, --category and a positive --price are required")
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireRole(a, adminOnly); err != nil {
				return err
			}
			item, err := a.api.CreateMenuItem(context.Background(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Created #%d %s\n", item.ID, item.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "item name")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "price")
	cmd.Flags().StringVar(&in.Category, "category", "", "category, e.g. MEALS")
	cmd.Flags().StringVar(&in.Description, "description", "", "description")
	cmd.Flags().BoolVar(&in.Available, "available", true, "available for ordering")
	cmd.Flags().StringVar(&in.ImageKey, "image-key", "", "image key")
	return cmd
}

func newMenuUpdateCmd() *cobra.Command {
	var in api.MenuItemInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a menu item (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireRole(a, adminOnly); err != nil {
				return err
			}
			item, err := a.api.UpdateMenuItem(context.Background(), id, in)
			if err != nil {
				return err
			}
			fmt.Printf("Updated #%d %s\n", item.ID, item.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "item name")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "price")
	cmd.Flags().StringVar(&in.Category, "category", "", "category")
	cmd.Flags().StringVar(&in.Description, "description", "", "description")
	cmd.Flags().BoolVar(&in.Available, "available", true, "available for ordering")
	cmd.Flags().StringVar(&in.ImageKey, "image-key", "", "image key")
	return cmd
}

func newMenuRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a menu item (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireRole(a, adminOnly); err != nil {
				return err
			}
			if err := a.api.DeleteMenuItem(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Removed #%d\n", id)
			return nil
		},
	}
}
