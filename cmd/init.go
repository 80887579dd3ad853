package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dorahnaks/jill-project/internal/config"
)

// newInitCmd writes the backend URL into the per-user config file so the
// other commands work without flags.
func newInitCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Configure the backend endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if apiURL == "" {
				fmt.Printf("Backend base URL [%s]: ", cfg.APIURL)
				var entered string
				fmt.Scanln(&entered)
				if entered = strings.TrimSpace(entered); entered != "" {
					apiURL = entered
				} else {
					apiURL = cfg.APIURL
				}
			}
			cfg.APIURL = strings.TrimRight(apiURL, "/")
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", config.DefaultPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "backend base URL, e.g. http://localhost:5000/api/v1")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("jill %s\ncommit: %s\nbuilt:  %s\n", displayVersion(), appCommit, appDate)
		},
	}
}
