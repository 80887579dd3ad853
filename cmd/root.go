package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dorahnaks/jill-project/internal/api"
	"github.com/dorahnaks/jill-project/internal/config"
	"github.com/dorahnaks/jill-project/internal/session"
	"github.com/dorahnaks/jill-project/internal/tui"
)

var (
	cfgFile    string
	apiURLFlag string
	useTUI     bool

	// Package-level version info, set by Execute().
	appVersion string
	appCommit  string
	appDate    string
)

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date

	rootCmd := &cobra.Command{
		Use:   "jill",
		Short: "Terminal client for the Jill catering storefront",
		Long:  "jill browses the menu, places orders, and manages the storefront through the Jill backend API.",
		// Running jill with no subcommand opens the storefront TUI.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Default TUI on when stdout is a terminal and --tui was not explicitly set.
			if !cmd.Root().PersistentFlags().Changed("tui") && term.IsTerminal(int(os.Stdout.Fd())) {
				useTUI = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStorefront()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ~/.config/jill/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "override backend base URL")
	rootCmd.PersistentFlags().BoolVar(&useTUI, "tui", false, "open the storefront TUI (default: auto-detect terminal)")

	// Subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newMenuCmd())
	rootCmd.AddCommand(newOrderCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// displayVersion returns a formatted version string for the TUI welcome
// header, e.g. "v0.2.0 (abc1234)".
func displayVersion() string {
	v := "v" + appVersion
	if appCommit != "" && appCommit != "none" {
		v += " (" + appCommit + ")"
	}
	return v
}

// app bundles the wired client stack shared by every command: config,
// logger, credential store, API client, and the one session per process.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *session.FileStore
	api   *api.Client
	sess  *session.Session
}

// newApp loads configuration, applies CLI flag overrides, and wires the
// client stack. The session starts hydrating; callers run Hydrate before
// anything role-gated renders.
func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}

	logger := newLogger(cfg.LogLevel)

	credPath, err := session.DefaultCredentialsPath()
	if err != nil {
		return nil, err
	}
	store := session.NewFileStore(credPath)

	client := api.New(api.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout(),
		Tokens:  store,
		Logger:  logger,
	})

	return &app{
		cfg:   cfg,
		log:   logger,
		store: store,
		api:   client,
		sess:  session.New(store, client, logger),
	}, nil
}

// newLogger builds the process logger: console writer on stderr, level
// from config with JILL_LOG_LEVEL already folded in by config.Load.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// runStorefront opens the TUI, or prints the menu once when stdout is not
// a terminal (piped/scripted use).
func runStorefront() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if !useTUI {
		return printMenu(a)
	}
	return tui.Run(tui.Options{
		Version: displayVersion(),
		Config:  a.cfg,
		API:     a.api,
		Session: a.sess,
	})
}
