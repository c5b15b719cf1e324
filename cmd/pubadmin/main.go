// Package main provides the pubadmin CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/pubadmin"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// configFile is set by the --config flag.
	configFile string

	// addr overrides the configured listen address when set.
	addr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubadmin",
	Short: "pubadmin is the admin interface of a blog content backend",
	Long: `pubadmin serves paged, sortable and selectable tables of posts,
categories and tags stored behind a content backend's REST API.

Configuration is read from pubadmin.yaml (or --config) and from
PUBADMIN_* environment variables, e.g. PUBADMIN_SESSION_SECRET.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./pubadmin.yaml)")
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pubadmin.LoadConfig(configFile)
		if err != nil {
			return err
		}
		if addr != "" {
			cfg.Addr = addr
		}

		app := pubadmin.New(cfg)
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() { errc <- app.Start() }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Echo.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return <-errc
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pubadmin %s\n", version)
	},
}
