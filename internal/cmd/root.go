package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/niels/tiny-file-server/pkg/config"
	"github.com/niels/tiny-file-server/pkg/logging"
	"github.com/niels/tiny-file-server/pkg/server"
	"github.com/niels/tiny-file-server/pkg/version"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	debug       bool
	showVersion bool
	noColor     bool
	cfg         *config.Config
)

// NewRootCmd creates the root command for tiny-file-server
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   version.AppName,
		Short: version.Description,
		Long: fmt.Sprintf(`%s - %s

Serves GET requests from a directory on disk. Missing files are answered
with the not found document and a 404, other methods with a 405.
`, version.AppName, version.Description),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg = config.LoadOrDefault(configPath)
			} else {
				cfg = config.Default()
			}

			logging.InitGlobalLogger(debug, cfg)
			if debug {
				logging.Debug("Debug logging enabled")
			}

			if configPath != "" {
				logging.InfoWith("Configuration loaded", map[string]interface{}{
					"path": configPath,
				})
			} else {
				logging.Info("Using default configuration")
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionInfo())
				return nil
			}

			if noColor {
				color.NoColor = true
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg, nil)
			if err := srv.Listen(); err != nil {
				logging.ErrorWith("Failed to start server", map[string]interface{}{
					"addr":  cfg.ServerAddress(),
					"error": err,
				})
				return err
			}

			printBanner(cmd, srv)

			if err := srv.Serve(ctx); err != nil {
				logging.ErrorWith("Server failed", map[string]interface{}{
					"error": err,
				})
				return err
			}

			logging.Info("Server stopped")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return rootCmd
}

func printBanner(cmd *cobra.Command, srv *server.Server) {
	out := cmd.OutOrStdout()
	title := color.New(color.FgGreen, color.Bold)
	title.Fprintf(out, "%s %s\n", version.AppName, version.Version)
	fmt.Fprintf(out, "  Serving %s on %s\n",
		color.CyanString(cfg.Server.Root),
		color.CyanString("http://%s", srv.Addr().String()))
	if cfg.Server.ContainRoot {
		fmt.Fprintf(out, "  Request paths are contained in the root directory\n")
	}
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
