// Command fb-mcp serves FlashBlade array queries as MCP tools.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fb-mcp/internal/server"
)

// Set via ldflags at build time.
var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fb-mcp",
		Short: "MCP server for Pure Storage FlashBlade arrays",
		Long: "fb-mcp exposes the FlashBlade REST management API as MCP tools. " +
			"Array host and API token are supplied by the caller on every tool call.",
		SilenceUsage: true,
		RunE:         runStdio,
		PersistentPreRun: func(*cobra.Command, []string) {
			server.Version = version
		},
	}
	root.PersistentFlags().String("config", "", "Path to YAML config file")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "text", "Log format: text or json")

	root.Version = version
	root.SetVersionTemplate(fmt.Sprintf("fb-mcp version %s\n", version))

	root.AddCommand(newServeCmd())
	root.AddCommand(newServeHTTPCmd())
	root.AddCommand(newToolsCmd())
	return root
}

// setup loads config and builds the logger shared by every subcommand.
// Logs always go to stderr; stdout carries the MCP stream in stdio mode.
func setup(cmd *cobra.Command) (server.Config, *slog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	logger, err := newLogger(cmd.ErrOrStderr(), level, format)
	if err != nil {
		return server.Config{}, nil, err
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := server.LoadConfig(getEnv("FB_MCP_CONFIG", path))
	if err != nil {
		return server.Config{}, nil, err
	}
	applyEnv(&cfg)
	return cfg, logger, nil
}

// applyEnv overrides file settings with environment variables.
func applyEnv(cfg *server.Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Token = getEnv("MCP_TOKEN", cfg.Token)
	cfg.TLSCertFile = getEnv("TLS_CERT_FILE", cfg.TLSCertFile)
	cfg.TLSKeyFile = getEnv("TLS_KEY_FILE", cfg.TLSKeyFile)
	cfg.VerifyTLS = getEnvBool("FB_VERIFY_TLS", cfg.VerifyTLS)
	cfg.Timeout = getEnvDuration("FB_TIMEOUT", cfg.Timeout)
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
