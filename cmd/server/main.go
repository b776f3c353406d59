package main

import (
	"context"
	"os"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/analyzer"
	"gitlab.com/your-org/jira-analyzer-mcp/internal/config"
	mcpserver "gitlab.com/your-org/jira-analyzer-mcp/internal/mcp"
	"gitlab.com/your-org/jira-analyzer-mcp/internal/session"
	"gitlab.com/your-org/jira-analyzer-mcp/pkg/logging"
)

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:   "jira-analyzer-mcp",
		Short: "Read-only Jira analysis server over the Model Context Protocol",
		Long: "jira-analyzer-mcp exposes read-only Jira analysis tools over MCP stdio.\n" +
			"Credentials can come from configuration, JIRA_ANALYZER_* environment\n" +
			"variables, a .env file, or ~/.netrc.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfgPath)
		},
	}
	root.Flags().StringVar(&cfgPath, "config", "", "Path to configuration directory or file")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Default().Error("failed to load configuration", slog.Any("error", err))
		return err
	}

	logger := logging.New(cfg.Server.LogLevel, cfg.Server.LogFormat)

	sess := session.New()

	if cfg.Jira.Site != "" {
		a, err := analyzer.Connect(ctx, cfg.Jira.Site, cfg.Jira.ServiceCredentials, logger)
		if err != nil {
			logger.Warn("initial Jira connection failed, waiting for jira.connect",
				slog.String("site", cfg.Jira.Site), slog.Any("error", err))
		} else {
			sess.Connect(a, a.SiteURL())
			logger.Info("connected to Jira", slog.String("site", a.SiteURL()))
		}
	}

	srv := mcpserver.NewServer(mcpserver.Dependencies{
		Session: sess,
		Logger:  logger,
	})

	if err := server.ServeStdio(srv); err != nil {
		logger.Error("stdio server terminated", slog.Any("error", err))
		return err
	}
	return nil
}
