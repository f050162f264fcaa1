// Package cli implements acadmin-admin, the operator command line for the
// academic administration service.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/acadmin/internal/app"
	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/internal/infrastructure/monitoring"
	"github.com/turtacn/acadmin/pkg/logger"
)

type rootOptions struct {
	configFile string
	verbose    bool
}

// NewRootCommand builds the acadmin-admin command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "acadmin-admin",
		Short: "Administrative CLI for the acadmin service",
		Long: `acadmin-admin performs operator tasks against the acadmin database:
schema migration, bootstrap of the first administrator, batch risk assessment
and inspection of the audit trail.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", os.Getenv("ACADMIN_CONFIG"), "path to the config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at info level instead of warn")

	cmd.AddCommand(
		newMigrateCommand(opts),
		newCreateAdminCommand(opts),
		newAssessCommand(opts),
		newAuditCommand(opts),
	)
	return cmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load reads the configuration and builds a logger that keeps stdout free for
// command output.
func (o *rootOptions) load() (*config.Config, logger.Logger, error) {
	level := "warn"
	if o.verbose {
		level = "info"
	}
	logCfg := &config.LogConfig{Level: level, Format: "console", OutputPath: "stderr"}
	log, err := monitoring.NewZapLogger(logCfg)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.NewLoader(o.configFile, log).Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// open wires the full application for commands that run use cases.
func (o *rootOptions) open(ctx context.Context) (*app.App, error) {
	cfg, log, err := o.load()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, service.NewNoopMetrics(), log)
}
