package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/acadmin/internal/infrastructure/audit"
	"github.com/turtacn/acadmin/internal/infrastructure/persistence/postgres"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			conn, err := postgres.NewDBConnection(ctx, &cfg.Database, log)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := postgres.Migrate(ctx, conn.DB(), log); err != nil {
				return err
			}
			if cfg.Audit.Enabled {
				if err := audit.NewGormAuditService(conn.DB(), nil, log).Migrate(ctx); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema is up to date (%s)\n", cfg.Database.Driver)
			return nil
		},
	}
}
