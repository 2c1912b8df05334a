package cmd

import (
	"fmt"

	"brain/config"
	"brain/internal/dlock/pgstore"
	"brain/internal/graph"

	"github.com/spf13/cobra"
)

// migrateCmd creates the tables the lease and the graph live in
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the locks, entities and relations tables",
	Long: `Create the database tables used by the server if they do not exist yet.
The locks table is only created when the lease is stored in postgres.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		if app.pool == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate for the in-memory backend")
			return nil
		}

		if app.config.StoreBackend == config.BackendPostgres {
			if err := pgstore.NewPostgresStore(app.pool).Migrate(ctx); err != nil {
				return fmt.Errorf("failed to create locks table: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Created locks table")
		}

		if err := graph.NewPostgresRepository(app.pool).Migrate(ctx); err != nil {
			return fmt.Errorf("failed to create graph tables: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Created entities and relations tables")

		app.logger.Info("Migration complete", "store_backend", app.config.StoreBackend)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
