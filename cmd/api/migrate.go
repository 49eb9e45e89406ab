package main

import (
	"fmt"
	"strconv"

	"github.com/cleberrangel/pendientes-api/internal/migration"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica as migrations pendentes e mostra a versão do schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap("migrate")
		if err != nil {
			return err
		}
		defer a.close()

		return printVersion(cmd, migration.NewMigrator(a.db, a.cfg.DB.Driver))
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down <versão>",
	Short: "Reverte as migrations acima da versão informada",
	Long: `Reverte, da mais recente para a mais antiga, as migrations acima da
versão informada. "down 0" remove todas as tabelas.

Exemplos:
  pendientes migrate down 7
  pendientes migrate down 0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("versão inválida %q: %w", args[0], err)
		}

		a, err := bootstrap("migrate down")
		if err != nil {
			return err
		}
		defer a.close()

		m := migration.NewMigrator(a.db, a.cfg.DB.Driver)
		if err := m.Rollback(target); err != nil {
			return err
		}
		return printVersion(cmd, m)
	},
}

func init() {
	migrateCmd.AddCommand(migrateDownCmd)
}

func printVersion(cmd *cobra.Command, m *migration.Migrator) error {
	version, err := m.CurrentVersion()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema na versão %d\n", version)
	return nil
}
