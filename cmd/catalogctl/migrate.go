package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/yourusername/trivia-catalog/pkg/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "manage database schema migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withMigrator(func(m *migrateV4.Migrate) error {
					return ignoreNoChange(m.Up())
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "roll back the last migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withMigrator(func(m *migrateV4.Migrate) error {
					return ignoreNoChange(m.Steps(-1))
				})
			},
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "set schema version and clear the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return a.withMigrator(func(m *migrateV4.Migrate) error {
					log.Printf("[Migrate] Принудительная установка версии %d", version)
					return m.Force(version)
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withMigrator(func(m *migrateV4.Migrate) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrateV4.ErrNilVersion) {
						fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
						return nil
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty=%t)\n", version, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

// withMigrator открывает отдельное соединение lib/pq и передает migrate в fn
func (a *app) withMigrator(fn func(m *migrateV4.Migrate) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresURL())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db, cfg.Database.MigrationsPath)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := fn(m); err != nil {
		return err
	}
	log.Println("[Migrate] Готово")
	return nil
}

// migratorCloser: часть *migrate.Migrate, закрывающая источник и драйвер БД
type migratorCloser interface {
	Close() (source error, database error)
}

// closeMigrator закрывает источник миграций и драйвер БД (вместе с *sql.DB)
func closeMigrator(m migratorCloser) error {
	srcErr, dbErr := m.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		log.Printf("[Migrate] Ошибка закрытия migrate: %v", err)
		return err
	}
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrateV4.ErrNoChange) {
		log.Println("[Migrate] Изменений нет")
		return nil
	}
	return err
}
