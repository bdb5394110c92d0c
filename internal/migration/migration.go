package migration

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/cleberrangel/burndown-api/internal/logger"
	_ "github.com/lib/pq"
)

// Migration é uma alteração versionada do schema
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Migrator aplica as migrações pendentes no startup
type Migrator struct {
	db         *sql.DB
	migrations []Migration
}

// NewMigrator cria um migrator com o conjunto completo de migrações
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getAllMigrations(),
	}
}

// Run aplica, em ordem de versão e cada uma em transação própria, as
// migrações acima da versão atual do banco
func (m *Migrator) Run() error {
	log := logger.Global()

	if err := m.ensureVersionTable(); err != nil {
		return fmt.Errorf("erro ao criar tabela de versões: %w", err)
	}

	current, err := m.currentVersion()
	if err != nil {
		return fmt.Errorf("erro ao obter versão atual: %w", err)
	}

	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})

	applied := 0
	for _, migration := range m.migrations {
		if migration.Version <= current {
			continue
		}

		log.Info().
			Int("version", migration.Version).
			Str("name", migration.Name).
			Msg("Aplicando migração")

		if err := m.apply(migration); err != nil {
			return fmt.Errorf("erro na migração %d (%s): %w",
				migration.Version, migration.Name, err)
		}
		applied++
	}

	log.Info().
		Int("from_version", current).
		Int("applied", applied).
		Msg("Schema do banco atualizado")

	return nil
}

func (m *Migrator) ensureVersionTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`)
	return err
}

func (m *Migrator) currentVersion() (int, error) {
	var version int
	err := m.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	return version, err
}

// apply executa a migração e registra a versão na mesma transação
func (m *Migrator) apply(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.Up); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
		migration.Version, time.Now(),
	); err != nil {
		return err
	}

	return tx.Commit()
}
