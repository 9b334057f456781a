package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migration is one ordered schema step. Versions are applied exactly once,
// recorded in schema_migrations.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "catalogo",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS cursos (
				idcurso TEXT PRIMARY KEY,
				nomecurso TEXT NOT NULL UNIQUE
			)`,
			`CREATE TABLE IF NOT EXISTS instrutores (
				idinstrutor TEXT PRIMARY KEY,
				nomeinstrutor TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS turno (
				idturno TEXT PRIMARY KEY,
				turno TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS turma (
				idturma TEXT PRIMARY KEY,
				turmanome TEXT NOT NULL,
				idcurso TEXT NOT NULL REFERENCES cursos(idcurso),
				idinstrutor TEXT REFERENCES instrutores(idinstrutor),
				idturno TEXT REFERENCES turno(idturno),
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
		},
	},
	{
		version: 2,
		name:    "unidades_curriculares",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS unidades_curriculares (
				iduc TEXT PRIMARY KEY,
				nomeuc TEXT NOT NULL,
				cargahoraria REAL NOT NULL CHECK (cargahoraria >= 0),
				idcurso TEXT NOT NULL REFERENCES cursos(idcurso),
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
		},
	},
	{
		version: 3,
		name:    "aulas",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS aulas (
				idaula TEXT PRIMARY KEY,
				iduc TEXT NOT NULL REFERENCES unidades_curriculares(iduc),
				idturma TEXT NOT NULL REFERENCES turma(idturma),
				data TEXT NOT NULL,
				horario TEXT NOT NULL,
				horas REAL NOT NULL CHECK (horas > 0),
				status TEXT NOT NULL CHECK (status IN ('Agendada', 'Realizada', 'Cancelada')),
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_aulas_turma_data ON aulas(idturma, data)`,
			`CREATE INDEX IF NOT EXISTS idx_aulas_uc_status ON aulas(iduc, status)`,
		},
	},
	{
		version: 4,
		name:    "feriadosmunicipais",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS feriadosmunicipais (
				idferiado TEXT PRIMARY KEY,
				data TEXT NOT NULL,
				nome TEXT NOT NULL,
				created_at TEXT NOT NULL,
				UNIQUE (data, nome)
			)`,
		},
	},
}

// Migrate applies pending schema versions in order, inside one transaction
// per version.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	if _, err := cp.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}

	for _, m := range migrations {
		applied, err := cp.migrationApplied(ctx, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		err = cp.WithTransaction(ctx, func(tx *sql.Tx) error {
			for _, stmt := range m.stmts {
				if _, err := tx.Exec(stmt); err != nil {
					return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
				}
			}
			_, err := tx.Exec(
				"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, datetime('now'))",
				m.version, m.name,
			)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (cp *ConnectionPool) migrationApplied(ctx context.Context, version int) (bool, error) {
	var count int
	err := cp.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM schema_migrations WHERE version = ?", version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema_migrations: %w", err)
	}
	return count > 0, nil
}
