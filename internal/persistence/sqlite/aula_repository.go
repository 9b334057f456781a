package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

// AulaRepository implements persistence.AulaRepository over SQLite.
type AulaRepository struct {
	pool *ConnectionPool
}

// NewAulaRepository binds the repository to a connection pool.
func NewAulaRepository(pool *ConnectionPool) *AulaRepository {
	return &AulaRepository{pool: pool}
}

const aulaColumns = `a.idaula, a.iduc, a.idturma, a.data, a.horario, a.horas, a.status,
	a.created_at, a.updated_at, uc.nomeuc, t.turmanome`

const aulaJoins = `FROM aulas a
	JOIN unidades_curriculares uc ON uc.iduc = a.iduc
	JOIN turma t ON t.idturma = a.idturma`

// CreateAulas inserts the batch atomically. Either every aula is persisted or
// none is.
func (r *AulaRepository) CreateAulas(ctx context.Context, aulas []persistence.Aula) error {
	if len(aulas) == 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO aulas
			(idaula, iduc, idturma, data, horario, horas, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return mapSQLiteError(err)
		}
		defer stmt.Close()

		for _, aula := range aulas {
			if aula.ID == "" {
				return persistence.ErrConstraintViolation
			}
			_, err := stmt.Exec(
				aula.ID, aula.IDUc, aula.IDTurma,
				aula.Data.String(), aula.Horario, aula.Horas, aula.Status,
				now, now,
			)
			if err != nil {
				return mapSQLiteError(err)
			}
		}
		return nil
	})
}

// GetAula fetches one aula with its denormalized display names.
func (r *AulaRepository) GetAula(ctx context.Context, id string) (persistence.Aula, error) {
	row := r.pool.db.QueryRowContext(ctx,
		"SELECT "+aulaColumns+" "+aulaJoins+" WHERE a.idaula = ?", id)

	aula, err := scanAula(row)
	if err != nil {
		return persistence.Aula{}, mapSQLiteError(err)
	}
	return aula, nil
}

// UpdateAula rewrites the mutable aula fields.
func (r *AulaRepository) UpdateAula(ctx context.Context, aula persistence.Aula) error {
	res, err := r.pool.db.ExecContext(ctx,
		`UPDATE aulas SET horario = ?, horas = ?, status = ?, data = ?, updated_at = ?
		 WHERE idaula = ?`,
		aula.Horario, aula.Horas, aula.Status, aula.Data.String(),
		time.Now().UTC().Format(time.RFC3339), aula.ID,
	)
	if err != nil {
		return mapSQLiteError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return mapSQLiteError(err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// DeleteAula removes one aula.
func (r *AulaRepository) DeleteAula(ctx context.Context, id string) error {
	res, err := r.pool.db.ExecContext(ctx, "DELETE FROM aulas WHERE idaula = ?", id)
	if err != nil {
		return mapSQLiteError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return mapSQLiteError(err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListAulas returns aulas matching the filter ordered by date then horário.
func (r *AulaRepository) ListAulas(ctx context.Context, filter persistence.AulaFilter) ([]persistence.Aula, error) {
	var (
		conds []string
		args  []any
	)
	if filter.IDTurma != "" {
		conds = append(conds, "a.idturma = ?")
		args = append(args, filter.IDTurma)
	}
	if filter.IDUc != "" {
		conds = append(conds, "a.iduc = ?")
		args = append(args, filter.IDUc)
	}
	if filter.Data != nil {
		conds = append(conds, "a.data = ?")
		args = append(args, filter.Data.String())
	}
	if filter.DataInicio != nil {
		conds = append(conds, "a.data >= ?")
		args = append(args, filter.DataInicio.String())
	}
	if filter.DataFim != nil {
		conds = append(conds, "a.data <= ?")
		args = append(args, filter.DataFim.String())
	}
	if filter.Status != "" {
		conds = append(conds, "a.status = ?")
		args = append(args, filter.Status)
	}

	query := "SELECT " + aulaColumns + " " + aulaJoins
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.data, a.horario, a.idaula"

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var aulas []persistence.Aula
	for rows.Next() {
		aula, err := scanAula(rows)
		if err != nil {
			return nil, mapSQLiteError(err)
		}
		aulas = append(aulas, aula)
	}
	return aulas, mapSQLiteError(rows.Err())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAula(row rowScanner) (persistence.Aula, error) {
	var (
		aula                 persistence.Aula
		data                 string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&aula.ID, &aula.IDUc, &aula.IDTurma, &data, &aula.Horario,
		&aula.Horas, &aula.Status, &createdAt, &updatedAt,
		&aula.NomeUc, &aula.NomeTurma,
	)
	if err != nil {
		return persistence.Aula{}, err
	}

	aula.Data, err = civil.ParseDate(data)
	if err != nil {
		return persistence.Aula{}, fmt.Errorf("stored aula %s has malformed date %q: %w", aula.ID, data, err)
	}
	aula.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	aula.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return aula, nil
}
