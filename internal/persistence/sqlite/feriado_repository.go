package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

// FeriadoRepository implements persistence.FeriadoRepository over SQLite.
type FeriadoRepository struct {
	pool *ConnectionPool
}

// NewFeriadoRepository binds the repository to a connection pool.
func NewFeriadoRepository(pool *ConnectionPool) *FeriadoRepository {
	return &FeriadoRepository{pool: pool}
}

// CreateFeriadoMunicipal inserts one municipal holiday row.
func (r *FeriadoRepository) CreateFeriadoMunicipal(ctx context.Context, feriado persistence.FeriadoMunicipal) error {
	if feriado.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx,
		"INSERT INTO feriadosmunicipais (idferiado, data, nome, created_at) VALUES (?, ?, ?, ?)",
		feriado.ID, feriado.Data.String(), feriado.Nome, time.Now().UTC().Format(time.RFC3339),
	)
	return mapSQLiteError(err)
}

// ListFeriadosMunicipais returns municipal holidays, optionally bounded by an
// inclusive date range, ordered by date.
func (r *FeriadoRepository) ListFeriadosMunicipais(ctx context.Context, inicio, fim *civil.Date) ([]persistence.FeriadoMunicipal, error) {
	query := "SELECT idferiado, data, nome, created_at FROM feriadosmunicipais"
	var args []any
	switch {
	case inicio != nil && fim != nil:
		query += " WHERE data >= ? AND data <= ?"
		args = append(args, inicio.String(), fim.String())
	case inicio != nil:
		query += " WHERE data >= ?"
		args = append(args, inicio.String())
	case fim != nil:
		query += " WHERE data <= ?"
		args = append(args, fim.String())
	}
	query += " ORDER BY data"

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var feriados []persistence.FeriadoMunicipal
	for rows.Next() {
		var (
			feriado         persistence.FeriadoMunicipal
			data, createdAt string
		)
		if err := rows.Scan(&feriado.ID, &data, &feriado.Nome, &createdAt); err != nil {
			return nil, mapSQLiteError(err)
		}
		feriado.Data, err = civil.ParseDate(data)
		if err != nil {
			return nil, fmt.Errorf("stored feriado %s has malformed date %q: %w", feriado.ID, data, err)
		}
		feriado.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		feriados = append(feriados, feriado)
	}
	return feriados, mapSQLiteError(rows.Err())
}
