package sqlite

import (
	"context"
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

// UcRepository implements persistence.UcRepository over SQLite.
type UcRepository struct {
	pool *ConnectionPool
}

// NewUcRepository binds the repository to a connection pool.
func NewUcRepository(pool *ConnectionPool) *UcRepository {
	return &UcRepository{pool: pool}
}

// CreateUc inserts a new unidade curricular.
func (r *UcRepository) CreateUc(ctx context.Context, uc persistence.UnidadeCurricular) error {
	if uc.ID == "" {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.pool.db.ExecContext(ctx,
		`INSERT INTO unidades_curriculares (iduc, nomeuc, cargahoraria, idcurso, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uc.ID, uc.Nome, uc.CargaHoraria, uc.IDCurso, now, now,
	)
	return mapSQLiteError(err)
}

// UpdateUc rewrites the mutable UC fields.
func (r *UcRepository) UpdateUc(ctx context.Context, uc persistence.UnidadeCurricular) error {
	res, err := r.pool.db.ExecContext(ctx,
		`UPDATE unidades_curriculares SET nomeuc = ?, cargahoraria = ?, idcurso = ?, updated_at = ?
		 WHERE iduc = ?`,
		uc.Nome, uc.CargaHoraria, uc.IDCurso, time.Now().UTC().Format(time.RFC3339), uc.ID,
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

// GetUc fetches one unidade curricular.
func (r *UcRepository) GetUc(ctx context.Context, id string) (persistence.UnidadeCurricular, error) {
	var (
		uc                   persistence.UnidadeCurricular
		createdAt, updatedAt string
	)
	err := r.pool.db.QueryRowContext(ctx,
		`SELECT iduc, nomeuc, cargahoraria, idcurso, created_at, updated_at
		 FROM unidades_curriculares WHERE iduc = ?`, id,
	).Scan(&uc.ID, &uc.Nome, &uc.CargaHoraria, &uc.IDCurso, &createdAt, &updatedAt)
	if err != nil {
		return persistence.UnidadeCurricular{}, mapSQLiteError(err)
	}

	uc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	uc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return uc, nil
}

// ListUcsPorCurso returns the UCs of one curso ordered by name.
func (r *UcRepository) ListUcsPorCurso(ctx context.Context, idCurso string) ([]persistence.UnidadeCurricular, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT iduc, nomeuc, cargahoraria, idcurso, created_at, updated_at
		 FROM unidades_curriculares WHERE idcurso = ? ORDER BY nomeuc`, idCurso)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var ucs []persistence.UnidadeCurricular
	for rows.Next() {
		var (
			uc                   persistence.UnidadeCurricular
			createdAt, updatedAt string
		)
		if err := rows.Scan(&uc.ID, &uc.Nome, &uc.CargaHoraria, &uc.IDCurso, &createdAt, &updatedAt); err != nil {
			return nil, mapSQLiteError(err)
		}
		uc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		uc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		ucs = append(ucs, uc)
	}
	return ucs, mapSQLiteError(rows.Err())
}

// ListCursos returns the curso catalog ordered by name.
func (r *UcRepository) ListCursos(ctx context.Context) ([]persistence.Curso, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT idcurso, nomecurso FROM cursos ORDER BY nomecurso")
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var cursos []persistence.Curso
	for rows.Next() {
		var curso persistence.Curso
		if err := rows.Scan(&curso.ID, &curso.Nome); err != nil {
			return nil, mapSQLiteError(err)
		}
		cursos = append(cursos, curso)
	}
	return cursos, mapSQLiteError(rows.Err())
}
