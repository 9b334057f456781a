package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

// TurmaRepository implements persistence.TurmaRepository over SQLite. The
// scheduler only reads this catalog; rows are seeded by registration flows
// outside this service.
type TurmaRepository struct {
	pool *ConnectionPool
}

// NewTurmaRepository binds the repository to a connection pool.
func NewTurmaRepository(pool *ConnectionPool) *TurmaRepository {
	return &TurmaRepository{pool: pool}
}

// GetTurma fetches one turma with its curso name resolved.
func (r *TurmaRepository) GetTurma(ctx context.Context, id string) (persistence.Turma, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT t.idturma, t.turmanome, t.idcurso, t.idinstrutor, t.idturno,
			t.created_at, t.updated_at, c.nomecurso
		 FROM turma t JOIN cursos c ON c.idcurso = t.idcurso
		 WHERE t.idturma = ?`, id)

	turma, err := scanTurma(row)
	if err != nil {
		return persistence.Turma{}, mapSQLiteError(err)
	}
	return turma, nil
}

// ListTurmas returns every turma ordered by name, curso names resolved.
func (r *TurmaRepository) ListTurmas(ctx context.Context) ([]persistence.Turma, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT t.idturma, t.turmanome, t.idcurso, t.idinstrutor, t.idturno,
			t.created_at, t.updated_at, c.nomecurso
		 FROM turma t JOIN cursos c ON c.idcurso = t.idcurso
		 ORDER BY t.turmanome`)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	defer rows.Close()

	var turmas []persistence.Turma
	for rows.Next() {
		turma, err := scanTurma(rows)
		if err != nil {
			return nil, mapSQLiteError(err)
		}
		turmas = append(turmas, turma)
	}
	return turmas, mapSQLiteError(rows.Err())
}

// GetInstrutor fetches one instructor catalog row.
func (r *TurmaRepository) GetInstrutor(ctx context.Context, id string) (persistence.Instrutor, error) {
	var instrutor persistence.Instrutor
	err := r.pool.db.QueryRowContext(ctx,
		"SELECT idinstrutor, nomeinstrutor FROM instrutores WHERE idinstrutor = ?", id,
	).Scan(&instrutor.ID, &instrutor.Nome)
	if err != nil {
		return persistence.Instrutor{}, mapSQLiteError(err)
	}
	return instrutor, nil
}

// GetTurno fetches one shift catalog row.
func (r *TurmaRepository) GetTurno(ctx context.Context, id string) (persistence.Turno, error) {
	var turno persistence.Turno
	err := r.pool.db.QueryRowContext(ctx,
		"SELECT idturno, turno FROM turno WHERE idturno = ?", id,
	).Scan(&turno.ID, &turno.Nome)
	if err != nil {
		return persistence.Turno{}, mapSQLiteError(err)
	}
	return turno, nil
}

func scanTurma(row rowScanner) (persistence.Turma, error) {
	var (
		turma                persistence.Turma
		idInstrutor, idTurno sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&turma.ID, &turma.Nome, &turma.IDCurso, &idInstrutor, &idTurno,
		&createdAt, &updatedAt, &turma.NomeCurso,
	)
	if err != nil {
		return persistence.Turma{}, err
	}

	turma.IDInstrutor = fromNullString(idInstrutor)
	turma.IDTurno = fromNullString(idTurno)
	turma.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	turma.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return turma, nil
}
