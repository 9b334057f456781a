package application

import (
	"context"
	"log/slog"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

// TurmaService exposes the cohort catalog. The scheduler never mutates
// turmas; registration happens upstream.
type TurmaService struct {
	turmas persistence.TurmaRepository
	logger *slog.Logger
}

// NewTurmaService wires dependencies for turma lookups.
func NewTurmaService(turmas persistence.TurmaRepository, logger *slog.Logger) *TurmaService {
	return &TurmaService{turmas: turmas, logger: logger}
}

// ListTurmas returns every turma with curso names resolved, ordered by name.
func (s *TurmaService) ListTurmas(ctx context.Context) ([]Turma, error) {
	rows, err := s.turmas.ListTurmas(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]Turma, 0, len(rows))
	for _, row := range rows {
		out = append(out, Turma{
			ID:        row.ID,
			Nome:      row.Nome,
			IDCurso:   row.IDCurso,
			NomeCurso: row.NomeCurso,
		})
	}
	return out, nil
}

// GetTurma fetches one turma with instructor and shift names resolved when
// the references are set.
func (s *TurmaService) GetTurma(ctx context.Context, id string) (Turma, error) {
	row, err := s.turmas.GetTurma(ctx, id)
	if err != nil {
		return Turma{}, mapRepoError(err)
	}

	turma := Turma{
		ID:        row.ID,
		Nome:      row.Nome,
		IDCurso:   row.IDCurso,
		NomeCurso: row.NomeCurso,
	}
	if row.IDInstrutor != nil {
		instrutor, err := s.turmas.GetInstrutor(ctx, *row.IDInstrutor)
		if err != nil {
			return Turma{}, mapRepoError(err)
		}
		turma.NomeInstrutor = instrutor.Nome
	}
	if row.IDTurno != nil {
		turno, err := s.turmas.GetTurno(ctx, *row.IDTurno)
		if err != nil {
			return Turma{}, mapRepoError(err)
		}
		turma.NomeTurno = turno.Nome
	}
	return turma, nil
}
