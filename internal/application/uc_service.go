package application

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

// The carga horária bounds accepted on registration.
const (
	cargaHorariaMaxima = 2000
	nomeUcMinimo       = 3
)

// UcService manages the unidade curricular catalog and the derived remaining
// hour balances.
type UcService struct {
	ucs         persistence.UcRepository
	aulas       persistence.AulaRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewUcService wires dependencies for unidade curricular operations.
func NewUcService(ucs persistence.UcRepository, aulas persistence.AulaRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *UcService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &UcService{ucs: ucs, aulas: aulas, idGenerator: idGenerator, now: now, logger: logger}
}

// CreateUc validates and registers a new unidade curricular. The curso is
// resolved by name, case-insensitively.
func (s *UcService) CreateUc(ctx context.Context, params CreateUcParams) (UnidadeCurricular, error) {
	logger := serviceLogger(ctx, s.logger, "ucs", "create")

	vErr := validateUcCore(params.Nome, params.CargaHoraria)
	curso, err := s.resolverCurso(ctx, params.NomeCurso, vErr)
	if err != nil {
		return UnidadeCurricular{}, err
	}
	if vErr.HasErrors() {
		return UnidadeCurricular{}, vErr
	}

	row := persistence.UnidadeCurricular{
		ID:           s.idGenerator(),
		Nome:         strings.TrimSpace(params.Nome),
		CargaHoraria: params.CargaHoraria,
		IDCurso:      curso.ID,
	}
	if err := s.ucs.CreateUc(ctx, row); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "uc insert failed", "error", err, "error_kind", ErrorKind(err))
		return UnidadeCurricular{}, err
	}

	logger.InfoContext(ctx, "uc created", "uc_id", row.ID, "curso", curso.Nome)
	return UnidadeCurricular{
		ID:             row.ID,
		Nome:           row.Nome,
		CargaHoraria:   row.CargaHoraria,
		IDCurso:        curso.ID,
		NomeCurso:      curso.Nome,
		HorasRestantes: row.CargaHoraria,
	}, nil
}

// UpdateUc rewrites an existing unidade curricular.
func (s *UcService) UpdateUc(ctx context.Context, params UpdateUcParams) (UnidadeCurricular, error) {
	logger := serviceLogger(ctx, s.logger, "ucs", "update", "uc_id", params.UcID)

	existing, err := s.ucs.GetUc(ctx, params.UcID)
	if err != nil {
		return UnidadeCurricular{}, mapRepoError(err)
	}

	vErr := validateUcCore(params.Nome, params.CargaHoraria)
	curso, err := s.resolverCurso(ctx, params.NomeCurso, vErr)
	if err != nil {
		return UnidadeCurricular{}, err
	}
	if vErr.HasErrors() {
		return UnidadeCurricular{}, vErr
	}

	updated := existing
	updated.Nome = strings.TrimSpace(params.Nome)
	updated.CargaHoraria = params.CargaHoraria
	updated.IDCurso = curso.ID
	if err := s.ucs.UpdateUc(ctx, updated); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "uc update failed", "error", err, "error_kind", ErrorKind(err))
		return UnidadeCurricular{}, err
	}

	restantes, err := s.horasRestantes(ctx, updated)
	if err != nil {
		return UnidadeCurricular{}, err
	}

	logger.InfoContext(ctx, "uc updated")
	return UnidadeCurricular{
		ID:             updated.ID,
		Nome:           updated.Nome,
		CargaHoraria:   updated.CargaHoraria,
		IDCurso:        curso.ID,
		NomeCurso:      curso.Nome,
		HorasRestantes: restantes,
	}, nil
}

// GetUc fetches one unidade curricular with its remaining hour balance.
func (s *UcService) GetUc(ctx context.Context, ucID string) (UnidadeCurricular, error) {
	row, err := s.ucs.GetUc(ctx, ucID)
	if err != nil {
		return UnidadeCurricular{}, mapRepoError(err)
	}

	restantes, err := s.horasRestantes(ctx, row)
	if err != nil {
		return UnidadeCurricular{}, err
	}
	return UnidadeCurricular{
		ID:             row.ID,
		Nome:           row.Nome,
		CargaHoraria:   row.CargaHoraria,
		IDCurso:        row.IDCurso,
		HorasRestantes: restantes,
	}, nil
}

// ListUcsPorCurso returns the UCs of one curso with remaining hour balances,
// ordered by name.
func (s *UcService) ListUcsPorCurso(ctx context.Context, idCurso string) ([]UnidadeCurricular, error) {
	rows, err := s.ucs.ListUcsPorCurso(ctx, idCurso)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]UnidadeCurricular, 0, len(rows))
	for _, row := range rows {
		restantes, err := s.horasRestantes(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, UnidadeCurricular{
			ID:             row.ID,
			Nome:           row.Nome,
			CargaHoraria:   row.CargaHoraria,
			IDCurso:        row.IDCurso,
			HorasRestantes: restantes,
		})
	}
	return out, nil
}

// ListCursos returns the curso catalog ordered by name.
func (s *UcService) ListCursos(ctx context.Context) ([]Curso, error) {
	rows, err := s.ucs.ListCursos(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	out := make([]Curso, 0, len(rows))
	for _, row := range rows {
		out = append(out, Curso{ID: row.ID, Nome: row.Nome})
	}
	return out, nil
}

// horasRestantes derives the remaining balance: the carga horária minus the
// hours of every aula marked Realizada, floored at zero. The balance is never
// stored, so a status flip or deletion is reflected on the next read.
func (s *UcService) horasRestantes(ctx context.Context, uc persistence.UnidadeCurricular) (float64, error) {
	if s.aulas == nil {
		return uc.CargaHoraria, nil
	}

	realizadas, err := s.aulas.ListAulas(ctx, persistence.AulaFilter{
		IDUc:   uc.ID,
		Status: StatusRealizada,
	})
	if err != nil {
		return 0, mapRepoError(err)
	}

	var consumidas float64
	for _, aula := range realizadas {
		consumidas += aula.Horas
	}

	restantes := uc.CargaHoraria - consumidas
	if restantes < 0 {
		restantes = 0
	}
	return restantes, nil
}

// resolverCurso matches the submitted curso name against the catalog,
// ignoring case and surrounding spaces. A miss is a field error, not a
// sentinel: the user typed the name.
func (s *UcService) resolverCurso(ctx context.Context, nomeCurso string, vErr *ValidationError) (persistence.Curso, error) {
	alvo := strings.TrimSpace(nomeCurso)
	if alvo == "" {
		vErr.add("curso", "informe o curso")
		return persistence.Curso{}, nil
	}

	cursos, err := s.ucs.ListCursos(ctx)
	if err != nil {
		return persistence.Curso{}, mapRepoError(err)
	}
	for _, curso := range cursos {
		if strings.EqualFold(curso.Nome, alvo) {
			return curso, nil
		}
	}

	vErr.add("curso", "curso não encontrado: "+alvo)
	return persistence.Curso{}, nil
}

func validateUcCore(nome string, cargaHoraria float64) *ValidationError {
	vErr := &ValidationError{}

	if utf8.RuneCountInString(strings.TrimSpace(nome)) < nomeUcMinimo {
		vErr.add("nome", "o nome deve ter ao menos 3 caracteres")
	}
	if cargaHoraria <= 0 || cargaHoraria > cargaHorariaMaxima {
		vErr.add("carga_horaria", "a carga horária deve estar entre 1 e 2000 horas")
	}
	return vErr
}
