package testfixtures

import (
	"context"
	"sort"
	"sync"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

// MemoryStore is an in-memory implementation of every persistence contract,
// suitable for service and handler tests. Listings reproduce the ordering of
// the SQLite repositories.
type MemoryStore struct {
	mu       sync.RWMutex
	aulas    map[string]persistence.Aula
	turmas   map[string]persistence.Turma
	ucs      map[string]persistence.UnidadeCurricular
	cursos   map[string]persistence.Curso
	instr    map[string]persistence.Instrutor
	turnos   map[string]persistence.Turno
	feriados map[string]persistence.FeriadoMunicipal

	// FailWith, when set, is returned by every subsequent call. Tests use it
	// to exercise persistence failure paths.
	FailWith error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		aulas:    make(map[string]persistence.Aula),
		turmas:   make(map[string]persistence.Turma),
		ucs:      make(map[string]persistence.UnidadeCurricular),
		cursos:   make(map[string]persistence.Curso),
		instr:    make(map[string]persistence.Instrutor),
		turnos:   make(map[string]persistence.Turno),
		feriados: make(map[string]persistence.FeriadoMunicipal),
	}
}

// Seed helpers. They overwrite silently so tests can redefine rows.

// SeedCurso stores a curso catalog row.
func (m *MemoryStore) SeedCurso(curso persistence.Curso) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursos[curso.ID] = curso
}

// SeedInstrutor stores an instructor catalog row.
func (m *MemoryStore) SeedInstrutor(instrutor persistence.Instrutor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.instr[instrutor.ID] = instrutor
}

// SeedTurno stores a shift catalog row.
func (m *MemoryStore) SeedTurno(turno persistence.Turno) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turnos[turno.ID] = turno
}

// SeedTurma stores a turma row.
func (m *MemoryStore) SeedTurma(turma persistence.Turma) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turmas[turma.ID] = turma
}

// SeedUc stores a unidade curricular row.
func (m *MemoryStore) SeedUc(uc persistence.UnidadeCurricular) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ucs[uc.ID] = uc
}

// SeedAula stores an aula row.
func (m *MemoryStore) SeedAula(aula persistence.Aula) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aulas[aula.ID] = aula
}

// ---------------------------------------------------------------------------
// persistence.AulaRepository

// CreateAulas inserts the batch, rejecting the whole batch when any row has
// an empty or duplicated ID.
func (m *MemoryStore) CreateAulas(_ context.Context, aulas []persistence.Aula) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	for _, aula := range aulas {
		if aula.ID == "" {
			return persistence.ErrConstraintViolation
		}
		if _, exists := m.aulas[aula.ID]; exists {
			return persistence.ErrDuplicate
		}
	}
	for _, aula := range aulas {
		m.aulas[aula.ID] = aula
	}
	return nil
}

// GetAula fetches one aula with display names resolved.
func (m *MemoryStore) GetAula(_ context.Context, id string) (persistence.Aula, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return persistence.Aula{}, m.FailWith
	}

	aula, ok := m.aulas[id]
	if !ok {
		return persistence.Aula{}, persistence.ErrNotFound
	}
	return m.decorate(aula), nil
}

// UpdateAula rewrites one aula.
func (m *MemoryStore) UpdateAula(_ context.Context, aula persistence.Aula) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	if _, ok := m.aulas[aula.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.aulas[aula.ID] = aula
	return nil
}

// DeleteAula removes one aula.
func (m *MemoryStore) DeleteAula(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	if _, ok := m.aulas[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(m.aulas, id)
	return nil
}

// ListAulas returns aulas matching the filter ordered by date, horário, ID.
func (m *MemoryStore) ListAulas(_ context.Context, filter persistence.AulaFilter) ([]persistence.Aula, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	var out []persistence.Aula
	for _, aula := range m.aulas {
		if filter.IDTurma != "" && aula.IDTurma != filter.IDTurma {
			continue
		}
		if filter.IDUc != "" && aula.IDUc != filter.IDUc {
			continue
		}
		if filter.Data != nil && aula.Data != *filter.Data {
			continue
		}
		if filter.DataInicio != nil && aula.Data.Before(*filter.DataInicio) {
			continue
		}
		if filter.DataFim != nil && aula.Data.After(*filter.DataFim) {
			continue
		}
		if filter.Status != "" && aula.Status != filter.Status {
			continue
		}
		out = append(out, m.decorate(aula))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Data != out[j].Data {
			return out[i].Data.Before(out[j].Data)
		}
		if out[i].Horario != out[j].Horario {
			return out[i].Horario < out[j].Horario
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) decorate(aula persistence.Aula) persistence.Aula {
	if uc, ok := m.ucs[aula.IDUc]; ok {
		aula.NomeUc = uc.Nome
	}
	if turma, ok := m.turmas[aula.IDTurma]; ok {
		aula.NomeTurma = turma.Nome
	}
	return aula
}

// ---------------------------------------------------------------------------
// persistence.TurmaRepository

// GetTurma fetches one turma with its curso name resolved.
func (m *MemoryStore) GetTurma(_ context.Context, id string) (persistence.Turma, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return persistence.Turma{}, m.FailWith
	}

	turma, ok := m.turmas[id]
	if !ok {
		return persistence.Turma{}, persistence.ErrNotFound
	}
	if curso, ok := m.cursos[turma.IDCurso]; ok {
		turma.NomeCurso = curso.Nome
	}
	return turma, nil
}

// ListTurmas returns every turma ordered by name.
func (m *MemoryStore) ListTurmas(_ context.Context) ([]persistence.Turma, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	out := make([]persistence.Turma, 0, len(m.turmas))
	for _, turma := range m.turmas {
		if curso, ok := m.cursos[turma.IDCurso]; ok {
			turma.NomeCurso = curso.Nome
		}
		out = append(out, turma)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

// GetInstrutor fetches one instructor catalog row.
func (m *MemoryStore) GetInstrutor(_ context.Context, id string) (persistence.Instrutor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return persistence.Instrutor{}, m.FailWith
	}

	instrutor, ok := m.instr[id]
	if !ok {
		return persistence.Instrutor{}, persistence.ErrNotFound
	}
	return instrutor, nil
}

// GetTurno fetches one shift catalog row.
func (m *MemoryStore) GetTurno(_ context.Context, id string) (persistence.Turno, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return persistence.Turno{}, m.FailWith
	}

	turno, ok := m.turnos[id]
	if !ok {
		return persistence.Turno{}, persistence.ErrNotFound
	}
	return turno, nil
}

// ---------------------------------------------------------------------------
// persistence.UcRepository

// CreateUc inserts one unidade curricular.
func (m *MemoryStore) CreateUc(_ context.Context, uc persistence.UnidadeCurricular) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	if uc.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if _, exists := m.ucs[uc.ID]; exists {
		return persistence.ErrDuplicate
	}
	m.ucs[uc.ID] = uc
	return nil
}

// UpdateUc rewrites one unidade curricular.
func (m *MemoryStore) UpdateUc(_ context.Context, uc persistence.UnidadeCurricular) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	if _, ok := m.ucs[uc.ID]; !ok {
		return persistence.ErrNotFound
	}
	m.ucs[uc.ID] = uc
	return nil
}

// GetUc fetches one unidade curricular.
func (m *MemoryStore) GetUc(_ context.Context, id string) (persistence.UnidadeCurricular, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return persistence.UnidadeCurricular{}, m.FailWith
	}

	uc, ok := m.ucs[id]
	if !ok {
		return persistence.UnidadeCurricular{}, persistence.ErrNotFound
	}
	return uc, nil
}

// ListUcsPorCurso returns the UCs of one curso ordered by name.
func (m *MemoryStore) ListUcsPorCurso(_ context.Context, idCurso string) ([]persistence.UnidadeCurricular, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	var out []persistence.UnidadeCurricular
	for _, uc := range m.ucs {
		if uc.IDCurso == idCurso {
			out = append(out, uc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

// ListCursos returns the curso catalog ordered by name.
func (m *MemoryStore) ListCursos(_ context.Context) ([]persistence.Curso, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	out := make([]persistence.Curso, 0, len(m.cursos))
	for _, curso := range m.cursos {
		out = append(out, curso)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

// ---------------------------------------------------------------------------
// persistence.FeriadoRepository

// CreateFeriadoMunicipal inserts one municipal holiday, enforcing the
// (data, nome) uniqueness the schema carries.
func (m *MemoryStore) CreateFeriadoMunicipal(_ context.Context, feriado persistence.FeriadoMunicipal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	if feriado.ID == "" {
		return persistence.ErrConstraintViolation
	}
	for _, existing := range m.feriados {
		if existing.Data == feriado.Data && existing.Nome == feriado.Nome {
			return persistence.ErrDuplicate
		}
	}
	m.feriados[feriado.ID] = feriado
	return nil
}

// ListFeriadosMunicipais returns municipal holidays ordered by date,
// optionally bounded by an inclusive range.
func (m *MemoryStore) ListFeriadosMunicipais(_ context.Context, inicio, fim *civil.Date) ([]persistence.FeriadoMunicipal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	var out []persistence.FeriadoMunicipal
	for _, feriado := range m.feriados {
		if inicio != nil && feriado.Data.Before(*inicio) {
			continue
		}
		if fim != nil && feriado.Data.After(*fim) {
			continue
		}
		out = append(out, feriado)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Data != out[j].Data {
			return out[i].Data.Before(out[j].Data)
		}
		return out[i].Nome < out[j].Nome
	})
	return out, nil
}

var (
	_ persistence.AulaRepository    = (*MemoryStore)(nil)
	_ persistence.TurmaRepository   = (*MemoryStore)(nil)
	_ persistence.UcRepository      = (*MemoryStore)(nil)
	_ persistence.FeriadoRepository = (*MemoryStore)(nil)
)
