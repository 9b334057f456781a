package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

var (
	turmaCounter uint64
	ucCounter    uint64
	aulaCounter  uint64
)

var referenceTime = time.Date(2024, time.September, 2, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// It is a schedulable Monday.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate returns the calendar date of ReferenceTime.
func ReferenceDate() civil.Date {
	return civil.DateOf(referenceTime)
}

// TurmaOption configures a generated turma fixture.
type TurmaOption func(*persistence.Turma)

// NewTurmaFixture returns a deterministic turma row with optional overrides.
// The curso reference defaults to "curso-001".
func NewTurmaFixture(opts ...TurmaOption) persistence.Turma {
	idx := atomic.AddUint64(&turmaCounter, 1)
	turma := persistence.Turma{
		ID:        fmt.Sprintf("turma-%03d", idx),
		Nome:      fmt.Sprintf("Turma %03d", idx),
		IDCurso:   "curso-001",
		NomeCurso: "Técnico em Informática",
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&turma)
	}
	return turma
}

// WithTurmaID overrides the generated turma ID.
func WithTurmaID(id string) TurmaOption {
	return func(t *persistence.Turma) { t.ID = id }
}

// WithTurmaInstrutor sets the instructor reference.
func WithTurmaInstrutor(id string) TurmaOption {
	return func(t *persistence.Turma) { t.IDInstrutor = &id }
}

// WithTurmaTurno sets the shift reference.
func WithTurmaTurno(id string) TurmaOption {
	return func(t *persistence.Turma) { t.IDTurno = &id }
}

// UcOption configures a generated unidade curricular fixture.
type UcOption func(*persistence.UnidadeCurricular)

// NewUcFixture returns a deterministic UC row with optional overrides. The
// carga horária defaults to 40 hours.
func NewUcFixture(opts ...UcOption) persistence.UnidadeCurricular {
	idx := atomic.AddUint64(&ucCounter, 1)
	uc := persistence.UnidadeCurricular{
		ID:           fmt.Sprintf("uc-%03d", idx),
		Nome:         fmt.Sprintf("Unidade Curricular %03d", idx),
		CargaHoraria: 40,
		IDCurso:      "curso-001",
		CreatedAt:    referenceTime,
		UpdatedAt:    referenceTime,
	}
	for _, opt := range opts {
		opt(&uc)
	}
	return uc
}

// WithUcID overrides the generated UC ID.
func WithUcID(id string) UcOption {
	return func(u *persistence.UnidadeCurricular) { u.ID = id }
}

// WithUcCarga overrides the carga horária.
func WithUcCarga(horas float64) UcOption {
	return func(u *persistence.UnidadeCurricular) { u.CargaHoraria = horas }
}

// AulaOption configures a generated aula fixture.
type AulaOption func(*persistence.Aula)

// NewAulaFixture returns a deterministic aula row with optional overrides.
// The defaults describe a four hour morning session on the reference date.
func NewAulaFixture(opts ...AulaOption) persistence.Aula {
	idx := atomic.AddUint64(&aulaCounter, 1)
	aula := persistence.Aula{
		ID:        fmt.Sprintf("aula-%03d", idx),
		IDUc:      "uc-001",
		IDTurma:   "turma-001",
		Data:      ReferenceDate(),
		Horario:   "08:00-12:00",
		Horas:     4,
		Status:    "Agendada",
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&aula)
	}
	return aula
}

// WithAulaID overrides the generated aula ID.
func WithAulaID(id string) AulaOption {
	return func(a *persistence.Aula) { a.ID = id }
}

// WithAulaUc sets the UC reference.
func WithAulaUc(id string) AulaOption {
	return func(a *persistence.Aula) { a.IDUc = id }
}

// WithAulaTurma sets the turma reference.
func WithAulaTurma(id string) AulaOption {
	return func(a *persistence.Aula) { a.IDTurma = id }
}

// WithAulaData sets the session date.
func WithAulaData(d civil.Date) AulaOption {
	return func(a *persistence.Aula) { a.Data = d }
}

// WithAulaHorario sets the horário window and teaching hours together.
func WithAulaHorario(horario string, horas float64) AulaOption {
	return func(a *persistence.Aula) {
		a.Horario = horario
		a.Horas = horas
	}
}

// WithAulaStatus sets the session status.
func WithAulaStatus(status string) AulaOption {
	return func(a *persistence.Aula) { a.Status = status }
}
