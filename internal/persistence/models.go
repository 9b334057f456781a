package persistence

import (
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
)

// Aula is a scheduled teaching session stored in persistence. Horario keeps
// the canonical "HH:MM-HH:MM" string; Horas stores the teaching hours inside
// that window and is compared against period caps, never against the window
// width.
type Aula struct {
	ID        string
	IDUc      string
	IDTurma   string
	Data      civil.Date
	Horario   string
	Horas     float64
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Denormalized display names, populated by list queries.
	NomeUc    string
	NomeTurma string
}

// Turma is a class cohort. The scheduler treats it as read-only catalog data.
type Turma struct {
	ID          string
	Nome        string
	IDCurso     string
	IDInstrutor *string
	IDTurno     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	NomeCurso string
}

// Curso groups unidades curriculares.
type Curso struct {
	ID   string
	Nome string
}

// UnidadeCurricular is a course module with a planned hour budget.
type UnidadeCurricular struct {
	ID           string
	Nome         string
	CargaHoraria float64
	IDCurso      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Instrutor is an instructor catalog entry.
type Instrutor struct {
	ID   string
	Nome string
}

// Turno is a shift catalog entry (Matutino, Vespertino, Noturno).
type Turno struct {
	ID   string
	Nome string
}

// FeriadoMunicipal is a user-managed holiday row.
type FeriadoMunicipal struct {
	ID        string
	Data      civil.Date
	Nome      string
	CreatedAt time.Time
}
