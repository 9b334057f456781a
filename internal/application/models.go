// Package application orchestrates validation, the scheduling engine and
// persistence for the cronograma operations exposed over HTTP.
package application

import (
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/horario"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

// Aula status values accepted by the service. Remaining hours only count
// Realizada. A Cancelada aula keeps occupying its calendar slot; it is only
// left off the printable grid.
const (
	StatusAgendada  = "Agendada"
	StatusRealizada = "Realizada"
	StatusCancelada = "Cancelada"
)

// Aula is a scheduled session rendered for callers, with display names and
// the derived period attached.
type Aula struct {
	ID        string
	IDUc      string
	IDTurma   string
	Data      civil.Date
	Horario   string
	Horas     float64
	Status    string
	NomeUc    string
	NomeTurma string
	Periodo   horario.Periodo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Turma is a cohort rendered for callers, instructor and shift names resolved
// when available.
type Turma struct {
	ID            string
	Nome          string
	IDCurso       string
	NomeCurso     string
	NomeInstrutor string
	NomeTurno     string
}

// UnidadeCurricular is a course module with its derived remaining hour
// balance. HorasRestantes is never stored; it is recomputed from the aulas
// marked Realizada on every read.
type UnidadeCurricular struct {
	ID             string
	Nome           string
	CargaHoraria   float64
	IDCurso        string
	NomeCurso      string
	HorasRestantes float64
}

// Curso is a catalog entry grouping unidades curriculares.
type Curso struct {
	ID   string
	Nome string
}

// AgendarAulasParams describes one scheduling submission: the same start time
// and hours applied to every selected date.
type AgendarAulasParams struct {
	IDTurma    string
	IDUc       string
	Datas      []civil.Date
	HoraInicio string
	Horas      float64
}

// EditarAulaParams rewrites one existing aula. The engine re-checks the new
// placement with the aula itself excluded.
type EditarAulaParams struct {
	AulaID     string
	Data       civil.Date
	HoraInicio string
	Horas      float64
	Status     string
}

// ListarAulasParams narrows aula listings.
type ListarAulasParams struct {
	IDTurma    string
	IDUc       string
	DataInicio *civil.Date
	DataFim    *civil.Date
	Status     string
}

// CreateUcParams registers a new unidade curricular. The curso is resolved by
// name, case-insensitively, against the curso catalog.
type CreateUcParams struct {
	Nome         string
	CargaHoraria float64
	NomeCurso    string
}

// UpdateUcParams rewrites an existing unidade curricular.
type UpdateUcParams struct {
	UcID         string
	Nome         string
	CargaHoraria float64
	NomeCurso    string
}

// AdicionarFeriadoParams registers a municipal holiday.
type AdicionarFeriadoParams struct {
	Data civil.Date
	Nome string
}

func toAula(p persistence.Aula) Aula {
	aula := Aula{
		ID:        p.ID,
		IDUc:      p.IDUc,
		IDTurma:   p.IDTurma,
		Data:      p.Data,
		Horario:   p.Horario,
		Horas:     p.Horas,
		Status:    p.Status,
		NomeUc:    p.NomeUc,
		NomeTurma: p.NomeTurma,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if iv, err := horario.Parse(p.Horario); err == nil {
		aula.Periodo = horario.PeriodoDe(iv)
	}
	return aula
}

func toAulas(ps []persistence.Aula) []Aula {
	if len(ps) == 0 {
		return nil
	}
	out := make([]Aula, 0, len(ps))
	for _, p := range ps {
		out = append(out, toAula(p))
	}
	return out
}
