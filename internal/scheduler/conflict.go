// Package scheduler decides whether a batch of candidate aulas can be placed
// on the calendar. It is a pure decision layer: callers supply the already
// scheduled aulas and the holiday set, and perform persistence themselves.
package scheduler

import (
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/feriados"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/horario"
)

// Aula is the slice of a scheduled session the engine needs for its checks.
type Aula struct {
	ID      string
	IDUc    string
	IDTurma string
	Data    civil.Date
	Horario horario.Interval
	Horas   float64
	NomeUc  string
}

// Request describes one scheduling submission: the same time-of-day applied
// to every selected date for a turma/UC pair.
type Request struct {
	Datas   []civil.Date
	IDTurma string
	IDUc    string
	Horario horario.Interval
	Horas   float64

	// ExcluirAula removes the aula being edited from consideration so the
	// edit flow does not conflict with itself.
	ExcluirAula string
}

// Outcome enumerates the possible decisions for a submission.
type Outcome string

const (
	// OutcomeAccepted means every surviving date may be inserted.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeNoSchedulableDates means filtering left no date to schedule.
	OutcomeNoSchedulableDates Outcome = "no_schedulable_dates"
	// OutcomeDuplicate means the exact aula already exists on some date.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeIntervalConflict means the horário overlaps an existing aula.
	OutcomeIntervalConflict Outcome = "interval_conflict"
	// OutcomeCapacityExceeded means the period hour cap would be exceeded.
	OutcomeCapacityExceeded Outcome = "capacity_exceeded"
)

// Decision is the engine verdict. For rejections, Conflito references the
// blocking aula (when one exists) so callers can offer the edit remediation,
// and LimiteHoras carries the applicable cap for capacity rejections.
type Decision struct {
	Outcome     Outcome
	Datas       []civil.Date
	Data        civil.Date
	Conflito    *Aula
	LimiteHoras float64
}

// Accepted reports whether the submission may proceed.
func (d Decision) Accepted() bool {
	return d.Outcome == OutcomeAccepted
}

// Evaluate runs the scheduling checks for every candidate date, in selection
// order, against the existing aulas of the same turma. The first failing date
// rejects the whole batch; no partial accept is ever produced.
//
// Dates falling on Sundays or holidays are silently dropped first; if nothing
// survives the submission is rejected outright. Aulas sharing the identical
// horário string are treated as sharing a period window and are governed by
// the hour cap rather than the pairwise overlap test.
func Evaluate(req Request, existentes map[civil.Date][]Aula, fer *feriados.Set) Decision {
	agendaveis := make([]civil.Date, 0, len(req.Datas))
	for _, d := range req.Datas {
		if d.IsDomingo() || fer.Contains(d) {
			continue
		}
		agendaveis = append(agendaveis, d)
	}

	if len(agendaveis) == 0 {
		return Decision{Outcome: OutcomeNoSchedulableDates}
	}

	for _, data := range agendaveis {
		if decision, ok := checkDate(req, data, existentes[data]); !ok {
			return decision
		}
	}

	return Decision{Outcome: OutcomeAccepted, Datas: agendaveis}
}

func checkDate(req Request, data civil.Date, existentes []Aula) (Decision, bool) {
	var horasNoHorario float64

	for i := range existentes {
		aula := existentes[i]
		if aula.ID != "" && aula.ID == req.ExcluirAula {
			continue
		}

		identico := aula.Horario == req.Horario
		if identico && aula.IDUc == req.IDUc {
			// The exact session already exists; callers must not retry.
			return Decision{Outcome: OutcomeDuplicate, Data: data, Conflito: &existentes[i]}, false
		}
		if identico {
			horasNoHorario += aula.Horas
			continue
		}
		if aula.Horario.Overlaps(req.Horario) {
			return Decision{Outcome: OutcomeIntervalConflict, Data: data, Conflito: &existentes[i]}, false
		}
	}

	limite := horario.LimiteHoras(req.Horario)
	if horasNoHorario+req.Horas > limite {
		decision := Decision{
			Outcome:     OutcomeCapacityExceeded,
			Data:        data,
			LimiteHoras: limite,
		}
		for i := range existentes {
			if existentes[i].Horario == req.Horario && existentes[i].ID != req.ExcluirAula {
				decision.Conflito = &existentes[i]
				break
			}
		}
		return decision, false
	}

	return Decision{}, true
}
