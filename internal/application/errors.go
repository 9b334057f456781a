package application

import (
	"errors"
	"fmt"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/scheduler"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: não encontrado")
	// ErrAlreadyExists is returned when persistence rejects a duplicate row.
	ErrAlreadyExists = errors.New("application: registro já existe")
)

// ValidationError captures field level validation issues that callers can
// surface to users. Messages are written for end users, in Portuguese.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "dados inválidos"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// RejeicaoAgendamento is returned when the scheduling engine refuses a
// submission. It carries the full engine decision so handlers can render the
// conflicting aula and offer the edit remediation.
type RejeicaoAgendamento struct {
	Decision scheduler.Decision
}

// Error renders the user-facing rejection message for the decision outcome.
func (e *RejeicaoAgendamento) Error() string {
	switch e.Decision.Outcome {
	case scheduler.OutcomeNoSchedulableDates:
		return "nenhuma das datas selecionadas é agendável (domingos e feriados são excluídos)"
	case scheduler.OutcomeDuplicate:
		return fmt.Sprintf("esta aula já está agendada em %s", e.Decision.Data.BR())
	case scheduler.OutcomeIntervalConflict:
		if c := e.Decision.Conflito; c != nil {
			return fmt.Sprintf("conflito de horário em %s com a aula de %s (%s)",
				e.Decision.Data.BR(), c.NomeUc, c.Horario)
		}
		return fmt.Sprintf("conflito de horário em %s", e.Decision.Data.BR())
	case scheduler.OutcomeCapacityExceeded:
		return fmt.Sprintf("limite de %.0f horas excedido no horário em %s",
			e.Decision.LimiteHoras, e.Decision.Data.BR())
	default:
		return "agendamento recusado"
	}
}

// DataConflito returns the first date the engine rejected, zero valued for
// the no-schedulable-dates outcome.
func (e *RejeicaoAgendamento) DataConflito() civil.Date {
	return e.Decision.Data
}

// mapRepoError funnels persistence sentinels into the application sentinels
// so handlers never import the persistence package for error checks.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	default:
		return err
	}
}
