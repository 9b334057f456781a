// Package horario models the time-of-day interval of an aula and the period
// rules derived from it. Intervals are stored as the familiar "HH:MM-HH:MM"
// string but always compared through minute offsets, never through the string.
package horario

import (
	"fmt"
	"strings"
)

// Interval is a half-open [Inicio, Fim) time-of-day range in minutes from
// midnight. Inicio must be strictly before Fim.
type Interval struct {
	Inicio int
	Fim    int
}

// ErrInvalidHorario indicates a horário string that is not "HH:MM-HH:MM" with
// start before end.
var ErrInvalidHorario = fmt.Errorf("horario: horário inválido")

// Parse converts a "HH:MM-HH:MM" string into an Interval.
func Parse(s string) (Interval, error) {
	inicio, fim, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidHorario, s)
	}

	start, err := parseClock(inicio)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidHorario, s)
	}
	end, err := parseClock(fim)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidHorario, s)
	}

	iv := Interval{Inicio: start, Fim: end}
	if !iv.IsValid() {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidHorario, s)
	}
	return iv, nil
}

// FromInicio builds the interval the add-aula dialog derives: start time plus
// the teaching hours. Fractional hours resolve to whole minutes.
func FromInicio(horaInicio string, horas float64) (Interval, error) {
	start, err := parseClock(horaInicio)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: hora de início %q", ErrInvalidHorario, horaInicio)
	}
	if horas <= 0 {
		return Interval{}, fmt.Errorf("%w: duração %.2fh", ErrInvalidHorario, horas)
	}

	end := start + int(horas*60)
	if end > 24*60 {
		return Interval{}, fmt.Errorf("%w: término após meia-noite", ErrInvalidHorario)
	}
	return Interval{Inicio: start, Fim: end}, nil
}

// MustParse is a test and fixture helper that panics on malformed input.
func MustParse(s string) Interval {
	iv, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return iv
}

func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("hora fora do intervalo")
	}
	return h*60 + m, nil
}

// IsValid reports whether the interval has a positive extent inside one day.
func (iv Interval) IsValid() bool {
	return iv.Inicio >= 0 && iv.Fim <= 24*60 && iv.Inicio < iv.Fim
}

// String renders the canonical "HH:MM-HH:MM" form stored in persistence.
func (iv Interval) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", iv.Inicio/60, iv.Inicio%60, iv.Fim/60, iv.Fim%60)
}

// Overlaps applies the half-open overlap test: [a,b) and [c,d) overlap when
// a < d and c < b. Touching intervals do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Inicio < other.Fim && other.Inicio < iv.Fim
}

// Periodo is the shift bucket an aula falls into, classified from its start.
type Periodo string

const (
	// PeriodoMatutino covers starts before 14:00.
	PeriodoMatutino Periodo = "Matutino"
	// PeriodoVespertino covers starts from 14:00 up to 19:00.
	PeriodoVespertino Periodo = "Vespertino"
	// PeriodoNoturno covers starts from 19:00 onward.
	PeriodoNoturno Periodo = "Noturno"
)

const noturnoInicio = 19 * 60

// PeriodoDe classifies the interval by its start time.
func PeriodoDe(iv Interval) Periodo {
	switch {
	case iv.Inicio >= noturnoInicio:
		return PeriodoNoturno
	case iv.Inicio >= 14*60:
		return PeriodoVespertino
	default:
		return PeriodoMatutino
	}
}

// LimiteHoras returns the maximum teaching hours allowed in the period the
// interval belongs to: 3h for the night shift, 4h otherwise.
func LimiteHoras(iv Interval) float64 {
	if iv.Inicio >= noturnoInicio {
		return 3
	}
	return 4
}
