// Package feriados computes the Brazilian national holiday calendar and merges
// it with user-managed municipal holidays into a single lookup set.
package feriados

import (
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
)

// Pascoa returns Easter Sunday for the given year using the Gregorian
// computus (Meeus/Jones/Butcher).
func Pascoa(ano int) civil.Date {
	a := ano % 19
	b := ano / 100
	c := ano % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	mes := (h + l - 7*m + 114) / 31
	dia := (h+l-7*m+114)%31 + 1

	return civil.Date{Year: ano, Month: time.Month(mes), Day: dia}
}

// Nacionais generates the national holidays for `anos` consecutive years
// starting at anoInicial, keyed by canonical date.
func Nacionais(anoInicial, anos int) map[civil.Date]string {
	if anos <= 0 {
		anos = 1
	}

	out := make(map[civil.Date]string, anos*13)
	for ano := anoInicial; ano < anoInicial+anos; ano++ {
		fixos := []struct {
			mes  time.Month
			dia  int
			nome string
		}{
			{time.January, 1, "Ano Novo"},
			{time.April, 21, "Tiradentes"},
			{time.May, 1, "Dia do Trabalho"},
			{time.September, 7, "Independência do Brasil"},
			{time.October, 12, "Nossa Senhora Aparecida"},
			{time.November, 2, "Finados"},
			{time.November, 15, "Proclamação da República"},
			{time.November, 20, "Dia Nacional de Zumbi e da Consciência Negra"},
			{time.December, 25, "Natal"},
		}
		for _, f := range fixos {
			out[civil.Date{Year: ano, Month: f.mes, Day: f.dia}] = f.nome
		}

		pascoa := Pascoa(ano)
		out[pascoa] = "Páscoa"
		out[pascoa.AddDays(-2)] = "Sexta-feira Santa"
		out[pascoa.AddDays(-47)] = "Carnaval"
		out[pascoa.AddDays(60)] = "Corpus Christi"
	}
	return out
}

// Entry is one holiday rendered for listings, tagged by origin.
type Entry struct {
	Data      civil.Date
	Nome      string
	Municipal bool
}

// Set answers holiday membership questions over the merged national and
// municipal calendars. Municipal entries win label conflicts.
type Set struct {
	nacionais  map[civil.Date]string
	municipais map[civil.Date]string
}

// NewSet builds a lookup set from a generated national map and the municipal
// rows loaded from persistence.
func NewSet(nacionais map[civil.Date]string, municipais []Entry) *Set {
	s := &Set{
		nacionais:  make(map[civil.Date]string, len(nacionais)),
		municipais: make(map[civil.Date]string, len(municipais)),
	}
	for d, nome := range nacionais {
		s.nacionais[d] = nome
	}
	for _, m := range municipais {
		s.municipais[m.Data] = m.Nome
	}
	return s
}

// Contains reports whether d is a holiday of either origin.
func (s *Set) Contains(d civil.Date) bool {
	if s == nil {
		return false
	}
	_, ok := s.municipais[d]
	if !ok {
		_, ok = s.nacionais[d]
	}
	return ok
}

// Label returns the holiday name for d when present.
func (s *Set) Label(d civil.Date) (string, bool) {
	if s == nil {
		return "", false
	}
	if nome, ok := s.municipais[d]; ok {
		return nome, true
	}
	nome, ok := s.nacionais[d]
	return nome, ok
}

// Entries lists all holidays inside [inicio, fim], municipal and national,
// ordered by date.
func (s *Set) Entries(inicio, fim civil.Date) []Entry {
	if s == nil {
		return nil
	}

	var out []Entry
	for d := inicio; !d.After(fim); d = d.AddDays(1) {
		if nome, ok := s.municipais[d]; ok {
			out = append(out, Entry{Data: d, Nome: nome, Municipal: true})
			continue
		}
		if nome, ok := s.nacionais[d]; ok {
			out = append(out, Entry{Data: d, Nome: nome})
		}
	}
	return out
}
