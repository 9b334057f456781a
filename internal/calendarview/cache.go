// Package calendarview holds the interactive calendar state: the day
// selection machine, the dialog flow routed through the scheduling engine,
// and the aula cache backing the month grid.
package calendarview

import (
	"context"
	"sync"
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/application"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
)

// Listador is the read side of the aula service the cache loads from.
type Listador interface {
	ListarAulas(ctx context.Context, params application.ListarAulasParams) ([]application.Aula, error)
}

// AulaCache keeps the full aula set grouped by date for the life of a
// calendar page. Month navigation never refetches; the only mutation is a
// full reload after a confirmed persistence success.
type AulaCache struct {
	mu          sync.RWMutex
	listador    Listador
	porData     map[civil.Date][]application.Aula
	carregadoEm time.Time
	now         func() time.Time
}

// NewAulaCache builds an empty cache over the given loader.
func NewAulaCache(listador Listador, now func() time.Time) *AulaCache {
	if now == nil {
		now = time.Now
	}
	return &AulaCache{
		listador: listador,
		porData:  make(map[civil.Date][]application.Aula),
		now:      now,
	}
}

// Reload replaces the cached set with a fresh full load. On failure the
// prior (stale) state is kept and the error returned.
func (c *AulaCache) Reload(ctx context.Context) error {
	aulas, err := c.listador.ListarAulas(ctx, application.ListarAulasParams{})
	if err != nil {
		return err
	}

	porData := make(map[civil.Date][]application.Aula, len(aulas))
	for _, aula := range aulas {
		porData[aula.Data] = append(porData[aula.Data], aula)
	}

	c.mu.Lock()
	c.porData = porData
	c.carregadoEm = c.now()
	c.mu.Unlock()
	return nil
}

// PorData returns the cached aulas of one day, optionally restricted to a
// turma. The turma filter is a display projection; the cache itself always
// holds every turma.
func (c *AulaCache) PorData(d civil.Date, idTurma string) []application.Aula {
	c.mu.RLock()
	defer c.mu.RUnlock()

	aulas := c.porData[d]
	if len(aulas) == 0 {
		return nil
	}

	out := make([]application.Aula, 0, len(aulas))
	for _, aula := range aulas {
		if idTurma != "" && aula.IDTurma != idTurma {
			continue
		}
		out = append(out, aula)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Buscar returns the cached aula with the given ID.
func (c *AulaCache) Buscar(aulaID string) (application.Aula, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, aulas := range c.porData {
		for _, aula := range aulas {
			if aula.ID == aulaID {
				return aula, true
			}
		}
	}
	return application.Aula{}, false
}

// CarregadoEm returns the instant of the last successful reload, zero before
// the first one.
func (c *AulaCache) CarregadoEm() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.carregadoEm
}
