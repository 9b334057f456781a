package calendarview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/application"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
)

// Agendador is the write side of the aula service the view submits to.
type Agendador interface {
	AgendarAulas(ctx context.Context, params application.AgendarAulasParams) ([]application.Aula, error)
	EditarAula(ctx context.Context, params application.EditarAulaParams) (application.Aula, error)
}

// Estado is the selection state of the calendar.
type Estado int

const (
	// EstadoIdle means no day is selected.
	EstadoIdle Estado = iota
	// EstadoSelecaoUnica means exactly one day is selected by a plain click.
	EstadoSelecaoUnica
	// EstadoSelecaoMultipla means a modifier-click set is active.
	EstadoSelecaoMultipla
)

// Dialogo is the dialog layer above the grid.
type Dialogo int

const (
	// DialogoNenhum means no dialog is open.
	DialogoNenhum Dialogo = iota
	// DialogoAdicionar is the add-aulas form over the selected dates.
	DialogoAdicionar
	// DialogoEdicao is the edit form pre-loaded with one aula.
	DialogoEdicao
	// DialogoConflito presents an engine rejection with its remediation.
	DialogoConflito
)

var (
	// ErrSemSelecao is returned when a dialog needs a day selection.
	ErrSemSelecao = errors.New("calendarview: nenhuma data selecionada")
	// ErrDialogoFechado is returned when a submission arrives without its dialog.
	ErrDialogoFechado = errors.New("calendarview: diálogo não está aberto")
	// ErrSemConflito is returned when the conflict remediation has no target.
	ErrSemConflito = errors.New("calendarview: rejeição sem aula conflitante")
)

// View is the calendar page state machine. It is not safe for concurrent use;
// one View serves one page life.
type View struct {
	agendador Agendador
	cache     *AulaCache
	logger    *slog.Logger

	cursor      civil.Date
	single      civil.Date
	multi       map[civil.Date]struct{}
	ordem       []civil.Date
	filtroTurma string

	dialogo  Dialogo
	rejeicao *application.RejeicaoAgendamento
	emEdicao application.Aula
}

// NewView builds a view with the month cursor on inicio's month.
func NewView(agendador Agendador, cache *AulaCache, inicio civil.Date, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	return &View{
		agendador: agendador,
		cache:     cache,
		logger:    logger,
		cursor:    inicio.FirstOfMonth(),
		multi:     make(map[civil.Date]struct{}),
	}
}

// Estado reports the current selection state.
func (v *View) Estado() Estado {
	switch {
	case len(v.multi) > 0:
		return EstadoSelecaoMultipla
	case !v.single.IsZero():
		return EstadoSelecaoUnica
	default:
		return EstadoIdle
	}
}

// Dialogo reports the open dialog, if any.
func (v *View) Dialogo() Dialogo {
	return v.dialogo
}

// Rejeicao returns the engine rejection backing the conflict dialog.
func (v *View) Rejeicao() *application.RejeicaoAgendamento {
	return v.rejeicao
}

// ClickDia applies one click on a day cell. A plain click selects that single
// day (clicking it again deselects); a modifier click toggles the day in the
// multi-selection set and discards any single selection.
func (v *View) ClickDia(data civil.Date, modificador bool) {
	if modificador {
		v.single = civil.Date{}
		if _, ok := v.multi[data]; ok {
			delete(v.multi, data)
			for i, d := range v.ordem {
				if d == data {
					v.ordem = append(v.ordem[:i], v.ordem[i+1:]...)
					break
				}
			}
		} else {
			v.multi[data] = struct{}{}
			v.ordem = append(v.ordem, data)
		}
		return
	}

	clear(v.multi)
	v.ordem = nil
	if v.single == data {
		v.single = civil.Date{}
		return
	}
	v.single = data
}

// DatasSelecionadas returns the selected dates in click order. The engine
// checks candidates in this order, so the first rejected date is the first
// one the user picked.
func (v *View) DatasSelecionadas() []civil.Date {
	if !v.single.IsZero() {
		return []civil.Date{v.single}
	}
	return append([]civil.Date(nil), v.ordem...)
}

// AbrirAdicionar opens the add dialog over the current selection.
func (v *View) AbrirAdicionar() error {
	if v.Estado() == EstadoIdle {
		return ErrSemSelecao
	}
	v.dialogo = DialogoAdicionar
	v.rejeicao = nil
	return nil
}

// SubmeterAdicionar routes the add form through the engine. Acceptance
// inserts the batch, reloads the cache and returns the view to Idle; an
// engine rejection switches to the conflict dialog. Other failures leave the
// dialog and local state untouched.
func (v *View) SubmeterAdicionar(ctx context.Context, idTurma, idUc, horaInicio string, horas float64) ([]application.Aula, error) {
	if v.dialogo != DialogoAdicionar {
		return nil, ErrDialogoFechado
	}

	created, err := v.agendador.AgendarAulas(ctx, application.AgendarAulasParams{
		IDTurma:    idTurma,
		IDUc:       idUc,
		Datas:      v.DatasSelecionadas(),
		HoraInicio: horaInicio,
		Horas:      horas,
	})
	if err != nil {
		var rejeicao *application.RejeicaoAgendamento
		if errors.As(err, &rejeicao) {
			v.dialogo = DialogoConflito
			v.rejeicao = rejeicao
		}
		return nil, err
	}

	v.concluirMutacao(ctx)
	return created, nil
}

// AbrirEdicao opens the edit dialog pre-loaded with one cached aula.
func (v *View) AbrirEdicao(aulaID string) error {
	aula, ok := v.cache.Buscar(aulaID)
	if !ok {
		return fmt.Errorf("%w: aula %s", application.ErrNotFound, aulaID)
	}
	v.dialogo = DialogoEdicao
	v.emEdicao = aula
	v.rejeicao = nil
	return nil
}

// EditarConflito is the rejection remediation: it reopens the edit dialog
// pre-loaded with the aula that blocked the submission.
func (v *View) EditarConflito() (application.Aula, error) {
	if v.dialogo != DialogoConflito || v.rejeicao == nil {
		return application.Aula{}, ErrDialogoFechado
	}
	conflito := v.rejeicao.Decision.Conflito
	if conflito == nil {
		return application.Aula{}, ErrSemConflito
	}

	aula, ok := v.cache.Buscar(conflito.ID)
	if !ok {
		return application.Aula{}, fmt.Errorf("%w: aula %s", application.ErrNotFound, conflito.ID)
	}
	v.dialogo = DialogoEdicao
	v.emEdicao = aula
	v.rejeicao = nil
	return aula, nil
}

// AulaEmEdicao returns the aula loaded in the edit dialog.
func (v *View) AulaEmEdicao() application.Aula {
	return v.emEdicao
}

// SubmeterEdicao routes the edit form through the engine, which excludes the
// edited aula from its own checks.
func (v *View) SubmeterEdicao(ctx context.Context, data civil.Date, horaInicio string, horas float64, status string) (application.Aula, error) {
	if v.dialogo != DialogoEdicao {
		return application.Aula{}, ErrDialogoFechado
	}

	updated, err := v.agendador.EditarAula(ctx, application.EditarAulaParams{
		AulaID:     v.emEdicao.ID,
		Data:       data,
		HoraInicio: horaInicio,
		Horas:      horas,
		Status:     status,
	})
	if err != nil {
		var rejeicao *application.RejeicaoAgendamento
		if errors.As(err, &rejeicao) {
			v.dialogo = DialogoConflito
			v.rejeicao = rejeicao
		}
		return application.Aula{}, err
	}

	v.concluirMutacao(ctx)
	return updated, nil
}

// CancelarDialogo closes any open dialog without touching the selection.
func (v *View) CancelarDialogo() {
	v.dialogo = DialogoNenhum
	v.rejeicao = nil
	v.emEdicao = application.Aula{}
}

// concluirMutacao is the single path out of a confirmed persistence success:
// full cache reload, selection cleared, dialogs closed. A reload failure
// keeps serving the stale snapshot.
func (v *View) concluirMutacao(ctx context.Context) {
	if err := v.cache.Reload(ctx); err != nil {
		v.logger.WarnContext(ctx, "cache reload failed, serving stale aulas", "error", err)
	}
	v.single = civil.Date{}
	clear(v.multi)
	v.ordem = nil
	v.CancelarDialogo()
}

// MesAtual returns the first day of the month under the cursor.
func (v *View) MesAtual() civil.Date {
	return v.cursor
}

// ProximoMes moves the cursor one month forward. Navigation never refetches;
// the cache holds every date for the page life.
func (v *View) ProximoMes() civil.Date {
	v.cursor = v.cursor.AddMonths(1)
	return v.cursor
}

// MesAnterior moves the cursor one month back.
func (v *View) MesAnterior() civil.Date {
	v.cursor = v.cursor.AddMonths(-1)
	return v.cursor
}

// DefinirFiltroTurma restricts the grid projection to one turma. Empty shows
// every turma.
func (v *View) DefinirFiltroTurma(idTurma string) {
	v.filtroTurma = idTurma
}

// AulasDoDia projects the cached aulas of one day through the turma filter.
func (v *View) AulasDoDia(d civil.Date) []application.Aula {
	return v.cache.PorData(d, v.filtroTurma)
}
