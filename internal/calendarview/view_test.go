package calendarview

import (
	"context"
	"errors"
	"testing"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/application"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/testfixtures"
)

func newTestView(t *testing.T, store *testfixtures.MemoryStore) (*View, *AulaCache) {
	t.Helper()

	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	feriados := application.NewFeriadoService(store, 5, testfixtures.NewIDGenerator("feriado").NextFunc(), clock.NowFunc(), nil)
	service := application.NewAulaService(store, store, store, feriados,
		testfixtures.NewIDGenerator("aula").NextFunc(), clock.NowFunc(), nil)

	cache := NewAulaCache(service, clock.NowFunc())
	if err := cache.Reload(context.Background()); err != nil {
		t.Fatalf("initial cache load: %v", err)
	}
	return NewView(service, cache, testfixtures.ReferenceDate(), nil), cache
}

func seedView(store *testfixtures.MemoryStore) {
	store.SeedCurso(persistence.Curso{ID: "curso-001", Nome: "Técnico em Informática"})
	store.SeedTurma(testfixtures.NewTurmaFixture(testfixtures.WithTurmaID("turma-001")))
	store.SeedTurma(testfixtures.NewTurmaFixture(testfixtures.WithTurmaID("turma-002")))
	store.SeedUc(testfixtures.NewUcFixture(testfixtures.WithUcID("uc-001")))
	store.SeedUc(testfixtures.NewUcFixture(testfixtures.WithUcID("uc-002")))
}

func TestClickDiaSelectionMachine(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	seedView(store)
	view, _ := newTestView(t, store)

	d1 := civil.MustParseDate("2024-09-02")
	d2 := civil.MustParseDate("2024-09-03")
	d3 := civil.MustParseDate("2024-09-04")

	if view.Estado() != EstadoIdle {
		t.Fatalf("initial state = %v, want Idle", view.Estado())
	}

	view.ClickDia(d1, false)
	if view.Estado() != EstadoSelecaoUnica {
		t.Fatalf("state after plain click = %v", view.Estado())
	}

	// Clicking the selected day again deselects.
	view.ClickDia(d1, false)
	if view.Estado() != EstadoIdle {
		t.Fatalf("state after re-click = %v, want Idle", view.Estado())
	}

	// A modifier click discards the single selection; only the clicked day
	// joins the multi-set.
	view.ClickDia(d1, false)
	view.ClickDia(d2, true)
	if view.Estado() != EstadoSelecaoMultipla {
		t.Fatalf("state after modifier click = %v", view.Estado())
	}
	if got := view.DatasSelecionadas(); len(got) != 1 || got[0] != d2 {
		t.Fatalf("selection = %v, want only the modifier-clicked day", got)
	}

	// Further modifier clicks accumulate in click order, not date order.
	view.ClickDia(d3, true)
	view.ClickDia(d1, true)
	if got := view.DatasSelecionadas(); len(got) != 3 || got[0] != d2 || got[1] != d3 || got[2] != d1 {
		t.Fatalf("selection = %v, want click order [%v %v %v]", got, d2, d3, d1)
	}

	// Toggling removes, plain click collapses back to a single day.
	view.ClickDia(d3, true)
	if got := view.DatasSelecionadas(); len(got) != 2 || got[0] != d2 || got[1] != d1 {
		t.Fatalf("selection after toggle = %v", got)
	}
	view.ClickDia(d2, false)
	if view.Estado() != EstadoSelecaoUnica {
		t.Fatalf("state after plain click = %v", view.Estado())
	}
	if got := view.DatasSelecionadas(); len(got) != 1 || got[0] != d2 {
		t.Fatalf("selection = %v", got)
	}
}

func TestAbrirAdicionarRequiresSelection(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	seedView(store)
	view, _ := newTestView(t, store)

	if err := view.AbrirAdicionar(); !errors.Is(err, ErrSemSelecao) {
		t.Fatalf("err = %v, want ErrSemSelecao", err)
	}

	view.ClickDia(civil.MustParseDate("2024-09-02"), false)
	if err := view.AbrirAdicionar(); err != nil {
		t.Fatalf("AbrirAdicionar: %v", err)
	}
	if view.Dialogo() != DialogoAdicionar {
		t.Fatalf("dialog = %v", view.Dialogo())
	}
}

func TestSubmeterAdicionarAcceptedReloadsAndResets(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	seedView(store)
	view, _ := newTestView(t, store)
	ctx := context.Background()

	view.ClickDia(civil.MustParseDate("2024-09-02"), true)
	view.ClickDia(civil.MustParseDate("2024-09-03"), true)
	if err := view.AbrirAdicionar(); err != nil {
		t.Fatalf("AbrirAdicionar: %v", err)
	}

	created, err := view.SubmeterAdicionar(ctx, "turma-001", "uc-001", "19:00", 3)
	if err != nil {
		t.Fatalf("SubmeterAdicionar: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created %d aulas, want 2", len(created))
	}

	if view.Estado() != EstadoIdle || view.Dialogo() != DialogoNenhum {
		t.Fatalf("view not reset: estado=%v dialogo=%v", view.Estado(), view.Dialogo())
	}
	if got := view.AulasDoDia(civil.MustParseDate("2024-09-02")); len(got) != 1 {
		t.Fatalf("cache not reloaded: %v", got)
	}
}

func TestSubmeterAdicionarRejectionOpensConflictDialog(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	seedView(store)
	store.SeedAula(testfixtures.NewAulaFixture(
		testfixtures.WithAulaID("aula-bloqueio"),
		testfixtures.WithAulaUc("uc-002"),
		testfixtures.WithAulaData(civil.MustParseDate("2024-09-02")),
		testfixtures.WithAulaHorario("09:00-11:00", 2),
	))
	view, _ := newTestView(t, store)
	ctx := context.Background()

	view.ClickDia(civil.MustParseDate("2024-09-02"), false)
	if err := view.AbrirAdicionar(); err != nil {
		t.Fatalf("AbrirAdicionar: %v", err)
	}

	_, err := view.SubmeterAdicionar(ctx, "turma-001", "uc-001", "10:00", 2)
	var rejeicao *application.RejeicaoAgendamento
	if !errors.As(err, &rejeicao) {
		t.Fatalf("err = %v, want RejeicaoAgendamento", err)
	}
	if view.Dialogo() != DialogoConflito {
		t.Fatalf("dialog = %v, want DialogoConflito", view.Dialogo())
	}
	// Selection survives so the user can retry after remediation.
	if view.Estado() != EstadoSelecaoUnica {
		t.Fatalf("selection lost on rejection: %v", view.Estado())
	}

	// Remediation preloads the blocking aula into the edit dialog.
	aula, err := view.EditarConflito()
	if err != nil {
		t.Fatalf("EditarConflito: %v", err)
	}
	if aula.ID != "aula-bloqueio" {
		t.Fatalf("preloaded aula = %q", aula.ID)
	}
	if view.Dialogo() != DialogoEdicao {
		t.Fatalf("dialog = %v, want DialogoEdicao", view.Dialogo())
	}

	// Moving the blocking aula out of the way resolves the conflict. The
	// confirmed edit resets the view, so the user selects again.
	if _, err := view.SubmeterEdicao(ctx, civil.MustParseDate("2024-09-03"), "09:00", 2, ""); err != nil {
		t.Fatalf("SubmeterEdicao: %v", err)
	}
	view.ClickDia(civil.MustParseDate("2024-09-02"), false)
	if err := view.AbrirAdicionar(); err != nil {
		t.Fatalf("AbrirAdicionar after remediation: %v", err)
	}
	if _, err := view.SubmeterAdicionar(ctx, "turma-001", "uc-001", "10:00", 2); err != nil {
		t.Fatalf("retry after remediation: %v", err)
	}
}

func TestSubmeterSemDialogo(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	seedView(store)
	view, _ := newTestView(t, store)

	_, err := view.SubmeterAdicionar(context.Background(), "turma-001", "uc-001", "08:00", 4)
	if !errors.Is(err, ErrDialogoFechado) {
		t.Fatalf("err = %v, want ErrDialogoFechado", err)
	}
}

func TestReloadFailureKeepsStaleSnapshot(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	seedView(store)
	store.SeedAula(testfixtures.NewAulaFixture(
		testfixtures.WithAulaData(civil.MustParseDate("2024-09-02")),
	))
	_, cache := newTestView(t, store)

	store.FailWith = errors.New("banco indisponível")
	if err := cache.Reload(context.Background()); err == nil {
		t.Fatal("Reload should fail")
	}
	if got := cache.PorData(civil.MustParseDate("2024-09-02"), ""); len(got) != 1 {
		t.Fatalf("stale snapshot lost: %v", got)
	}
}

func TestMonthCursorNavigation(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	seedView(store)
	view, _ := newTestView(t, store)

	if view.MesAtual() != civil.MustParseDate("2024-09-01") {
		t.Fatalf("initial cursor = %v", view.MesAtual())
	}
	for i := 0; i < 4; i++ {
		view.ProximoMes()
	}
	if view.MesAtual() != civil.MustParseDate("2025-01-01") {
		t.Fatalf("cursor after december rollover = %v", view.MesAtual())
	}
	view.MesAnterior()
	if view.MesAtual() != civil.MustParseDate("2024-12-01") {
		t.Fatalf("cursor after back = %v", view.MesAtual())
	}
}

func TestFiltroTurmaIsDisplayOnly(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	seedView(store)
	data := civil.MustParseDate("2024-09-02")
	store.SeedAula(testfixtures.NewAulaFixture(
		testfixtures.WithAulaTurma("turma-001"),
		testfixtures.WithAulaData(data),
		testfixtures.WithAulaHorario("08:00-12:00", 4),
	))
	store.SeedAula(testfixtures.NewAulaFixture(
		testfixtures.WithAulaTurma("turma-002"),
		testfixtures.WithAulaData(data),
		testfixtures.WithAulaHorario("14:00-18:00", 4),
	))
	view, cache := newTestView(t, store)
	if err := cache.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if got := view.AulasDoDia(data); len(got) != 2 {
		t.Fatalf("unfiltered day = %d aulas, want 2", len(got))
	}

	view.DefinirFiltroTurma("turma-002")
	got := view.AulasDoDia(data)
	if len(got) != 1 || got[0].IDTurma != "turma-002" {
		t.Fatalf("filtered day = %+v", got)
	}

	// The cache itself still holds both turmas.
	if got := cache.PorData(data, ""); len(got) != 2 {
		t.Fatalf("cache lost rows under filter: %v", got)
	}
}
