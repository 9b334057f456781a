package application

import (
	"context"
	"errors"
	"testing"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/testfixtures"
)

func newUcService(store *testfixtures.MemoryStore) *UcService {
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	return NewUcService(store, store, testfixtures.NewIDGenerator("uc").NextFunc(), clock.NowFunc(), nil)
}

func TestCreateUcResolvesCursoCaseInsensitively(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	store.SeedCurso(persistence.Curso{ID: "curso-001", Nome: "Técnico em Informática"})
	service := newUcService(store)

	uc, err := service.CreateUc(context.Background(), CreateUcParams{
		Nome:         "Banco de Dados",
		CargaHoraria: 60,
		NomeCurso:    "  técnico em informática ",
	})
	if err != nil {
		t.Fatalf("CreateUc: %v", err)
	}
	if uc.IDCurso != "curso-001" {
		t.Fatalf("IDCurso = %q", uc.IDCurso)
	}
	if uc.HorasRestantes != 60 {
		t.Fatalf("HorasRestantes = %v, want the full carga", uc.HorasRestantes)
	}
}

func TestCreateUcUnknownCursoIsFieldError(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	store.SeedCurso(persistence.Curso{ID: "curso-001", Nome: "Técnico em Informática"})
	service := newUcService(store)

	_, err := service.CreateUc(context.Background(), CreateUcParams{
		Nome:         "Banco de Dados",
		CargaHoraria: 60,
		NomeCurso:    "Curso Fantasma",
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := vErr.FieldErrors["curso"]; !ok {
		t.Fatal("missing field error for curso")
	}
}

func TestCreateUcValidatesNomeAndCarga(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	store.SeedCurso(persistence.Curso{ID: "curso-001", Nome: "Técnico em Informática"})
	service := newUcService(store)

	tests := []struct {
		name   string
		params CreateUcParams
		field  string
	}{
		{"nome curto", CreateUcParams{Nome: "BD", CargaHoraria: 60, NomeCurso: "Técnico em Informática"}, "nome"},
		{"carga zero", CreateUcParams{Nome: "Banco de Dados", CargaHoraria: 0, NomeCurso: "Técnico em Informática"}, "carga_horaria"},
		{"carga excessiva", CreateUcParams{Nome: "Banco de Dados", CargaHoraria: 2001, NomeCurso: "Técnico em Informática"}, "carga_horaria"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateUc(context.Background(), tc.params)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if _, ok := vErr.FieldErrors[tc.field]; !ok {
				t.Fatalf("missing field error for %q", tc.field)
			}
		})
	}
}

func TestHorasRestantesCountsOnlyRealizada(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	store.SeedCurso(persistence.Curso{ID: "curso-001", Nome: "Técnico em Informática"})
	store.SeedUc(testfixtures.NewUcFixture(testfixtures.WithUcID("uc-saldo"), testfixtures.WithUcCarga(40)))
	store.SeedAula(testfixtures.NewAulaFixture(
		testfixtures.WithAulaUc("uc-saldo"),
		testfixtures.WithAulaData(civil.MustParseDate("2024-09-02")),
		testfixtures.WithAulaHorario("08:00-12:00", 4),
		testfixtures.WithAulaStatus(StatusRealizada),
	))
	store.SeedAula(testfixtures.NewAulaFixture(
		testfixtures.WithAulaUc("uc-saldo"),
		testfixtures.WithAulaData(civil.MustParseDate("2024-09-03")),
		testfixtures.WithAulaHorario("08:00-12:00", 4),
		testfixtures.WithAulaStatus(StatusAgendada),
	))
	store.SeedAula(testfixtures.NewAulaFixture(
		testfixtures.WithAulaUc("uc-saldo"),
		testfixtures.WithAulaData(civil.MustParseDate("2024-09-04")),
		testfixtures.WithAulaHorario("08:00-12:00", 4),
		testfixtures.WithAulaStatus(StatusCancelada),
	))
	service := newUcService(store)

	uc, err := service.GetUc(context.Background(), "uc-saldo")
	if err != nil {
		t.Fatalf("GetUc: %v", err)
	}
	if uc.HorasRestantes != 36 {
		t.Fatalf("HorasRestantes = %v, want 36 (only the Realizada aula counts)", uc.HorasRestantes)
	}
}

func TestHorasRestantesFlooredAtZero(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	store.SeedUc(testfixtures.NewUcFixture(testfixtures.WithUcID("uc-saldo"), testfixtures.WithUcCarga(3)))
	store.SeedAula(testfixtures.NewAulaFixture(
		testfixtures.WithAulaUc("uc-saldo"),
		testfixtures.WithAulaHorario("08:00-12:00", 4),
		testfixtures.WithAulaStatus(StatusRealizada),
	))
	service := newUcService(store)

	uc, err := service.GetUc(context.Background(), "uc-saldo")
	if err != nil {
		t.Fatalf("GetUc: %v", err)
	}
	if uc.HorasRestantes != 0 {
		t.Fatalf("HorasRestantes = %v, want 0", uc.HorasRestantes)
	}
}

func TestUpdateUcRecomputesSaldo(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	store.SeedCurso(persistence.Curso{ID: "curso-001", Nome: "Técnico em Informática"})
	store.SeedUc(testfixtures.NewUcFixture(testfixtures.WithUcID("uc-saldo"), testfixtures.WithUcCarga(40)))
	store.SeedAula(testfixtures.NewAulaFixture(
		testfixtures.WithAulaUc("uc-saldo"),
		testfixtures.WithAulaHorario("08:00-12:00", 4),
		testfixtures.WithAulaStatus(StatusRealizada),
	))
	service := newUcService(store)

	uc, err := service.UpdateUc(context.Background(), UpdateUcParams{
		UcID:         "uc-saldo",
		Nome:         "Banco de Dados II",
		CargaHoraria: 10,
		NomeCurso:    "Técnico em Informática",
	})
	if err != nil {
		t.Fatalf("UpdateUc: %v", err)
	}
	if uc.HorasRestantes != 6 {
		t.Fatalf("HorasRestantes = %v, want 6 after shrinking the carga", uc.HorasRestantes)
	}
}

func TestGetUcNotFound(t *testing.T) {
	service := newUcService(testfixtures.NewMemoryStore())

	_, err := service.GetUc(context.Background(), "uc-nao-existe")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListUcsPorCursoCarriesSaldo(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	store.SeedUc(testfixtures.NewUcFixture(testfixtures.WithUcID("uc-a"), testfixtures.WithUcCarga(20)))
	store.SeedAula(testfixtures.NewAulaFixture(
		testfixtures.WithAulaUc("uc-a"),
		testfixtures.WithAulaHorario("19:00-22:00", 3),
		testfixtures.WithAulaStatus(StatusRealizada),
	))
	service := newUcService(store)

	ucs, err := service.ListUcsPorCurso(context.Background(), "curso-001")
	if err != nil {
		t.Fatalf("ListUcsPorCurso: %v", err)
	}
	if len(ucs) != 1 {
		t.Fatalf("listed %d ucs, want 1", len(ucs))
	}
	if ucs[0].HorasRestantes != 17 {
		t.Fatalf("HorasRestantes = %v, want 17", ucs[0].HorasRestantes)
	}
}
