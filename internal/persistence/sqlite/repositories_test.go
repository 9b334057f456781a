package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

func openTestPool(t *testing.T) *ConnectionPool {
	t.Helper()

	pool, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return pool
}

func seedCatalogo(t *testing.T, pool *ConnectionPool) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Format(time.RFC3339)

	stmts := []struct {
		query string
		args  []any
	}{
		{"INSERT INTO cursos (idcurso, nomecurso) VALUES (?, ?)", []any{"curso-1", "Técnico em Informática"}},
		{"INSERT INTO instrutores (idinstrutor, nomeinstrutor) VALUES (?, ?)", []any{"inst-1", "Maria Souza"}},
		{"INSERT INTO turno (idturno, turno) VALUES (?, ?)", []any{"turno-1", "Noturno"}},
		{
			"INSERT INTO turma (idturma, turmanome, idcurso, idinstrutor, idturno, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			[]any{"turma-1", "INFO-2024A", "curso-1", "inst-1", "turno-1", now, now},
		},
		{
			"INSERT INTO unidades_curriculares (iduc, nomeuc, cargahoraria, idcurso, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			[]any{"uc-1", "Lógica de Programação", 40, "curso-1", now, now},
		},
	}
	for _, s := range stmts {
		if _, err := pool.DB().ExecContext(ctx, s.query, s.args...); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	pool := openTestPool(t)
	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestAulaRepositoryBatchInsertAndList(t *testing.T) {
	pool := openTestPool(t)
	seedCatalogo(t, pool)
	repo := NewAulaRepository(pool)
	ctx := context.Background()

	aulas := []persistence.Aula{
		{ID: "a1", IDUc: "uc-1", IDTurma: "turma-1", Data: civil.MustParseDate("2024-09-02"), Horario: "19:00-22:00", Horas: 3, Status: "Agendada"},
		{ID: "a2", IDUc: "uc-1", IDTurma: "turma-1", Data: civil.MustParseDate("2024-09-03"), Horario: "19:00-22:00", Horas: 3, Status: "Agendada"},
	}
	if err := repo.CreateAulas(ctx, aulas); err != nil {
		t.Fatalf("CreateAulas: %v", err)
	}

	data := civil.MustParseDate("2024-09-02")
	listed, err := repo.ListAulas(ctx, persistence.AulaFilter{IDTurma: "turma-1", Data: &data})
	if err != nil {
		t.Fatalf("ListAulas: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("ListAulas returned %d aulas, want 1", len(listed))
	}
	if listed[0].NomeUc != "Lógica de Programação" || listed[0].NomeTurma != "INFO-2024A" {
		t.Fatalf("denormalized names missing: %+v", listed[0])
	}
	if listed[0].Data != data {
		t.Fatalf("stored date round trip = %v", listed[0].Data)
	}
}

func TestAulaRepositoryBatchIsAtomic(t *testing.T) {
	pool := openTestPool(t)
	seedCatalogo(t, pool)
	repo := NewAulaRepository(pool)
	ctx := context.Background()

	// Second row violates the foreign key; the first must not survive.
	err := repo.CreateAulas(ctx, []persistence.Aula{
		{ID: "a1", IDUc: "uc-1", IDTurma: "turma-1", Data: civil.MustParseDate("2024-09-02"), Horario: "08:00-12:00", Horas: 4, Status: "Agendada"},
		{ID: "a2", IDUc: "uc-inexistente", IDTurma: "turma-1", Data: civil.MustParseDate("2024-09-03"), Horario: "08:00-12:00", Horas: 4, Status: "Agendada"},
	})
	if !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("err = %v, want ErrForeignKeyViolation", err)
	}

	listed, err := repo.ListAulas(ctx, persistence.AulaFilter{IDTurma: "turma-1"})
	if err != nil {
		t.Fatalf("ListAulas: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("partial batch persisted: %d rows", len(listed))
	}
}

func TestAulaRepositoryUpdateAndDelete(t *testing.T) {
	pool := openTestPool(t)
	seedCatalogo(t, pool)
	repo := NewAulaRepository(pool)
	ctx := context.Background()

	base := persistence.Aula{
		ID: "a1", IDUc: "uc-1", IDTurma: "turma-1",
		Data: civil.MustParseDate("2024-09-02"), Horario: "08:00-12:00", Horas: 4, Status: "Agendada",
	}
	if err := repo.CreateAulas(ctx, []persistence.Aula{base}); err != nil {
		t.Fatalf("CreateAulas: %v", err)
	}

	base.Status = "Realizada"
	base.Horas = 3
	if err := repo.UpdateAula(ctx, base); err != nil {
		t.Fatalf("UpdateAula: %v", err)
	}

	got, err := repo.GetAula(ctx, "a1")
	if err != nil {
		t.Fatalf("GetAula: %v", err)
	}
	if got.Status != "Realizada" || got.Horas != 3 {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := repo.DeleteAula(ctx, "a1"); err != nil {
		t.Fatalf("DeleteAula: %v", err)
	}
	if _, err := repo.GetAula(ctx, "a1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("GetAula after delete = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteAula(ctx, "a1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}

func TestAulaRepositoryRejectsInvalidStatus(t *testing.T) {
	pool := openTestPool(t)
	seedCatalogo(t, pool)
	repo := NewAulaRepository(pool)

	err := repo.CreateAulas(context.Background(), []persistence.Aula{{
		ID: "a1", IDUc: "uc-1", IDTurma: "turma-1",
		Data: civil.MustParseDate("2024-09-02"), Horario: "08:00-12:00", Horas: 4, Status: "Adiada",
	}})
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("err = %v, want ErrConstraintViolation", err)
	}
}

func TestTurmaRepositoryResolvesNames(t *testing.T) {
	pool := openTestPool(t)
	seedCatalogo(t, pool)
	repo := NewTurmaRepository(pool)
	ctx := context.Background()

	turma, err := repo.GetTurma(ctx, "turma-1")
	if err != nil {
		t.Fatalf("GetTurma: %v", err)
	}
	if turma.NomeCurso != "Técnico em Informática" {
		t.Fatalf("NomeCurso = %q", turma.NomeCurso)
	}
	if turma.IDInstrutor == nil || *turma.IDInstrutor != "inst-1" {
		t.Fatalf("IDInstrutor = %v", turma.IDInstrutor)
	}

	instrutor, err := repo.GetInstrutor(ctx, "inst-1")
	if err != nil || instrutor.Nome != "Maria Souza" {
		t.Fatalf("GetInstrutor = %+v, %v", instrutor, err)
	}

	turno, err := repo.GetTurno(ctx, "turno-1")
	if err != nil || turno.Nome != "Noturno" {
		t.Fatalf("GetTurno = %+v, %v", turno, err)
	}

	if _, err := repo.GetTurma(ctx, "nope"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("missing turma err = %v", err)
	}
}

func TestUcRepositoryLifecycle(t *testing.T) {
	pool := openTestPool(t)
	seedCatalogo(t, pool)
	repo := NewUcRepository(pool)
	ctx := context.Background()

	uc := persistence.UnidadeCurricular{ID: "uc-2", Nome: "Banco de Dados", CargaHoraria: 60, IDCurso: "curso-1"}
	if err := repo.CreateUc(ctx, uc); err != nil {
		t.Fatalf("CreateUc: %v", err)
	}

	ucs, err := repo.ListUcsPorCurso(ctx, "curso-1")
	if err != nil {
		t.Fatalf("ListUcsPorCurso: %v", err)
	}
	if len(ucs) != 2 {
		t.Fatalf("ListUcsPorCurso returned %d, want 2", len(ucs))
	}
	// Ordered by name: Banco de Dados before Lógica.
	if ucs[0].Nome != "Banco de Dados" {
		t.Fatalf("ordering: first UC = %q", ucs[0].Nome)
	}

	uc.CargaHoraria = 80
	if err := repo.UpdateUc(ctx, uc); err != nil {
		t.Fatalf("UpdateUc: %v", err)
	}
	got, err := repo.GetUc(ctx, "uc-2")
	if err != nil || got.CargaHoraria != 80 {
		t.Fatalf("GetUc = %+v, %v", got, err)
	}

	cursos, err := repo.ListCursos(ctx)
	if err != nil || len(cursos) != 1 {
		t.Fatalf("ListCursos = %+v, %v", cursos, err)
	}
}

func TestFeriadoRepositoryRangeAndDuplicate(t *testing.T) {
	pool := openTestPool(t)
	repo := NewFeriadoRepository(pool)
	ctx := context.Background()

	entries := []persistence.FeriadoMunicipal{
		{ID: "f1", Data: civil.MustParseDate("2024-06-20"), Nome: "Aniversário da Cidade"},
		{ID: "f2", Data: civil.MustParseDate("2024-08-15"), Nome: "Padroeira"},
	}
	for _, f := range entries {
		if err := repo.CreateFeriadoMunicipal(ctx, f); err != nil {
			t.Fatalf("CreateFeriadoMunicipal: %v", err)
		}
	}

	dup := persistence.FeriadoMunicipal{ID: "f3", Data: civil.MustParseDate("2024-06-20"), Nome: "Aniversário da Cidade"}
	if err := repo.CreateFeriadoMunicipal(ctx, dup); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("duplicate err = %v, want ErrDuplicate", err)
	}

	inicio := civil.MustParseDate("2024-06-01")
	fim := civil.MustParseDate("2024-06-30")
	listed, err := repo.ListFeriadosMunicipais(ctx, &inicio, &fim)
	if err != nil {
		t.Fatalf("ListFeriadosMunicipais: %v", err)
	}
	if len(listed) != 1 || listed[0].Nome != "Aniversário da Cidade" {
		t.Fatalf("range listing = %+v", listed)
	}

	all, err := repo.ListFeriadosMunicipais(ctx, nil, nil)
	if err != nil || len(all) != 2 {
		t.Fatalf("unbounded listing = %+v, %v", all, err)
	}
}
