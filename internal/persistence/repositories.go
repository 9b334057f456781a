package persistence

import (
	"context"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
)

// AulaFilter narrows aula queries. Zero-valued fields are ignored.
type AulaFilter struct {
	IDTurma    string
	IDUc       string
	Data       *civil.Date
	DataInicio *civil.Date
	DataFim    *civil.Date
	Status     string
}

// AulaRepository stores scheduled sessions. CreateAulas inserts the whole
// batch in one transaction: a failure leaves no partial state.
type AulaRepository interface {
	CreateAulas(ctx context.Context, aulas []Aula) error
	GetAula(ctx context.Context, id string) (Aula, error)
	UpdateAula(ctx context.Context, aula Aula) error
	DeleteAula(ctx context.Context, id string) error
	ListAulas(ctx context.Context, filter AulaFilter) ([]Aula, error)
}

// TurmaRepository exposes the cohort catalog and its related display names.
type TurmaRepository interface {
	GetTurma(ctx context.Context, id string) (Turma, error)
	ListTurmas(ctx context.Context) ([]Turma, error)
	GetInstrutor(ctx context.Context, id string) (Instrutor, error)
	GetTurno(ctx context.Context, id string) (Turno, error)
}

// UcRepository stores unidades curriculares and the curso catalog they
// belong to.
type UcRepository interface {
	CreateUc(ctx context.Context, uc UnidadeCurricular) error
	UpdateUc(ctx context.Context, uc UnidadeCurricular) error
	GetUc(ctx context.Context, id string) (UnidadeCurricular, error)
	ListUcsPorCurso(ctx context.Context, idCurso string) ([]UnidadeCurricular, error)
	ListCursos(ctx context.Context) ([]Curso, error)
}

// FeriadoRepository stores municipal holiday rows.
type FeriadoRepository interface {
	CreateFeriadoMunicipal(ctx context.Context, feriado FeriadoMunicipal) error
	ListFeriadosMunicipais(ctx context.Context, inicio, fim *civil.Date) ([]FeriadoMunicipal, error)
}
