package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/feriados"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

// FeriadoService merges the generated national holiday calendar with the
// municipal rows kept in persistence.
type FeriadoService struct {
	repo        persistence.FeriadoRepository
	anos        int
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewFeriadoService wires dependencies for holiday operations. The national
// calendar covers anos years forward plus the previous year, so back-dated
// calendar views still classify correctly.
func NewFeriadoService(repo persistence.FeriadoRepository, anos int, idGenerator func() string, now func() time.Time, logger *slog.Logger) *FeriadoService {
	if anos <= 0 {
		anos = 5
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &FeriadoService{repo: repo, anos: anos, idGenerator: idGenerator, now: now, logger: logger}
}

// Set builds the merged holiday lookup used by the scheduling engine and the
// calendar views.
func (s *FeriadoService) Set(ctx context.Context) (*feriados.Set, error) {
	anoInicial := s.now().Year() - 1
	nacionais := feriados.Nacionais(anoInicial, s.anos+1)

	var municipais []feriados.Entry
	if s.repo != nil {
		rows, err := s.repo.ListFeriadosMunicipais(ctx, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("falha ao carregar feriados municipais: %w", err)
		}
		for _, row := range rows {
			municipais = append(municipais, feriados.Entry{Data: row.Data, Nome: row.Nome, Municipal: true})
		}
	}

	return feriados.NewSet(nacionais, municipais), nil
}

// Listar returns every holiday inside [inicio, fim], national and municipal,
// ordered by date.
func (s *FeriadoService) Listar(ctx context.Context, inicio, fim civil.Date) ([]feriados.Entry, error) {
	logger := serviceLogger(ctx, s.logger, "feriados", "listar")

	if fim.Before(inicio) {
		vErr := &ValidationError{}
		vErr.add("periodo", "data final anterior à data inicial")
		return nil, vErr
	}

	set, err := s.Set(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "holiday set load failed", "error", err)
		return nil, err
	}
	return set.Entries(inicio, fim), nil
}

// AdicionarMunicipal registers one municipal holiday row.
func (s *FeriadoService) AdicionarMunicipal(ctx context.Context, params AdicionarFeriadoParams) (feriados.Entry, error) {
	logger := serviceLogger(ctx, s.logger, "feriados", "adicionar_municipal", "data", params.Data.String())

	vErr := &ValidationError{}
	if strings.TrimSpace(params.Nome) == "" {
		vErr.add("nome", "informe o nome do feriado")
	}
	if params.Data.IsZero() {
		vErr.add("data", "informe a data do feriado")
	}
	if vErr.HasErrors() {
		return feriados.Entry{}, vErr
	}

	row := persistence.FeriadoMunicipal{
		ID:   s.idGenerator(),
		Data: params.Data,
		Nome: strings.TrimSpace(params.Nome),
	}
	if err := s.repo.CreateFeriadoMunicipal(ctx, row); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "municipal holiday insert failed", "error", err, "error_kind", ErrorKind(err))
		return feriados.Entry{}, err
	}

	logger.InfoContext(ctx, "municipal holiday added", "nome", row.Nome)
	return feriados.Entry{Data: row.Data, Nome: row.Nome, Municipal: true}, nil
}
