package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/horario"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
)

// Day markings on the printable grid. A holiday falling on a weekend is
// marked as a holiday; the holiday label carries more information.
const (
	DiaFeriado     = "feriado"
	DiaFimDeSemana = "fim_de_semana"
)

// DiaImpressao is one column header of the printable month grid.
type DiaImpressao struct {
	Dia         int
	Data        civil.Date
	Tipo        string
	NomeFeriado string
}

// LinhaImpressao is one UC row: the hours placed on each day of the month,
// the distinct horários the UC occupies, and the row total.
type LinhaImpressao struct {
	IDUc     string
	NomeUc   string
	Horarios []string
	Horas    []float64
	Total    float64
}

// Impressao is the composed printable month: turma header, one column per
// day, one row per UC with aulas in the month.
type Impressao struct {
	Turma      Turma
	Ano        int
	Mes        time.Month
	Dias       []DiaImpressao
	Linhas     []LinhaImpressao
	TotalGeral float64
}

// CronogramaService composes printable month grids and calendar exports from
// the scheduled aulas.
type CronogramaService struct {
	aulas    persistence.AulaRepository
	turmas   *TurmaService
	feriados *FeriadoService
	logger   *slog.Logger
}

// NewCronogramaService wires dependencies for cronograma composition.
func NewCronogramaService(aulas persistence.AulaRepository, turmas *TurmaService, feriados *FeriadoService, logger *slog.Logger) *CronogramaService {
	return &CronogramaService{aulas: aulas, turmas: turmas, feriados: feriados, logger: logger}
}

// MontarImpressao builds the printable grid for one turma and month.
// Cancelada aulas are left off the printout.
func (s *CronogramaService) MontarImpressao(ctx context.Context, idTurma string, ano int, mes time.Month) (Impressao, error) {
	logger := serviceLogger(ctx, s.logger, "cronograma", "montar_impressao",
		"turma_id", idTurma, "ano", ano, "mes", int(mes))

	vErr := &ValidationError{}
	if idTurma == "" {
		vErr.add("turma", "informe a turma")
	}
	if mes < time.January || mes > time.December {
		vErr.add("mes", "mês inválido")
	}
	if ano < 2000 || ano > 2100 {
		vErr.add("ano", "ano inválido")
	}
	if vErr.HasErrors() {
		return Impressao{}, vErr
	}

	turma, err := s.turmas.GetTurma(ctx, idTurma)
	if err != nil {
		return Impressao{}, err
	}

	primeiro := civil.Date{Year: ano, Month: mes, Day: 1}
	ultimo := primeiro.AddDays(primeiro.DaysInMonth() - 1)

	aulas, err := s.aulasDoMes(ctx, idTurma, primeiro, ultimo)
	if err != nil {
		logger.ErrorContext(ctx, "aulas load failed", "error", err)
		return Impressao{}, err
	}
	set, err := s.feriados.Set(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "holiday set load failed", "error", err)
		return Impressao{}, err
	}

	dias := make([]DiaImpressao, 0, primeiro.DaysInMonth())
	for d := primeiro; !d.After(ultimo); d = d.AddDays(1) {
		dia := DiaImpressao{Dia: d.Day, Data: d}
		if nome, ok := set.Label(d); ok {
			dia.Tipo = DiaFeriado
			dia.NomeFeriado = nome
		} else if d.IsFimDeSemana() {
			dia.Tipo = DiaFimDeSemana
		}
		dias = append(dias, dia)
	}

	linhas, totalGeral := composeLinhas(aulas, primeiro)

	return Impressao{
		Turma:      turma,
		Ano:        ano,
		Mes:        mes,
		Dias:       dias,
		Linhas:     linhas,
		TotalGeral: totalGeral,
	}, nil
}

// ExportarICS renders the turma month as an iCalendar document so the grid
// can be imported into external calendars.
func (s *CronogramaService) ExportarICS(ctx context.Context, idTurma string, ano int, mes time.Month) (string, error) {
	logger := serviceLogger(ctx, s.logger, "cronograma", "exportar_ics", "turma_id", idTurma)

	turma, err := s.turmas.GetTurma(ctx, idTurma)
	if err != nil {
		return "", err
	}

	primeiro := civil.Date{Year: ano, Month: mes, Day: 1}
	ultimo := primeiro.AddDays(primeiro.DaysInMonth() - 1)
	aulas, err := s.aulasDoMes(ctx, idTurma, primeiro, ultimo)
	if err != nil {
		logger.ErrorContext(ctx, "aulas load failed", "error", err)
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//cronograma//PT-BR")

	for _, aula := range aulas {
		iv, err := horario.Parse(aula.Horario)
		if err != nil {
			return "", fmt.Errorf("aula %s possui horário inválido %q: %w", aula.ID, aula.Horario, err)
		}

		inicio := aula.Data.In(time.Local).Add(time.Duration(iv.Inicio) * time.Minute)
		fim := aula.Data.In(time.Local).Add(time.Duration(iv.Fim) * time.Minute)

		event := cal.AddEvent(fmt.Sprintf("%s@cronograma", aula.ID))
		event.SetDtStampTime(inicio)
		event.SetStartAt(inicio)
		event.SetEndAt(fim)
		event.SetSummary(aula.NomeUc)
		event.SetLocation(turma.Nome)
		event.SetDescription(fmt.Sprintf("Turma %s — %.2gh (%s)", turma.Nome, aula.Horas, aula.Status))
	}

	return cal.Serialize(), nil
}

func (s *CronogramaService) aulasDoMes(ctx context.Context, idTurma string, primeiro, ultimo civil.Date) ([]persistence.Aula, error) {
	rows, err := s.aulas.ListAulas(ctx, persistence.AulaFilter{
		IDTurma:    idTurma,
		DataInicio: &primeiro,
		DataFim:    &ultimo,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	ativas := rows[:0]
	for _, row := range rows {
		if row.Status == StatusCancelada {
			continue
		}
		ativas = append(ativas, row)
	}
	return ativas, nil
}

// composeLinhas groups the month's aulas into one row per UC, ordered by UC
// name, each with per-day hour sums and the distinct horários sorted.
func composeLinhas(aulas []persistence.Aula, primeiro civil.Date) ([]LinhaImpressao, float64) {
	type acc struct {
		nome     string
		horas    []float64
		horarios map[string]struct{}
		total    float64
	}

	nDias := primeiro.DaysInMonth()
	porUc := make(map[string]*acc)
	for _, aula := range aulas {
		linha := porUc[aula.IDUc]
		if linha == nil {
			linha = &acc{
				nome:     aula.NomeUc,
				horas:    make([]float64, nDias),
				horarios: make(map[string]struct{}),
			}
			porUc[aula.IDUc] = linha
		}
		linha.horas[aula.Data.Day-1] += aula.Horas
		linha.horarios[aula.Horario] = struct{}{}
		linha.total += aula.Horas
	}

	linhas := make([]LinhaImpressao, 0, len(porUc))
	var totalGeral float64
	for id, linha := range porUc {
		horarios := make([]string, 0, len(linha.horarios))
		for h := range linha.horarios {
			horarios = append(horarios, h)
		}
		sort.Strings(horarios)

		linhas = append(linhas, LinhaImpressao{
			IDUc:     id,
			NomeUc:   linha.nome,
			Horarios: horarios,
			Horas:    linha.horas,
			Total:    linha.total,
		})
		totalGeral += linha.total
	}
	sort.Slice(linhas, func(i, j int) bool {
		if linhas[i].NomeUc == linhas[j].NomeUc {
			return linhas[i].IDUc < linhas[j].IDUc
		}
		return linhas[i].NomeUc < linhas[j].NomeUc
	})

	return linhas, totalGeral
}
