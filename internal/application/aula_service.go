package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/horario"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/persistence"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/scheduler"
)

// AulaService orchestrates the scheduling engine and persistence for aula
// operations. Every mutation re-runs the engine before touching the database.
type AulaService struct {
	aulas       persistence.AulaRepository
	turmas      persistence.TurmaRepository
	ucs         persistence.UcRepository
	feriados    *FeriadoService
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAulaService wires dependencies for aula operations.
func NewAulaService(aulas persistence.AulaRepository, turmas persistence.TurmaRepository, ucs persistence.UcRepository, feriados *FeriadoService, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AulaService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AulaService{
		aulas:       aulas,
		turmas:      turmas,
		ucs:         ucs,
		feriados:    feriados,
		idGenerator: idGenerator,
		now:         now,
		logger:      logger,
	}
}

// AgendarAulas validates the submission, runs the engine over every selected
// date and inserts the surviving batch atomically. A rejection on any date
// aborts the whole batch.
func (s *AulaService) AgendarAulas(ctx context.Context, params AgendarAulasParams) ([]Aula, error) {
	logger := serviceLogger(ctx, s.logger, "aulas", "agendar",
		"turma_id", params.IDTurma, "uc_id", params.IDUc, "datas", len(params.Datas))

	intervalo, vErr := validateAulaCore(params.HoraInicio, params.Horas)
	if params.IDTurma == "" {
		vErr.add("turma", "informe a turma")
	}
	if params.IDUc == "" {
		vErr.add("uc", "informe a unidade curricular")
	}
	if len(params.Datas) == 0 {
		vErr.add("datas", "selecione ao menos uma data")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	turma, err := s.turmas.GetTurma(ctx, params.IDTurma)
	if err != nil {
		return nil, mapRepoError(err)
	}
	uc, err := s.ucs.GetUc(ctx, params.IDUc)
	if err != nil {
		return nil, mapRepoError(err)
	}

	existentes, err := s.aulasDaTurma(ctx, params.IDTurma, params.Datas)
	if err != nil {
		logger.ErrorContext(ctx, "existing aulas load failed", "error", err)
		return nil, err
	}
	set, err := s.feriados.Set(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "holiday set load failed", "error", err)
		return nil, err
	}

	decision := scheduler.Evaluate(scheduler.Request{
		Datas:   params.Datas,
		IDTurma: params.IDTurma,
		IDUc:    params.IDUc,
		Horario: intervalo,
		Horas:   params.Horas,
	}, existentes, set)
	if !decision.Accepted() {
		rejeicao := &RejeicaoAgendamento{Decision: decision}
		logger.InfoContext(ctx, "scheduling rejected", "error_kind", ErrorKind(rejeicao))
		return nil, rejeicao
	}

	rows := make([]persistence.Aula, 0, len(decision.Datas))
	for _, data := range decision.Datas {
		rows = append(rows, persistence.Aula{
			ID:      s.idGenerator(),
			IDUc:    params.IDUc,
			IDTurma: params.IDTurma,
			Data:    data,
			Horario: intervalo.String(),
			Horas:   params.Horas,
			Status:  StatusAgendada,
		})
	}
	if err := s.aulas.CreateAulas(ctx, rows); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "aula batch insert failed", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}

	created := make([]Aula, 0, len(rows))
	for _, row := range rows {
		row.NomeUc = uc.Nome
		row.NomeTurma = turma.Nome
		created = append(created, toAula(row))
	}
	logger.InfoContext(ctx, "aulas scheduled", "inserted", len(created))
	return created, nil
}

// EditarAula rewrites one aula after the engine re-approves its new placement
// with the aula itself excluded from the checks.
func (s *AulaService) EditarAula(ctx context.Context, params EditarAulaParams) (Aula, error) {
	logger := serviceLogger(ctx, s.logger, "aulas", "editar", "aula_id", params.AulaID)

	existing, err := s.aulas.GetAula(ctx, params.AulaID)
	if err != nil {
		return Aula{}, mapRepoError(err)
	}

	intervalo, vErr := validateAulaCore(params.HoraInicio, params.Horas)
	if params.Data.IsZero() {
		vErr.add("data", "informe a data da aula")
	}
	status := params.Status
	if status == "" {
		status = existing.Status
	}
	switch status {
	case StatusAgendada, StatusRealizada, StatusCancelada:
	default:
		vErr.add("status", "status inválido")
	}
	if vErr.HasErrors() {
		return Aula{}, vErr
	}

	existentes, err := s.aulasDaTurma(ctx, existing.IDTurma, []civil.Date{params.Data})
	if err != nil {
		logger.ErrorContext(ctx, "existing aulas load failed", "error", err)
		return Aula{}, err
	}
	set, err := s.feriados.Set(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "holiday set load failed", "error", err)
		return Aula{}, err
	}

	decision := scheduler.Evaluate(scheduler.Request{
		Datas:       []civil.Date{params.Data},
		IDTurma:     existing.IDTurma,
		IDUc:        existing.IDUc,
		Horario:     intervalo,
		Horas:       params.Horas,
		ExcluirAula: existing.ID,
	}, existentes, set)
	if !decision.Accepted() {
		rejeicao := &RejeicaoAgendamento{Decision: decision}
		logger.InfoContext(ctx, "edit rejected", "error_kind", ErrorKind(rejeicao))
		return Aula{}, rejeicao
	}

	updated := existing
	updated.Data = params.Data
	updated.Horario = intervalo.String()
	updated.Horas = params.Horas
	updated.Status = status
	if err := s.aulas.UpdateAula(ctx, updated); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "aula update failed", "error", err, "error_kind", ErrorKind(err))
		return Aula{}, err
	}

	logger.InfoContext(ctx, "aula updated", "status", updated.Status)
	return toAula(updated), nil
}

// ExcluirAula removes one aula.
func (s *AulaService) ExcluirAula(ctx context.Context, aulaID string) error {
	logger := serviceLogger(ctx, s.logger, "aulas", "excluir", "aula_id", aulaID)

	if err := s.aulas.DeleteAula(ctx, aulaID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "aula delete failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "aula deleted")
	return nil
}

// ListarAulas returns aulas matching the filter, ordered by date then horário.
func (s *AulaService) ListarAulas(ctx context.Context, params ListarAulasParams) ([]Aula, error) {
	rows, err := s.aulas.ListAulas(ctx, persistence.AulaFilter{
		IDTurma:    params.IDTurma,
		IDUc:       params.IDUc,
		DataInicio: params.DataInicio,
		DataFim:    params.DataFim,
		Status:     params.Status,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return toAulas(rows), nil
}

// aulasDaTurma loads the turma aulas covering the candidate dates and groups
// them by date for the engine. Every status participates: a Cancelada aula
// still counts toward duplicates and the capacity sum.
func (s *AulaService) aulasDaTurma(ctx context.Context, idTurma string, datas []civil.Date) (map[civil.Date][]scheduler.Aula, error) {
	if len(datas) == 0 {
		return nil, nil
	}

	min, max := datas[0], datas[0]
	for _, d := range datas[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}

	rows, err := s.aulas.ListAulas(ctx, persistence.AulaFilter{
		IDTurma:    idTurma,
		DataInicio: &min,
		DataFim:    &max,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make(map[civil.Date][]scheduler.Aula, len(rows))
	for _, row := range rows {
		iv, err := horario.Parse(row.Horario)
		if err != nil {
			return nil, fmt.Errorf("aula %s possui horário inválido %q: %w", row.ID, row.Horario, err)
		}
		out[row.Data] = append(out[row.Data], scheduler.Aula{
			ID:      row.ID,
			IDUc:    row.IDUc,
			IDTurma: row.IDTurma,
			Data:    row.Data,
			Horario: iv,
			Horas:   row.Horas,
			NomeUc:  row.NomeUc,
		})
	}
	return out, nil
}

func validateAulaCore(horaInicio string, horas float64) (horario.Interval, *ValidationError) {
	vErr := &ValidationError{}

	if horas <= 0 {
		vErr.add("horas", "a quantidade de horas deve ser maior que zero")
	}
	if horaInicio == "" {
		vErr.add("hora_inicio", "informe a hora de início")
		return horario.Interval{}, vErr
	}

	intervalo, err := horario.FromInicio(horaInicio, horas)
	if err != nil && horas > 0 {
		vErr.add("hora_inicio", "horário inválido")
	}
	return intervalo, vErr
}
