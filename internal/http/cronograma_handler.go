package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/application"
)

type cronogramaService interface {
	MontarImpressao(ctx context.Context, idTurma string, ano int, mes time.Month) (application.Impressao, error)
	ExportarICS(ctx context.Context, idTurma string, ano int, mes time.Month) (string, error)
}

// CronogramaHandler renders the printable month grid and the iCalendar
// export for a turma.
type CronogramaHandler struct {
	service   cronogramaService
	responder responder
	logger    *slog.Logger
}

func NewCronogramaHandler(service cronogramaService, logger *slog.Logger) *CronogramaHandler {
	return &CronogramaHandler{
		service:   service,
		responder: newResponder(logger),
		logger:    logger,
	}
}

type diaImpressaoDTO struct {
	Dia         int    `json:"dia"`
	Data        string `json:"data"`
	Tipo        string `json:"tipo,omitempty"`
	NomeFeriado string `json:"nome_feriado,omitempty"`
}

type linhaImpressaoDTO struct {
	IDUc     string    `json:"id_uc"`
	NomeUc   string    `json:"nome_uc"`
	Horarios []string  `json:"horarios"`
	Horas    []float64 `json:"horas"`
	Total    float64   `json:"total"`
}

type impressaoResponse struct {
	Turma      turmaDTO            `json:"turma"`
	Ano        int                 `json:"ano"`
	Mes        int                 `json:"mes"`
	Dias       []diaImpressaoDTO   `json:"dias"`
	Linhas     []linhaImpressaoDTO `json:"linhas"`
	TotalGeral float64             `json:"total_geral"`
}

func toImpressaoResponse(impressao application.Impressao) impressaoResponse {
	dias := make([]diaImpressaoDTO, 0, len(impressao.Dias))
	for _, dia := range impressao.Dias {
		dias = append(dias, diaImpressaoDTO{
			Dia:         dia.Dia,
			Data:        dia.Data.String(),
			Tipo:        dia.Tipo,
			NomeFeriado: dia.NomeFeriado,
		})
	}

	linhas := make([]linhaImpressaoDTO, 0, len(impressao.Linhas))
	for _, linha := range impressao.Linhas {
		linhas = append(linhas, linhaImpressaoDTO{
			IDUc:     linha.IDUc,
			NomeUc:   linha.NomeUc,
			Horarios: linha.Horarios,
			Horas:    linha.Horas,
			Total:    linha.Total,
		})
	}

	return impressaoResponse{
		Turma:      toTurmaDTO(impressao.Turma),
		Ano:        impressao.Ano,
		Mes:        int(impressao.Mes),
		Dias:       dias,
		Linhas:     linhas,
		TotalGeral: impressao.TotalGeral,
	}
}

// Imprimir handles GET /cronogramas/{turmaID}?ano=...&mes=...
func (h *CronogramaHandler) Imprimir(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	turmaID, ok := TurmaIDFromContext(ctx)
	if !ok || turmaID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidTurmaID)
		return
	}

	ano, mes, ok := h.parsePeriodo(ctx, w, r)
	if !ok {
		return
	}

	impressao, err := h.service.MontarImpressao(ctx, turmaID, ano, mes)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toImpressaoResponse(impressao))
}

// ExportarICS handles GET /cronogramas/{turmaID}.ics?ano=...&mes=...
func (h *CronogramaHandler) ExportarICS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "cronograma", "exportar_ics")

	turmaID, ok := TurmaIDFromContext(ctx)
	if !ok || turmaID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidTurmaID)
		return
	}

	ano, mes, ok := h.parsePeriodo(ctx, w, r)
	if !ok {
		return
	}

	payload, err := h.service.ExportarICS(ctx, turmaID, ano, mes)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "cronograma exportado", "turma", turmaID, "ano", ano, "mes", int(mes))
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="cronograma.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(payload)); err != nil {
		logger.ErrorContext(ctx, "failed to write calendar response", "error", err)
	}
}

// parsePeriodo reads the ano and mes query parameters, defaulting to the
// current month when both are absent.
func (h *CronogramaHandler) parsePeriodo(ctx context.Context, w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	query := r.URL.Query()
	rawAno := query.Get("ano")
	rawMes := query.Get("mes")

	if rawAno == "" && rawMes == "" {
		now := time.Now()
		return now.Year(), now.Month(), true
	}

	ano, err := strconv.Atoi(rawAno)
	if err != nil {
		h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "dados inválidos",
			Errors:  map[string]string{"ano": "ano inválido: " + rawAno},
		})
		return 0, 0, false
	}

	mes, err := strconv.Atoi(rawMes)
	if err != nil || mes < 1 || mes > 12 {
		h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "dados inválidos",
			Errors:  map[string]string{"mes": "mês inválido: " + rawMes},
		})
		return 0, 0, false
	}

	return ano, time.Month(mes), true
}
