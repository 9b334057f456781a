package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/application"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
)

type aulaService interface {
	AgendarAulas(ctx context.Context, params application.AgendarAulasParams) ([]application.Aula, error)
	EditarAula(ctx context.Context, params application.EditarAulaParams) (application.Aula, error)
	ExcluirAula(ctx context.Context, aulaID string) error
	ListarAulas(ctx context.Context, params application.ListarAulasParams) ([]application.Aula, error)
}

// AulaHandler exposes the scheduling operations over HTTP.
type AulaHandler struct {
	service   aulaService
	responder responder
	logger    *slog.Logger
}

func NewAulaHandler(service aulaService, logger *slog.Logger) *AulaHandler {
	return &AulaHandler{
		service:   service,
		responder: newResponder(logger),
		logger:    logger,
	}
}

type aulaDTO struct {
	ID        string  `json:"id"`
	IDTurma   string  `json:"id_turma"`
	IDUc      string  `json:"id_uc"`
	Data      string  `json:"data"`
	Horario   string  `json:"horario"`
	Horas     float64 `json:"horas"`
	Status    string  `json:"status,omitempty"`
	Periodo   string  `json:"periodo,omitempty"`
	NomeUc    string  `json:"nome_uc,omitempty"`
	NomeTurma string  `json:"nome_turma,omitempty"`
}

func toAulaDTO(aula application.Aula) aulaDTO {
	return aulaDTO{
		ID:        aula.ID,
		IDTurma:   aula.IDTurma,
		IDUc:      aula.IDUc,
		Data:      aula.Data.String(),
		Horario:   aula.Horario,
		Horas:     aula.Horas,
		Status:    aula.Status,
		Periodo:   string(aula.Periodo),
		NomeUc:    aula.NomeUc,
		NomeTurma: aula.NomeTurma,
	}
}

func toAulaDTOs(aulas []application.Aula) []aulaDTO {
	out := make([]aulaDTO, 0, len(aulas))
	for _, aula := range aulas {
		out = append(out, toAulaDTO(aula))
	}
	return out
}

type agendarAulasRequest struct {
	IDTurma    string   `json:"id_turma" validate:"required"`
	IDUc       string   `json:"id_uc" validate:"required"`
	Datas      []string `json:"datas" validate:"required,min=1,dive,required"`
	HoraInicio string   `json:"hora_inicio" validate:"required"`
	Horas      float64  `json:"horas" validate:"required,gt=0"`
}

type editarAulaRequest struct {
	Data       string  `json:"data" validate:"required"`
	HoraInicio string  `json:"hora_inicio" validate:"required"`
	Horas      float64 `json:"horas" validate:"required,gt=0"`
	Status     string  `json:"status" validate:"omitempty,oneof=Agendada Realizada Cancelada"`
}

type aulasResponse struct {
	Aulas []aulaDTO `json:"aulas"`
}

// Agendar handles POST /aulas. Rejections from the conflict engine surface as
// 409 responses carrying the decision payload.
func (h *AulaHandler) Agendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "aula", "agendar")

	var req agendarAulasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if err := validate.Struct(req); err != nil {
		h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "dados inválidos",
			Errors:  validationDetails(err),
		})
		return
	}

	datas, err := parseDatas(req.Datas)
	if err != nil {
		h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "dados inválidos",
			Errors:  map[string]string{"datas": err.Error()},
		})
		return
	}

	aulas, err := h.service.AgendarAulas(ctx, application.AgendarAulasParams{
		IDTurma:    req.IDTurma,
		IDUc:       req.IDUc,
		Datas:      datas,
		HoraInicio: req.HoraInicio,
		Horas:      req.Horas,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "aulas agendadas", "turma", req.IDTurma, "uc", req.IDUc, "total", len(aulas))
	h.responder.writeJSON(ctx, w, http.StatusCreated, aulasResponse{Aulas: toAulaDTOs(aulas)})
}

// Listar handles GET /aulas with optional turma, uc, status and period filters.
func (h *AulaHandler) Listar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	params := application.ListarAulasParams{
		IDTurma: query.Get("turma"),
		IDUc:    query.Get("uc"),
		Status:  query.Get("status"),
	}

	if raw := query.Get("inicio"); raw != "" {
		data, err := civil.ParseDate(raw)
		if err != nil {
			h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "dados inválidos",
				Errors:  map[string]string{"inicio": "data inválida: " + raw},
			})
			return
		}
		params.DataInicio = &data
	}
	if raw := query.Get("fim"); raw != "" {
		data, err := civil.ParseDate(raw)
		if err != nil {
			h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "dados inválidos",
				Errors:  map[string]string{"fim": "data inválida: " + raw},
			})
			return
		}
		params.DataFim = &data
	}

	aulas, err := h.service.ListarAulas(ctx, params)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, aulasResponse{Aulas: toAulaDTOs(aulas)})
}

// Editar handles PUT /aulas/{id}. The edited aula is excluded from its own
// conflict evaluation so it can keep or shift its current slot.
func (h *AulaHandler) Editar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "aula", "editar")

	aulaID, ok := AulaIDFromContext(ctx)
	if !ok || aulaID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidAulaID)
		return
	}

	var req editarAulaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if err := validate.Struct(req); err != nil {
		h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "dados inválidos",
			Errors:  validationDetails(err),
		})
		return
	}

	data, err := civil.ParseDate(req.Data)
	if err != nil {
		h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "dados inválidos",
			Errors:  map[string]string{"data": "data inválida: " + req.Data},
		})
		return
	}

	aula, err := h.service.EditarAula(ctx, application.EditarAulaParams{
		AulaID:     aulaID,
		Data:       data,
		HoraInicio: req.HoraInicio,
		Horas:      req.Horas,
		Status:     req.Status,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "aula editada", "aula", aulaID)
	h.responder.writeJSON(ctx, w, http.StatusOK, toAulaDTO(aula))
}

// Excluir handles DELETE /aulas/{id}.
func (h *AulaHandler) Excluir(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "aula", "excluir")

	aulaID, ok := AulaIDFromContext(ctx)
	if !ok || aulaID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidAulaID)
		return
	}

	if err := h.service.ExcluirAula(ctx, aulaID); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "aula excluída", "aula", aulaID)
	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

func parseDatas(raw []string) ([]civil.Date, error) {
	out := make([]civil.Date, 0, len(raw))
	for _, value := range raw {
		data, err := civil.ParseDate(value)
		if err != nil {
			return nil, &dataInvalidaError{valor: value}
		}
		out = append(out, data)
	}
	return out, nil
}

type dataInvalidaError struct {
	valor string
}

func (e *dataInvalidaError) Error() string {
	return "data inválida: " + e.valor
}
