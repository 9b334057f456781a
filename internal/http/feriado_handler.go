package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/application"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/civil"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/feriados"
)

type feriadoService interface {
	Listar(ctx context.Context, inicio, fim civil.Date) ([]feriados.Entry, error)
	AdicionarMunicipal(ctx context.Context, params application.AdicionarFeriadoParams) (feriados.Entry, error)
}

// FeriadoHandler serves the merged national and municipal holiday calendar.
type FeriadoHandler struct {
	service   feriadoService
	responder responder
	logger    *slog.Logger
}

func NewFeriadoHandler(service feriadoService, logger *slog.Logger) *FeriadoHandler {
	return &FeriadoHandler{
		service:   service,
		responder: newResponder(logger),
		logger:    logger,
	}
}

type feriadoDTO struct {
	Data      string `json:"data"`
	Nome      string `json:"nome"`
	Municipal bool   `json:"municipal"`
}

type feriadosResponse struct {
	Feriados []feriadoDTO `json:"feriados"`
}

type adicionarFeriadoRequest struct {
	Data string `json:"data" validate:"required"`
	Nome string `json:"nome" validate:"required"`
}

// Listar handles GET /feriados?inicio=...&fim=...
func (h *FeriadoHandler) Listar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	inicio, err := civil.ParseDate(query.Get("inicio"))
	if err != nil {
		h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "dados inválidos",
			Errors:  map[string]string{"inicio": "data inválida: " + query.Get("inicio")},
		})
		return
	}
	fim, err := civil.ParseDate(query.Get("fim"))
	if err != nil {
		h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "dados inválidos",
			Errors:  map[string]string{"fim": "data inválida: " + query.Get("fim")},
		})
		return
	}

	entries, err := h.service.Listar(ctx, inicio, fim)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	out := make([]feriadoDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, feriadoDTO{
			Data:      entry.Data.String(),
			Nome:      entry.Nome,
			Municipal: entry.Municipal,
		})
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, feriadosResponse{Feriados: out})
}

// Adicionar handles POST /feriados, registering a municipal holiday.
func (h *FeriadoHandler) Adicionar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "feriado", "adicionar")

	var req adicionarFeriadoRequest
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

	entry, err := h.service.AdicionarMunicipal(ctx, application.AdicionarFeriadoParams{
		Data: data,
		Nome: req.Nome,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "feriado municipal adicionado", "data", entry.Data.String())
	h.responder.writeJSON(ctx, w, http.StatusCreated, feriadoDTO{
		Data:      entry.Data.String(),
		Nome:      entry.Nome,
		Municipal: entry.Municipal,
	})
}
