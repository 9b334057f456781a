package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/application"
)

type ucService interface {
	CreateUc(ctx context.Context, params application.CreateUcParams) (application.UnidadeCurricular, error)
	UpdateUc(ctx context.Context, params application.UpdateUcParams) (application.UnidadeCurricular, error)
	GetUc(ctx context.Context, ucID string) (application.UnidadeCurricular, error)
	ListUcsPorCurso(ctx context.Context, idCurso string) ([]application.UnidadeCurricular, error)
	ListCursos(ctx context.Context) ([]application.Curso, error)
}

// UcHandler manages the unidade curricular catalog, including the derived
// remaining-hours balance returned on every read.
type UcHandler struct {
	service   ucService
	responder responder
	logger    *slog.Logger
}

func NewUcHandler(service ucService, logger *slog.Logger) *UcHandler {
	return &UcHandler{
		service:   service,
		responder: newResponder(logger),
		logger:    logger,
	}
}

type ucDTO struct {
	ID             string  `json:"id"`
	Nome           string  `json:"nome"`
	CargaHoraria   float64 `json:"carga_horaria"`
	IDCurso        string  `json:"id_curso"`
	NomeCurso      string  `json:"nome_curso,omitempty"`
	HorasRestantes float64 `json:"horas_restantes"`
}

func toUcDTO(uc application.UnidadeCurricular) ucDTO {
	return ucDTO{
		ID:             uc.ID,
		Nome:           uc.Nome,
		CargaHoraria:   uc.CargaHoraria,
		IDCurso:        uc.IDCurso,
		NomeCurso:      uc.NomeCurso,
		HorasRestantes: uc.HorasRestantes,
	}
}

type ucRequest struct {
	Nome         string  `json:"nome" validate:"required"`
	CargaHoraria float64 `json:"carga_horaria" validate:"required,gt=0"`
	NomeCurso    string  `json:"nome_curso" validate:"required"`
}

type ucsResponse struct {
	Ucs []ucDTO `json:"ucs"`
}

type cursoDTO struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

type cursosResponse struct {
	Cursos []cursoDTO `json:"cursos"`
}

// Criar handles POST /ucs.
func (h *UcHandler) Criar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "uc", "criar")

	req, ok := h.decodeUcRequest(ctx, w, r)
	if !ok {
		return
	}

	uc, err := h.service.CreateUc(ctx, application.CreateUcParams{
		Nome:         req.Nome,
		CargaHoraria: req.CargaHoraria,
		NomeCurso:    req.NomeCurso,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "unidade curricular criada", "uc", uc.ID)
	h.responder.writeJSON(ctx, w, http.StatusCreated, toUcDTO(uc))
}

// Atualizar handles PUT /ucs/{id}.
func (h *UcHandler) Atualizar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "uc", "atualizar")

	ucID, ok := UcIDFromContext(ctx)
	if !ok || ucID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidUcID)
		return
	}

	req, ok := h.decodeUcRequest(ctx, w, r)
	if !ok {
		return
	}

	uc, err := h.service.UpdateUc(ctx, application.UpdateUcParams{
		UcID:         ucID,
		Nome:         req.Nome,
		CargaHoraria: req.CargaHoraria,
		NomeCurso:    req.NomeCurso,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "unidade curricular atualizada", "uc", ucID)
	h.responder.writeJSON(ctx, w, http.StatusOK, toUcDTO(uc))
}

// Buscar handles GET /ucs/{id}.
func (h *UcHandler) Buscar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ucID, ok := UcIDFromContext(ctx)
	if !ok || ucID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidUcID)
		return
	}

	uc, err := h.service.GetUc(ctx, ucID)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toUcDTO(uc))
}

// Listar handles GET /ucs?curso={idCurso}.
func (h *UcHandler) Listar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ucs, err := h.service.ListUcsPorCurso(ctx, r.URL.Query().Get("curso"))
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	out := make([]ucDTO, 0, len(ucs))
	for _, uc := range ucs {
		out = append(out, toUcDTO(uc))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, ucsResponse{Ucs: out})
}

// ListarCursos handles GET /cursos.
func (h *UcHandler) ListarCursos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cursos, err := h.service.ListCursos(ctx)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	out := make([]cursoDTO, 0, len(cursos))
	for _, curso := range cursos {
		out = append(out, cursoDTO{ID: curso.ID, Nome: curso.Nome})
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, cursosResponse{Cursos: out})
}

func (h *UcHandler) decodeUcRequest(ctx context.Context, w http.ResponseWriter, r *http.Request) (ucRequest, bool) {
	var req ucRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return ucRequest{}, false
	}

	if err := validate.Struct(req); err != nil {
		h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "dados inválidos",
			Errors:  validationDetails(err),
		})
		return ucRequest{}, false
	}
	return req, true
}
