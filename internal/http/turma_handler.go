package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/application"
)

type turmaService interface {
	ListTurmas(ctx context.Context) ([]application.Turma, error)
	GetTurma(ctx context.Context, id string) (application.Turma, error)
}

// TurmaHandler serves the read-only turma catalog.
type TurmaHandler struct {
	service   turmaService
	responder responder
	logger    *slog.Logger
}

func NewTurmaHandler(service turmaService, logger *slog.Logger) *TurmaHandler {
	return &TurmaHandler{
		service:   service,
		responder: newResponder(logger),
		logger:    logger,
	}
}

type turmaDTO struct {
	ID            string `json:"id"`
	Nome          string `json:"nome"`
	IDCurso       string `json:"id_curso"`
	NomeCurso     string `json:"nome_curso,omitempty"`
	NomeInstrutor string `json:"nome_instrutor,omitempty"`
	NomeTurno     string `json:"nome_turno,omitempty"`
}

func toTurmaDTO(turma application.Turma) turmaDTO {
	return turmaDTO{
		ID:            turma.ID,
		Nome:          turma.Nome,
		IDCurso:       turma.IDCurso,
		NomeCurso:     turma.NomeCurso,
		NomeInstrutor: turma.NomeInstrutor,
		NomeTurno:     turma.NomeTurno,
	}
}

type turmasResponse struct {
	Turmas []turmaDTO `json:"turmas"`
}

// Listar handles GET /turmas.
func (h *TurmaHandler) Listar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	turmas, err := h.service.ListTurmas(ctx)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	out := make([]turmaDTO, 0, len(turmas))
	for _, turma := range turmas {
		out = append(out, toTurmaDTO(turma))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, turmasResponse{Turmas: out})
}

// Buscar handles GET /turmas/{id}.
func (h *TurmaHandler) Buscar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	turmaID, ok := TurmaIDFromContext(ctx)
	if !ok || turmaID == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidTurmaID)
		return
	}

	turma, err := h.service.GetTurma(ctx, turmaID)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, toTurmaDTO(turma))
}
