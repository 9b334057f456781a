package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/application"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/logging"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/scheduler"
)

var (
	errBadRequestBody = errors.New("formato de requisição inválido")
	errInvalidAulaID  = errors.New("identificador de aula inválido")
	errInvalidTurmaID = errors.New("identificador de turma inválido")
	errInvalidUcID    = errors.New("identificador de unidade curricular inválido")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := statusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError translates application errors into HTTP responses.
// Engine rejections become 409 payloads carrying the decision so clients can
// render the conflicting aula and offer the edit remediation.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("erro desconhecido"))
		return
	}

	var rejeicao *application.RejeicaoAgendamento
	if errors.As(err, &rejeicao) {
		r.writeJSON(ctx, w, http.StatusConflict, toRejeicaoResponse(rejeicao))
		return
	}

	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "dados inválidos",
			Errors:  vErr.FieldErrors,
		})
		return
	}

	switch {
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "recurso não encontrado"})
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: "registro já existe"})
	default:
		r.loggerFor(ctx).ErrorContext(ctx, "request failed",
			"error", err, "error_kind", application.ErrorKind(err))
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "erro interno do servidor"})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "requisição inválida"
	case http.StatusNotFound:
		return "recurso não encontrado"
	case http.StatusConflict:
		return "a requisição conflita com o estado atual"
	case http.StatusUnprocessableEntity:
		return "dados inválidos"
	default:
		return "erro interno do servidor"
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type rejeicaoResponse struct {
	ErrorCode   string   `json:"error_code"`
	Message     string   `json:"message"`
	Data        string   `json:"data,omitempty"`
	Conflito    *aulaDTO `json:"conflito,omitempty"`
	LimiteHoras float64  `json:"limite_horas,omitempty"`
}

func toRejeicaoResponse(rejeicao *application.RejeicaoAgendamento) rejeicaoResponse {
	out := rejeicaoResponse{
		ErrorCode:   rejeicaoErrorCode(rejeicao.Decision.Outcome),
		Message:     rejeicao.Error(),
		LimiteHoras: rejeicao.Decision.LimiteHoras,
	}
	if !rejeicao.Decision.Data.IsZero() {
		out.Data = rejeicao.Decision.Data.String()
	}
	if c := rejeicao.Decision.Conflito; c != nil {
		out.Conflito = &aulaDTO{
			ID:      c.ID,
			IDUc:    c.IDUc,
			IDTurma: c.IDTurma,
			Data:    c.Data.String(),
			Horario: c.Horario.String(),
			Horas:   c.Horas,
			NomeUc:  c.NomeUc,
		}
	}
	return out
}

func rejeicaoErrorCode(outcome scheduler.Outcome) string {
	switch outcome {
	case scheduler.OutcomeNoSchedulableDates:
		return "NO_SCHEDULABLE_DATES"
	case scheduler.OutcomeDuplicate:
		return "DUPLICATE_SESSION"
	case scheduler.OutcomeIntervalConflict:
		return "INTERVAL_CONFLICT"
	case scheduler.OutcomeCapacityExceeded:
		return "CAPACITY_EXCEEDED"
	default:
		return "SCHEDULING_REJECTED"
	}
}
