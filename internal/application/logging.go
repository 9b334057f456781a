package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/logging"
	"github.com/Tom-Ganks/projeto-integrador-web-master-gh-try/internal/scheduler"
)

func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"service", serviceName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}

// ErrorKind maps sentinel, validation and engine rejection errors to a stable
// logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	}

	var rejeicao *RejeicaoAgendamento
	if errors.As(err, &rejeicao) {
		switch rejeicao.Decision.Outcome {
		case scheduler.OutcomeNoSchedulableDates:
			return "no_schedulable_dates"
		case scheduler.OutcomeDuplicate:
			return "duplicate_session"
		case scheduler.OutcomeIntervalConflict:
			return "interval_conflict"
		case scheduler.OutcomeCapacityExceeded:
			return "capacity_exceeded"
		}
		return "scheduling_rejected"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "unexpected"
}
