package http

import "context"

type contextKey string

const (
	aulaIDContextKey  contextKey = "aula_id"
	turmaIDContextKey contextKey = "turma_id"
	ucIDContextKey    contextKey = "uc_id"
)

// ContextWithAulaID injects the aula identifier resolved from the request path.
func ContextWithAulaID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, aulaIDContextKey, id)
}

// AulaIDFromContext extracts an aula identifier previously associated with the context.
func AulaIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(aulaIDContextKey).(string)
	return id, ok
}

// ContextWithTurmaID injects the turma identifier resolved from the request path.
func ContextWithTurmaID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, turmaIDContextKey, id)
}

// TurmaIDFromContext extracts a turma identifier previously associated with the context.
func TurmaIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(turmaIDContextKey).(string)
	return id, ok
}

// ContextWithUcID injects the UC identifier resolved from the request path.
func ContextWithUcID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ucIDContextKey, id)
}

// UcIDFromContext extracts a UC identifier previously associated with the context.
func UcIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ucIDContextKey).(string)
	return id, ok
}
