package logger

import (
	"context"
	"log/slog"
)

type fieldsKey struct{}

// fields - атрибуты, которые попадают в каждую запись с этим context
type fields struct {
	requestID string
	userID    string
	userType  string
	worker    string
}

func fieldsFrom(ctx context.Context) fields {
	if ctx == nil {
		return fields{}
	}
	f, _ := ctx.Value(fieldsKey{}).(fields)
	return f
}

func withFields(ctx context.Context, update func(*fields)) context.Context {
	f := fieldsFrom(ctx)
	update(&f)
	return context.WithValue(ctx, fieldsKey{}, f)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withFields(ctx, func(f *fields) { f.requestID = requestID })
}

// WithActor помечает записи аутентифицированным пользователем
func WithActor(ctx context.Context, userID, userType string) context.Context {
	return withFields(ctx, func(f *fields) {
		f.userID = userID
		f.userType = userType
	})
}

// WithWorker помечает записи фоновой задачи
func WithWorker(ctx context.Context, name string) context.Context {
	return withFields(ctx, func(f *fields) { f.worker = name })
}

func GetRequestID(ctx context.Context) string {
	return fieldsFrom(ctx).requestID
}

func GetUserID(ctx context.Context) string {
	return fieldsFrom(ctx).userID
}

func (f fields) attrs() []any {
	var out []any
	if f.requestID != "" {
		out = append(out, slog.String("request_id", f.requestID))
	}
	if f.userID != "" {
		out = append(out, slog.String("user_id", f.userID), slog.String("user_type", f.userType))
	}
	if f.worker != "" {
		out = append(out, slog.String("worker", f.worker))
	}
	return out
}

// FromContext - глобальный логгер с атрибутами запроса или задачи
func FromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	if attrs := fieldsFrom(ctx).attrs(); len(attrs) > 0 {
		l = l.With(attrs...)
	}
	return l
}

func CtxDebug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError пишет Error с атрибутом error
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	FromContext(ctx).Error(msg, append([]any{errorAttr(err)}, args...)...)
}
