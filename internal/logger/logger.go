// SPDX-License-Identifier: Apache-2.0

// Package logger wraps zerolog.Logger with the constructors and context
// helpers used across medward.
//
// Logger embeds zerolog.Logger, so every zerolog method is available on
// *Logger directly. Handlers and services should not hold a logger of their
// own for request work; they pull the request-scoped one out of the context
// with FromContext or FromRequest, where middleware has already stamped the
// trace ID.
package logger

import (
	"context"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so helper methods can be added without
// shadowing the zerolog API.
type Logger struct {
	zerolog.Logger
}

// NewLogger builds the process-wide JSON logger for the given role label
// ("server", "worker"). Every entry carries the role, a timestamp and a
// "func" field holding the fully-qualified caller name, which is easier to
// grep for than file:line. The global level is Debug; filtering is left to
// the log pipeline.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	l := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop returns a logger that discards everything. For tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that inherits the receiver's fields. The
// child can be enriched (trace IDs, user IDs) without touching the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromContext returns the logger attached to ctx by zerolog's WithContext.
// When nothing was attached, zerolog hands back its global logger, so the
// result is always usable.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// FromRequest is FromContext over the request's context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}
