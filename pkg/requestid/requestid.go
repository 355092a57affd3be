// Package requestid carries the per-request id from the HTTP edge down to
// service logs.
package requestid

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the id set by NewContext.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// Entry returns a log entry tagged with the request id when ctx has one.
func Entry(ctx context.Context, log *logrus.Logger) *logrus.Entry {
	entry := logrus.NewEntry(log)
	if id, ok := FromContext(ctx); ok {
		return entry.WithField("request_id", id)
	}
	return entry
}
