package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/agentstation/citecheck/pkg/constants"
)

// ContextWithSignals returns a context cancelled on SIGINT or SIGTERM, so a
// long Zotero scan or Crossref lookup stops between requests.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// ShutdownContext bounds cleanup after a command failed. It is detached from
// the command context, which may already be cancelled.
func ShutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.ShutdownTimeout)
}
