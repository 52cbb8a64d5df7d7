package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

// sentryEnabled is set once InitSentry succeeds. Capture helpers are no-ops before.
var sentryEnabled bool

// InitSentry initializes the Sentry client with the given DSN
func InitSentry(dsn string) error {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      getEnvironment(),
		TracesSampleRate: 0.1,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}

	// Anonymous per-process session; no user data leaves the machine.
	sessionID := uuid.NewString()
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetUser(sentry.User{ID: sessionID})
		scope.SetTag("session", sessionID)
	})
	sentryEnabled = true
	return nil
}

func getEnvironment() string {
	if os.Getenv("GRIDEDIT_ENV") == "dev" {
		return "development"
	}
	return "production"
}

// FlushAndShutdown flushes pending Sentry events
func FlushAndShutdown() {
	if sentryEnabled {
		sentry.Flush(5 * time.Second)
	}
}

// CaptureError sends an error to Sentry along with any pending breadcrumbs
func CaptureError(err error) {
	if err == nil {
		return
	}
	logger.Error("unexpected error", "err", err)
	if !sentryEnabled {
		return
	}

	if breadcrumbs != nil {
		breadcrumbs.Flush()
	}
	sentry.CaptureException(err)
}
