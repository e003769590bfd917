package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
)

// Handle logs the error with a message and reports it to Sentry when a client is configured.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	logError(ctx, msg, err)
	capture(ctx, err)
}

// HandleHTTP logs the error and writes an appropriate HTTP error response.
// Only 5xx errors are reported to Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logError(ctx, "HTTP error", err, "status", statusCode)
	if statusCode >= http.StatusInternalServerError {
		capture(ctx, err)
	}

	msg := err.Error()
	if statusCode >= http.StatusInternalServerError {
		// internal details stay in the log
		msg = http.StatusText(statusCode)
	}
	http.Error(w, msg, statusCode)
}

func logError(ctx context.Context, msg string, err error, args ...any) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		args = append(args,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		args = append(args, "error", err.Error())
	}
	logger.Error(msg, args...)
}

func capture(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub = hub.Clone()
	var ge *goerr.Error
	if errors.As(err, &ge) {
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetContext("goerr", sentry.Context(ge.Values()))
		})
	}
	hub.CaptureException(err)
}
