package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/repository/dataapi"
	"github.com/marketplace-labs/briefdesk/pkg/usecase"
	"github.com/marketplace-labs/briefdesk/pkg/utils/errutil"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields model.FieldErrors `json:"fields,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// nextResponse tells the client where the flow continues
type nextResponse struct {
	Next string `json:"next"`
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(model.ErrValidation, "invalid request body", goerr.V("error", err.Error()))
	}
	return nil
}

// handleError maps use case errors to responses. Anything unrecognised is a
// 500 and goes to Sentry.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, interfaces.ErrNotFound):
		logging.From(ctx).Info("not found", "error", err.Error())
		writeJSON(ctx, w, http.StatusNotFound, errorResponse{Error: http.StatusText(http.StatusNotFound)})

	case errors.Is(err, model.ErrValidation), errors.Is(err, usecase.ErrIncomplete):
		logging.From(ctx).Info("bad request", "error", err.Error())
		writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: err.Error(), Fields: model.FieldErrorsOf(err)})

	case errors.Is(err, usecase.ErrUnauthenticated):
		logging.From(ctx).Info("unauthenticated", "error", err.Error())
		writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{Error: "Invalid authentication token"})

	case errors.Is(err, usecase.ErrNoResponses):
		http.Redirect(w, r, briefRef(r).Path("responses"), http.StatusFound)

	case errors.Is(err, dataapi.ErrUnavailable):
		errutil.HandleHTTP(ctx, w, err, http.StatusServiceUnavailable)

	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

// briefRef reads the brief address from the URL
func briefRef(r *http.Request) usecase.BriefRef {
	ref := usecase.BriefRef{
		Framework: chi.URLParam(r, "framework"),
		Lot:       chi.URLParam(r, "lot"),
		BriefID:   chi.URLParam(r, "briefID"),
	}
	if buyer := BuyerFrom(r.Context()); buyer != nil {
		ref.BuyerID = buyer.ID
	}
	return ref
}
