package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

type awardOrCancelRequest struct {
	Decision types.AwardDecision `json:"awardOrCancelDecision"`
}

func (s *Server) awardOrCancel(w http.ResponseWriter, r *http.Request) {
	var req awardOrCancelRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	next, err := s.uc.Award.AwardOrCancel(r.Context(), briefRef(r), req.Decision)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, nextResponse{Next: next})
}

func (s *Server) awardChoices(w http.ResponseWriter, r *http.Request) {
	choice, err := s.uc.Award.AwardChoices(r.Context(), briefRef(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, choice)
}

func (s *Server) awardResponse(w http.ResponseWriter, r *http.Request) {
	var form model.AwardResponseForm
	if err := decodeJSON(r, &form); err != nil {
		handleError(w, r, err)
		return
	}

	next, err := s.uc.Award.AwardResponse(r.Context(), briefRef(r), form)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, nextResponse{Next: next})
}

func (s *Server) awardDetails(w http.ResponseWriter, r *http.Request) {
	view, err := s.uc.Award.AwardDetails(r.Context(), briefRef(r), chi.URLParam(r, "responseID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, view)
}

func (s *Server) submitAwardDetails(w http.ResponseWriter, r *http.Request) {
	var form model.AwardDetailsForm
	if err := decodeJSON(r, &form); err != nil {
		handleError(w, r, err)
		return
	}

	b, err := s.uc.Award.SubmitAwardDetails(r.Context(), briefRef(r), chi.URLParam(r, "responseID"), form)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, b)
}

type cancelRequest struct {
	Reason types.CancelReason `json:"cancelReason"`
}

func (s *Server) cancelBrief(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	b, err := s.uc.Award.CancelBrief(r.Context(), briefRef(r), req.Reason)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, b)
}
