package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/usecase"
)

func buyerID(r *http.Request) string {
	if buyer := BuyerFrom(r.Context()); buyer != nil {
		return buyer.ID
	}
	return ""
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.uc.Brief.Dashboard(r.Context(), buyerID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, d)
}

func (s *Server) requirements(w http.ResponseWriter, r *http.Request) {
	req, err := s.uc.Brief.Requirements(r.Context(), buyerID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) createBrief(w http.ResponseWriter, r *http.Request) {
	var form model.CreateBriefForm
	if err := decodeJSON(r, &form); err != nil {
		handleError(w, r, err)
		return
	}

	b, err := s.uc.Brief.CreateBrief(r.Context(), buyerID(r), chi.URLParam(r, "framework"), chi.URLParam(r, "lot"), form)
	if err != nil {
		handleError(w, r, err)
		return
	}

	ref := usecase.BriefRef{Framework: b.FrameworkSlug, Lot: b.LotSlug, BriefID: b.ID, BuyerID: b.OwnerID}
	w.Header().Set("Location", ref.Path())
	writeJSON(r.Context(), w, http.StatusCreated, b)
}

func (s *Server) copyBrief(w http.ResponseWriter, r *http.Request) {
	b, err := s.uc.Brief.CopyBrief(r.Context(), briefRef(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	ref := usecase.BriefRef{Framework: b.FrameworkSlug, Lot: b.LotSlug, BriefID: b.ID}
	w.Header().Set("Location", ref.Path("edit", model.QuestionTitle, model.QuestionTitle))
	writeJSON(r.Context(), w, http.StatusCreated, b)
}

// flag reads a boolean query parameter, false when absent or malformed
func flag(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

func (s *Server) overview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.uc.Brief.Overview(r.Context(), briefRef(r), usecase.OverviewRequest{
		DeleteRequested:   flag(r, "delete_requested"),
		WithdrawRequested: flag(r, "withdraw_requested"),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, ov)
}

func (s *Server) editQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := s.uc.Brief.EditQuestion(r.Context(), briefRef(r), chi.URLParam(r, "section"), chi.URLParam(r, "question"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, view)
}

type answerRequest struct {
	Value any `json:"value"`
}

func (s *Server) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	next, err := s.uc.Brief.UpdateQuestion(r.Context(), briefRef(r), chi.URLParam(r, "section"), chi.URLParam(r, "question"), req.Value)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, nextResponse{Next: next})
}

func (s *Server) publishBrief(w http.ResponseWriter, r *http.Request) {
	b, err := s.uc.Brief.PublishBrief(r.Context(), briefRef(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, b)
}

func (s *Server) deleteBrief(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Brief.DeleteBrief(r.Context(), briefRef(r)); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, nextResponse{Next: "/buyers"})
}

func (s *Server) withdrawBrief(w http.ResponseWriter, r *http.Request) {
	b, err := s.uc.Brief.WithdrawBrief(r.Context(), briefRef(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, b)
}

func (s *Server) timeline(w http.ResponseWriter, r *http.Request) {
	tl, err := s.uc.Brief.Timeline(r.Context(), briefRef(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, tl)
}

func (s *Server) addClarificationQuestion(w http.ResponseWriter, r *http.Request) {
	var form model.ClarificationQuestionForm
	if err := decodeJSON(r, &form); err != nil {
		handleError(w, r, err)
		return
	}

	b, err := s.uc.Brief.AddClarificationQuestion(r.Context(), briefRef(r), form)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, b)
}
