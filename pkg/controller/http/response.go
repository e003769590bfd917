package http

import (
	"net/http"
	"strconv"

	"github.com/marketplace-labs/briefdesk/pkg/utils/safe"
)

func (s *Server) responsesSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.uc.Response.ResponsesSummary(r.Context(), briefRef(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, summary)
}

func (s *Server) downloadResponses(w http.ResponseWriter, r *http.Request) {
	doc, err := s.uc.Response.DownloadResponses(r.Context(), briefRef(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+doc.Filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, doc.Body)
}
