package web

import (
	"net/http"

	"github.com/JonMunkholm/pcrcalc/internal/web/templates"
)

const pageTitle = "PCR CO₂ Avoidance Calculator"

// handleIndex renders the upload and factor form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := templates.Layout(pageTitle, templates.IndexPage(s.indexData()))
	if err := page.Render(r.Context(), w); err != nil {
		logFromRequest(r).Error("render index", "error", err)
	}
}

// handleRunPage runs the pipeline from the form and renders the form again
// with the results below it.
func (s *Server) handleRunPage(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUpload(w, r); err != nil {
		s.respondError(w, r, err, uploadStatus(err))
		return
	}
	req, err := s.parseRunForm(r)
	if err != nil {
		s.respondError(w, r, err, uploadStatus(err))
		return
	}

	run, err := s.service.Run(withRunMetadata(r.Context(), r), req)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := templates.Layout(pageTitle, templates.Join(
		templates.IndexPage(s.indexData()),
		templates.Results(templates.ResultsData{Run: run}),
	))
	if err := page.Render(r.Context(), w); err != nil {
		logFromRequest(r).Error("render results", "error", err)
	}
}

// handleHealth reports liveness and calculation slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"runs":   s.service.RunStatus(),
	})
}
