package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/pcrcalc/internal/core"
	"github.com/JonMunkholm/pcrcalc/internal/web/templates"
)

// catalogResponse is the body of POST /api/catalog.
type catalogResponse struct {
	Report  core.LoadReport   `json:"report"`
	Cached  bool              `json:"cached"`
	Headers []string          `json:"headers"`
	Records []core.PartRecord `json:"records"`
}

// mergeResponse is the body of POST /api/merge.
type mergeResponse struct {
	CatalogReport       core.LoadReport   `json:"catalogReport"`
	PurchaseReport      core.LoadReport   `json:"purchaseReport"`
	SkippedPurchaseRows int               `json:"skippedPurchaseRows"`
	Matched             int               `json:"matched"`
	UnmatchedCount      int               `json:"unmatchedCount"`
	Unmatched           []string          `json:"unmatched"`
	UnmatchedTruncated  bool              `json:"unmatchedTruncated"`
	Records             []core.PartRecord `json:"records"`
}

// handleFactors returns the configured default emission factors.
func (s *Server) handleFactors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.DefaultFactors())
}

// handlePurchaseTemplate downloads the purchase ledger template.
func (s *Server) handlePurchaseTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", core.TemplateFileName))
	w.Write(core.PurchaseTemplateCSV())
}

// handleCatalog loads an uploaded catalog, or the default one when the
// catalog part is absent, and returns its records and load report.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUpload(w, r); err != nil {
		s.respondError(w, r, err, uploadStatus(err))
		return
	}
	data, err := s.readFormFile(r, fieldCatalog)
	if err != nil {
		s.respondError(w, r, err, uploadStatus(err))
		return
	}

	cat, cached, err := s.service.LoadCatalog(withRunMetadata(r.Context(), r), data)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, catalogResponse{
		Report:  cat.Report,
		Cached:  cached,
		Headers: cat.Headers,
		Records: cat.Records,
	})
}

// handleMerge applies a purchase ledger to a catalog and returns the
// working record set.
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUpload(w, r); err != nil {
		s.respondError(w, r, err, uploadStatus(err))
		return
	}
	catalogData, err := s.readFormFile(r, fieldCatalog)
	if err != nil {
		s.respondError(w, r, err, uploadStatus(err))
		return
	}
	purchaseData, err := s.readFormFile(r, fieldPurchases)
	if err != nil {
		s.respondError(w, r, err, uploadStatus(err))
		return
	}
	if len(purchaseData) == 0 {
		s.respondError(w, r, fmt.Errorf("%s: %w", fieldPurchases, errNoFile), http.StatusBadRequest)
		return
	}

	ctx := withRunMetadata(r.Context(), r)
	cat, _, err := s.service.LoadCatalog(ctx, catalogData)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	ledger, err := s.service.LoadPurchases(ctx, purchaseData)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	merged := s.service.Merge(ctx, cat, ledger)
	preview, truncated := core.UnmatchedPreview(merged.Unmatched)
	writeJSON(w, http.StatusOK, mergeResponse{
		CatalogReport:       cat.Report,
		PurchaseReport:      ledger.Report,
		SkippedPurchaseRows: ledger.Report.MissingPartNumber,
		Matched:             merged.Matched,
		UnmatchedCount:      len(merged.Unmatched),
		Unmatched:           preview,
		UnmatchedTruncated:  truncated,
		Records:             merged.Records,
	})
}

// handleRun executes the full pipeline. HTMX requests get the results
// fragment, ?format=csv gets the detail table, everything else gets JSON.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
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
	s.writeRun(w, r, run)
}

// handleCalculate recomputes results for client-edited records.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	var body calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %w", errInvalidBody, err), uploadStatus(err))
		return
	}

	factors := body.Factors.apply(s.service.DefaultFactors())
	run, err := s.service.CalculateEdited(withRunMetadata(r.Context(), r), body.partRecords(), &factors)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.writeRun(w, r, run)
}

// handleClearCache drops every memoized catalog.
func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	n := s.service.ClearCache(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"cleared": n})
}

func (s *Server) writeRun(w http.ResponseWriter, r *http.Request, run *core.RunResult) {
	switch {
	case wantsCSV(r):
		writeDetailCSV(w, r, run)
	case isHTMX(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.Results(templates.ResultsData{Run: run}).Render(r.Context(), w); err != nil {
			logFromRequest(r).Error("render results", "error", err)
		}
	default:
		writeJSON(w, http.StatusOK, run)
	}
}
