package web

// handlers_common.go holds request parsing shared by the page and API
// handlers.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonMunkholm/pcrcalc/internal/core"
	"github.com/JonMunkholm/pcrcalc/internal/web/templates"
)

// formOverhead is the allowance for multipart boundaries and text fields on
// top of the two file parts.
const formOverhead = 1 << 20

// Form field names used by the index page and the multipart API.
const (
	fieldCatalog     = "catalog"
	fieldPurchases   = "purchases"
	fieldVirginEF    = "virgin_ef"
	fieldPCRBenefit  = "pcr_benefit"
	fieldBaselinePCR = "baseline_pcr"
	fieldSearch      = "search"
	fieldSelected    = "selected"
)

var errInvalidBody = errors.New("invalid request body")

// parseUpload bounds the request body and parses the multipart form.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) error {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxSize+formOverhead)
	return r.ParseMultipartForm(maxSize)
}

// readFormFile returns the contents of a file part, or nil if the part is
// absent.
func (s *Server) readFormFile(r *http.Request, field string) ([]byte, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if header.Size > s.cfg.Upload.MaxFileSize {
		return nil, fmt.Errorf("%s %q: file too large (%d bytes, limit %d)",
			field, header.Filename, header.Size, s.cfg.Upload.MaxFileSize)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	return data, nil
}

// parseRunForm builds a RunRequest from a parsed multipart form.
func (s *Server) parseRunForm(r *http.Request) (core.RunRequest, error) {
	var req core.RunRequest
	var err error

	if req.Catalog, err = s.readFormFile(r, fieldCatalog); err != nil {
		return req, err
	}
	if req.Purchases, err = s.readFormFile(r, fieldPurchases); err != nil {
		return req, err
	}

	factors, err := parseFactors(r, s.service.DefaultFactors())
	if err != nil {
		return req, err
	}
	req.Factors = &factors
	req.Search = strings.TrimSpace(r.FormValue(fieldSearch))
	req.Selected = splitList(r.FormValue(fieldSelected))
	return req, nil
}

// parseFactors overlays any factor form fields onto base. Blank fields keep
// the base value.
func parseFactors(r *http.Request, base core.EmissionFactors) (core.EmissionFactors, error) {
	fields := []struct {
		name string
		dst  *float64
	}{
		{fieldVirginEF, &base.VirginEF},
		{fieldPCRBenefit, &base.PCRConversionBenefit},
		{fieldBaselinePCR, &base.CurrentBaselinePCRPercent},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(r.FormValue(f.name))
		if raw == "" {
			continue
		}
		v, ok := core.ParseNumeric(raw)
		if !ok {
			return base, fmt.Errorf("%w: %s %q is not a number", core.ErrInvalidFactors, f.name, raw)
		}
		*f.dst = v
	}
	return base, base.Validate()
}

// splitList splits a comma or newline separated list, dropping blanks.
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// uploadStatus picks the status for a failed upload parse.
func uploadStatus(err error) int {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) || strings.Contains(err.Error(), "too large") {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// flexNumber accepts a JSON number or a numeric string such as "1,000".
// Unparseable strings decode as 0 so edited cells behave like blank inputs.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = flexNumber(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected number or string, got %s", b)
	}
	v, _ := core.ParseNumeric(s)
	*n = flexNumber(v)
	return nil
}

// recordInput is one client-edited detail row.
type recordInput struct {
	PartNumber  string     `json:"partNumber"`
	Description string     `json:"description"`
	WeightGrams flexNumber `json:"weightGrams"`
	PCRPercent  flexNumber `json:"pcrPercent"`
	Quantity    flexNumber `json:"quantity"`
}

// factorsInput overrides individual default factors.
type factorsInput struct {
	VirginEF                  *float64 `json:"virginEf"`
	PCRConversionBenefit      *float64 `json:"pcrConversionBenefit"`
	CurrentBaselinePCRPercent *float64 `json:"currentBaselinePcrPercent"`
}

func (in *factorsInput) apply(base core.EmissionFactors) core.EmissionFactors {
	if in == nil {
		return base
	}
	if in.VirginEF != nil {
		base.VirginEF = *in.VirginEF
	}
	if in.PCRConversionBenefit != nil {
		base.PCRConversionBenefit = *in.PCRConversionBenefit
	}
	if in.CurrentBaselinePCRPercent != nil {
		base.CurrentBaselinePCRPercent = *in.CurrentBaselinePCRPercent
	}
	return base
}

// calculateRequest is the JSON body of POST /api/calculate.
type calculateRequest struct {
	Records []recordInput `json:"records"`
	Factors *factorsInput `json:"factors,omitempty"`
}

func (c calculateRequest) partRecords() []core.PartRecord {
	out := make([]core.PartRecord, len(c.Records))
	for i, r := range c.Records {
		out[i] = core.PartRecord{
			PartNumber:  strings.TrimSpace(r.PartNumber),
			Description: strings.TrimSpace(r.Description),
			WeightGrams: float64(r.WeightGrams),
			PCRPercent:  float64(r.PCRPercent),
			Quantity:    float64(r.Quantity),
		}
	}
	return out
}

// wantsCSV reports whether the caller asked for the detail table as CSV.
func wantsCSV(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("format"), "csv")
}

// writeDetailCSV streams the detail table as a download.
func writeDetailCSV(w http.ResponseWriter, r *http.Request, run *core.RunResult) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pcr_detail_`+run.RunID+`.csv"`)
	if err := core.WriteDetailCSV(w, run.Result.Details); err != nil {
		logFromRequest(r).Error("write detail csv", "error", err)
	}
}

func (s *Server) indexData() templates.IndexData {
	return templates.IndexData{
		Factors:     s.service.DefaultFactors(),
		CatalogPath: s.service.DefaultCatalogPath(),
		MaxFileSize: s.cfg.Upload.MaxFileSize,
	}
}
