package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/JonMunkholm/pcrcalc/internal/config"
	"github.com/JonMunkholm/pcrcalc/internal/logging"
	"github.com/google/uuid"
)

// Service runs the catalog → purchases → merge → calculate pipeline.
// It owns the catalog cache and the configured default factors, and is
// safe for concurrent use.
type Service struct {
	cache       *CatalogCache
	limiter     *RunLimiter
	catalogPath string
	factors     EmissionFactors
	obs         Observer
}

// NewService creates a Service from cfg. A nil obs discards pipeline events.
func NewService(cfg *config.Config, obs Observer) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if obs == nil {
		obs = NopObserver{}
	}

	factors := EmissionFactors{
		VirginEF:                  cfg.Factors.VirginEF,
		PCRConversionBenefit:      cfg.Factors.PCRBenefit,
		CurrentBaselinePCRPercent: cfg.Factors.BaselinePCRPercent,
	}
	if err := factors.Validate(); err != nil {
		return nil, fmt.Errorf("default factors: %w", err)
	}

	cache, err := NewCatalogCache(cfg.Catalog.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Service{
		cache:       cache,
		limiter:     NewRunLimiter(cfg.Run.MaxConcurrent, cfg.Run.MaxWait),
		catalogPath: cfg.Catalog.DefaultPath,
		factors:     factors,
		obs:         obs,
	}, nil
}

// DefaultFactors returns the configured factors offered as form defaults.
func (s *Service) DefaultFactors() EmissionFactors {
	return s.factors
}

// DefaultCatalogPath returns the catalog file used when none is uploaded.
func (s *Service) DefaultCatalogPath() string {
	return s.catalogPath
}

// LoadCatalog loads the catalog in data, or the default catalog file when
// data is nil. Loads are memoized by source content.
func (s *Service) LoadCatalog(ctx context.Context, data []byte) (*Catalog, bool, error) {
	start := time.Now()
	defer func() { s.obs.StageDuration(StageCatalog, time.Since(start)) }()

	source := "upload"
	if data == nil {
		source = s.catalogPath
		b, err := os.ReadFile(s.catalogPath)
		if err != nil {
			s.obs.CatalogLoaded(OutcomeError, LoadReport{})
			return nil, false, fmt.Errorf("%w: %s: %w", ErrNoCatalog, s.catalogPath, err)
		}
		data = b
	}

	cat, hit, err := s.cache.Load(data)
	if err != nil {
		s.obs.CatalogLoaded(OutcomeError, LoadReport{})
		return nil, false, err
	}

	outcome := OutcomeLoaded
	if hit {
		outcome = OutcomeCached
	}
	s.obs.CatalogLoaded(outcome, cat.Report)

	logging.FromContext(ctx).Debug("catalog ready",
		"source", source,
		"outcome", outcome,
		"parts", cat.Report.Kept,
		"dropped", cat.Report.Dropped(),
	)
	return cat, hit, nil
}

// LoadPurchases loads and aggregates a purchase ledger.
func (s *Service) LoadPurchases(ctx context.Context, data []byte) (*PurchaseLedger, error) {
	start := time.Now()
	defer func() { s.obs.StageDuration(StagePurchases, time.Since(start)) }()

	ledger, err := LoadPurchases(data)
	if err != nil {
		s.obs.PurchasesLoaded(OutcomeError, LoadReport{})
		return nil, err
	}
	s.obs.PurchasesLoaded(OutcomeLoaded, ledger.Report)

	logging.FromContext(ctx).Debug("purchases ready",
		"parts", len(ledger.Records),
		"skipped", ledger.Report.MissingPartNumber,
	)
	return ledger, nil
}

// Merge applies ledger quantities to the catalog records.
func (s *Service) Merge(ctx context.Context, cat *Catalog, ledger *PurchaseLedger) MergeResult {
	start := time.Now()
	res := MergeQuantities(cat.Records, ledger)
	s.obs.StageDuration(StageMerge, time.Since(start))
	s.obs.Merged(res.Matched, len(res.Unmatched))

	if len(res.Unmatched) > 0 {
		preview, _ := UnmatchedPreview(res.Unmatched)
		logging.FromContext(ctx).Warn("purchased parts not in catalog",
			"count", len(res.Unmatched),
			"preview", preview,
		)
	}
	return res
}

// Calculate validates f and computes results for records.
func (s *Service) Calculate(ctx context.Context, records []PartRecord, f EmissionFactors) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	res := Calculate(records, f)
	s.obs.StageDuration(StageCalculate, time.Since(start))
	s.obs.Calculated(res.Totals.Parts, res.Totals.AvoidedMetricTons)

	return res, nil
}

// ClearCache drops every memoized catalog.
func (s *Service) ClearCache(ctx context.Context) int {
	n := s.cache.Len()
	s.cache.Purge()
	logging.FromContext(ctx).Info("catalog cache cleared", "entries", n)
	return n
}

// RunStatus reports how many runs are in progress.
func (s *Service) RunStatus() RunLimiterStatus {
	return s.limiter.Status()
}

// WaitForRuns blocks until in-flight runs finish or ctx is done.
func (s *Service) WaitForRuns(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// InvalidateCatalog drops the memoized catalog for data, if present.
func (s *Service) InvalidateCatalog(data []byte) bool {
	return s.cache.Invalidate(data)
}

// RunRequest describes one end-to-end calculation.
type RunRequest struct {
	// Catalog is the uploaded catalog; nil selects the default catalog.
	Catalog []byte
	// Purchases is the optional purchase ledger.
	Purchases []byte
	// Factors overrides the configured defaults when non-nil.
	Factors *EmissionFactors
	// Search narrows the visible records before selection.
	Search string
	// Selected lists part numbers to include; empty selects every visible record.
	Selected []string
	// Edits are applied to the selection before calculating.
	Edits []RecordEdit
}

// RunResult is everything a results view needs from one run.
type RunResult struct {
	RunID               string          `json:"runId"`
	CatalogReport       LoadReport      `json:"catalogReport"`
	CatalogCached       bool            `json:"catalogCached"`
	PurchaseReport      *LoadReport     `json:"purchaseReport,omitempty"`
	SkippedPurchaseRows int             `json:"skippedPurchaseRows"`
	Matched             int             `json:"matched"`
	UnmatchedCount      int             `json:"unmatchedCount"`
	Unmatched           []string        `json:"unmatched"`
	UnmatchedTruncated  bool            `json:"unmatchedTruncated"`
	Visible             int             `json:"visible"`
	Selected            []PartRecord    `json:"selected"`
	Result              Result          `json:"result"`
	Summary             Summary         `json:"summary"`
	Factors             EmissionFactors `json:"factors"`
}

// Run executes the full pipeline for req. A purchase schema error fails the
// run; the catalog it loaded stays cached.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	runID := uuid.New().String()
	log := logging.WithFields(ctx,
		"run_id", runID,
		"channel", ChannelFromContext(ctx),
		"client_ip", ClientIPFromContext(ctx),
	)
	start := time.Now()

	factors := s.factors
	if req.Factors != nil {
		factors = *req.Factors
	}
	if err := factors.Validate(); err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		log.Warn("run rejected", "error", err)
		return nil, err
	}
	defer s.limiter.Release()

	cat, cached, err := s.LoadCatalog(ctx, req.Catalog)
	if err != nil {
		log.Warn("catalog load failed", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &RunResult{
		RunID:         runID,
		CatalogReport: cat.Report,
		CatalogCached: cached,
		Factors:       factors,
	}

	var ledger *PurchaseLedger
	if len(req.Purchases) > 0 {
		ledger, err = s.LoadPurchases(ctx, req.Purchases)
		if err != nil {
			log.Warn("purchase load failed", "error", err)
			return nil, err
		}
		report := ledger.Report
		out.PurchaseReport = &report
		out.SkippedPurchaseRows = report.MissingPartNumber
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := s.Merge(ctx, cat, ledger)
	out.Matched = merged.Matched
	out.UnmatchedCount = len(merged.Unmatched)
	out.Unmatched, out.UnmatchedTruncated = UnmatchedPreview(merged.Unmatched)

	visible := Search(merged.Records, req.Search)
	out.Visible = len(visible)

	selected := visible
	if len(req.Selected) > 0 {
		selected = Select(visible, req.Selected)
	}
	selected = ApplyEdits(selected, req.Edits)
	out.Selected = selected

	res, err := s.Calculate(ctx, selected, factors)
	if err != nil {
		return nil, err
	}
	out.Result = res
	out.Summary = FormatSummary(res.Totals)

	log.Info("run complete",
		"parts", res.Totals.Parts,
		"matched", out.Matched,
		"unmatched", out.UnmatchedCount,
		"avoided_t", res.Totals.AvoidedMetricTons,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// CalculateEdited recomputes results for client-edited records. Records are
// sanitized before use, so free-form edits cannot push PCR% outside [0, 100].
func (s *Service) CalculateEdited(ctx context.Context, records []PartRecord, f *EmissionFactors) (*RunResult, error) {
	factors := s.factors
	if f != nil {
		factors = *f
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	clean := ApplyEdits(records, nil)
	res, err := s.Calculate(ctx, clean, factors)
	if err != nil {
		return nil, err
	}
	return &RunResult{
		RunID:    uuid.New().String(),
		Visible:  len(clean),
		Selected: clean,
		Result:   res,
		Summary:  FormatSummary(res.Totals),
		Factors:  factors,
	}, nil
}
