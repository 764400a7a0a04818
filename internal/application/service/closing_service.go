package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/cashdesk-api/internal/domain/cashclosing"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/internal/domain/session"
	"github.com/sangkips/cashdesk-api/internal/logger"
	"github.com/sangkips/cashdesk-api/internal/observability/metrics"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// InvoiceSummarizer totals invoices of a window
type InvoiceSummarizer interface {
	Summarize(ctx context.Context, start, end time.Time) (cashclosing.Summary, error)
}

// ClosingOptions configures the closing workflow
type ClosingOptions struct {
	Location       *time.Location
	HistoryDefault int
	HistoryMax     int
	Now            func() time.Time
}

// ClosingService runs the end-of-day cash closing
type ClosingService struct {
	summarizer  InvoiceSummarizer
	closingRepo repository.ClosingRepository
	opts        ClosingOptions
	log         zerolog.Logger
}

// NewClosingService creates a new closing service
func NewClosingService(summarizer InvoiceSummarizer, closingRepo repository.ClosingRepository, opts ClosingOptions) *ClosingService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HistoryDefault <= 0 {
		opts.HistoryDefault = 20
	}
	if opts.HistoryMax <= 0 {
		opts.HistoryMax = 500
	}
	return &ClosingService{
		summarizer:  summarizer,
		closingRepo: closingRepo,
		opts:        opts,
		log:         logger.WithComponent("closings"),
	}
}

// ClosingPreview is what the closing form shows before the operator commits
type ClosingPreview struct {
	Day                string              `json:"day"`
	WindowStart        time.Time           `json:"window_start"`
	WindowEnd          time.Time           `json:"window_end"`
	Summary            cashclosing.Summary `json:"summary"`
	Prior              *entity.CashClosing `json:"prior,omitempty"`
	Figures            cashclosing.Figures `json:"figures"`
	SummaryUnavailable bool                `json:"summary_unavailable"`
	PriorUnavailable   bool                `json:"prior_unavailable"`
}

// Preview computes the default figures of day. Read failures degrade to
// zeros and are flagged instead of failing the request.
func (s *ClosingService) Preview(ctx context.Context, day *time.Time) (*ClosingPreview, error) {
	start, end := s.window(day)
	p := &ClosingPreview{
		Day:         start.Format(time.DateOnly),
		WindowStart: start,
		WindowEnd:   end,
	}

	summary, err := s.summarizer.Summarize(ctx, start, end)
	if err != nil {
		s.log.Warn().Err(err).Str("day", p.Day).Msg("preview without invoice totals")
		summary = cashclosing.ZeroSummary()
		p.SummaryUnavailable = true
	}
	p.Summary = summary

	prior, err := s.closingRepo.GetLatest(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("preview without prior closing")
		prior = nil
		p.PriorUnavailable = true
	}
	p.Prior = prior

	figures, err := cashclosing.Compute(summary, prior, cashclosing.Overrides{})
	if err != nil {
		return nil, err
	}
	p.Figures = figures
	return p, nil
}

// CreateClosingInput represents the create closing input
type CreateClosingInput struct {
	// Day selects the business day to summarize; nil means today.
	Day           *time.Time
	ManualOpening *decimal.Decimal
	ManualClosing *decimal.Decimal
	Notes         *string
	// ExpectedPriorID is the latest closing the operator saw; uuid.Nil means
	// "none yet". When nil no check is made beyond the write-time guard.
	ExpectedPriorID *uuid.UUID
}

// Create computes and records a closing.
//
// Overrides are validated before anything is read. The record is written
// only if no other closing was recorded since the prior one was read.
func (s *ClosingService) Create(ctx context.Context, input *CreateClosingInput) (rec *entity.CashClosing, err error) {
	started := time.Now()
	defer func() {
		metrics.ObserveClosing(closingResult(err), time.Since(started))
	}()

	overrides := cashclosing.Overrides{OpeningCash: input.ManualOpening, ClosingCash: input.ManualClosing}
	if err := overrides.Validate(); err != nil {
		return nil, invalidOverride(err)
	}

	start, end := s.window(input.Day)
	summary, err := s.summarizer.Summarize(ctx, start, end)
	if err != nil {
		return nil, err
	}

	prior, err := s.closingRepo.GetLatest(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("prior closing read failed")
		return nil, apperror.NewDataUnavailableError("The previous closing could not be read")
	}

	if input.ExpectedPriorID != nil && !matchesPrior(prior, *input.ExpectedPriorID) {
		return nil, apperror.NewStaleError("Another closing was recorded meanwhile; reload and try again")
	}

	figures, err := cashclosing.Compute(summary, prior, overrides)
	if err != nil {
		return nil, invalidOverride(err)
	}

	sess, _ := session.FromContext(ctx)
	rec = &entity.CashClosing{
		Date:         s.opts.Now(),
		BusinessDay:  start,
		OperatorID:   sess.OperatorID(),
		OperatorName: sess.OperatorName(),
		OpeningCash:  figures.OpeningCash,
		ClosingCash:  figures.ClosingCash,
		TotalSales:   figures.TotalSales,
		TotalCash:    figures.TotalCash,
		TotalCard:    figures.TotalCard,
		InvoiceCount: figures.InvoiceCount,
		Notes:        cleanNotes(input.Notes),
	}
	var priorID *uuid.UUID
	if prior != nil {
		id := prior.ID
		priorID = &id
		rec.PriorClosingID = &id
	}

	if err := s.closingRepo.CreateIfLatest(ctx, rec, priorID); err != nil {
		if errors.Is(err, repository.ErrStaleClosing) {
			return nil, apperror.NewStaleError("Another closing was recorded meanwhile; reload and try again")
		}
		s.log.Error().Err(err).Msg("closing not stored")
		return nil, apperror.NewStorageUnavailableError("The closing could not be saved; nothing was recorded")
	}

	s.log.Info().
		Str("id", rec.ID.String()).
		Str("day", start.Format(time.DateOnly)).
		Str("operator", rec.OperatorName).
		Str("opening", rec.OpeningCash.StringFixed(2)).
		Str("closing", rec.ClosingCash.StringFixed(2)).
		Int("invoices", rec.InvoiceCount).
		Msg("closing recorded")
	return rec, nil
}

// ListRecent returns the latest closings, newest first. limit <= 0 selects
// the default and values above the maximum are capped.
func (s *ClosingService) ListRecent(ctx context.Context, limit int) ([]entity.CashClosing, error) {
	closings, err := s.closingRepo.ListRecent(ctx, s.ClampLimit(limit))
	if err != nil {
		return nil, apperror.NewDataUnavailableError("Closing history could not be read")
	}
	if closings == nil {
		closings = []entity.CashClosing{}
	}
	return closings, nil
}

// Get retrieves one closing
func (s *ClosingService) Get(ctx context.Context, id uuid.UUID) (*entity.CashClosing, error) {
	rec, err := s.closingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewDataUnavailableError("Closing history could not be read")
	}
	if rec == nil {
		return nil, apperror.NewNotFoundError("Closing")
	}
	return rec, nil
}

// ClampLimit applies the history default and maximum to limit
func (s *ClosingService) ClampLimit(limit int) int {
	if limit <= 0 {
		return s.opts.HistoryDefault
	}
	if limit > s.opts.HistoryMax {
		return s.opts.HistoryMax
	}
	return limit
}

// Location is the zone business days are cut in
func (s *ClosingService) Location() *time.Location {
	return s.opts.Location
}

func (s *ClosingService) window(day *time.Time) (time.Time, time.Time) {
	t := s.opts.Now()
	if day != nil {
		t = *day
	}
	return cashclosing.DayWindow(t, s.opts.Location)
}

func matchesPrior(prior *entity.CashClosing, expected uuid.UUID) bool {
	if prior == nil {
		return expected == uuid.Nil
	}
	return prior.ID == expected
}

func invalidOverride(err error) error {
	switch {
	case errors.Is(err, cashclosing.ErrNegativeOpening):
		return apperror.NewInvalidInputError("Opening cash must not be negative",
			apperror.FieldError{Field: "manual_opening", Message: "must be zero or more"})
	case errors.Is(err, cashclosing.ErrNegativeClosing):
		return apperror.NewInvalidInputError("Closing cash must not be negative",
			apperror.FieldError{Field: "manual_closing", Message: "must be zero or more"})
	}
	return apperror.NewInvalidInputError(err.Error())
}

func closingResult(err error) string {
	if err == nil {
		return metrics.ResultSuccess
	}
	appErr := apperror.GetAppError(err)
	switch appErr.Reason {
	case apperror.ReasonInvalidInput:
		return metrics.ResultInvalid
	case apperror.ReasonDataUnavailable, apperror.ReasonStorageUnavailable:
		return metrics.ResultUnavailable
	case apperror.ReasonStale:
		return metrics.ResultConflict
	}
	return metrics.ResultError
}

func cleanNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	n := strings.TrimSpace(*notes)
	if n == "" {
		return nil
	}
	return &n
}
