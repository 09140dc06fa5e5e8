// Package pipeline wires the extraction stages into the single inbound
// boundary: image bytes in, a confidence-scored extraction result out. One
// linear pass per request, no shared mutable state across requests, and the
// only suspension point is the bounded remote vision call.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerlens/receipt-engine/internal/common"
	"github.com/ledgerlens/receipt-engine/internal/extract"
	"github.com/ledgerlens/receipt-engine/internal/imagegate"
	"github.com/ledgerlens/receipt-engine/internal/vision"
)

// Transaction type and classification hints accepted at the boundary.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"

	ClassificationPersonal = "personal"
	ClassificationBusiness = "business"
)

// Input is the immutable per-request value handed to Extract.
type Input struct {
	Image           []byte
	ContentType     string
	TransactionType string // TransactionIncome | TransactionExpense
	Classification  string // ClassificationPersonal | ClassificationBusiness
}

// Config holds pipeline-level behavior knobs.
type Config struct {
	DefaultCurrency string // used for structured extras; default "COP"
}

type Pipeline struct {
	cfg        Config
	gate       *imagegate.Gate
	recognizer vision.Recognizer
	logger     *slog.Logger
}

func New(cfg Config, gate *imagegate.Gate, recognizer vision.Recognizer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "COP"
	}
	return &Pipeline{cfg: cfg, gate: gate, recognizer: recognizer, logger: logger}
}

// Extract runs the full pipeline: gate, recognize, interpret, extract, fuse.
// Image and vision errors are terminal for the request; field-level
// extraction failures only degrade the affected field. Any panic below the
// boundary is normalized into a generic extraction failure without leaking
// internal detail.
func (p *Pipeline) Extract(ctx context.Context, in Input) (res extract.Result, err error) {
	rid := uuid.New().String()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline.extract.panic",
				"req_id", rid, "panic", fmt.Sprint(r),
				"elapsed_ms", time.Since(start).Milliseconds())
			res = extract.Result{}
			err = common.NewAppError("OCR_PROCESSING_ERROR",
				"receipt extraction failed", common.ErrExtractionFailed)
		}
	}()

	p.logger.Info("pipeline.extract.start",
		"req_id", rid,
		"image_bytes", len(in.Image),
		"content_type", in.ContentType,
		"transaction_type", in.TransactionType,
		"classification", in.Classification,
	)

	// Gate before any metered call.
	image, contentType, err := p.gate.Prepare(in.Image, in.ContentType)
	if err != nil {
		return extract.Result{}, err
	}

	out, err := p.recognizer.Recognize(ctx, vision.Request{
		Image:           image,
		ContentType:     contentType,
		TransactionType: in.TransactionType,
		Classification:  in.Classification,
		DefaultCurrency: p.cfg.DefaultCurrency,
	})
	if err != nil {
		return extract.Result{}, err
	}

	decision := extract.Interpret(out)
	if decision.Structured != nil {
		res = p.fromStructured(decision.Structured, in)
	} else {
		res = p.fromTranscript(decision.Transcript, in)
	}

	p.logger.Info("pipeline.extract.ok",
		"req_id", rid,
		"structured", decision.Structured != nil,
		"amount_present", res.Amount.Present(),
		"date_present", res.Date.Present(),
		"vendor_present", res.Vendor.Present(),
		"category_present", res.Category.Present(),
		"overall_confidence", res.OverallConfidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (p *Pipeline) fromTranscript(transcript string, in Input) extract.Result {
	amount := extract.ExtractAmount(transcript)
	date := extract.ExtractDate(transcript)
	vendor := extract.ExtractVendor(transcript)

	vendorName := ""
	if vendor.Present() {
		vendorName = *vendor.Value
	}
	category := extract.SuggestCategory(transcript, vendorName, in.TransactionType)

	return extract.Result{
		Amount:   amount,
		Date:     date,
		Vendor:   vendor,
		Category: category,
		OverallConfidence: extract.Fuse(
			amount.Confidence, date.Confidence,
			category.Confidence, vendor.Confidence),
		ExtractedText:   extract.BoundTranscript(transcript),
		TransactionType: in.TransactionType,
		Classification:  in.Classification,
	}
}

func (p *Pipeline) fromStructured(payload map[string]any, in Input) extract.Result {
	sf := extract.MapStructured(payload, p.cfg.DefaultCurrency, p.logger)

	vendorName := ""
	if sf.Vendor.Present() {
		vendorName = *sf.Vendor.Value
	}
	category := extract.SuggestCategory(sf.ExtractedText, vendorName, in.TransactionType)

	// The capability's own overall confidence is honored when provided;
	// exactly zero means "not provided" and triggers the weighted fallback.
	overall := sf.Overall
	if overall == 0 {
		overall = extract.Fuse(
			sf.Amount.Confidence, sf.Date.Confidence,
			category.Confidence, sf.Vendor.Confidence)
	}

	return extract.Result{
		Amount:            sf.Amount,
		Date:              sf.Date,
		Vendor:            sf.Vendor,
		Category:          category,
		OverallConfidence: overall,
		ExtractedText:     extract.BoundTranscript(sf.ExtractedText),
		StructuredExtras:  sf.Extras,
		TransactionType:   in.TransactionType,
		Classification:    in.Classification,
	}
}
