package pipeline

import (
	"github.com/ledgerlens/receipt-engine/internal/common"
	"github.com/ledgerlens/receipt-engine/internal/extract"
)

// Gate applies the caller-side minimum-confidence thresholds to an
// extraction result. The extraction engine itself is policy-free; this is
// the boundary with the transaction-creation workflow.
type Gate struct {
	cfg common.GatingConfig
}

func NewGate(cfg common.GatingConfig) Gate {
	if cfg.MinOverall <= 0 {
		cfg.MinOverall = 0.3
	}
	return Gate{cfg: cfg}
}

// Decision reports whether a result clears the overall gate and which
// individual fields are trustworthy enough for auto-population. A field can
// be distrusted even when the result as a whole is accepted.
type Decision struct {
	Accept bool `json:"accept"`

	UseAmount   bool `json:"use_amount"`
	UseDate     bool `json:"use_date"`
	UseVendor   bool `json:"use_vendor"`
	UseCategory bool `json:"use_category"`
}

// Evaluate applies the configured thresholds.
func (g Gate) Evaluate(res extract.Result) Decision {
	return Decision{
		Accept:      res.OverallConfidence >= g.cfg.MinOverall,
		UseAmount:   res.Amount.Present() && res.Amount.Confidence >= g.cfg.MinAmount,
		UseDate:     res.Date.Present() && res.Date.Confidence >= g.cfg.MinDate,
		UseVendor:   res.Vendor.Present() && res.Vendor.Confidence >= g.cfg.MinVendor,
		UseCategory: res.Category.Present() && res.Category.Confidence >= g.cfg.MinCategory,
	}
}

// Reject converts a failed decision into the error the transaction-creation
// workflow reports; nil when the decision accepts.
func (g Gate) Reject(d Decision) error {
	if d.Accept {
		return nil
	}
	return common.NewAppError("INSUFFICIENT_DATA",
		"extraction confidence below acceptance threshold", common.ErrInsufficientData)
}
