package valuation

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"autolend-backend/internal/adapter/vinlookup"
	"autolend-backend/internal/infrastructure/metrics"
)

var ErrEmptyVINList = errors.New("vin list cannot be empty")

const (
	SourceAPI       = "api"
	SourceMock      = "mock"
	SourceSimulated = "simulated"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// recentWindow bounds the quote history kept for Stats.
const recentWindow = 100

type Valuation struct {
	VIN            string  `json:"vin"`
	EstimatedValue float64 `json:"estimated_value"`
	Currency       string  `json:"currency"`
	Source         string  `json:"source"`
	Confidence     string  `json:"confidence"`
}

type BatchResult struct {
	VIN     string     `json:"vin"`
	Success bool       `json:"success"`
	Data    *Valuation `json:"data,omitempty"`
	Error   string     `json:"error,omitempty"`
}

type HistoryPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type Stats struct {
	Count        int     `json:"count"`
	HighestValue float64 `json:"highest_value"`
	LowestValue  float64 `json:"lowest_value"`
	AverageValue float64 `json:"average_value"`
}

// Lookup is the outbound price source. Implemented by vinlookup.Client.
type Lookup interface {
	Lookup(ctx context.Context, vin string) vinlookup.Quote
	Configured() bool
}

type Usecase struct {
	lookup Lookup

	mu     sync.Mutex
	recent []float64
}

func NewUsecase(lookup Lookup) *Usecase { return &Usecase{lookup: lookup} }

// Estimate produces a valuation for the VIN. It never fails: upstream
// trouble degrades to a simulated quote inside the lookup client, and the
// provenance is reported through the Source tag.
func (u *Usecase) Estimate(ctx context.Context, vin string) Valuation {
	q := u.lookup.Lookup(ctx, vin)

	source := SourceAPI
	if !q.Live {
		if u.lookup.Configured() {
			source = SourceSimulated
		} else {
			source = SourceMock
		}
	}
	confidence := ConfidenceMedium
	if q.Value > 15000 {
		confidence = ConfidenceHigh
	}

	metrics.ValuationQuotes.WithLabelValues(source).Inc()
	u.record(q.Value)

	return Valuation{
		VIN:            vin,
		EstimatedValue: q.Value,
		Currency:       "USD",
		Source:         source,
		Confidence:     confidence,
	}
}

// EstimateBatch values each VIN independently; per-VIN outcomes are
// reported rather than failing the whole batch.
func (u *Usecase) EstimateBatch(ctx context.Context, vins []string) ([]BatchResult, error) {
	if len(vins) == 0 {
		return nil, ErrEmptyVINList
	}
	out := make([]BatchResult, 0, len(vins))
	for _, vin := range vins {
		if err := ctx.Err(); err != nil {
			out = append(out, BatchResult{VIN: vin, Error: err.Error()})
			continue
		}
		v := u.Estimate(ctx, vin)
		out = append(out, BatchResult{VIN: vin, Success: true, Data: &v})
	}
	return out, nil
}

// History returns a synthetic three-point depreciation series anchored on a
// randomized base in the simulated pricing range. Real history would need
// persisted valuations, which this service does not keep.
func (u *Usecase) History(vin string) []HistoryPoint {
	base := float64(rand.IntN(8000) + 7000)
	now := time.Now().UTC()
	return []HistoryPoint{
		{Date: now.AddDate(-1, 0, 0).Format("2006-01-02"), Value: base + 3000},
		{Date: now.AddDate(0, -6, 0).Format("2006-01-02"), Value: base + 1500},
		{Date: now.Format("2006-01-02"), Value: base},
	}
}

// RecentStats aggregates the quotes served since startup, capped at the
// last recentWindow entries.
func (u *Usecase) RecentStats() Stats {
	u.mu.Lock()
	defer u.mu.Unlock()

	s := Stats{Count: len(u.recent)}
	if s.Count == 0 {
		return s
	}
	s.HighestValue = u.recent[0]
	s.LowestValue = u.recent[0]
	var sum float64
	for _, v := range u.recent {
		if v > s.HighestValue {
			s.HighestValue = v
		}
		if v < s.LowestValue {
			s.LowestValue = v
		}
		sum += v
	}
	s.AverageValue = sum / float64(s.Count)
	return s
}

func (u *Usecase) record(v float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.recent = append(u.recent, v)
	if len(u.recent) > recentWindow {
		u.recent = u.recent[len(u.recent)-recentWindow:]
	}
}
