package valuermock

import (
	"context"

	"autolend-backend/internal/usecase/valuation"
)

// Valuer returns a fixed estimate, standing in for the valuation usecase.
type Valuer struct {
	Value      float64
	Source     string
	Confidence string
	// Calls records the VINs estimated, in order.
	Calls []string
}

func (v *Valuer) Estimate(_ context.Context, vin string) valuation.Valuation {
	v.Calls = append(v.Calls, vin)
	source := v.Source
	if source == "" {
		source = valuation.SourceMock
	}
	return valuation.Valuation{
		VIN:            vin,
		EstimatedValue: v.Value,
		Currency:       "USD",
		Source:         source,
		Confidence:     v.Confidence,
	}
}
