package experiment

// DefaultSalinity is the salinity boost applied when a request does not set one.
// Held constant across the battery fixtures.
const DefaultSalinity = 2.0

// Request describes a division experiment submission.
// Divisor is assumed nonzero; the collaborator owns validation of its own bounds.
type Request struct {
	Dividend float64 `json:"dividend"`
	Divisor  float64 `json:"divisor"`
	Salinity float64 `json:"salinity"`
}

// NewRequest builds a request with the default salinity boost.
func NewRequest(dividend, divisor float64) Request {
	return Request{
		Dividend: dividend,
		Divisor:  divisor,
		Salinity: DefaultSalinity,
	}
}

// StartAck is the collaborator's acknowledgement of an accepted submission.
// Only Message is required by the harness; the remaining fields decode when
// the collaborator provides them.
type StartAck struct {
	ExperimentID      string  `json:"experiment_id"`
	Dividend          float64 `json:"dividend"`
	Divisor           float64 `json:"divisor"`
	SalinityBoost     float64 `json:"salinity_boost"`
	ExpectedQuotient  float64 `json:"expected_quotient"`
	ExpectedRemainder float64 `json:"expected_remainder"`
	Message           string  `json:"message"`
}

// Status is the collaborator-reported experiment state. Active is the only
// field the settlement loop acts on; the rest are progress diagnostics.
type Status struct {
	Active                bool     `json:"active"`
	Dividend              *float64 `json:"dividend,omitempty"`
	Divisor               *float64 `json:"divisor,omitempty"`
	BubbleCount           *int     `json:"bubble_count,omitempty"`
	NodeCount             *int     `json:"node_count,omitempty"`
	AccumulatedTurbulence *float64 `json:"accumulated_turbulence,omitempty"`
	TicksElapsed          *uint64  `json:"ticks_elapsed,omitempty"`
}

// Result holds the physical measurements of one settled experiment.
// Immutable once retrieved.
type Result struct {
	Dividend         float64 `json:"dividend"`
	Divisor          float64 `json:"divisor"`
	Quotient         float64 `json:"quotient"`
	Remainder        float64 `json:"remainder"`
	IsDivisible      bool    `json:"is_divisible"`
	TurbulenceEnergy float64 `json:"turbulence_energy"`
	ReynoldsNumber   float64 `json:"reynolds_number"`
	TicksToSettle    uint64  `json:"ticks_to_settle"`
	NodeOccupancy    []int   `json:"node_occupancy"`
	SalinityBoost    float64 `json:"salinity_boost"`
	VelocitySigma    float64 `json:"velocity_sigma"`
	VelocityMean     float64 `json:"velocity_mean"`
	PeakJitter       float64 `json:"peak_jitter"`
	Interpretation   string  `json:"interpretation"`
}

// TestCase is a fixed input fixture. Never mutated.
type TestCase struct {
	Dividend          float64
	Divisor           float64
	ExpectedRemainder float64
}

// RunRecord is derived from one executed TestCase: the fixture's expectation
// joined with the collaborator's reported metrics.
type RunRecord struct {
	Dividend          float64
	Divisor           float64
	ExpectedRemainder float64
	ActualRemainder   float64
	PeakJitter        float64
	IsDivisible       bool
}

// NewRunRecord joins a fixture with its collected result.
func NewRunRecord(tc TestCase, res *Result) RunRecord {
	return RunRecord{
		Dividend:          tc.Dividend,
		Divisor:           tc.Divisor,
		ExpectedRemainder: tc.ExpectedRemainder,
		ActualRemainder:   res.Remainder,
		PeakJitter:        res.PeakJitter,
		IsDivisible:       res.IsDivisible,
	}
}

// DefaultBattery is the fixed fixture list exercised by the no-argument
// entry point: two clean divisions and three with remainders.
func DefaultBattery() []TestCase {
	return []TestCase{
		{Dividend: 6, Divisor: 3, ExpectedRemainder: 0},
		{Dividend: 7, Divisor: 3, ExpectedRemainder: 1},
		{Dividend: 8, Divisor: 3, ExpectedRemainder: 2},
		{Dividend: 9, Divisor: 3, ExpectedRemainder: 0},
		{Dividend: 10, Divisor: 4, ExpectedRemainder: 2},
	}
}
