// Package fluidstub is a contract-faithful double of the division-physics
// collaborator. It reproduces the service's HTTP surface, input validation,
// one-experiment-at-a-time discipline, and append-only result history, with
// deterministic synthetic measurements instead of a physical simulation:
// nonzero-remainder experiments report higher peak jitter, the way the real
// settling process behaves.
package fluidstub

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"divlab/domain/experiment"
)

// Options tune the stub's behavior.
type Options struct {
	// SettleDelay is how long an experiment stays active before its result
	// is appended to the history.
	SettleDelay time.Duration
	// NeverSettle keeps every experiment active forever. Used to exercise
	// the harness's settlement-timeout path.
	NeverSettle bool
}

// DefaultSettleDelay approximates the real service's settling time for
// small dividends.
const DefaultSettleDelay = 600 * time.Millisecond

type pending struct {
	id       uuid.UUID
	req      experiment.Request
	startAt  time.Time
	settleAt time.Time
}

// Stub is the in-process collaborator double.
type Stub struct {
	opts Options

	mu      sync.Mutex
	current *pending
	history []experiment.Result
}

// New creates a stub collaborator.
func New(opts Options) *Stub {
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	return &Stub{opts: opts}
}

// Handler returns the stub's HTTP surface, mounted at the same paths as the
// real service.
func (s *Stub) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.POST("/divide", s.handleStart)
	router.GET("/divide/status", s.handleStatus)
	router.GET("/divide/results", s.handleResults)
	return router
}

func (s *Stub) handleStart(c *gin.Context) {
	var req experiment.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	// Validation bounds match the real service.
	switch {
	case req.Dividend <= 0:
		c.String(http.StatusBadRequest, "Dividend must be positive")
		return
	case req.Dividend > 100:
		c.String(http.StatusBadRequest, "Dividend must be <= 100")
		return
	case req.Divisor <= 0:
		c.String(http.StatusBadRequest, "Divisor must be positive")
		return
	case req.Divisor > 20:
		c.String(http.StatusBadRequest, "Divisor must be <= 20")
		return
	case req.Salinity < 0 || req.Salinity > 10:
		c.String(http.StatusBadRequest, "Salinity must be between 0.0 and 10.0")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleDueLocked()

	if s.current != nil {
		c.String(http.StatusConflict, "an experiment is already running")
		return
	}

	now := time.Now()
	p := &pending{
		id:       uuid.New(),
		req:      req,
		startAt:  now,
		settleAt: now.Add(s.opts.SettleDelay),
	}
	s.current = p

	quotient := math.Floor(req.Dividend / req.Divisor)
	remainder := math.Mod(req.Dividend, req.Divisor)

	var message string
	if remainder == 0 {
		message = fmt.Sprintf("Injecting %g bubbles into %g acoustic nodes. Expecting perfect fit.", req.Dividend, req.Divisor)
	} else {
		message = fmt.Sprintf("Injecting %g bubbles into %g acoustic nodes. %g bubbles won't fit, expect turbulence.", req.Dividend, req.Divisor, remainder)
	}

	c.JSON(http.StatusOK, experiment.StartAck{
		ExperimentID:      p.id.String(),
		Dividend:          req.Dividend,
		Divisor:           req.Divisor,
		SalinityBoost:     req.Salinity,
		ExpectedQuotient:  quotient,
		ExpectedRemainder: remainder,
		Message:           message,
	})
}

func (s *Stub) handleStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleDueLocked()

	if s.current == nil {
		c.JSON(http.StatusOK, experiment.Status{Active: false})
		return
	}

	p := s.current
	bubbles := int(p.req.Dividend)
	nodes := int(p.req.Divisor)
	turbulence := synthetic(p.req).TurbulenceEnergy / 2
	ticks := uint64(time.Since(p.startAt) / (10 * time.Millisecond))

	c.JSON(http.StatusOK, experiment.Status{
		Active:                true,
		Dividend:              &p.req.Dividend,
		Divisor:               &p.req.Divisor,
		BubbleCount:           &bubbles,
		NodeCount:             &nodes,
		AccumulatedTurbulence: &turbulence,
		TicksElapsed:          &ticks,
	})
}

func (s *Stub) handleResults(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settleDueLocked()

	// Copy so the append-only history is never exposed for mutation.
	out := make([]experiment.Result, len(s.history))
	copy(out, s.history)
	c.JSON(http.StatusOK, out)
}

// settleDueLocked finalizes the current experiment if its settling time has
// passed, appending the synthetic result to the history. Caller holds mu.
func (s *Stub) settleDueLocked() {
	if s.current == nil || s.opts.NeverSettle {
		return
	}
	if time.Now().Before(s.current.settleAt) {
		return
	}
	s.history = append(s.history, synthetic(s.current.req))
	s.current = nil
}

// synthetic produces deterministic measurements for a request. Remainder
// experiments report markedly higher jitter; salinity damps the divisible
// baseline slightly, mirroring the laminar-streamlining behavior of the
// real fluid.
func synthetic(req experiment.Request) experiment.Result {
	quotient := math.Floor(req.Dividend / req.Divisor)
	remainder := math.Mod(req.Dividend, req.Divisor)
	divisible := remainder == 0

	baseline := 0.04 + 0.005*quotient - 0.002*req.Salinity
	if baseline < 0.01 {
		baseline = 0.01
	}

	peakJitter := baseline
	velocitySigma := 0.02 + 0.003*quotient
	turbulence := 1.2 + 0.4*quotient
	ticks := uint64(40 + 2*int(req.Dividend))
	interpretation := "Laminar flow: bubbles settled cleanly into nodes."

	if !divisible {
		peakJitter = baseline + 0.25 + 0.1*remainder
		velocitySigma += 0.08 * remainder
		turbulence += 6.5 * remainder
		ticks += uint64(15 * remainder)
		interpretation = fmt.Sprintf("Micro-cavitation: %g displaced bubbles kept jostling for position.", remainder)
	}

	nodes := int(req.Divisor)
	occupancy := make([]int, nodes)
	for i := range occupancy {
		occupancy[i] = int(quotient)
		if i < int(remainder) {
			occupancy[i]++
		}
	}

	return experiment.Result{
		Dividend:         req.Dividend,
		Divisor:          req.Divisor,
		Quotient:         quotient,
		Remainder:        remainder,
		IsDivisible:      divisible,
		TurbulenceEnergy: turbulence,
		ReynoldsNumber:   900 + 250*remainder,
		TicksToSettle:    ticks,
		NodeOccupancy:    occupancy,
		SalinityBoost:    req.Salinity,
		VelocitySigma:    velocitySigma,
		VelocityMean:     0.5 + 0.01*quotient,
		PeakJitter:       peakJitter,
		Interpretation:   interpretation,
	}
}
