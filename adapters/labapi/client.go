// Package labapi implements the HTTP client for the division-physics
// collaborator service.
package labapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"divlab/domain/experiment"
	"divlab/internal"
	"divlab/internal/errors"
)

// Client talks to the collaborator over its three-endpoint HTTP surface.
// It keeps no state between calls beyond configuration.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *internal.Logger
}

// NewClient creates a collaborator client with a bounded per-call timeout.
func NewClient(baseURL string, timeout time.Duration, logger *internal.Logger) *Client {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Start submits a division experiment via POST /divide. Any transport
// failure or non-2xx status is an error; the caller decides whether the
// case is retried (it is not).
func (c *Client) Start(ctx context.Context, req experiment.Request) (*experiment.StartAck, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode experiment request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/divide", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build start request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("submitting experiment: %.0f / %.0f (salinity %.1f)", req.Dividend, req.Divisor, req.Salinity)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.WithCode(errors.CodeCollaboratorUnreachable,
			fmt.Errorf("%w: %v", experiment.ErrStartFailed, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read start response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.WithCode(errors.CodeStartRejected,
			experiment.NewStartRejectedError(resp.StatusCode, string(respBody)))
	}

	var ack experiment.StartAck
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return nil, errors.WithCode(errors.CodeDecodeFailed,
			errors.Wrap(err, "failed to decode start acknowledgement"))
	}
	return &ack, nil
}

// Status reads GET /divide/status. Read-only; never alters collaborator state.
func (c *Client) Status(ctx context.Context) (*experiment.Status, error) {
	var status experiment.Status
	if err := c.getJSON(ctx, "/divide/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Results reads GET /divide/results: the full experiment history, oldest
// first. Each entry is checked for the required measurement fields before
// being accepted; a partially-filled result is a collection failure.
func (c *Client) Results(ctx context.Context) ([]experiment.Result, error) {
	var raw []rawResult
	if err := c.getJSON(ctx, "/divide/results", &raw); err != nil {
		return nil, err
	}

	results := make([]experiment.Result, 0, len(raw))
	for i, r := range raw {
		res, err := r.validate()
		if err != nil {
			return nil, errors.WithCode(errors.CodeResultIncomplete,
				errors.Wrapf(err, "result %d is unusable", i))
		}
		results = append(results, *res)
	}
	return results, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %s", path)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return errors.WithCode(errors.CodeCollaboratorUnreachable,
			errors.Wrapf(err, "request to %s failed", path))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return errors.New(errors.CodeCollaboratorUnreachable,
			fmt.Sprintf("GET %s returned status %d: %s", path, resp.StatusCode, string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WithCode(errors.CodeDecodeFailed,
			errors.Wrapf(err, "failed to decode response from %s", path))
	}
	return nil
}

// rawResult decodes the collaborator's loosely-typed result JSON. Required
// measurement fields are pointers so absence is distinguishable from zero.
type rawResult struct {
	Dividend         float64  `json:"dividend"`
	Divisor          float64  `json:"divisor"`
	Quotient         *float64 `json:"quotient"`
	Remainder        *float64 `json:"remainder"`
	IsDivisible      *bool    `json:"is_divisible"`
	TurbulenceEnergy *float64 `json:"turbulence_energy"`
	ReynoldsNumber   float64  `json:"reynolds_number"`
	TicksToSettle    *uint64  `json:"ticks_to_settle"`
	NodeOccupancy    []int    `json:"node_occupancy"`
	SalinityBoost    float64  `json:"salinity_boost"`
	VelocitySigma    *float64 `json:"velocity_sigma"`
	VelocityMean     float64  `json:"velocity_mean"`
	PeakJitter       *float64 `json:"peak_jitter"`
	Interpretation   string   `json:"interpretation"`
}

func (r *rawResult) validate() (*experiment.Result, error) {
	required := []struct {
		name    string
		present bool
	}{
		{"quotient", r.Quotient != nil},
		{"remainder", r.Remainder != nil},
		{"is_divisible", r.IsDivisible != nil},
		{"peak_jitter", r.PeakJitter != nil},
		{"velocity_sigma", r.VelocitySigma != nil},
		{"turbulence_energy", r.TurbulenceEnergy != nil},
		{"ticks_to_settle", r.TicksToSettle != nil},
		{"node_occupancy", r.NodeOccupancy != nil},
	}
	for _, f := range required {
		if !f.present {
			return nil, experiment.NewIncompleteResultError(f.name)
		}
	}

	return &experiment.Result{
		Dividend:         r.Dividend,
		Divisor:          r.Divisor,
		Quotient:         *r.Quotient,
		Remainder:        *r.Remainder,
		IsDivisible:      *r.IsDivisible,
		TurbulenceEnergy: *r.TurbulenceEnergy,
		ReynoldsNumber:   r.ReynoldsNumber,
		TicksToSettle:    *r.TicksToSettle,
		NodeOccupancy:    r.NodeOccupancy,
		SalinityBoost:    r.SalinityBoost,
		VelocitySigma:    *r.VelocitySigma,
		VelocityMean:     r.VelocityMean,
		PeakJitter:       *r.PeakJitter,
		Interpretation:   r.Interpretation,
	}, nil
}
