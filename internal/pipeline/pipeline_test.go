package pipeline

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessler-oss/revgen/internal/config"
	"github.com/kessler-oss/revgen/internal/events"
	"github.com/kessler-oss/revgen/internal/generator"
	"github.com/kessler-oss/revgen/internal/quality"
)

// Review texts that pass every guardrail for a 5-star rating: in the
// expected length band, positive sentiment, technical vocabulary,
// concrete features, a usage context, no marketing cliches.
const (
	goodReviewA = "Our team has been using this for API testing across two " +
		"projects. The CLI integration is excellent and the documentation " +
		"covers every endpoint clearly. Setup took minutes, response " +
		"validation is fast, and the request builder supports OAuth flows. " +
		"A few advanced features could use more examples, but overall it " +
		"is a reliable tool."

	goodReviewB = "I have been running this monitoring dashboard for our " +
		"staging cluster since March. Alert routing works great, the " +
		"metrics explorer is intuitive, and Docker deployment took one " +
		"command. Log retention settings could be more flexible on the " +
		"cheaper plan, yet the uptime tracking alone justifies the cost " +
		"for my workflow."
)

type stubResponse struct {
	text string
	err  error
}

// stubGenerator replays a scripted sequence of responses, cycling when
// the script runs out, and records every request it receives.
type stubGenerator struct {
	model     string
	responses []stubResponse
	requests  []generator.Request
	next      int
}

func (s *stubGenerator) Generate(_ context.Context, req generator.Request) (*generator.Result, error) {
	s.requests = append(s.requests, req)

	r := s.responses[s.next%len(s.responses)]
	s.next++

	if r.err != nil {
		return nil, &generator.GenerationError{Provider: "stub", Model: s.model, Err: r.err}
	}
	return &generator.Result{
		ReviewText: r.text,
		Metadata:   generator.Metadata{Model: s.model, Provider: "stub", TotalTokens: 40},
	}, nil
}

func (s *stubGenerator) Model() string { return s.model }

// testConfig pins the rating distribution to 5 stars so the scripted
// review texts always face the same guardrails.
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.RatingDistribution = map[int]float64{5: 1.0}
	cfg.Thresholds.OnExhausted = config.ExhaustedAbandon
	return cfg
}

func newTestPipeline(t *testing.T, cfg *config.Config, gens ...generator.Generator) (*Pipeline, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	p, err := New(cfg, 42, Dependencies{Generators: gens, Bus: bus})
	require.NoError(t, err)
	return p, bus
}

func TestNewRequiresGeneratorsAndBus(t *testing.T) {
	cfg := testConfig()

	_, err := New(cfg, 1, Dependencies{Bus: events.NewBus()})
	assert.Error(t, err)

	_, err = New(cfg, 1, Dependencies{Generators: []generator.Generator{&stubGenerator{model: "m"}}})
	assert.Error(t, err)
}

func TestRunAcceptsPassingReviews(t *testing.T) {
	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{
		{text: goodReviewA},
		{text: goodReviewB},
	}}
	p, _ := newTestPipeline(t, testConfig(), stub)

	ds, err := p.Run(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, ds.Samples, 2)
	assert.Equal(t, 2, ds.Stats.TotalAccepted)
	assert.Equal(t, 0, ds.Stats.TotalRejected)
	assert.Equal(t, 2, ds.Stats.TotalAttempts)
	assert.False(t, ds.Stats.CapacityExceeded)

	for i, s := range ds.Samples {
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, i, s.Slot)
		assert.Equal(t, 1, s.Attempts)
		assert.True(t, s.Score.Pass)
		assert.False(t, s.BelowThreshold)
		assert.Equal(t, "stub-1", s.Metadata.Model)
	}
}

func TestRunAbandonsSlotAfterAttemptCap(t *testing.T) {
	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{
		{text: "short."},
	}}
	p, _ := newTestPipeline(t, testConfig(), stub)

	ds, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, ds.Samples)
	assert.Equal(t, 1, ds.Stats.AbandonedSlots)
	assert.Equal(t, 3, ds.Stats.TotalAttempts)
	assert.Equal(t, 3, ds.Stats.TotalRejected)

	require.Len(t, ds.Rejections, 3)
	for i, rej := range ds.Rejections {
		assert.Equal(t, quality.ReasonLengthAnomalous, rej.Reason)
		assert.Equal(t, 0, rej.Slot)
		assert.Equal(t, i+1, rej.Attempt)
		assert.NotEmpty(t, rej.Context)
	}
}

func TestRunRejectsNearDuplicate(t *testing.T) {
	// Slot 0 accepts the first text; slot 1 retries the same text (rejected
	// against the accepted history), then succeeds with a distinct one.
	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{
		{text: goodReviewA},
		{text: goodReviewA},
		{text: goodReviewB},
	}}
	p, _ := newTestPipeline(t, testConfig(), stub)

	ds, err := p.Run(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, ds.Samples, 2)
	require.Len(t, ds.Rejections, 1)
	assert.Equal(t, quality.ReasonTooSimilar, ds.Rejections[0].Reason)
	assert.Equal(t, 1, ds.Rejections[0].Slot)
	assert.Equal(t, 2, ds.Samples[1].Attempts)
}

func TestRunRecordsGenerationErrors(t *testing.T) {
	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{
		{err: errors.New("connection refused")},
	}}
	p, _ := newTestPipeline(t, testConfig(), stub)

	ds, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, ds.Samples)
	require.Len(t, ds.Rejections, 3)
	for _, rej := range ds.Rejections {
		assert.Equal(t, quality.ReasonGenerationError, rej.Reason)
		assert.Contains(t, rej.Detail, "connection refused")
	}
	assert.Equal(t, 3, ds.Stats.RejectionsByReason[quality.ReasonGenerationError])
}

func TestRunRecoversAfterGenerationError(t *testing.T) {
	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{
		{err: errors.New("timeout")},
		{text: goodReviewA},
	}}
	p, _ := newTestPipeline(t, testConfig(), stub)

	ds, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, ds.Samples, 1)
	assert.Equal(t, 2, ds.Samples[0].Attempts)
	assert.Equal(t, 1, ds.Stats.TotalRejected)
}

func TestRunSalvagesBestAttemptOnAcceptBest(t *testing.T) {
	cfg := testConfig()
	cfg.Thresholds.OnExhausted = config.ExhaustedAcceptBest

	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{
		{text: "short."},
	}}
	p, _ := newTestPipeline(t, cfg, stub)

	ds, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, ds.Samples, 1)
	assert.True(t, ds.Samples[0].BelowThreshold)
	assert.False(t, ds.Samples[0].Score.Pass)
	assert.Equal(t, 1, ds.Stats.SalvagedSlots)
	assert.Equal(t, 0, ds.Stats.AbandonedSlots)
	assert.Equal(t, 3, ds.Stats.TotalRejected)
}

func TestRunAcceptBestAbandonsWhenEveryAttemptErrored(t *testing.T) {
	cfg := testConfig()
	cfg.Thresholds.OnExhausted = config.ExhaustedAcceptBest

	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{
		{err: errors.New("boom")},
	}}
	p, _ := newTestPipeline(t, cfg, stub)

	ds, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, ds.Samples)
	assert.Equal(t, 1, ds.Stats.AbandonedSlots)
	assert.Equal(t, 0, ds.Stats.SalvagedSlots)
}

func TestRunStopsAtGlobalAttemptCeiling(t *testing.T) {
	cfg := testConfig()
	cfg.Thresholds.MaxTotalAttempts = 2

	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{
		{text: "short."},
	}}
	p, _ := newTestPipeline(t, cfg, stub)

	ds, err := p.Run(context.Background(), 5)
	require.NoError(t, err)

	assert.True(t, ds.Stats.CapacityExceeded)
	assert.NotEmpty(t, ds.Stats.Warning)
	assert.Equal(t, 2, ds.Stats.TotalAttempts)
	assert.Empty(t, ds.Samples)
}

func TestRunHoldsRequestConstantAcrossRetries(t *testing.T) {
	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{
		{err: errors.New("flaky")},
		{err: errors.New("flaky")},
		{text: goodReviewA},
	}}
	p, _ := newTestPipeline(t, testConfig(), stub)

	_, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, stub.requests, 3)
	assert.True(t, reflect.DeepEqual(stub.requests[0], stub.requests[1]))
	assert.True(t, reflect.DeepEqual(stub.requests[1], stub.requests[2]))
}

func TestRunRotatesModelsAcrossSlots(t *testing.T) {
	stubA := &stubGenerator{model: "model-a", responses: []stubResponse{{text: goodReviewA}}}
	stubB := &stubGenerator{model: "model-b", responses: []stubResponse{{text: goodReviewB}}}
	p, _ := newTestPipeline(t, testConfig(), stubA, stubB)

	ds, err := p.Run(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, ds.Samples, 2)
	assert.Equal(t, "model-a", ds.Samples[0].Metadata.Model)
	assert.Equal(t, "model-b", ds.Samples[1].Metadata.Model)
	assert.Equal(t, 1, ds.Stats.PerModel["model-a"].Accepted)
	assert.Equal(t, 1, ds.Stats.PerModel["model-b"].Accepted)
}

func TestRunDrawsAreDeterministicPerSeed(t *testing.T) {
	run := func() []generator.Request {
		stub := &stubGenerator{model: "stub-1", responses: []stubResponse{
			{text: goodReviewA},
			{text: goodReviewB},
		}}
		p, _ := newTestPipeline(t, testConfig(), stub)
		_, err := p.Run(context.Background(), 2)
		require.NoError(t, err)
		return stub.requests
	}

	first := run()
	second := run()
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestRunEmitsLifecycleEvents(t *testing.T) {
	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{{text: goodReviewA}}}
	p, bus := newTestPipeline(t, testConfig(), stub)

	var seen []events.EventType
	bus.Subscribe(func(e events.Event) {
		seen = append(seen, e.Type)
	})

	_, err := p.Run(context.Background(), 1)
	require.NoError(t, err)

	require.NotEmpty(t, seen)
	assert.Equal(t, events.RunStarted, seen[0])
	assert.Equal(t, events.RunCompleted, seen[len(seen)-1])
	assert.Contains(t, seen, events.SlotStarted)
	assert.Contains(t, seen, events.AttemptStarted)
	assert.Contains(t, seen, events.AttemptScored)
	assert.Contains(t, seen, events.SlotAccepted)
}

func TestRunReturnsPartialDatasetOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{{text: goodReviewA}}}
	p, _ := newTestPipeline(t, testConfig(), stub)

	ds, err := p.Run(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, ds)
	assert.Empty(t, ds.Samples)
}

func TestRunAttemptAccountingInvariant(t *testing.T) {
	// Under the abandon policy every attempt is either the accepted one or
	// has exactly one rejection record.
	stub := &stubGenerator{model: "stub-1", responses: []stubResponse{
		{text: goodReviewA},
		{err: errors.New("flaky")},
		{text: "short."},
		{text: goodReviewB},
	}}
	p, _ := newTestPipeline(t, testConfig(), stub)

	ds, err := p.Run(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, ds.Stats.TotalAttempts, ds.Stats.TotalAccepted+ds.Stats.TotalRejected)
	assert.Len(t, ds.Rejections, ds.Stats.TotalRejected)
	assert.LessOrEqual(t, ds.Stats.TotalAccepted, 3)
}
