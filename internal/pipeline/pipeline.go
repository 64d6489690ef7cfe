// Package pipeline drives the generate-validate-reject-retry loop that
// turns raw LLM output into a quality-gated review dataset.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/kessler-oss/revgen/internal/config"
	"github.com/kessler-oss/revgen/internal/events"
	"github.com/kessler-oss/revgen/internal/generator"
	"github.com/kessler-oss/revgen/internal/quality"
)

// Pipeline owns one generation run: it draws requests, invokes the
// generator adapters, scores candidates, and accumulates the dataset.
// Single logical thread of control; one request-generate-score-decide
// cycle at a time.
type Pipeline struct {
	cfg        *config.Config
	drawer     *config.Drawer
	scorer     *quality.Scorer
	generators []generator.Generator
	bus        *events.Bus
}

// Dependencies bundles external collaborators for injection.
type Dependencies struct {
	// Generators are the backends in rotation order. At least one is
	// required; slots alternate across them round-robin.
	Generators []generator.Generator

	// Bus receives run lifecycle events. Required.
	Bus *events.Bus
}

// New creates a pipeline for the given configuration.
// seed makes request draws reproducible across runs.
func New(cfg *config.Config, seed int64, deps Dependencies) (*Pipeline, error) {
	if len(deps.Generators) == 0 {
		return nil, errors.New("pipeline requires at least one generator")
	}
	if deps.Bus == nil {
		return nil, errors.New("pipeline requires an event bus")
	}

	return &Pipeline{
		cfg:        cfg,
		drawer:     config.NewDrawer(cfg, seed),
		scorer:     quality.NewScorer(cfg.Thresholds),
		generators: deps.Generators,
		bus:        deps.Bus,
	}, nil
}

// slotOutcome is the terminal state of one slot.
type slotOutcome int

const (
	slotFilled slotOutcome = iota
	slotExhausted
	slotCeilingHit
)

// Run executes the guardrail loop until count samples are accepted, the
// global attempt ceiling is reached, or ctx is cancelled.
//
// Per-attempt errors (adapter failures, unscorable text) never abort the
// run; they are recorded as rejections and retried up to the per-slot
// cap. Only context cancellation returns an error, and even then the
// partial dataset is returned alongside it.
func (p *Pipeline) Run(ctx context.Context, count int) (*Dataset, error) {
	acc := NewAccumulator(count)

	maxTotal := p.cfg.Thresholds.MaxTotalAttempts
	if maxTotal == 0 {
		maxTotal = count * p.cfg.Thresholds.MaxAttemptsPerSlot
	}

	p.bus.Emit(events.NewEvent(events.RunStarted).WithPayload(map[string]any{
		"run_id":    acc.RunID(),
		"requested": count,
		"models":    p.modelNames(),
	}))

	for slot := 0; slot < count; slot++ {
		if ctx.Err() != nil {
			p.bus.Emit(events.NewEvent(events.RunFailed).WithError(ctx.Err()))
			return acc.Finalize(), ctx.Err()
		}

		gen := p.generators[slot%len(p.generators)]
		outcome := p.runSlot(ctx, slot, gen, acc, maxTotal)

		if outcome == slotCeilingHit {
			warning := fmt.Sprintf(
				"global attempt ceiling (%d) reached with %d/%d slots filled",
				maxTotal, acc.AcceptedCount(), count)
			acc.SetCapacityExceeded(warning)
			p.bus.Emit(events.NewEvent(events.RunCapacityExceeded).WithPayload(map[string]any{
				"accepted":  acc.AcceptedCount(),
				"requested": count,
				"attempts":  acc.TotalAttempts(),
			}))
			break
		}
	}

	dataset := acc.Finalize()
	p.bus.Emit(events.NewEvent(events.RunCompleted).WithPayload(map[string]any{
		"accepted": dataset.Stats.TotalAccepted,
		"rejected": dataset.Stats.TotalRejected,
		"attempts": dataset.Stats.TotalAttempts,
	}))
	return dataset, nil
}

// runSlot fills one output slot: REQUEST_DRAWN -> GENERATED -> SCORED ->
// {ACCEPTED, REJECTED_RETRY, REJECTED_FINAL}. The request is drawn once
// and held constant across retries; only the backend's sampling
// randomness varies between attempts.
func (p *Pipeline) runSlot(ctx context.Context, slot int, gen generator.Generator, acc *Accumulator, maxTotal int) slotOutcome {
	req := p.drawRequest()
	reqContext := fmt.Sprintf("%s / %s / %d-star", req.PersonaName, req.Tool, req.Rating)

	p.bus.Emit(events.NewEvent(events.SlotStarted).
		WithSlot(slot).
		WithModel(gen.Model()).
		WithPayload(map[string]any{"context": reqContext}))

	// Best rejected attempt, kept for the accept_best policy
	var best *AcceptedSample

	maxAttempts := p.cfg.Thresholds.MaxAttemptsPerSlot
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if acc.TotalAttempts() >= maxTotal {
			return slotCeilingHit
		}
		if ctx.Err() != nil {
			return slotExhausted
		}

		p.bus.Emit(events.NewEvent(events.AttemptStarted).
			WithSlot(slot).WithAttempt(attempt).WithModel(gen.Model()))

		result, err := gen.Generate(ctx, req)
		if err != nil {
			// Adapter failure: fatal to this attempt only
			acc.RecordAttempt(gen.Model(), 0, 0)
			acc.Reject(RejectionRecord{
				Slot:    slot,
				Attempt: attempt,
				Model:   gen.Model(),
				Reason:  quality.ReasonGenerationError,
				Detail:  err.Error(),
				Context: reqContext,
			})
			p.bus.Emit(events.NewEvent(events.AttemptFailed).
				WithSlot(slot).WithAttempt(attempt).WithModel(gen.Model()).
				WithError(err))
			continue
		}

		acc.RecordAttempt(gen.Model(), result.Metadata.TotalTokens, result.Metadata.Elapsed)

		score := p.scorer.Score(result.ReviewText, req.Rating, acc.AcceptedTexts())
		p.bus.Emit(events.NewEvent(events.AttemptScored).
			WithSlot(slot).WithAttempt(attempt).WithModel(gen.Model()).
			WithPayload(map[string]any{"overall": score.Overall, "pass": score.Pass}))

		if score.Pass {
			acc.Accept(AcceptedSample{
				Slot:       slot,
				Attempts:   attempt,
				Request:    req,
				ReviewText: result.ReviewText,
				Metadata:   result.Metadata,
				Score:      score,
			})
			p.bus.Emit(events.NewEvent(events.SlotAccepted).
				WithSlot(slot).WithModel(gen.Model()).
				WithPayload(map[string]any{"overall": score.Overall, "attempts": attempt}))
			return slotFilled
		}

		acc.Reject(RejectionRecord{
			Slot:    slot,
			Attempt: attempt,
			Model:   gen.Model(),
			Reason:  score.FirstReason(),
			Context: reqContext,
		})
		p.bus.Emit(events.NewEvent(events.AttemptRejected).
			WithSlot(slot).WithAttempt(attempt).WithModel(gen.Model()).
			WithPayload(map[string]any{"reason": string(score.FirstReason()), "overall": score.Overall}))

		if best == nil || score.Overall > best.Score.Overall {
			best = &AcceptedSample{
				Slot:           slot,
				Attempts:       attempt,
				Request:        req,
				ReviewText:     result.ReviewText,
				Metadata:       result.Metadata,
				Score:          score,
				BelowThreshold: true,
			}
		}
	}

	// REJECTED_FINAL: attempt cap reached without an accepted sample
	if p.cfg.Thresholds.OnExhausted == config.ExhaustedAcceptBest && best != nil {
		best.Attempts = maxAttempts
		acc.Accept(*best)
		p.bus.Emit(events.NewEvent(events.SlotSalvaged).
			WithSlot(slot).WithModel(best.Metadata.Model).
			WithPayload(map[string]any{"score": best.Score.Overall}))
		return slotFilled
	}

	acc.Abandon()
	p.bus.Emit(events.NewEvent(events.SlotAbandoned).WithSlot(slot).WithModel(gen.Model()))
	return slotExhausted
}

// drawRequest draws a fresh generation request from configuration.
func (p *Pipeline) drawRequest() generator.Request {
	persona := p.drawer.RandomPersona()
	category := p.drawer.RandomToolCategory()
	length := p.cfg.Characteristics.Length

	return generator.Request{
		PersonaName:        persona.Name,
		PersonaDescription: persona.Description,
		PersonaTraits:      persona.Characteristics,
		Category:           category.Name,
		Tool:               p.drawer.RandomToolExample(category),
		Rating:             p.drawer.RandomRating(),
		Tone:               p.drawer.RandomTone(),
		Features:           p.drawer.RandomFeatures(category, 3),
		MinWords:           length.MinWords,
		MaxWords:           length.MaxWords,
	}
}

func (p *Pipeline) modelNames() []string {
	names := make([]string, len(p.generators))
	for i, g := range p.generators {
		names[i] = g.Model()
	}
	return names
}
