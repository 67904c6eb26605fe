package essay

import (
	"context"
	"sync/atomic"
	"time"

	"essay-feedback/api/internal/essay/types"
)

type fakeCritic struct {
	name     string
	model    string
	critique types.Critique
	err      error
	block    bool // wait for ctx cancellation instead of answering
	calls    atomic.Int32
	lastIn   types.CritiqueRequest
}

func (f *fakeCritic) Name() string     { return f.name }
func (f *fakeCritic) GetModel() string { return f.model }

func (f *fakeCritic) Critique(ctx context.Context, in types.CritiqueRequest) (types.Critique, error) {
	f.calls.Add(1)
	f.lastIn = in
	if f.block {
		<-ctx.Done()
		return types.Critique{}, ctx.Err()
	}
	return f.critique, f.err
}

type fakeGrammar struct {
	out   []types.Correction
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (f *fakeGrammar) Check(ctx context.Context, _ string) ([]types.Correction, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.out, f.err
}

// runnedCorrection is what LanguageTool reports for "The dog runned fast.".
func runnedCorrection() types.Correction {
	return types.Correction{
		Original:    "runned",
		Suggestion:  "ran",
		Explanation: "The past tense of 'run' is 'ran'.",
		Position:    types.TextSpan{Start: 8, End: 14},
		Type:        types.CorrectionGrammar,
		Severity:    types.SeverityError,
		RuleID:      "BASE_FORM",
		Category:    "Grammar",
	}
}
