package essay

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"essay-feedback/api/internal/essay/types"
	"essay-feedback/api/internal/util"
)

// MinContentRunes is the shortest trimmed essay that is sent to the oracles.
const MinContentRunes = 20

type Options struct {
	// RequestTimeout bounds the whole evaluation, grammar check included, when
	// the caller's context carries no deadline of its own.
	RequestTimeout time.Duration
	// CritiqueTimeout bounds the critique call; expiry routes to the fallback document.
	CritiqueTimeout time.Duration
}

// Service evaluates essays with a critique engine and a grammar checker.
type Service struct {
	engines *Engines
	grammar GrammarChecker
	opts    Options
	log     *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewService(engines *Engines, grammar GrammarChecker, opts Options, log *zap.Logger) *Service {
	return &Service{
		engines: engines,
		grammar: grammar,
		opts:    opts,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Evaluate produces the feedback document for one request. Essays shorter than
// MinContentRunes get EmptyDocument without any oracle call. Critique failures
// are recovered with FallbackDocument; grammar failures are returned.
func (s *Service) Evaluate(ctx context.Context, req types.FeedbackRequest) (types.Document, error) {
	text := req.Content
	wordCount := util.WordCount(text)
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinContentRunes {
		doc := EmptyDocument()
		doc.WordCount = wordCount
		return doc, nil
	}

	critic, err := s.engines.GetEngine(req.LLMName)
	if err != nil {
		return types.Document{}, err
	}

	if _, ok := ctx.Deadline(); !ok && s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	in := types.CritiqueRequest{
		Text:            text,
		TextType:        req.TextType,
		AssistanceLevel: req.AssistanceLevel,
		TaskPrompt:      req.Prompt,
		WordCount:       wordCount,
	}

	var (
		critique    types.Critique
		critiqueErr error
		corrections []types.Correction
		timings     types.Timings
	)
	start := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cctx := gctx
		if s.opts.CritiqueTimeout > 0 {
			var cancel context.CancelFunc
			cctx, cancel = context.WithTimeout(gctx, s.opts.CritiqueTimeout)
			defer cancel()
		}
		t0 := time.Now()
		critique, critiqueErr = critic.Critique(cctx, in)
		timings.ModelLatencyMs = time.Since(t0).Milliseconds()
		return nil
	})
	g.Go(func() error {
		t0 := time.Now()
		out, err := s.grammar.Check(gctx, text)
		timings.GrammarLatencyMs = time.Since(t0).Milliseconds()
		if err != nil {
			return fmt.Errorf("grammar check: %w", err)
		}
		corrections = out
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error("evaluation failed", zap.String("engine", critic.Name()), zap.Error(err))
		return types.Document{}, err
	}
	timings.TotalLatencyMs = s.now().Sub(start).Milliseconds()

	meta := Meta{
		ID:           s.newID(),
		ModelVersion: critic.GetModel(),
		Timings:      timings,
		GeneratedAt:  s.now(),
		WordCount:    wordCount,
	}

	if critiqueErr != nil {
		s.log.Warn("critique failed, serving fallback",
			zap.String("engine", critic.Name()),
			zap.String("model", critic.GetModel()),
			zap.Int64("latency_ms", timings.ModelLatencyMs),
			zap.Error(critiqueErr))
		meta.ModelVersion = FallbackModelVersion
		return FallbackDocument(text, corrections, meta), nil
	}

	doc := Normalize(critique, text, corrections, meta)
	s.log.Info("evaluation complete",
		zap.String("id", doc.ID),
		zap.String("engine", critic.Name()),
		zap.String("model", doc.ModelVersion),
		zap.Int("overall_score", doc.OverallScore),
		zap.Int("grammar_corrections", len(doc.GrammarCorrections)),
		zap.Int("vocabulary_enhancements", len(doc.VocabularyEnhancements)),
		zap.Int64("total_ms", timings.TotalLatencyMs))
	return doc, nil
}
