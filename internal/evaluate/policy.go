package evaluate

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/promptquest/promptquest/internal/catalog"
	"github.com/promptquest/promptquest/internal/logging"
)

const tracerName = "github.com/promptquest/promptquest/internal/evaluate"

// Policy tries each evaluator in its chain in order and settles on the
// first success. When every link fails the fallback judges instead, so a
// Policy always yields exactly one Result.
type Policy struct {
	chain    []Evaluator
	fallback Fallback
	log      *zap.Logger
	tracer   trace.Tracer
}

// NewPolicy builds a Policy. A nil log disables logging.
func NewPolicy(fallback Fallback, log *zap.Logger, chain ...Evaluator) *Policy {
	return &Policy{
		chain:    chain,
		fallback: fallback,
		log:      logging.OrNop(log).Named("evaluate"),
		tracer:   otel.Tracer(tracerName),
	}
}

// NewDefaultPolicy chains remote in front of the heuristic evaluator.
func NewDefaultPolicy(remote *RemoteEvaluator, log *zap.Logger) *Policy {
	return NewPolicy(NewHeuristicEvaluator(), log, remote)
}

// Evaluate judges submission against ch. Failures of chain links are
// logged and recorded on the span, never returned.
func (p *Policy) Evaluate(ctx context.Context, submission string, ch catalog.Challenge) Result {
	ctx, span := p.tracer.Start(ctx, "evaluate.policy",
		trace.WithAttributes(attribute.String("challenge.id", ch.ID)))
	defer span.End()

	for _, ev := range p.chain {
		res, err := ev.Evaluate(ctx, submission, ch)
		if err == nil {
			return p.finish(span, res)
		}

		kind := kindName(err)
		span.AddEvent("evaluator failed", trace.WithAttributes(attribute.String("error.kind", kind)))
		span.RecordError(err)
		// Missing credentials are the normal offline mode, not worth a warning.
		if kind == "configuration_missing" {
			p.log.Debug("remote judge not configured, using fallback", zap.String("challenge", ch.ID))
		} else {
			p.log.Warn("evaluator failed, trying next",
				zap.String("challenge", ch.ID),
				zap.String("kind", kind),
				zap.Error(err),
			)
		}
	}

	return p.finish(span, p.fallback.Judge(submission, ch))
}

func (p *Policy) finish(span trace.Span, res Result) Result {
	res.Score = ClampScore(res.Score)
	if res.Suggestions == nil {
		res.Suggestions = []string{}
	}
	if len(res.Suggestions) > MaxSuggestions {
		res.Suggestions = res.Suggestions[:MaxSuggestions]
	}
	span.SetAttributes(
		attribute.String("evaluation.source", string(res.Source)),
		attribute.Int("evaluation.score", res.Score),
	)
	span.SetStatus(codes.Ok, "")
	return res
}
