package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/pkg/llm"
	"digital-twin-be/pkg/rag/faq"
	"digital-twin-be/pkg/rag/feedback"
	"digital-twin-be/pkg/rag/persona"
	"digital-twin-be/pkg/rag/preprocess"
	"digital-twin-be/pkg/rag/prompt"
	"digital-twin-be/pkg/rag/search"
	"digital-twin-be/pkg/rag/session"
	"digital-twin-be/pkg/rag/validation"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const faqHintCount = 2

// Generation failures are reported with one mood-independent message.
const (
	GenerationFailedCode    = "generation_failed"
	GenerationFailedMessage = "Something went wrong while generating a response. Please try again."
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrGeneration   = errors.New("response generation failed")
)

var tracer = otel.Tracer("digital-twin-be/pipeline")

// Searcher is the retrieval step. Failures degrade to an empty context.
type Searcher interface {
	Search(ctx context.Context, query string) search.Context
}

// Memory is the session store as seen by the pipeline.
type Memory interface {
	LoadContext(ctx context.Context, sessionID string) session.Data
	AppendExchange(ctx context.Context, sessionID, mood string, prefs feedback.Preferences, user, assistant session.Message) error
}

// Stage names the branch a request finished on.
type Stage string

const (
	StageRejected  Stage = "rejected"
	StageFallback  Stage = "fallback"
	StageGenerated Stage = "generated"
)

type Request struct {
	Message   string
	SessionID string
	Mood      string
}

// ExecutionResult describes one finished turn.
type ExecutionResult struct {
	SessionID   string                `json:"session_id"`
	Content     string                `json:"content"`
	Stage       Stage                 `json:"stage"`
	Mood        persona.Mood          `json:"mood"`
	Query       preprocess.Result     `json:"query"`
	Validation  validation.Result     `json:"validation"`
	Feedback    *feedback.Feedback    `json:"feedback,omitempty"`
	Hints       []faq.Pattern         `json:"hints,omitempty"`
	ChunksUsed  int                   `json:"chunks_used"`
	RAGScore    float64               `json:"rag_score"`
	Relevance   *search.Relevance     `json:"relevance,omitempty"`
	MoodCheck   *persona.MoodResult   `json:"mood_check,omitempty"`
	Length      *persona.LengthReport `json:"length,omitempty"`
	HistorySize int                   `json:"history_size"`
}

// Rejected reports whether the query was turned away before retrieval.
func (r *ExecutionResult) Rejected() bool {
	return r.Stage == StageRejected
}

// PipelineExecutor runs VALIDATE -> REJECT | RETRIEVE -> COMPOSE -> GENERATE
// for a single chat turn.
type PipelineExecutor struct {
	validator *validation.Validator
	faq       *faq.Matcher
	retriever Searcher
	memory    Memory
	generator llm.LLMProvider
	catalog   *persona.Catalog
	responder *persona.Responder
	logger    logger.ILogger
	now       func() time.Time
}

func NewPipelineExecutor(
	validator *validation.Validator,
	faqMatcher *faq.Matcher,
	retriever Searcher,
	memory Memory,
	generator llm.LLMProvider,
	catalog *persona.Catalog,
	responder *persona.Responder,
	logger logger.ILogger,
) *PipelineExecutor {
	return &PipelineExecutor{
		validator: validator,
		faq:       faqMatcher,
		retriever: retriever,
		memory:    memory,
		generator: generator,
		catalog:   catalog,
		responder: responder,
		logger:    logger,
		now:       time.Now,
	}
}

// turn carries the per-request state between stages.
type turn struct {
	result   *ExecutionResult
	mood     persona.MoodConfig
	prefs    feedback.Preferences
	messages []llm.Message
}

// Execute answers with a single buffered response.
func (p *PipelineExecutor) Execute(ctx context.Context, req Request) (*ExecutionResult, error) {
	ctx, span := tracer.Start(ctx, "pipeline.Execute")
	defer span.End()

	t, err := p.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if t.messages == nil {
		return t.result, nil
	}

	genCtx, genSpan := tracer.Start(ctx, "pipeline.generate")
	reply, err := p.generator.Chat(genCtx, t.messages, llm.WithTemperature(t.mood.Temperature))
	genSpan.End()
	if err != nil {
		return nil, p.generationError(ctx, t, err)
	}

	p.finish(ctx, t, persona.AddFollowUp(reply), req.Message)
	return t.result, nil
}

// ExecuteStream delivers the response through emit, fragment by fragment.
// Canned responses arrive as one fragment. Nothing is saved when ctx is
// cancelled mid-stream.
func (p *PipelineExecutor) ExecuteStream(ctx context.Context, req Request, emit func(fragment string) error) (*ExecutionResult, error) {
	ctx, span := tracer.Start(ctx, "pipeline.ExecuteStream")
	defer span.End()

	t, err := p.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if t.messages == nil {
		if err := emit(t.result.Content); err != nil {
			return nil, err
		}
		return t.result, nil
	}

	genCtx, genSpan := tracer.Start(ctx, "pipeline.generate")
	defer genSpan.End()
	// stops the producer if emit fails
	genCtx, cancel := context.WithCancel(genCtx)
	defer cancel()

	tokens, err := p.generator.ChatStream(genCtx, t.messages, llm.WithTemperature(t.mood.Temperature))
	if err != nil {
		return nil, p.generationError(ctx, t, err)
	}

	var reply strings.Builder
	for tok := range tokens {
		if tok.Error != nil {
			return nil, p.generationError(ctx, t, tok.Error)
		}
		if tok.Content != "" {
			reply.WriteString(tok.Content)
			if err := emit(tok.Content); err != nil {
				return nil, err
			}
		}
		if tok.Done {
			break
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.finish(ctx, t, reply.String(), req.Message)
	return t.result, nil
}

func (p *PipelineExecutor) prepare(ctx context.Context, req Request) (*turn, error) {
	if req.Message == "" {
		return nil, ErrEmptyMessage
	}

	mood, ok := persona.ParseMood(req.Mood)
	if !ok {
		p.logger.Debug("Pipeline", "Unknown mood, using professional", map[string]interface{}{
			"mood": req.Mood,
		})
	}
	t := &turn{
		mood: p.catalog.Get(mood),
		result: &ExecutionResult{
			SessionID: req.SessionID,
			Mood:      mood,
		},
	}

	// VALIDATE
	pre := preprocess.Preprocess(req.Message)
	query := pre.Normalized
	verdict := p.validator.Validate(query)
	fb := feedback.Detect(query)
	if !verdict.IsValid && verdict.ErrorType == validation.Unrelated && fb != nil && fb.IsProfessional {
		verdict = validation.Result{IsValid: true, Confidence: verdict.Confidence, Category: validation.CategoryFeedback}
	}
	t.result.Query = pre
	t.result.Validation = verdict
	t.result.Feedback = fb

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("chat.mood", string(mood)),
		attribute.Bool("chat.valid", verdict.IsValid),
		attribute.String("chat.category", verdict.Category),
	)

	if !verdict.IsValid {
		p.logger.Info("Pipeline", "Query rejected", map[string]interface{}{
			"session_id":    req.SessionID,
			"error_type":    string(verdict.ErrorType),
			"specific_type": verdict.SpecificType,
		})
		t.result.Stage = StageRejected
		t.result.Content = p.responder.Response(persona.Kind(verdict.ErrorType), mood)
		return t, nil
	}

	// RETRIEVE: independent reads, issued together
	var (
		rag  search.Context
		data session.Data
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sctx, span := tracer.Start(gctx, "pipeline.retrieve")
		defer span.End()
		rag = p.retriever.Search(sctx, validation.EnhanceQuery(query))
		return nil
	})
	g.Go(func() error {
		data = p.memory.LoadContext(gctx, req.SessionID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.result.Hints = p.faq.Match(query, faqHintCount)
	t.prefs = data.PreferencesOrDefault()
	if fb != nil {
		t.prefs = feedback.Apply(t.prefs, *fb)
	}
	t.result.HistorySize = len(data.Messages)
	t.result.ChunksUsed = rag.ChunksUsed
	t.result.RAGScore = rag.AverageScore

	greeting := verdict.Category == validation.CategoryGreeting
	meta := validation.IsMetaQuery(query)
	// style feedback is about the conversation, not the knowledge base
	conversational := greeting || meta || verdict.Category == validation.CategoryFeedback

	if !rag.Empty() && !conversational {
		rel := search.ValidateRelevance(query, rag.Text(), rag.AverageScore)
		t.result.Relevance = &rel
		if !rel.IsRelevant {
			p.logger.Debug("Pipeline", "Dropping irrelevant context", map[string]interface{}{
				"session_id": req.SessionID,
				"reason":     rel.Reason,
			})
			rag = search.Context{}
		}
	}

	if rag.Empty() && len(data.Messages) == 0 && !conversational {
		t.result.Stage = StageFallback
		t.result.Content = p.responder.SmartFallback(query, mood)
		return t, nil
	}

	// COMPOSE
	system := prompt.NewSystemBuilder(prompt.Inputs{
		Mood:        t.mood,
		OwnerName:   p.catalog.Profile().Name,
		Hints:       t.result.Hints,
		Preferences: t.prefs,
		Context:     rag,
		History:     data.Messages,
	}).Build()

	t.messages = []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: query},
	}
	return t, nil
}

// finish records the reply and stores the exchange. Store failures never
// fail the turn.
func (p *PipelineExecutor) finish(ctx context.Context, t *turn, reply, userMessage string) {
	moodCheck := persona.ValidateMood(reply, t.result.Mood)
	length := persona.CheckLength(reply)

	t.result.Stage = StageGenerated
	t.result.Content = reply
	t.result.MoodCheck = &moodCheck
	t.result.Length = &length

	if !moodCheck.Compliant {
		p.logger.Debug("Pipeline", "Response drifted from mood", map[string]interface{}{
			"session_id": t.result.SessionID,
			"mood":       string(t.result.Mood),
			"score":      moodCheck.Score,
			"reason":     moodCheck.Reason,
		})
	}

	if ctx.Err() != nil {
		return
	}

	now := p.now()
	mood := string(t.result.Mood)
	err := p.memory.AppendExchange(ctx, t.result.SessionID, mood, t.prefs,
		session.Message{Role: session.RoleUser, Content: userMessage, Timestamp: now, Mood: mood},
		session.Message{Role: session.RoleAssistant, Content: reply, Timestamp: now, Mood: mood},
	)
	if err != nil {
		p.logger.Warn("Pipeline", "Failed to save session exchange", map[string]interface{}{
			"session_id": t.result.SessionID,
			"error":      err.Error(),
		})
	}
}

func (p *PipelineExecutor) generationError(ctx context.Context, t *turn, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	p.logger.Error("Pipeline", "Generation failed", map[string]interface{}{
		"session_id": t.result.SessionID,
		"error":      err.Error(),
	})
	return fmt.Errorf("%w: %v", ErrGeneration, err)
}
