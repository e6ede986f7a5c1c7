// Package generation runs the infographic round trip against an LLM:
// template to prompt, reply to validated data, data to a new slide, and
// persists the artifacts of each run.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"slidegen/internal/infographic"
	"slidegen/internal/llm"
	"slidegen/internal/slide"
	"slidegen/internal/store"
	"slidegen/internal/util/jsonutil"
)

// Phase tags LLM calls made by this package for hooks and logs.
const Phase = "infographic"

const (
	SlideFile    = "slide.json"
	PromptFile   = "prompt.txt"
	ResponseFile = "response.txt"
	DataFile     = "data.json"
)

var (
	ErrNoItems    = errors.New("generation: template has no item slots")
	ErrEmptyTopic = errors.New("generation: topic is required")
	ErrNoTemplate = errors.New("generation: template has no elements")
	// ErrUpstream wraps failures of the model call itself.
	ErrUpstream   = errors.New("generation: model call failed")
)

// Request asks for one infographic built from Template about Topic.
type Request struct {
	Template slide.Slide
	Topic    string
	Language string
	Model    string
}

// Plan is everything sent to the model for a request.
type Plan struct {
	Structure infographic.Structure `json:"structure"`
	Example   infographic.Data      `json:"example"`
	Prompt    string                `json:"prompt"`
}

// Result is a finished generation.
type Result struct {
	ID       string           `json:"id"`
	Slide    slide.Slide      `json:"slide"`
	Data     infographic.Data `json:"data"`
	Attempts int              `json:"attempts"`
	Demo     bool             `json:"demo,omitempty"`
}

type Service struct {
	client      llm.LLMClient
	store       store.Store
	cache       *infographic.StructureCache
	filler      *infographic.Filler
	logger      *zap.Logger
	maxAttempts int
	newID       func() string
}

type Option func(*Service)

// WithMaxAttempts sets how many times the model is asked before a parse or
// validation failure is returned. Values below 1 mean 1.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func WithStructureCache(c *infographic.StructureCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithFiller(f *infographic.Filler) Option {
	return func(s *Service) {
		if f != nil {
			s.filler = f
		}
	}
}

func WithIDFunc(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New builds a Service. A nil client runs in demo mode, filling templates
// with placeholder data. A nil store skips persistence.
func New(client llm.LLMClient, st store.Store, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		client:      client,
		store:       st,
		filler:      infographic.NewFiller(nil),
		logger:      logger.Named("generation"),
		maxAttempts: 1,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Demo reports whether the service fabricates content instead of calling a model.
func (s *Service) Demo() bool { return s.client == nil }

// Prepare derives the structure, example data and prompt for req.
func (s *Service) Prepare(_ context.Context, req Request) (Plan, error) {
	if len(req.Template.Elements) == 0 {
		return Plan{}, ErrNoTemplate
	}
	tmpl := slide.UpgradeLegacy(req.Template)
	st, err := s.cache.Extract(tmpl)
	if err != nil {
		return Plan{}, err
	}
	example := infographic.ExtractData(st)
	return Plan{
		Structure: st,
		Example:   example,
		Prompt:    infographic.GeneratePrompt(st, example, req.Topic, req.Language),
	}, nil
}

// Generate runs the full round trip. onChunk, when non-nil, receives the
// model's reply as it streams. No slide is produced unless a reply validates.
func (s *Service) Generate(ctx context.Context, req Request, onChunk func(string) error) (Result, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return Result{}, ErrEmptyTopic
	}
	plan, err := s.Prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}
	if plan.Structure.ItemCount == 0 {
		return Result{}, ErrNoItems
	}

	start := time.Now()
	res := Result{ID: s.newID(), Demo: s.Demo()}
	var data infographic.Data
	var reply string
	if s.Demo() {
		data = Placeholder(plan.Structure, plan.Example, req.Topic)
		if err := infographic.Validate(data, plan.Structure); err != nil {
			return Result{}, err
		}
		reply, _ = encode(data)
	} else {
		tr := newTranscript(s.logger.With(zap.String("id", res.ID)))
		data, res.Attempts, err = s.ask(ctx, tr, plan, req, onChunk)
		if err != nil {
			s.logger.Warn("generation failed",
				zap.String("id", res.ID),
				zap.Int("attempts", res.Attempts),
				zap.Error(err))
			return Result{}, err
		}
		if ex, ok := tr.last(); ok {
			plan.Prompt, reply = ex.Prompt, ex.Reply
		}
	}
	res.Data = data
	res.Slide = s.Fill(plan.Structure, data)
	if err := s.persist(ctx, res, plan.Prompt, reply); err != nil {
		return Result{}, err
	}
	s.logger.Info("generation done",
		zap.String("id", res.ID),
		zap.String("kind", string(plan.Structure.Kind)),
		zap.Int("items", min(len(data.Items), plan.Structure.ItemCount)),
		zap.Int("attempts", res.Attempts),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// ask calls the model until a reply parses and validates. Every call goes
// through tr, which keeps the prompt and reply of each attempt.
func (s *Service) ask(ctx context.Context, tr *transcript, plan Plan, req Request, onChunk func(string) error) (infographic.Data, int, error) {
	ctx = llm.WithPhase(ctx, Phase)
	client := llm.WithHook(llm.Wrap(s.client, llm.WithHooks()), tr)
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		reply, err := client.Stream(ctx, llm.Request{
			Prompt: plan.Prompt,
			Model:  req.Model,
			JSON:   true,
		}, onChunk)
		if err != nil {
			return infographic.Data{}, attempt, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		data, err := infographic.ParseData(reply)
		if err == nil {
			err = infographic.Validate(data, plan.Structure)
		}
		if err == nil {
			return infographic.Conform(data, plan.Structure), attempt, nil
		}
		lastErr = err
		s.logger.Debug("reply rejected",
			zap.Int("attempt", attempt),
			zap.Error(err))
		if ctx.Err() != nil {
			return infographic.Data{}, attempt, ctx.Err()
		}
	}
	return infographic.Data{}, s.maxAttempts, lastErr
}

// Fill projects d onto the template of st with the service's filler.
func (s *Service) Fill(st infographic.Structure, d infographic.Data) slide.Slide {
	return s.filler.Fill(st, d)
}

// persist writes the run's artifacts concurrently under the result id.
func (s *Service) persist(ctx context.Context, res Result, prompt, reply string) error {
	if s.store == nil {
		return nil
	}
	slideJSON, err := jsonutil.MarshalNoEscapeIndent(res.Slide, "", "  ")
	if err != nil {
		return fmt.Errorf("generation: encode slide: %w", err)
	}
	dataJSON, err := jsonutil.MarshalNoEscapeIndent(res.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("generation: encode data: %w", err)
	}
	files := map[string][]byte{
		SlideFile:    slideJSON,
		DataFile:     dataJSON,
		PromptFile:   []byte(prompt),
		ResponseFile: []byte(reply),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for name, content := range files {
		eg.Go(func() error {
			if err := s.store.Put(egCtx, res.ID, name, content); err != nil {
				return fmt.Errorf("generation: save %s: %w", name, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

// Load reads a persisted artifact of generation id.
func (s *Service) Load(ctx context.Context, id, name string) ([]byte, error) {
	if s.store == nil {
		return nil, store.ErrNotFound
	}
	return s.store.Get(ctx, id, name)
}

// URL returns a direct link to an artifact of generation id, or "" when the
// store cannot mint one.
func (s *Service) URL(ctx context.Context, id, name string) (string, error) {
	if s.store == nil {
		return "", nil
	}
	return s.store.GetURL(ctx, id, name)
}

// Files lists the persisted artifacts of generation id.
func (s *Service) Files(ctx context.Context, id string) ([]string, error) {
	if s.store == nil {
		return nil, store.ErrNotFound
	}
	files, err := s.store.List(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, store.ErrNotFound
	}
	return files, nil
}

func encode(d infographic.Data) (string, error) {
	b, err := jsonutil.MarshalNoEscape(d)
	return string(b), err
}
