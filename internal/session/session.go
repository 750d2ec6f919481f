package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/session/autosave"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// DefaultRequestTimeout bounds each backend call when Options.RequestTimeout is unset.
const DefaultRequestTimeout = 30 * time.Second

// Options configures a Session
type Options struct {
	Logger          *zap.Logger
	RequestTimeout  time.Duration
	Renderer        *rendering.Registry
	DefaultTemplate types.TemplateName // applied to the empty draft of a creation session
}

// Session drives one pass through the workflow. Navigation methods are meant to be
// called from a single goroutine; autosave responses are applied concurrently.
type Session struct {
	variant  Variant
	steps    []Step
	store    *store.Store
	client   backend.Client
	renderer *rendering.Registry
	logger   *zap.Logger
	timeout  time.Duration
	seq      *autosave.Sequencer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	step     int
	finished bool
}

// NewCreation starts a creation session on an empty draft. The store is reset.
func NewCreation(st *store.Store, client backend.Client, opts Options) *Session {
	st.Reset()
	if opts.DefaultTemplate != "" {
		tmpl := opts.DefaultTemplate
		st.Merge(store.Patch{Template: &tmpl})
	}
	return newSession(VariantCreation, st, client, opts)
}

// NewEditing starts an editing session on whatever the store holds. Use Load to fetch a
// saved document first.
func NewEditing(st *store.Store, client backend.Client, opts Options) *Session {
	return newSession(VariantEditing, st, client, opts)
}

func newSession(v Variant, st *store.Store, client backend.Client, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.Renderer == nil {
		opts.Renderer = rendering.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		variant:  v,
		steps:    variantSteps[v],
		store:    st,
		client:   client,
		renderer: opts.Renderer,
		logger:   opts.Logger.With(zap.String("variant", string(v))),
		timeout:  opts.RequestTimeout,
		seq:      autosave.New(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Variant returns the workflow variant.
func (s *Session) Variant() Variant { return s.variant }

// Steps returns the ordered steps of the variant.
func (s *Session) Steps() []Step { return append([]Step(nil), s.steps...) }

// Store returns the session's store.
func (s *Session) Store() *store.Store { return s.store }

// Index returns the current step index.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps[s.step]
}

// Finished reports whether a creation session has been saved.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Allowed reports whether t is permitted from the current step. Guards are not evaluated.
func (s *Session) Allowed(t Transition) bool {
	_, err := s.lookup(t)
	return err == nil
}

func (s *Session) lookup(t Transition) (rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return rule{}, ErrFinished
	}
	from := s.steps[s.step]
	r, ok := transitions[tableKey{s.variant, from, t}]
	if !ok {
		return rule{}, &TransitionError{Variant: s.variant, Step: from, Transition: t}
	}
	return r, nil
}

// Next advances one step. In the creation variant the transition into analysis is
// guarded and runs the analysis before advancing; on failure the step is unchanged. In
// the editing variant a saved document is autosaved.
func (s *Session) Next(ctx context.Context) error {
	r, err := s.lookup(TransitionNext)
	if err != nil {
		return err
	}
	from := s.Index()

	if r.guard != nil {
		if msg := r.guard(s.store.Document()); msg != "" {
			verr := &ValidationError{Step: s.steps[from], Message: msg}
			s.store.SetError(store.ViewEditor, verr.Error())
			return verr
		}
		s.store.ClearError(store.ViewEditor)
	}

	switch r.effect {
	case effectAnalyze:
		if err := s.analyzeAndMatch(ctx); err != nil {
			return err
		}
	case effectAutosave:
		s.autosave()
	}

	s.mu.Lock()
	if s.step == from {
		s.step++
	}
	s.mu.Unlock()
	s.logger.Debug("step advanced", zap.String("step", string(s.Step())))
	return nil
}

// Back moves one step back.
func (s *Session) Back() error {
	if _, err := s.lookup(TransitionBack); err != nil {
		return err
	}
	s.mu.Lock()
	s.step--
	s.mu.Unlock()
	return nil
}

// JumpTo moves to any step of an editing session without autosaving.
func (s *Session) JumpTo(i int) error {
	if _, err := s.lookup(TransitionJump); err != nil {
		return err
	}
	if i < 0 || i >= len(s.steps) {
		return &StepIndexError{Index: i, Len: len(s.steps)}
	}
	s.mu.Lock()
	s.step = i
	s.mu.Unlock()
	return nil
}

// Load fetches a saved document into the store and rewinds to the first step.
func (s *Session) Load(ctx context.Context, id uuid.UUID) (err error) {
	done := s.store.Begin(store.OpLoad, store.ViewEditor)
	defer func() { done(err) }()

	ctx, cancel := s.requestContext(ctx)
	defer cancel()

	doc, err := s.client.GetResume(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load resume %s: %w", id, err)
	}
	s.store.SetDocument(doc)
	s.seq.Observe(id, doc.Version)

	s.mu.Lock()
	s.step = 0
	s.mu.Unlock()
	return nil
}

// Save persists the document. A creation session creates it together with the held
// analysis and is finished afterwards; an editing session updates it in place.
func (s *Session) Save(ctx context.Context) (saved *types.ResumeDocument, err error) {
	if _, err := s.lookup(TransitionSave); err != nil {
		return nil, err
	}

	done := s.store.Begin(store.OpSave, store.ViewEditor)
	defer func() { done(err) }()

	doc := s.store.Document()
	if s.variant == VariantCreation || !doc.Saved() {
		var analysis *types.AnalysisResult
		if s.variant == VariantCreation {
			analysis = s.store.Analysis()
		}
		ctx, cancel := s.requestContext(ctx)
		defer cancel()
		saved, err = s.client.CreateResume(ctx, doc, analysis)
		if err != nil {
			return nil, fmt.Errorf("failed to save resume: %w", err)
		}
		s.store.ApplySaved(saved)
		if saved.ID != nil {
			s.seq.Observe(*saved.ID, saved.Version)
		}
	} else {
		saved, err = s.persist(ctx, *doc.ID, doc, s.seq.Issue(*doc.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to save resume: %w", err)
		}
	}

	if s.variant == VariantCreation {
		s.mu.Lock()
		s.finished = true
		s.mu.Unlock()
	}
	s.logger.Info("resume saved", zap.Stringer("id", saved.ID))
	return saved, nil
}

// Preview autosaves a saved document, then renders the current document with its template.
func (s *Session) Preview() (*rendering.Layout, error) {
	r, err := s.lookup(TransitionPreview)
	if err != nil {
		return nil, err
	}
	if r.effect == effectAutosave {
		s.autosave()
	}
	doc := s.store.Document()
	return s.renderer.Render(doc, doc.Template)
}

// Analyze fetches a fresh analysis report, using the held job description if any.
func (s *Session) Analyze(ctx context.Context) (err error) {
	done := s.store.Begin(store.OpAnalyze, store.ViewAnalysis)
	defer func() { done(err) }()

	ctx, cancel := s.requestContext(ctx)
	defer cancel()

	res, err := s.client.Analyze(ctx, s.store.Document(), s.store.JobDescription())
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	s.store.SetAnalysis(res)
	return nil
}

// Match fetches a fresh match report for the saved document and held job description.
func (s *Session) Match(ctx context.Context) (err error) {
	done := s.store.Begin(store.OpMatch, store.ViewJobMatch)
	defer func() { done(err) }()

	doc := s.store.Document()
	jd := s.store.JobDescription()
	if strings.TrimSpace(jd) == "" {
		return &ValidationError{Step: StepJobMatch, Message: "Please enter a job description."}
	}
	if !doc.Saved() {
		return &ValidationError{Step: StepJobMatch, Message: "Save the resume before matching it to a job."}
	}

	ctx, cancel := s.requestContext(ctx)
	defer cancel()

	res, err := s.client.Match(ctx, *doc.ID, jd)
	if err != nil {
		return fmt.Errorf("failed to match resume: %w", err)
	}
	s.store.SetMatch(res)
	return nil
}

// Refresh fetches both reports concurrently. Each report is applied independently; the
// first error is returned.
func (s *Session) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.Analyze(ctx) })
	if s.canMatch() {
		g.Go(func() error { return s.Match(ctx) })
	}
	return g.Wait()
}

// Close aborts in-flight requests and waits for autosaves to settle.
func (s *Session) Close() {
	s.cancel()
	s.wg.Wait()
}

// Wait blocks until in-flight autosaves settle.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) canMatch() bool {
	return strings.TrimSpace(s.store.JobDescription()) != "" && s.store.Document().Saved()
}

func (s *Session) analyzeAndMatch(ctx context.Context) error {
	if err := s.Analyze(ctx); err != nil {
		return err
	}
	if s.canMatch() {
		if err := s.Match(ctx); err != nil {
			s.logger.Warn("match failed", zap.Error(err))
		}
	}
	return nil
}

// autosave persists a snapshot of a saved document in the background.
func (s *Session) autosave() {
	doc := s.store.Document()
	if !doc.Saved() {
		return
	}
	id := *doc.ID
	stamp := s.seq.Issue(id)
	done := s.store.Begin(store.OpAutosave, store.ViewEditor)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_, err := s.persist(s.ctx, id, doc, stamp)
		if err != nil && s.seq.Current(id, stamp) && s.ctx.Err() == nil {
			s.logger.Warn("autosave failed", zap.Stringer("id", id), zap.Error(err))
			done(fmt.Errorf("autosave failed: %w", err))
			return
		}
		done(nil)
	}()
}

// persist sends doc once it holds the send slot for id. A request superseded before its
// turn is skipped, and a response superseded in flight is not applied to the store.
func (s *Session) persist(ctx context.Context, id uuid.UUID, doc *types.ResumeDocument, stamp uint64) (*types.ResumeDocument, error) {
	ctx, cancel := s.requestContext(ctx)
	defer cancel()

	release, err := s.seq.Acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	if !s.seq.Current(id, stamp) {
		s.logger.Debug("save superseded before send", zap.Stringer("id", id), zap.Uint64("stamp", stamp))
		return doc, nil
	}

	if v := s.seq.Version(id); v > doc.Version {
		doc.Version = v
	}
	saved, err := s.client.UpdateResume(ctx, id, doc)
	if err != nil {
		return nil, err
	}
	s.seq.Observe(id, saved.Version)

	if !s.seq.Current(id, stamp) {
		s.logger.Debug("discarding stale save response", zap.Stringer("id", id), zap.Uint64("stamp", stamp))
		return saved, nil
	}
	s.store.ApplySaved(saved)
	return saved, nil
}

// requestContext bounds a call by the request timeout and by the session lifetime.
func (s *Session) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
