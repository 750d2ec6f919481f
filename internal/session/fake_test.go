package session

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/types"
)

// fakeBackend is an in-memory backend.Client with an optimistic version check on update.
type fakeBackend struct {
	mu sync.Mutex

	docs         map[uuid.UUID]*types.ResumeDocument
	createdWith  *types.AnalysisResult
	analysis     *types.AnalysisResult
	analyzeErr   error
	match        *types.MatchResult
	matchErr     error
	analyzeCalls int
	matchCalls   int
	updateCalls  int
	lastJobDesc  string

	// gate, when set, blocks UpdateResume until closed or the context ends
	gate chan struct{}
	// block makes Analyze wait for the context to end
	block bool
}

var _ backend.Client = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		docs:     make(map[uuid.UUID]*types.ResumeDocument),
		analysis: &types.AnalysisResult{OverallScore: 75, Scores: types.Scores{Content: 80, Format: 70, ATSCompatibility: 75}},
		match:    &types.MatchResult{MatchPercentage: 60},
	}
}

func (f *fakeBackend) seed(doc *types.ResumeDocument) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	c := doc.Clone()
	c.ID = &id
	f.docs[id] = c
	return id
}

func (f *fakeBackend) stored(id uuid.UUID) *types.ResumeDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[id].Clone()
}

func (f *fakeBackend) counts() (analyze, match, update int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.analyzeCalls, f.matchCalls, f.updateCalls
}

func (f *fakeBackend) Analyze(ctx context.Context, doc *types.ResumeDocument, jobDescription string) (*types.AnalysisResult, error) {
	f.mu.Lock()
	f.analyzeCalls++
	f.lastJobDesc = jobDescription
	block, res, err := f.block, f.analysis, f.analyzeErr
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return res, err
}

func (f *fakeBackend) Match(ctx context.Context, resumeID uuid.UUID, jobDescription string) (*types.MatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matchCalls++
	return f.match, f.matchErr
}

func (f *fakeBackend) CreateResume(ctx context.Context, doc *types.ResumeDocument, analysis *types.AnalysisResult) (*types.ResumeDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	c := doc.Clone()
	c.ID = &id
	c.Version = 1
	c.CreatedAt, c.UpdatedAt = &now, &now
	f.docs[id] = c
	f.createdWith = analysis
	return c.Clone(), nil
}

func (f *fakeBackend) UpdateResume(ctx context.Context, id uuid.UUID, doc *types.ResumeDocument) (*types.ResumeDocument, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	cur, ok := f.docs[id]
	if !ok {
		return nil, &backend.RemoteError{StatusCode: http.StatusNotFound, Message: "Resume not found"}
	}
	if doc.Version != cur.Version {
		return nil, &backend.RemoteError{StatusCode: http.StatusConflict, Message: "version conflict"}
	}
	c := doc.Clone()
	c.ID = &id
	c.Version = cur.Version + 1
	f.docs[id] = c
	return c.Clone(), nil
}

func (f *fakeBackend) GetResume(ctx context.Context, id uuid.UUID) (*types.ResumeDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return nil, &backend.RemoteError{StatusCode: http.StatusNotFound, Message: "Resume not found"}
	}
	return doc.Clone(), nil
}

func (f *fakeBackend) ListResumes(ctx context.Context, ownerID uuid.UUID) ([]types.ResumeSummary, error) {
	return nil, nil
}

func (f *fakeBackend) UploadAndAnalyze(ctx context.Context, filename string, r io.Reader) (*types.UploadResult, error) {
	return nil, nil
}
