package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/types"
)

// scriptedPrompter answers prompts from a fixed script. Prompt and Secret take strings
// (keep returns the current value), Confirm takes bools, Select takes the item text.
// An exhausted script behaves like Ctrl+C.
type scriptedPrompter struct {
	answers []any
	labels  []string
}

const keep = "\x00keep"

func script(answers ...any) *scriptedPrompter {
	return &scriptedPrompter{answers: answers}
}

func (p *scriptedPrompter) next(label string) (any, error) {
	p.labels = append(p.labels, label)
	if len(p.answers) == 0 {
		return nil, errQuit
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *scriptedPrompter) Prompt(label, current string) (string, error) {
	a, err := p.next(label)
	if err != nil {
		return "", err
	}
	s, ok := a.(string)
	if !ok {
		return "", fmt.Errorf("prompt %q: scripted %T, want string", label, a)
	}
	if s == keep {
		return current, nil
	}
	return s, nil
}

func (p *scriptedPrompter) Secret(label string) (string, error) {
	return p.Prompt(label, "")
}

func (p *scriptedPrompter) Confirm(label string) (bool, error) {
	a, err := p.next(label)
	if err != nil {
		return false, err
	}
	b, ok := a.(bool)
	if !ok {
		return false, fmt.Errorf("confirm %q: scripted %T, want bool", label, a)
	}
	return b, nil
}

func (p *scriptedPrompter) Select(label string, items []string) (int, error) {
	a, err := p.next(label)
	if err != nil {
		return 0, err
	}
	s, _ := a.(string)
	i := slices.Index(items, s)
	if i < 0 {
		return 0, fmt.Errorf("select %q: %q not in %v", label, s, items)
	}
	return i, nil
}

// fakeClient is an in-memory backend.Client
type fakeClient struct {
	mu          sync.Mutex
	docs        map[uuid.UUID]*types.ResumeDocument
	analysis    *types.AnalysisResult
	analyzeErr  error
	lastJobDesc string
	createdWith *types.AnalysisResult
}

var _ backend.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		docs: make(map[uuid.UUID]*types.ResumeDocument),
		analysis: &types.AnalysisResult{
			OverallScore: 85,
			Scores:       types.Scores{Content: 90, Format: 80, ATSCompatibility: 70},
			Strengths:    []string{"Clear impact"},
		},
	}
}

func (f *fakeClient) seed(doc *types.ResumeDocument) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	c := doc.Clone()
	c.ID = &id
	c.Version = 1
	f.docs[id] = c
	return id
}

func (f *fakeClient) stored(id uuid.UUID) *types.ResumeDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[id].Clone()
}

func (f *fakeClient) Analyze(ctx context.Context, doc *types.ResumeDocument, jobDescription string) (*types.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastJobDesc = jobDescription
	return f.analysis, f.analyzeErr
}

func (f *fakeClient) Match(ctx context.Context, resumeID uuid.UUID, jobDescription string) (*types.MatchResult, error) {
	return &types.MatchResult{MatchPercentage: 50}, nil
}

func (f *fakeClient) CreateResume(ctx context.Context, doc *types.ResumeDocument, analysis *types.AnalysisResult) (*types.ResumeDocument, error) {
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

func (f *fakeClient) UpdateResume(ctx context.Context, id uuid.UUID, doc *types.ResumeDocument) (*types.ResumeDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
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

func (f *fakeClient) GetResume(ctx context.Context, id uuid.UUID) (*types.ResumeDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return nil, &backend.RemoteError{StatusCode: http.StatusNotFound, Message: "Resume not found"}
	}
	return doc.Clone(), nil
}

func (f *fakeClient) ListResumes(ctx context.Context, ownerID uuid.UUID) ([]types.ResumeSummary, error) {
	return nil, nil
}

func (f *fakeClient) UploadAndAnalyze(ctx context.Context, filename string, r io.Reader) (*types.UploadResult, error) {
	return nil, nil
}
