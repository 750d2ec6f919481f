package server

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/db"
	"github.com/jonathan/resume-studio/internal/types"
)

// mockStore is an in-memory Store with the same ownership and version rules as the database.
type mockStore struct {
	mu       sync.Mutex
	pingErr  error
	users    map[uuid.UUID]*db.User
	resumes  map[uuid.UUID]*types.ResumeDocument
	analyses map[uuid.UUID][]*types.AnalysisResult
	matches  map[uuid.UUID][]db.JobMatchRecord
	orphans  int // analyses saved without a resume
}

func newMockStore() *mockStore {
	return &mockStore{
		users:    make(map[uuid.UUID]*db.User),
		resumes:  make(map[uuid.UUID]*types.ResumeDocument),
		analyses: make(map[uuid.UUID][]*types.AnalysisResult),
		matches:  make(map[uuid.UUID][]db.JobMatchRecord),
	}
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }

func (m *mockStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	u := &db.User{ID: uuid.New(), Name: name, Email: strings.ToLower(email), PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *mockStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *mockStore) CreateResume(_ context.Context, ownerID uuid.UUID, doc *types.ResumeDocument) (*types.ResumeDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := doc.Clone()
	id := uuid.New()
	now := time.Now()
	saved.ID, saved.OwnerID = &id, &ownerID
	saved.Version = 1
	saved.CreatedAt, saved.UpdatedAt = &now, &now
	saved.Template = saved.Template.OrDefault()
	m.resumes[id] = saved
	return saved.Clone(), nil
}

func (m *mockStore) GetResume(_ context.Context, id, ownerID uuid.UUID) (*types.ResumeDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.resumes[id]
	if !ok || *doc.OwnerID != ownerID {
		return nil, nil
	}
	return doc.Clone(), nil
}

func (m *mockStore) UpdateResume(_ context.Context, id, ownerID uuid.UUID, doc *types.ResumeDocument) (*types.ResumeDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.resumes[id]
	if !ok || *stored.OwnerID != ownerID {
		return nil, nil
	}
	if stored.Version != doc.Version {
		return nil, &db.VersionConflictError{ResumeID: id, Expected: doc.Version, Actual: stored.Version}
	}
	saved := doc.Clone()
	now := time.Now()
	saved.ID, saved.OwnerID, saved.CreatedAt, saved.UpdatedAt = stored.ID, stored.OwnerID, stored.CreatedAt, &now
	saved.Version = stored.Version + 1
	m.resumes[id] = saved
	return saved.Clone(), nil
}

func (m *mockStore) ListResumes(_ context.Context, ownerID uuid.UUID) ([]types.ResumeSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []types.ResumeSummary{}
	for _, doc := range m.resumes {
		if *doc.OwnerID == ownerID {
			out = append(out, types.ResumeSummary{ID: *doc.ID, Name: doc.Name, Template: doc.Template, UpdatedAt: *doc.UpdatedAt})
		}
	}
	return out, nil
}

func (m *mockStore) DeleteResume(_ context.Context, id, ownerID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.resumes[id]
	if !ok || *doc.OwnerID != ownerID {
		return false, nil
	}
	delete(m.resumes, id)
	return true, nil
}

func (m *mockStore) SaveAnalysis(_ context.Context, resumeID *uuid.UUID, _ string, report *types.AnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if resumeID == nil {
		m.orphans++
		return nil
	}
	m.analyses[*resumeID] = append(m.analyses[*resumeID], report)
	return nil
}

func (m *mockStore) LatestAnalysis(_ context.Context, resumeID uuid.UUID) (*types.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.analyses[resumeID]
	if len(list) == 0 {
		return nil, nil
	}
	return list[len(list)-1], nil
}

func (m *mockStore) SaveJobMatch(_ context.Context, resumeID uuid.UUID, jobDescription string, report *types.MatchResult) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := db.JobMatchRecord{ID: uuid.New(), ResumeID: resumeID, JobDescription: jobDescription, Report: report, CreatedAt: time.Now()}
	m.matches[resumeID] = append(m.matches[resumeID], rec)
	return rec.ID, nil
}

func (m *mockStore) ListJobMatches(_ context.Context, resumeID uuid.UUID) ([]db.JobMatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]db.JobMatchRecord{}, m.matches[resumeID]...), nil
}

// mockAnalyzer returns canned reports and records its inputs.
type mockAnalyzer struct {
	mu            sync.Mutex
	analysis      *types.AnalysisResult
	match         *types.MatchResult
	structured    *types.ResumeDocument
	err           error
	analyzedJDs   []string
	structureText string
}

func newMockAnalyzer() *mockAnalyzer {
	return &mockAnalyzer{
		analysis: &types.AnalysisResult{
			OverallScore: 72,
			Scores:       types.Scores{Content: 70, Format: 80, ATSCompatibility: 65},
			Strengths:    []string{"Clear structure"},
		},
		match: &types.MatchResult{
			MatchPercentage: 55,
			SkillsMatch:     types.SkillsMatch{MatchedSkills: []string{"Go"}, MissingSkills: []string{"Rust"}},
		},
	}
}

func (a *mockAnalyzer) Analyze(_ context.Context, _ *types.ResumeDocument, jobDescription string) (*types.AnalysisResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.analyzedJDs = append(a.analyzedJDs, jobDescription)
	return a.analysis, a.err
}

func (a *mockAnalyzer) Match(context.Context, *types.ResumeDocument, string) (*types.MatchResult, error) {
	return a.match, a.err
}

func (a *mockAnalyzer) Structure(_ context.Context, text string) (*types.ResumeDocument, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.structureText = text
	if a.err != nil {
		return nil, a.err
	}
	if a.structured != nil {
		return a.structured.Clone(), nil
	}
	doc := types.NewResumeDocument()
	doc.PersonalInfo = &types.PersonalInfo{Name: "Ada Lovelace", Email: "ada@example.com"}
	return doc, nil
}
