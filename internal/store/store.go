// Package store holds the in-memory state of one editing session: the résumé document,
// the fetched score reports, loading flags and per-view error messages.
//
// A Store is created by the caller and passed explicitly to every editor and session
// that needs it. All methods are safe for concurrent use; backend responses are applied
// from goroutines.
package store

import (
	"sync"

	"github.com/jonathan/resume-studio/internal/types"
)

// Operation names a backend call that carries its own loading flag
type Operation string

// Operations with loading flags
const (
	OpLoad     Operation = "load"
	OpSave     Operation = "save"
	OpAutosave Operation = "autosave"
	OpAnalyze  Operation = "analyze"
	OpMatch    Operation = "match"
	OpUpload   Operation = "upload"
	OpList     Operation = "list"
)

// View scopes a user-visible error message
type View string

// Views with their own error slot
const (
	ViewEditor    View = "editor"
	ViewAnalysis  View = "analysis"
	ViewJobMatch  View = "job_match"
	ViewUpload    View = "upload"
	ViewDashboard View = "dashboard"
)

// Patch is a top-level merge into the document. Nil fields are left untouched;
// non-nil slices replace the whole array.
type Patch struct {
	Name         *string
	PersonalInfo *types.PersonalInfo
	Summary      *string
	Experience   []types.ExperienceEntry
	Education    []types.EducationEntry
	Skills       []string
	Template     *types.TemplateName
}

// Store is the explicitly injected session state
type Store struct {
	mu             sync.RWMutex
	doc            *types.ResumeDocument
	jobDescription string
	analysis       *types.AnalysisResult
	match          *types.MatchResult
	loading        map[Operation]int
	errors         map[View]string
}

// New returns a store holding an empty draft.
func New() *Store {
	return NewWithDocument(types.NewResumeDocument())
}

// NewWithDocument returns a store holding a copy of doc.
func NewWithDocument(doc *types.ResumeDocument) *Store {
	if doc == nil {
		doc = types.NewResumeDocument()
	}
	return &Store{
		doc:     doc.Clone(),
		loading: make(map[Operation]int),
		errors:  make(map[View]string),
	}
}

// Document returns a deep copy of the current document.
func (s *Store) Document() *types.ResumeDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// SetDocument replaces the whole document, e.g. after loading by id.
func (s *Store) SetDocument(doc *types.ResumeDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc == nil {
		doc = types.NewResumeDocument()
	}
	s.doc = doc.Clone()
}

// Update applies fn to the live document under the write lock.
func (s *Store) Update(fn func(doc *types.ResumeDocument)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.doc)
}

// Merge applies a shallow top-level patch.
func (s *Store) Merge(p Patch) {
	s.Update(func(doc *types.ResumeDocument) {
		if p.Name != nil {
			doc.Name = *p.Name
		}
		if p.PersonalInfo != nil {
			pi := *p.PersonalInfo
			doc.PersonalInfo = &pi
		}
		if p.Summary != nil {
			doc.Summary = *p.Summary
		}
		if p.Experience != nil {
			doc.Experience = make([]types.ExperienceEntry, len(p.Experience))
			for i, e := range p.Experience {
				doc.Experience[i] = e.Clone()
			}
		}
		if p.Education != nil {
			doc.Education = append([]types.EducationEntry{}, p.Education...)
		}
		if p.Skills != nil {
			doc.Skills = append([]string{}, p.Skills...)
		}
		if p.Template != nil {
			doc.Template = p.Template.OrDefault()
		}
	})
}

// ApplySaved copies backend-assigned metadata from a persisted copy onto the live
// document without discarding edits made while the request was in flight.
func (s *Store) ApplySaved(saved *types.ResumeDocument) {
	if saved == nil {
		return
	}
	c := saved.Clone()
	s.Update(func(doc *types.ResumeDocument) {
		doc.ID = c.ID
		doc.OwnerID = c.OwnerID
		doc.Version = c.Version
		doc.CreatedAt = c.CreatedAt
		doc.UpdatedAt = c.UpdatedAt
	})
}

// Reset discards the document, job description, reports and errors.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = types.NewResumeDocument()
	s.jobDescription = ""
	s.analysis = nil
	s.match = nil
	s.errors = make(map[View]string)
}

// JobDescription returns the held job description.
func (s *Store) JobDescription() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobDescription
}

// SetJobDescription stores the job description used by analyze and match.
func (s *Store) SetJobDescription(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobDescription = text
}

// Analysis returns the held analysis report, or nil.
func (s *Store) Analysis() *types.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analysis
}

// SetAnalysis replaces the whole analysis report.
func (s *Store) SetAnalysis(r *types.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = r
}

// Match returns the held match report, or nil.
func (s *Store) Match() *types.MatchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.match
}

// SetMatch replaces the whole match report.
func (s *Store) SetMatch(r *types.MatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.match = r
}

// Loading reports whether any call of op is in flight.
func (s *Store) Loading(op Operation) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading[op] > 0
}

// Error returns the message shown on view, or "".
func (s *Store) Error(view View) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors[view]
}

// SetError sets the message shown on view.
func (s *Store) SetError(view View, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg == "" {
		delete(s.errors, view)
		return
	}
	s.errors[view] = msg
}

// ClearError removes the message shown on view.
func (s *Store) ClearError(view View) {
	s.SetError(view, "")
}

// Begin raises the loading flag of op and clears the error on view. The returned
// done must be called exactly once on every exit path; it lowers the flag and, when
// err is non-nil, records err's message on view.
//
//	done := st.Begin(store.OpAnalyze, store.ViewAnalysis)
//	defer func() { done(err) }()
func (s *Store) Begin(op Operation, view View) (done func(err error)) {
	s.mu.Lock()
	s.loading[op]++
	delete(s.errors, view)
	s.mu.Unlock()

	var once sync.Once
	return func(err error) {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.loading[op]--
			if s.loading[op] <= 0 {
				delete(s.loading, op)
			}
			if err != nil {
				s.errors[view] = err.Error()
			}
		})
	}
}
