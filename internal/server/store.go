package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/db"
	"github.com/jonathan/resume-studio/internal/types"
)

// Store is the persistence the handlers need. *db.DB implements it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)

	CreateResume(ctx context.Context, ownerID uuid.UUID, doc *types.ResumeDocument) (*types.ResumeDocument, error)
	GetResume(ctx context.Context, id, ownerID uuid.UUID) (*types.ResumeDocument, error)
	UpdateResume(ctx context.Context, id, ownerID uuid.UUID, doc *types.ResumeDocument) (*types.ResumeDocument, error)
	ListResumes(ctx context.Context, ownerID uuid.UUID) ([]types.ResumeSummary, error)
	DeleteResume(ctx context.Context, id, ownerID uuid.UUID) (bool, error)

	SaveAnalysis(ctx context.Context, resumeID *uuid.UUID, jobDescription string, report *types.AnalysisResult) error
	LatestAnalysis(ctx context.Context, resumeID uuid.UUID) (*types.AnalysisResult, error)
	SaveJobMatch(ctx context.Context, resumeID uuid.UUID, jobDescription string, report *types.MatchResult) (uuid.UUID, error)
	ListJobMatches(ctx context.Context, resumeID uuid.UUID) ([]db.JobMatchRecord, error)
}

// Analyzer produces reports and structures uploaded text. *analysis.Scorer implements it.
type Analyzer interface {
	Analyze(ctx context.Context, doc *types.ResumeDocument, jobDescription string) (*types.AnalysisResult, error)
	Match(ctx context.Context, doc *types.ResumeDocument, jobDescription string) (*types.MatchResult, error)
	Structure(ctx context.Context, text string) (*types.ResumeDocument, error)
}

var _ Store = (*db.DB)(nil)
