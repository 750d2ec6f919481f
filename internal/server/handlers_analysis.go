package server

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/ingestion"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
	"go.uber.org/zap"
)

// handleAnalyze scores the posted document. Saved documents keep the report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req backend.AnalyzeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, "analyze", err)
		return
	}
	if req.Resume == nil {
		s.fail(w, "analyze", &ErrValidation{Field: "resume", Message: "is required"})
		return
	}
	if err := schemas.ValidateDocument(req.Resume); err != nil {
		s.fail(w, "analyze", err)
		return
	}
	jobDescription := ""
	if req.JobDescription != nil {
		jobDescription = strings.TrimSpace(*req.JobDescription)
	}

	report, err := s.analyzer.Analyze(r.Context(), req.Resume, jobDescription)
	if err != nil {
		s.fail(w, "analyze", err)
		return
	}

	// Only link the report to a document the caller owns
	if req.Resume.Saved() {
		if _, err := s.ownedResume(r.Context(), *req.Resume.ID, userID); err == nil {
			s.saveAnalysis(r.Context(), req.Resume.ID, jobDescription, report)
		}
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleMatch compares a saved document with a job description and stores the result.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req backend.MatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, "match", err)
		return
	}
	jobDescription := strings.TrimSpace(req.JobDescription)
	if jobDescription == "" {
		s.fail(w, "match", &ErrValidation{Field: "job_description", Message: "is required"})
		return
	}

	doc, err := s.ownedResume(r.Context(), req.ResumeID, userID)
	if err != nil {
		s.fail(w, "match", err)
		return
	}

	report, err := s.analyzer.Match(r.Context(), doc, jobDescription)
	if err != nil {
		s.fail(w, "match", err)
		return
	}
	if _, err := s.store.SaveJobMatch(r.Context(), req.ResumeID, jobDescription, report); err != nil {
		s.logger.Warn("failed to save job match", zap.Error(err))
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleUpload ingests a résumé file from multipart field "file": the text is structured
// into a document, saved, then analyzed. An optional "job_description" field is passed to
// the analysis.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxUploadBytes+64<<10)
	if err := r.ParseMultipartForm(ingestion.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, "upload", &ingestion.TooLargeError{Limit: ingestion.MaxUploadBytes})
			return
		}
		s.fail(w, "upload", &ErrValidation{Field: "file", Message: "expected a multipart form"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, "upload", &ErrValidation{Field: "file", Message: "is required"})
		return
	}
	defer file.Close()

	text, meta, err := ingestion.Extract(header.Filename, file)
	if err != nil {
		s.fail(w, "upload", err)
		return
	}
	s.logger.Info("resume uploaded",
		zap.String("filename", meta.Filename),
		zap.String("format", string(meta.Format)),
		zap.Int("lines", meta.Lines),
		zap.String("hash", meta.Hash))

	doc, err := s.analyzer.Structure(r.Context(), text)
	if err != nil {
		s.fail(w, "upload", err)
		return
	}
	if strings.TrimSpace(doc.Name) == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	}
	if err := schemas.ValidateDocument(doc); err != nil {
		// the model produced the document, not the caller
		s.fail(w, "upload", &analysis.ReportError{Report: "structure", Cause: err})
		return
	}

	saved, err := s.store.CreateResume(r.Context(), userID, doc)
	if err != nil {
		s.fail(w, "upload", err)
		return
	}

	jobDescription := strings.TrimSpace(r.FormValue("job_description"))
	report, err := s.analyzer.Analyze(r.Context(), saved, jobDescription)
	if err != nil {
		s.fail(w, "upload", err)
		return
	}
	s.saveAnalysis(r.Context(), saved.ID, jobDescription, report)

	s.jsonResponse(w, http.StatusCreated, types.UploadResult{ResumeData: saved, AnalysisResults: report})
}
