package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/types"
	"go.uber.org/zap"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

type templateInfo struct {
	Name        types.TemplateName `json:"name"`
	DisplayName string             `json:"display_name"`
	Description string             `json:"description"`
}

// handleListTemplates lists the registered templates in picker order.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	templates := rendering.Default().Templates()
	out := make([]templateInfo, 0, len(templates))
	for _, t := range templates {
		out = append(out, templateInfo{Name: t.Name(), DisplayName: t.DisplayName(), Description: t.Description()})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": out})
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req backend.CreateResumeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, "create resume", err)
		return
	}
	if req.Resume == nil {
		s.fail(w, "create resume", &ErrValidation{Field: "resume", Message: "is required"})
		return
	}
	if err := schemas.ValidateDocument(req.Resume); err != nil {
		s.fail(w, "create resume", err)
		return
	}
	if req.AnalysisResults != nil {
		if err := req.AnalysisResults.Validate(); err != nil {
			s.fail(w, "create resume", &ErrValidation{Field: "analysis_results", Message: err.Error()})
			return
		}
	}

	saved, err := s.store.CreateResume(r.Context(), userID, req.Resume)
	if err != nil {
		s.fail(w, "create resume", err)
		return
	}
	if req.AnalysisResults != nil {
		s.saveAnalysis(r.Context(), saved.ID, "", req.AnalysisResults)
	}

	s.logger.Info("resume created", zap.Stringer("resume_id", saved.ID), zap.Stringer("owner_id", userID))
	s.jsonResponse(w, http.StatusCreated, saved)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.requireUserAndID(w, r)
	if !ok {
		return
	}
	doc, err := s.ownedResume(r.Context(), id, userID)
	if err != nil {
		s.fail(w, "get resume", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleUpdateResume replaces a document. The body's version must match the stored one.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.requireUserAndID(w, r)
	if !ok {
		return
	}

	var doc types.ResumeDocument
	if err := decodeBody(w, r, &doc); err != nil {
		s.fail(w, "update resume", err)
		return
	}
	if doc.ID != nil && *doc.ID != id {
		s.fail(w, "update resume", &ErrValidation{Field: "id", Message: "does not match the URL"})
		return
	}
	if err := schemas.ValidateDocument(&doc); err != nil {
		s.fail(w, "update resume", err)
		return
	}

	saved, err := s.store.UpdateResume(r.Context(), id, userID, &doc)
	if err != nil {
		s.fail(w, "update resume", err)
		return
	}
	if saved == nil {
		s.fail(w, "update resume", &ErrResumeNotFound{ResumeID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.requireUserAndID(w, r)
	if !ok {
		return
	}
	deleted, err := s.store.DeleteResume(r.Context(), id, userID)
	if err != nil {
		s.fail(w, "delete resume", err)
		return
	}
	if !deleted {
		s.fail(w, "delete resume", &ErrResumeNotFound{ResumeID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListResumes lists a user's documents. Callers may only list their own.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ownerID, ok := s.requireUserAndID(w, r)
	if !ok {
		return
	}
	if ownerID != userID {
		s.fail(w, "list resumes", &ErrForbidden{})
		return
	}
	summaries, err := s.store.ListResumes(r.Context(), ownerID)
	if err != nil {
		s.fail(w, "list resumes", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": summaries})
}

// handlePreviewResume renders a stored document. ?template= overrides the document's
// template and ?format=text returns plain text instead of HTML.
func (s *Server) handlePreviewResume(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.requireUserAndID(w, r)
	if !ok {
		return
	}
	doc, err := s.ownedResume(r.Context(), id, userID)
	if err != nil {
		s.fail(w, "preview resume", err)
		return
	}

	variant := doc.Template
	if t := r.URL.Query().Get("template"); t != "" {
		variant = types.TemplateName(t)
	}
	layout, err := rendering.Render(doc, variant)
	if err != nil {
		s.fail(w, "preview resume", err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(rendering.FormatText(layout)))
		return
	}
	html, err := rendering.FormatHTML(layout)
	if err != nil {
		s.fail(w, "preview resume", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleLatestAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.requireUserAndID(w, r)
	if !ok {
		return
	}
	if _, err := s.ownedResume(r.Context(), id, userID); err != nil {
		s.fail(w, "latest analysis", err)
		return
	}
	report, err := s.store.LatestAnalysis(r.Context(), id)
	if err != nil {
		s.fail(w, "latest analysis", err)
		return
	}
	if report == nil {
		s.errorResponse(w, http.StatusNotFound, "no analysis for this resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := s.requireUserAndID(w, r)
	if !ok {
		return
	}
	if _, err := s.ownedResume(r.Context(), id, userID); err != nil {
		s.fail(w, "list matches", err)
		return
	}
	matches, err := s.store.ListJobMatches(r.Context(), id)
	if err != nil {
		s.fail(w, "list matches", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": matches})
}

// ownedResume loads a document scoped to its owner; a miss is *ErrResumeNotFound.
func (s *Server) ownedResume(ctx context.Context, id, ownerID uuid.UUID) (*types.ResumeDocument, error) {
	doc, err := s.store.GetResume(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &ErrResumeNotFound{ResumeID: id}
	}
	return doc, nil
}

// saveAnalysis stores a report without failing the request.
func (s *Server) saveAnalysis(ctx context.Context, resumeID *uuid.UUID, jobDescription string, report *types.AnalysisResult) {
	if err := s.store.SaveAnalysis(ctx, resumeID, jobDescription, report); err != nil {
		s.logger.Warn("failed to save analysis", zap.Error(err))
	}
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

func (s *Server) requireUserAndID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.fail(w, "parse id", &ErrValidation{Field: "id", Message: "must be a UUID"})
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

// decodeBody decodes a bounded JSON body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrValidation{Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)}
		}
		return &ErrValidation{Message: "invalid request body"}
	}
	return nil
}
