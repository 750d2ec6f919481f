package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-studio/internal/types"
)

// Client is the contract of the remote service. Every call is made on behalf of the
// authenticated session.
type Client interface {
	Analyze(ctx context.Context, doc *types.ResumeDocument, jobDescription string) (*types.AnalysisResult, error)
	Match(ctx context.Context, resumeID uuid.UUID, jobDescription string) (*types.MatchResult, error)
	CreateResume(ctx context.Context, doc *types.ResumeDocument, analysis *types.AnalysisResult) (*types.ResumeDocument, error)
	UpdateResume(ctx context.Context, id uuid.UUID, doc *types.ResumeDocument) (*types.ResumeDocument, error)
	GetResume(ctx context.Context, id uuid.UUID) (*types.ResumeDocument, error)
	ListResumes(ctx context.Context, ownerID uuid.UUID) ([]types.ResumeSummary, error)
	UploadAndAnalyze(ctx context.Context, filename string, r io.Reader) (*types.UploadResult, error)
}

var _ Client = (*HTTPClient)(nil)

// AnalyzeRequest is the body of POST /resume/analyze
type AnalyzeRequest struct {
	Resume         *types.ResumeDocument `json:"resume"`
	JobDescription *string               `json:"job_description"`
}

// CreateResumeRequest is the body of POST /resumes. Analysis is the report held at save
// time, if any.
type CreateResumeRequest struct {
	Resume          *types.ResumeDocument `json:"resume"`
	AnalysisResults *types.AnalysisResult `json:"analysis_results,omitempty"`
}

// MatchRequest is the body of POST /resume/match
type MatchRequest struct {
	ResumeID       uuid.UUID `json:"resume_id"`
	JobDescription string    `json:"job_description"`
}

// errorBody is the JSON error envelope returned by the service
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// HTTPClient implements Client over the service's JSON API
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures an HTTPClient
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewHTTPClient returns a client for the API rooted at baseURL (e.g. http://localhost:8000/api).
func NewHTTPClient(baseURL, token string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, e.g. after login.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// Analyze scores doc, optionally against a job description.
func (c *HTTPClient) Analyze(ctx context.Context, doc *types.ResumeDocument, jobDescription string) (*types.AnalysisResult, error) {
	req := AnalyzeRequest{Resume: doc}
	if strings.TrimSpace(jobDescription) != "" {
		req.JobDescription = &jobDescription
	}
	var out types.AnalysisResult
	if err := c.doJSON(ctx, http.MethodPost, "/resume/analyze", req, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, &DecodeError{Operation: "analyze", Cause: err}
	}
	return &out, nil
}

// Match compares the saved résumé with a job description.
func (c *HTTPClient) Match(ctx context.Context, resumeID uuid.UUID, jobDescription string) (*types.MatchResult, error) {
	var out types.MatchResult
	req := MatchRequest{ResumeID: resumeID, JobDescription: jobDescription}
	if err := c.doJSON(ctx, http.MethodPost, "/resume/match", req, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, &DecodeError{Operation: "match", Cause: err}
	}
	return &out, nil
}

// CreateResume persists a new document together with an optional analysis report; the
// response carries the assigned id and timestamps.
func (c *HTTPClient) CreateResume(ctx context.Context, doc *types.ResumeDocument, analysis *types.AnalysisResult) (*types.ResumeDocument, error) {
	var out types.ResumeDocument
	req := CreateResumeRequest{Resume: doc, AnalysisResults: analysis}
	if err := c.doJSON(ctx, http.MethodPost, "/resumes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateResume replaces the stored document. A stale version yields a 409 RemoteError.
func (c *HTTPClient) UpdateResume(ctx context.Context, id uuid.UUID, doc *types.ResumeDocument) (*types.ResumeDocument, error) {
	var out types.ResumeDocument
	if err := c.doJSON(ctx, http.MethodPut, "/resumes/"+id.String(), doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetResume fetches one document.
func (c *HTTPClient) GetResume(ctx context.Context, id uuid.UUID) (*types.ResumeDocument, error) {
	var out types.ResumeDocument
	if err := c.doJSON(ctx, http.MethodGet, "/resumes/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListResumes returns the owner's document summaries.
func (c *HTTPClient) ListResumes(ctx context.Context, ownerID uuid.UUID) ([]types.ResumeSummary, error) {
	var out struct {
		Resumes []types.ResumeSummary `json:"resumes"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+ownerID.String()+"/resumes", nil, &out); err != nil {
		return nil, err
	}
	if out.Resumes == nil {
		out.Resumes = []types.ResumeSummary{}
	}
	return out.Resumes, nil
}

// UploadAndAnalyze sends a résumé file as multipart form field "file".
func (c *HTTPClient) UploadAndAnalyze(ctx context.Context, filename string, r io.Reader) (*types.UploadResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload/resume", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out types.UploadResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if out.ResumeData == nil || out.AnalysisResults == nil {
		return nil, &DecodeError{Operation: "upload", Cause: fmt.Errorf("missing resume_data or analysis_results")}
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token and keeps it for later calls.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*types.LoginResponse, error) {
	var out types.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", types.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Register creates an account and keeps the returned token.
func (c *HTTPClient) Register(ctx context.Context, req types.RegisterRequest) (*types.LoginResponse, error) {
	var out types.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend call",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Operation: req.Method + " " + req.URL.Path, Cause: err}
	}
	return nil
}

func remoteError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	re := &RemoteError{StatusCode: resp.StatusCode}

	var eb errorBody
	if json.Unmarshal(data, &eb) == nil && (eb.Error != "" || eb.Detail != "") {
		re.Message = eb.Error
		if re.Message == "" {
			re.Message = eb.Detail
		}
	} else {
		re.Message = strings.TrimSpace(string(data))
	}
	return re
}
