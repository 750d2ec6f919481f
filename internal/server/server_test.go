package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/server/ratelimit"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server   *Server
	store    *mockStore
	analyzer *mockAnalyzer
}

func newTestEnv(t *testing.T, rl *ratelimit.Config) *testEnv {
	t.Helper()
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	store := newMockStore()
	analyzer := newMockAnalyzer()
	s, err := New(Config{
		Port:      0,
		Password:  &config.PasswordConfig{BcryptCost: 4},
		JWT:       &config.JWTConfig{Secret: testJWTSecret, Issuer: config.DefaultJWTIssuer, ExpirationHours: 1},
		RateLimit: rl,
	}, store, analyzer)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return &testEnv{server: s, store: store, analyzer: analyzer}
}

// user creates an account directly in the store and returns its id and a bearer token.
func (e *testEnv) user(t *testing.T, email string) (uuid.UUID, string) {
	t.Helper()
	hash, err := (&config.PasswordConfig{BcryptCost: 4}).HashPassword("correct-horse")
	require.NoError(t, err)
	id, err := e.store.CreateUser(context.Background(), "Test User", email, hash)
	require.NoError(t, err)
	token, err := e.server.jwtService.GenerateToken(id)
	require.NoError(t, err)
	return id, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, rec)["error"]
}

func sampleResume() *types.ResumeDocument {
	doc := types.NewResumeDocument()
	doc.Name = "Backend CV"
	doc.PersonalInfo = &types.PersonalInfo{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555", JobTitle: "Engineer"}
	doc.Experience = []types.ExperienceEntry{{Title: "Analyst", Company: "Engine Co", StartDate: "1842", Current: true, Responsibilities: []string{"Wrote programs"}}}
	doc.Skills = []string{"Go", "SQL"}
	doc.Template = types.TemplateClassic
	return doc
}

func TestNew_RequiresDependencies(t *testing.T) {
	cfg := Config{Password: &config.PasswordConfig{BcryptCost: 4}, JWT: &config.JWTConfig{Secret: testJWTSecret}}

	_, err := New(cfg, nil, newMockAnalyzer())
	assert.Error(t, err)
	_, err = New(cfg, newMockStore(), nil)
	assert.Error(t, err)
	_, err = New(Config{}, newMockStore(), newMockAnalyzer())
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])

	env.store.pingErr = errors.New("db down")
	rec = env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodOptions, "/api/resumes", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestListTemplates(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/templates", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Templates []templateInfo `json:"templates"`
	}](t, rec)
	require.Len(t, body.Templates, 4)
	assert.Equal(t, types.TemplateModern, body.Templates[0].Name)
}

func TestAuth_RegisterLoginMe(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", types.RegisterRequest{
		Name: "Ada", Email: "Ada@Example.com", Password: "analytical-engine",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := decode[types.LoginResponse](t, rec)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "ada@example.com", registered.User.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = env.do(t, http.MethodPost, "/api/auth/register", "", types.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "analytical-engine",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", types.LoginRequest{Email: "ada@example.com", Password: "analytical-engine"})
	require.Equal(t, http.StatusOK, rec.Code)
	loggedIn := decode[types.LoginResponse](t, rec)

	rec = env.do(t, http.MethodGet, "/api/auth/me", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, registered.User.ID, decode[types.User](t, rec).ID)
}

func TestAuth_Register_Validation(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", types.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "Password")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	r := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(r, req)
	assert.Equal(t, http.StatusBadRequest, r.Code)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t, nil)
	env.user(t, "ada@example.com")

	wrongPassword := env.do(t, http.MethodPost, "/api/auth/login", "", types.LoginRequest{Email: "ada@example.com", Password: "nope"})
	unknownEmail := env.do(t, http.MethodPost, "/api/auth/login", "", types.LoginRequest{Email: "who@example.com", Password: "nope"})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, errorMessage(t, wrongPassword), errorMessage(t, unknownEmail))
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/resumes"},
		{http.MethodGet, "/api/resumes/" + uuid.NewString()},
		{http.MethodGet, "/api/users/" + uuid.NewString() + "/resumes"},
		{http.MethodPost, "/api/resume/analyze"},
		{http.MethodPost, "/api/resume/match"},
		{http.MethodPost, "/api/upload/resume"},
	} {
		rec := env.do(t, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}

	rec := env.do(t, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResumes_CRUD(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := env.user(t, "ada@example.com")

	rec := env.do(t, http.MethodPost, "/api/resumes", token, backend.CreateResumeRequest{Resume: sampleResume()})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[types.ResumeDocument](t, rec)
	require.True(t, created.Saved())
	assert.Equal(t, int64(1), created.Version)
	path := "/api/resumes/" + created.ID.String()

	rec = env.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada Lovelace", decode[types.ResumeDocument](t, rec).PersonalInfo.Name)

	update := created.Clone()
	update.Skills = append(update.Skills, "Rust")
	rec = env.do(t, http.MethodPut, path, token, update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[types.ResumeDocument](t, rec)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, []string{"Go", "SQL", "Rust"}, updated.Skills)

	// a second writer still holding version 1
	rec = env.do(t, http.MethodPut, path, token, created)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResumes_Validation(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := env.user(t, "ada@example.com")

	rec := env.do(t, http.MethodPost, "/api/resumes", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad := sampleResume()
	bad.Template = "fancy"
	rec = env.do(t, http.MethodPost, "/api/resumes", token, backend.CreateResumeRequest{Resume: bad})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "template")

	report := *env.analyzer.analysis
	report.OverallScore = 150
	rec = env.do(t, http.MethodPost, "/api/resumes", token, backend.CreateResumeRequest{Resume: sampleResume(), AnalysisResults: &report})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/resumes/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	created := decode[types.ResumeDocument](t, env.do(t, http.MethodPost, "/api/resumes", token, backend.CreateResumeRequest{Resume: sampleResume()}))
	rec = env.do(t, http.MethodPut, "/api/resumes/"+uuid.NewString(), token, created)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "id in body must match the URL")
}

func TestResumes_CreateStoresAnalysis(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := env.user(t, "ada@example.com")

	rec := env.do(t, http.MethodPost, "/api/resumes", token, backend.CreateResumeRequest{
		Resume: sampleResume(), AnalysisResults: env.analyzer.analysis,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[types.ResumeDocument](t, rec)

	rec = env.do(t, http.MethodGet, "/api/resumes/"+created.ID.String()+"/analysis", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 72, decode[types.AnalysisResult](t, rec).OverallScore)
}

func TestResumes_OwnerScoping(t *testing.T) {
	env := newTestEnv(t, nil)
	adaID, adaToken := env.user(t, "ada@example.com")
	_, bobToken := env.user(t, "bob@example.com")

	created := decode[types.ResumeDocument](t, env.do(t, http.MethodPost, "/api/resumes", adaToken, backend.CreateResumeRequest{Resume: sampleResume()}))
	path := "/api/resumes/" + created.ID.String()

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, bobToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, path, bobToken, created).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, bobToken, nil).Code)

	rec := env.do(t, http.MethodGet, "/api/users/"+adaID.String()+"/resumes", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/"+adaID.String()+"/resumes", adaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Resumes []types.ResumeSummary `json:"resumes"`
	}](t, rec)
	require.Len(t, list.Resumes, 1)
	assert.Equal(t, "Backend CV", list.Resumes[0].Name)
}

func TestResumes_Preview(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := env.user(t, "ada@example.com")

	doc := sampleResume()
	doc.Summary = "<script>alert(1)</script>"
	created := decode[types.ResumeDocument](t, env.do(t, http.MethodPost, "/api/resumes", token, backend.CreateResumeRequest{Resume: doc}))
	path := "/api/resumes/" + created.ID.String() + "/preview"

	rec := env.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Ada Lovelace")
	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")

	rec = env.do(t, http.MethodGet, path+"?format=text&template=modern", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "Engine Co")
}

func TestAnalyze(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := env.user(t, "ada@example.com")

	jd := "  Go developer  "
	rec := env.do(t, http.MethodPost, "/api/resume/analyze", token, backend.AnalyzeRequest{Resume: sampleResume(), JobDescription: &jd})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 72, decode[types.AnalysisResult](t, rec).OverallScore)
	assert.Equal(t, []string{"Go developer"}, env.analyzer.analyzedJDs)
	assert.Zero(t, env.store.orphans, "unsaved drafts are not stored")

	created := decode[types.ResumeDocument](t, env.do(t, http.MethodPost, "/api/resumes", token, backend.CreateResumeRequest{Resume: sampleResume()}))
	rec = env.do(t, http.MethodPost, "/api/resume/analyze", token, backend.AnalyzeRequest{Resume: &created})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.store.analyses[*created.ID], 1)
}

func TestAnalyze_Errors(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := env.user(t, "ada@example.com")

	rec := env.do(t, http.MethodPost, "/api/resume/analyze", token, backend.AnalyzeRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.analyzer.err = errors.New("quota exceeded")
	rec = env.do(t, http.MethodPost, "/api/resume/analyze", token, backend.AnalyzeRequest{Resume: sampleResume()})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "quota")
}

func TestMatch(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := env.user(t, "ada@example.com")
	created := decode[types.ResumeDocument](t, env.do(t, http.MethodPost, "/api/resumes", token, backend.CreateResumeRequest{Resume: sampleResume()}))

	rec := env.do(t, http.MethodPost, "/api/resume/match", token, backend.MatchRequest{ResumeID: *created.ID, JobDescription: " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/resume/match", token, backend.MatchRequest{ResumeID: uuid.New(), JobDescription: "Go"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/resume/match", token, backend.MatchRequest{ResumeID: *created.ID, JobDescription: "Go and Rust"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 55, decode[types.MatchResult](t, rec).MatchPercentage)

	rec = env.do(t, http.MethodGet, "/api/resumes/"+created.ID.String()+"/matches", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	matches := decode[struct {
		Matches []struct {
			JobDescription string `json:"job_description"`
		} `json:"matches"`
	}](t, rec)
	require.Len(t, matches.Matches, 1)
	assert.Equal(t, "Go and Rust", matches.Matches[0].JobDescription)
}

func uploadRequest(t *testing.T, filename, content, token string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/resume", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUpload(t *testing.T) {
	env := newTestEnv(t, nil)
	ownerID, token := env.user(t, "ada@example.com")

	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, uploadRequest(t, "ada-cv.md", "# Ada Lovelace\n\n* Wrote   programs\n", token,
		map[string]string{"job_description": "Mathematician"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	result := decode[types.UploadResult](t, rec)
	require.NotNil(t, result.ResumeData)
	require.NotNil(t, result.AnalysisResults)
	assert.True(t, result.ResumeData.Saved())
	assert.Equal(t, ownerID, *result.ResumeData.OwnerID)
	assert.Equal(t, "ada-cv", result.ResumeData.Name)
	assert.Equal(t, "# Ada Lovelace\n\n- Wrote programs", env.analyzer.structureText)
	assert.Equal(t, []string{"Mathematician"}, env.analyzer.analyzedJDs)
	assert.Len(t, env.store.analyses[*result.ResumeData.ID], 1)
}

func TestUpload_Errors(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := env.user(t, "ada@example.com")

	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, uploadRequest(t, "cv.pdf", "%PDF-1.4", token, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), ".pdf")

	rec = httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, uploadRequest(t, "", "", token, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, uploadRequest(t, "cv.txt", "   \n", token, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the model's document fails the schema
	env.analyzer.structured = sampleResume()
	env.analyzer.structured.Template = "fancy"
	rec = httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, uploadRequest(t, "cv.txt", "Ada", token, nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, env.store.resumes)
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Minute,
	})

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodGet, "/api/templates", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := env.do(t, http.MethodGet, "/api/templates", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, errorMessage(t, rec), "rate limit")
}

func TestBackendClient_AgainstServer(t *testing.T) {
	env := newTestEnv(t, nil)
	srv := httptest.NewServer(env.server.Handler())
	defer srv.Close()

	ctx := context.Background()
	client := backend.NewHTTPClient(srv.URL+"/api", "")

	login, err := client.Register(ctx, types.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "analytical-engine"})
	require.NoError(t, err)

	created, err := client.CreateResume(ctx, sampleResume(), nil)
	require.NoError(t, err)
	require.True(t, created.Saved())

	created.Summary = "Pioneer"
	updated, err := client.UpdateResume(ctx, *created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)

	_, err = client.UpdateResume(ctx, *created.ID, created)
	assert.True(t, backend.IsConflict(err))

	list, err := client.ListResumes(ctx, login.User.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	report, err := client.Analyze(ctx, updated, "")
	require.NoError(t, err)
	assert.Equal(t, 72, report.OverallScore)

	match, err := client.Match(ctx, *created.ID, "Go")
	require.NoError(t, err)
	assert.Equal(t, 55, match.MatchPercentage)

	upload, err := client.UploadAndAnalyze(ctx, "cv.txt", strings.NewReader("Ada Lovelace\nAnalyst"))
	require.NoError(t, err)
	assert.True(t, upload.ResumeData.Saved())

	_, err = client.GetResume(ctx, uuid.New())
	assert.True(t, backend.IsNotFound(err))
}
