package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
)

type testServer struct {
	*Server
	env     *testEnv
	handler http.Handler
	userID  uuid.UUID
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	env := newTestEnv(t)
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:   true,
		Limit:     2,
		Window:    time.Hour,
		Whitelist: map[string]bool{},
	})
	t.Cleanup(limiter.Stop)

	s := New(Config{Port: 0, CORSOrigin: "https://app.example.com"}, env.service, env.jwt, limiter, discardLogger())
	userID := uuid.New()
	token, err := env.jwt.GenerateToken(userID)
	require.NoError(t, err)

	return &testServer{Server: s, env: env, handler: s.Handler(), userID: userID, token: token}
}

// do sends a request through the full handler chain.
func (ts *testServer) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

// authed sends a request as the test user.
func (ts *testServer) authed(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return ts.do(t, method, path, body, http.Header{"Authorization": {"Bearer " + ts.token}})
}

func (ts *testServer) createResume(t *testing.T, slug string) types.Resume {
	t.Helper()
	w := ts.authed(t, http.MethodPost, "/resumes", types.CreateResumeRequest{Name: "CV", Slug: slug, WithSampleData: true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resume types.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resume))
	return resume
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// TestHealthEndpoint tests the /health endpoint
func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodGet, "/health", nil, nil)

	w := ts.do(t, http.MethodGet, "/metrics", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "resume_builder_http_requests_total")
}

// TestCORSMiddleware tests CORS headers are set
func TestCORSMiddleware(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), resumeAccessHeader)
}

// TestCORSMiddleware_OPTIONS tests OPTIONS preflight request
func TestCORSMiddleware_OPTIONS(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodOptions, "/resumes", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len(), "OPTIONS response should have empty body")
}

func TestLoggingMiddleware(t *testing.T) {
	ts := newTestServer(t)

	called := false
	handler := ts.withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.True(t, called, "logging middleware should call next handler")
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestJSONResponse(t *testing.T) {
	ts := newTestServer(t)
	w := httptest.NewRecorder()

	ts.jsonResponse(w, http.StatusOK, map[string]string{"key": "value"})

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())
}

func TestErrorResponse(t *testing.T) {
	ts := newTestServer(t)
	w := httptest.NewRecorder()

	ts.errorResponse(w, http.StatusBadRequest, "test error")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"test error"}`, w.Body.String())
}

func TestServiceError_HidesInternalErrors(t *testing.T) {
	ts := newTestServer(t)
	w := httptest.NewRecorder()

	ts.serviceError(w, httptest.NewRequest(http.MethodGet, "/x", nil), fmt.Errorf("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestResumeEndpoints_RequireAuth(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/resumes"},
		{http.MethodPost, "/resumes"},
		{http.MethodGet, "/resumes/" + id.String()},
		{http.MethodDelete, "/resumes/" + id.String()},
		{http.MethodPost, "/resumes/" + id.String() + "/move"},
		{http.MethodGet, "/resumes/" + id.String() + "/layout/issues"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := ts.do(t, tt.method, tt.path, nil, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestResumeEndpoints_InvalidInput(t *testing.T) {
	ts := newTestServer(t)

	t.Run("invalid id", func(t *testing.T) {
		w := ts.authed(t, http.MethodGet, "/resumes/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		w := ts.authed(t, http.MethodPost, "/resumes", "{invalid")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing slug", func(t *testing.T) {
		w := ts.authed(t, http.MethodPost, "/resumes", types.CreateResumeRequest{Name: "CV"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown resume", func(t *testing.T) {
		w := ts.authed(t, http.MethodGet, "/resumes/"+uuid.New().String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lock without flag", func(t *testing.T) {
		w := ts.authed(t, http.MethodPut, "/resumes/"+uuid.New().String()+"/lock", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestResumeLifecycle(t *testing.T) {
	ts := newTestServer(t)
	resume := ts.createResume(t, "game-dev")
	base := "/resumes/" + resume.ID.String()

	t.Run("duplicate slug", func(t *testing.T) {
		w := ts.authed(t, http.MethodPost, "/resumes", types.CreateResumeRequest{Name: "CV", Slug: "game-dev"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := ts.authed(t, http.MethodGet, "/resumes?sort=name", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resumes []types.Resume
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resumes))
		require.Len(t, resumes, 1)
		assert.Nil(t, resumes[0].Data)
	})

	t.Run("update", func(t *testing.T) {
		w := ts.authed(t, http.MethodPatch, base, map[string]any{"name": "Game Dev CV", "tags": []string{"games"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var out types.Resume
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, "Game Dev CV", out.Name)

		w = ts.authed(t, http.MethodGet, "/resumes/tags", nil)
		assert.JSONEq(t, `["games"]`, w.Body.String())
	})

	t.Run("invalid data", func(t *testing.T) {
		doc := types.SampleResumeData()
		doc.Metadata.Layout.Pages[0].Main = append(doc.Metadata.Layout.Pages[0].Main, "does-not-exist")
		w := ts.authed(t, http.MethodPatch, base, map[string]any{"data": doc})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeError(t, w)
		assert.NotEmpty(t, resp["issues"])
	})

	t.Run("lock blocks delete", func(t *testing.T) {
		w := ts.authed(t, http.MethodPut, base+"/lock", map[string]bool{"locked": true})
		require.Equal(t, http.StatusOK, w.Code)

		w = ts.authed(t, http.MethodDelete, base, nil)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = ts.authed(t, http.MethodPut, base+"/lock", map[string]bool{"locked": false})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		w := ts.authed(t, http.MethodPost, base+"/duplicate", types.DuplicateResumeRequest{Name: "Copy", Slug: "copy"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("statistics", func(t *testing.T) {
		w := ts.authed(t, http.MethodGet, base+"/statistics", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var stats types.ResumeStatistics
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Zero(t, stats.Views)
	})

	t.Run("delete", func(t *testing.T) {
		w := ts.authed(t, http.MethodDelete, base, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = ts.authed(t, http.MethodGet, base, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestImportEndpoint(t *testing.T) {
	ts := newTestServer(t)

	t.Run("valid", func(t *testing.T) {
		w := ts.authed(t, http.MethodPost, "/resumes/import", map[string]any{
			"name": "Imported",
			"slug": "imported",
			"data": json.RawMessage(sampleDocument(t)),
		})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("schema errors are listed", func(t *testing.T) {
		w := ts.authed(t, http.MethodPost, "/resumes/import", map[string]any{
			"name": "Broken",
			"slug": "broken",
			"data": "not a document",
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeError(t, w)
		assert.NotEmpty(t, resp["errors"])
	})
}

func TestEditorEndpoints(t *testing.T) {
	ts := newTestServer(t)
	resume := ts.createResume(t, "editor")
	base := "/resumes/" + resume.ID.String()
	skillID := resume.Data.Sections.Skills.Items[0].Base().ID

	t.Run("move targets", func(t *testing.T) {
		w := ts.authed(t, http.MethodGet, base+"/move-targets?type=skills", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var pages []editor.MoveTargetPage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pages))
	})

	t.Run("move targets with unknown type", func(t *testing.T) {
		w := ts.authed(t, http.MethodGet, base+"/move-targets?type=hobbies", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("move to new section", func(t *testing.T) {
		w := ts.authed(t, http.MethodPost, base+"/move", editor.MoveCommand{
			ItemID:          skillID,
			Type:            types.TypeSkills,
			Target:          editor.TargetNewSection,
			TargetPageIndex: 0,
			SectionTitle:    "Tools",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp MoveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Result.Created)
		cs := resp.Resume.Data.CustomSection(resp.Result.SectionID)
		require.NotNil(t, cs)
		assert.Equal(t, "Tools", cs.Title)
	})

	t.Run("page out of range", func(t *testing.T) {
		w := ts.authed(t, http.MethodPost, base+"/move", editor.MoveCommand{
			ItemID:          resume.Data.Sections.Skills.Items[1].Base().ID,
			Type:            types.TypeSkills,
			Target:          editor.TargetNewSection,
			TargetPageIndex: 99,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("moved item is gone", func(t *testing.T) {
		w := ts.authed(t, http.MethodPost, base+"/move", editor.MoveCommand{
			ItemID: skillID,
			Type:   types.TypeSkills,
			Target: editor.TargetNewPage,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("layout issues", func(t *testing.T) {
		w := ts.authed(t, http.MethodGet, base+"/layout/issues", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var issues []layout.Issue
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issues))
		assert.Empty(t, issues)
	})
}

func TestPublicEndpoints(t *testing.T) {
	ts := newTestServer(t)
	resume := ts.createResume(t, "shared")
	path := "/public/" + ts.userID.String() + "/shared"

	t.Run("private resume", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("owner sees private resume", func(t *testing.T) {
		w := ts.authed(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, path, nil, http.Header{"Authorization": {"Bearer nope"}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	w := ts.authed(t, http.MethodPatch, "/resumes/"+resume.ID.String(), map[string]any{"isPublic": true})
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.authed(t, http.MethodPut, "/resumes/"+resume.ID.String()+"/password", map[string]string{"password": "let-me-in"})
	require.Equal(t, http.StatusNoContent, w.Code)

	t.Run("password required", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("verify and view", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, path+"/verify", map[string]string{"password": "let-me-in"}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp["token"])

		w = ts.do(t, http.MethodGet, path, nil, http.Header{resumeAccessHeader: {resp["token"]}})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("verify is rate limited", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, path+"/verify", map[string]string{"password": "guess"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = ts.do(t, http.MethodPost, path+"/verify", map[string]string{"password": "guess"}, nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("download", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, path+"/downloads", nil, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = ts.authed(t, http.MethodGet, "/resumes/"+resume.ID.String()+"/statistics", nil)
		var stats types.ResumeStatistics
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 1, stats.Downloads)
		assert.Equal(t, 1, stats.Views)
	})
}
