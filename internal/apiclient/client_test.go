package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/credentials"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
)

// recorder answers every request with a canned response and remembers the last request
type recorder struct {
	status int
	body   string

	mu   sync.Mutex
	last seenRequest
}

type seenRequest struct {
	method string
	uri    string
	auth   string
	agent  string
	sent   []byte
}

func (r *recorder) seen() seenRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *recorder) start(t *testing.T) string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.mu.Lock()
		defer r.mu.Unlock()
		sent, _ := io.ReadAll(req.Body)
		r.last = seenRequest{
			method: req.Method,
			uri:    req.URL.RequestURI(),
			auth:   req.Header.Get("Authorization"),
			agent:  req.Header.Get("User-Agent"),
			sent:   sent,
		}

		status := r.status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, r.body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newRecordedClient(t *testing.T, rec *recorder, token string) (*Client, *credentials.MemoryStore) {
	t.Helper()
	store := credentials.NewMemoryStore(token)
	c, err := New(Config{BaseURL: rec.start(t) + "/v1/", UserAgent: "rc-test"}, store)
	require.NoError(t, err)
	return c, store
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.Error(t, err)

	_, err = New(Config{BaseURL: "ftp://example.com"}, credentials.NewMemoryStore(""))
	assert.Error(t, err)

	c, err := New(Config{}, credentials.NewMemoryStore(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultExpiryLeeway, c.leeway)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Nil(t, c.limiter)

	c, err = New(Config{BaseURL: "https://api.example.com/v1/", RateLimit: 5}, credentials.NewMemoryStore(""))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", c.baseURL)
	require.NotNil(t, c.limiter)
	assert.Equal(t, 1, c.limiter.Burst())
}

func TestLoginStoresToken(t *testing.T) {
	rec := &recorder{body: `{"message":"Login successful","token":"tok-123"}`}
	c, store := newRecordedClient(t, rec, "")

	token, err := c.Login(context.Background(), "s@uni.edu", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "/v1/auth/login", rec.seen().uri)
	assert.Empty(t, rec.seen().auth, "login is sent without a credential")
	assert.Equal(t, "rc-test", rec.seen().agent)
	assert.JSONEq(t, `{"email":"s@uni.edu","password":"secret"}`, string(rec.seen().sent))

	stored, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-123", stored)

	require.NoError(t, c.Logout())
	_, ok = store.Token()
	assert.False(t, ok)
}

func TestLoginUnverified(t *testing.T) {
	rec := &recorder{status: http.StatusForbidden, body: `{"error":"Email not verified","email_verified":false}`}
	c, store := newRecordedClient(t, rec, "")

	_, err := c.Login(context.Background(), "s@uni.edu", "secret")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	var apiErr *apperrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Email not verified", apiErr.Message)
	_, ok := store.Token()
	assert.False(t, ok)
}

func TestErrorBodies(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		message  string
		code     string
		sentinel error
	}{
		{"flat", http.StatusConflict, `{"error":"You have already applied to this project"}`, "You have already applied to this project", "", apperrors.ErrConflict},
		{"flat with code", http.StatusNotFound, `{"error":"Project not found","code":"RES_001"}`, "Project not found", "RES_001", apperrors.ErrResourceNotFound},
		{"nested", http.StatusBadRequest, `{"success":false,"error":{"code":"VAL_001","message":"status is required"}}`, "status is required", "VAL_001", apperrors.ErrBadRequest},
		{"not json", http.StatusBadGateway, `bad gateway`, "", "", apperrors.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{status: tt.status, body: tt.body}
			c, _ := newRecordedClient(t, rec, "")

			_, err := c.GetProject(context.Background(), "p1")
			require.Error(t, err)

			var apiErr *apperrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, http.MethodGet, apiErr.Method)
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}

func TestUnauthenticated401IsReturnedAsIs(t *testing.T) {
	rec := &recorder{status: http.StatusUnauthorized, body: `{"error":"Authorization header required"}`}
	c, _ := newRecordedClient(t, rec, "")

	_, err := c.Me(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.False(t, errors.Is(err, apperrors.ErrSessionExpired))
}

func TestRequestShapes(t *testing.T) {
	token := mintToken(t, time.Now().Add(time.Hour))
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func(c *Client) error
		method string
		uri    string
		body   string
	}{
		{
			name:   "student projects defaults",
			call:   func(c *Client) error { _, err := c.ListStudentProjects(ctx, 0, 0); return err },
			method: http.MethodGet,
			uri:    "/v1/projects/student?page=1&pageSize=20",
		},
		{
			name:   "student projects page",
			call:   func(c *Client) error { _, err := c.ListStudentProjects(ctx, 3, 5); return err },
			method: http.MethodGet,
			uri:    "/v1/projects/student?page=3&pageSize=5",
		},
		{
			name:   "escaped pid",
			call:   func(c *Client) error { _, err := c.GetProject(ctx, "a/b c"); return err },
			method: http.MethodGet,
			uri:    "/v1/projects/a%2Fb%20c",
		},
		{
			name:   "remove working user",
			call:   func(c *Client) error { _, err := c.RemoveWorkingUser(ctx, "p1", "u2"); return err },
			method: http.MethodDelete,
			uri:    "/v1/projects/p1/working-users/u2",
		},
		{
			name: "status update",
			call: func(c *Client) error {
				_, err := c.UpdateApplicationStatus(ctx, "p1", 7, models.StatusAccepted)
				return err
			},
			method: http.MethodPut,
			uri:    "/v1/projects/p1/applications/7",
			body:   `{"status":"accepted"}`,
		},
		{
			name:   "feedback",
			call:   func(c *Client) error { _, err := c.SendFeedback(ctx, "p1", 7, "great fit"); return err },
			method: http.MethodPost,
			uri:    "/v1/projects/p1/applications/7/feedback",
			body:   `{"feedback":"great fit"}`,
		},
		{
			name: "explore filters",
			call: func(c *Client) error {
				_, err := c.Explore(ctx, ExploreFilter{Type: models.UserTypeStudent, Search: "graph ml"})
				return err
			},
			method: http.MethodGet,
			uri:    "/v1/profile/explore?search=graph+ml&type=stu",
		},
		{
			name:   "explore unfiltered",
			call:   func(c *Client) error { _, err := c.Explore(ctx, ExploreFilter{}); return err },
			method: http.MethodGet,
			uri:    "/v1/profile/explore",
		},
		{
			name:   "retract",
			call:   func(c *Client) error { _, err := c.Retract(ctx, "p9"); return err },
			method: http.MethodDelete,
			uri:    "/v1/projects/p9/retract",
		},
		{
			name:   "generate roadmap",
			call:   func(c *Client) error { _, err := c.GenerateRoadmap(ctx); return err },
			method: http.MethodPost,
			uri:    "/v1/roadmap/generate",
			body:   `{}`,
		},
		{
			name:   "placement generate",
			call:   func(c *Client) error { _, err := c.GeneratePlacementRoadmap(ctx); return err },
			method: http.MethodPost,
			uri:    "/v1/roadmap/placement/generate",
			body:   `{}`,
		},
		{
			name: "create problem statement",
			call: func(c *Client) error {
				_, err := c.CreateProblemStatement(ctx, dto.CreateProblemStatementRequest{
					Title: "Flood", Description: "Forecast floods", Theme: "Climate", Category: "Software",
				})
				return err
			},
			method: http.MethodPost,
			uri:    "/v1/problem-statements",
			body:   `{"shortDesc":"Flood","longDesc":"Forecast floods","theme":"Climate","category":"Software"}`,
		},
		{
			name: "update problem statement",
			call: func(c *Client) error {
				theme := "Water"
				_, err := c.UpdateProblemStatement(ctx, "ps-1", dto.UpdateProblemStatementRequest{Theme: &theme})
				return err
			},
			method: http.MethodPut,
			uri:    "/v1/problem-statements/ps-1",
			body:   `{"theme":"Water"}`,
		},
		{
			name:   "my problem statements",
			call:   func(c *Client) error { _, err := c.ListMyProblemStatements(ctx); return err },
			method: http.MethodGet,
			uri:    "/v1/problem-statements/my",
		},
		{
			name:   "delete problem statement",
			call:   func(c *Client) error { _, err := c.DeleteProblemStatement(ctx, "ps-1"); return err },
			method: http.MethodDelete,
			uri:    "/v1/problem-statements/ps-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{body: `{}`}
			c, _ := newRecordedClient(t, rec, token)

			require.NoError(t, tt.call(c))
			assert.Equal(t, tt.method, rec.seen().method)
			assert.Equal(t, tt.uri, rec.seen().uri)
			assert.Equal(t, "Bearer "+token, rec.seen().auth)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, string(rec.seen().sent))
			} else {
				assert.Empty(t, rec.seen().sent)
			}
		})
	}
}

func TestPublicProblemStatementsNeedNoSession(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{body: `{"problemStatements":[{"id":1,"psid":"ps-1","shortDesc":"Flood","category":"Software"}],"category":"soft","count":1}`}
	c, _ := newRecordedClient(t, rec, "")

	found, err := c.SearchProblemStatements(ctx, "soft ware")
	require.NoError(t, err)
	require.Equal(t, 1, found.Count)
	assert.Equal(t, "Flood", found.ProblemStatements[0].Title)
	assert.Equal(t, "/v1/problem-statements/search?category=soft+ware", rec.seen().uri)
	assert.Empty(t, rec.seen().auth)

	_, err = c.ListProblemStatements(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/v1/problem-statements", rec.seen().uri)

	rec = &recorder{body: `{"id":1,"psid":"ps-1","shortDesc":"Flood","uploader":{"name":"Ada","email":"ada@uni.edu","type":"stu"}}`}
	c, _ = newRecordedClient(t, rec, "")
	got, err := c.GetProblemStatement(ctx, "ps-1")
	require.NoError(t, err)
	require.NotNil(t, got.Uploader)
	assert.Equal(t, "Ada", got.Uploader.Name)
	assert.Empty(t, rec.seen().auth)
}

func TestApplicationForProject(t *testing.T) {
	apps := map[string]interface{}{
		"applications": []models.Application{
			{ID: 1, PID: "p1", Status: models.StatusUnderReview},
			{ID: 2, PID: "p2", Status: models.StatusInterview},
		},
		"count": 2,
	}
	raw, err := json.Marshal(apps)
	require.NoError(t, err)

	rec := &recorder{body: string(raw)}
	c, _ := newRecordedClient(t, rec, mintToken(t, time.Now().Add(time.Hour)))

	app, err := c.ApplicationForProject(context.Background(), "p2")
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, uint(2), app.ID)
	assert.Equal(t, models.StatusInterview, app.Status)
	assert.Equal(t, "/v1/applications/my", rec.seen().uri)

	app, err = c.ApplicationForProject(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, app)
}

func TestRoadmapHistoryDecodesArray(t *testing.T) {
	rec := &recorder{body: `[{"id":2,"user_id":"u1","roadmap_type":"placement","title":"Prep","roadmap_data":"{}"},{"id":1,"user_id":"u1","roadmap_type":"research","title":"ML"}]`}
	c, _ := newRecordedClient(t, rec, mintToken(t, time.Now().Add(time.Hour)))

	history, err := c.RoadmapHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.RoadmapPlacement, history[0].RoadmapType)
}

func TestRateLimiterHonoursContext(t *testing.T) {
	rec := &recorder{body: `{}`}
	store := credentials.NewMemoryStore("")
	c, err := New(Config{BaseURL: rec.start(t), RateLimit: 0.001, Burst: 1}, store)
	require.NoError(t, err)

	_, err = c.VerifyResetToken(context.Background(), "t")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.VerifyResetToken(ctx, "t")
	assert.Error(t, err, "second request must wait far longer than the deadline")
}
