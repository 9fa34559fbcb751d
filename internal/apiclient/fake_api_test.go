package apiclient

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yigit/researchconnect/internal/credentials"
)

const testSecret = "apiclient-test-secret"

// mintToken returns a signed token expiring at exp
func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

type attempt struct {
	method    string
	path      string
	token     string
	requestID string
	body      []byte
}

// fakeAPI accepts bearer tokens from its valid set and implements /auth/refresh
type fakeAPI struct {
	t *testing.T

	mu       sync.Mutex
	valid    map[string]bool
	attempts []attempt

	refreshCalls atomic.Int32
	unauthorized atomic.Int32

	// refreshStatus, when non-zero, makes /auth/refresh fail with that status
	refreshStatus int
	// rejectRefreshed keeps refreshed tokens out of the valid set
	rejectRefreshed bool
	// refreshGate, when set, holds /auth/refresh until it is closed
	refreshGate chan struct{}
	// onUnauthorized runs before a 401 is written
	onUnauthorized func(token string)

	server *httptest.Server
}

// newFakeAPI returns an unstarted fake; configure it, then call client
func newFakeAPI(t *testing.T) *fakeAPI {
	return &fakeAPI{t: t, valid: map[string]bool{}}
}

func (f *fakeAPI) accept(token string) {
	f.mu.Lock()
	f.valid[token] = true
	f.mu.Unlock()
}

func (f *fakeAPI) isValid(token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valid[token]
}

// protectedAttempts returns the attempts made against non-auth paths
func (f *fakeAPI) protectedAttempts() []attempt {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attempt
	for _, a := range f.attempts {
		if !strings.HasPrefix(a.path, "/auth/") {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeAPI) client(t *testing.T, store credentials.Store, opts ...Option) *Client {
	t.Helper()
	if f.server == nil {
		f.server = httptest.NewServer(http.HandlerFunc(f.serve))
		t.Cleanup(f.server.Close)
	}
	c, err := New(Config{BaseURL: f.server.URL, Timeout: 5 * time.Second}, store, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	f.mu.Lock()
	f.attempts = append(f.attempts, attempt{
		method:    r.Method,
		path:      r.URL.Path,
		token:     token,
		requestID: r.Header.Get(RequestIDHeader),
		body:      body,
	})
	f.mu.Unlock()

	switch r.URL.Path {
	case "/auth/refresh":
		f.refreshCalls.Add(1)
		if f.refreshGate != nil {
			<-f.refreshGate
		}
		if f.refreshStatus != 0 {
			writeJSON(w, f.refreshStatus, map[string]string{"error": "Invalid or expired token"})
			return
		}
		var req struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(body, &req); err != nil || req.Token != token {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token mismatch"})
			return
		}
		fresh := mintToken(f.t, time.Now().Add(time.Hour))
		if !f.rejectRefreshed {
			f.accept(fresh)
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Token refreshed successfully", "token": fresh})

	case "/auth/login", "/auth/signup", "/auth/register":
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})

	default:
		if !f.isValid(token) {
			f.unauthorized.Add(1)
			if f.onUnauthorized != nil {
				f.onUnauthorized(token)
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"projects": []interface{}{}, "count": 0})
	}
}

// countingStore counts Clear calls
type countingStore struct {
	*credentials.MemoryStore
	clears atomic.Int32
}

func newCountingStore(token string) *countingStore {
	return &countingStore{MemoryStore: credentials.NewMemoryStore(token)}
}

func (s *countingStore) Clear() error {
	s.clears.Add(1)
	return s.MemoryStore.Clear()
}
