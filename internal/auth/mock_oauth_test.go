package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
)

// MockOAuth2Server fakes the Google token and userinfo endpoints so OAuth
// handlers can be exercised without real Google credentials.
type MockOAuth2Server struct {
	server           *httptest.Server
	Config           *oauth2.Config
	MockInfoEndpoint string

	mu        sync.Mutex
	users     map[string]model.GoogleUserInfo // keyed by Google ID
	codes     map[string]string               // auth code -> Google ID
	tokens    map[string]string               // access token -> Google ID
	exchanged map[string]bool                 // Google ID -> code was exchanged
}

// NewMockOAuth2Server builds a server that knows the given users.
func NewMockOAuth2Server(users []model.GoogleUserInfo) *MockOAuth2Server {
	m := &MockOAuth2Server{
		users:     make(map[string]model.GoogleUserInfo),
		codes:     make(map[string]string),
		tokens:    make(map[string]string),
		exchanged: make(map[string]bool),
	}
	for _, u := range users {
		m.users[u.GID] = u
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", m.handleToken)
	mux.HandleFunc("/userinfo", m.handleUserInfo)
	m.server = httptest.NewServer(mux)

	m.Config = &oauth2.Config{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURL:  "http://localhost/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:   m.server.URL + "/auth",
			TokenURL:  m.server.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	m.MockInfoEndpoint = m.server.URL + "/userinfo"

	return m
}

// Close shuts down the fake server.
func (m *MockOAuth2Server) Close() {
	m.server.Close()
}

// GetAuthCode issues an authorization code for a known user.
func (m *MockOAuth2Server) GetAuthCode(gid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[gid]; !ok {
		return "", fmt.Errorf("unknown user %q", gid)
	}
	authCode := "code-" + gid
	m.codes[authCode] = gid
	return authCode, nil
}

// IsUserTokenExchanged reports whether the user's auth code was exchanged.
func (m *MockOAuth2Server) IsUserTokenExchanged(gid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exchanged[gid]
}

func (m *MockOAuth2Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	gid, ok := m.codes[r.FormValue("code")]
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		return
	}

	accessToken := "token-" + gid
	m.tokens[accessToken] = gid
	m.exchanged[gid] = true

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (m *MockOAuth2Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	accessToken := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	m.mu.Lock()
	gid, ok := m.tokens[accessToken]
	user := m.users[gid]
	m.mu.Unlock()

	if !ok {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
