package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/coinpulse/backend/internal/content"
	"github.com/coinpulse/backend/internal/feedback"
	"github.com/coinpulse/backend/internal/insight"
	"github.com/coinpulse/backend/internal/user"
	"github.com/coinpulse/backend/pkg/storage"
)

type stubContent struct {
	newsLimit int
}

func (s *stubContent) News(ctx context.Context, limit int) []content.NewsItem {
	s.newsLimit = limit
	return []content.NewsItem{
		{ID: "1", Title: "Bitcoin climbs", URL: "https://example.com/1", Time: "Just now", Source: "Example"},
	}
}

func (s *stubContent) Meme(ctx context.Context) content.Meme {
	return content.Meme{
		URL:       "https://i.redd.it/test.jpg",
		Title:     "When gas fees dip",
		Alt:       "Crypto meme: When gas fees dip",
		Source:    "r/cryptomemes",
		Author:    "u/tester",
		Score:     420,
		RedditURL: "https://reddit.com/r/cryptomemes/comments/abc",
	}
}

type stubInsights struct {
	profile insight.Profile
}

func (s *stubInsights) Generate(ctx context.Context, p insight.Profile) string {
	s.profile = p
	return "Dollar-cost averaging smooths volatility."
}

type testServer struct {
	srv      *Server
	handler  http.Handler
	contents *stubContent
	insights *stubInsights
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := storage.Open(storage.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := db.Migrate(ctx, user.Schema); err != nil {
		t.Fatal(err)
	}
	if err := db.Migrate(ctx, feedback.Schema); err != nil {
		t.Fatal(err)
	}

	contents := &stubContent{}
	insights := &stubInsights{}
	srv := NewServer(user.NewStore(db), feedback.NewStore(db), contents, insights, "test-secret")
	return &testServer{srv: srv, handler: srv.Routes(), contents: contents, insights: insights}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns the session token.
func (ts *testServer) register(t *testing.T, email string) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "name": "Tester", "password": "hunter22",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" {
		t.Fatal("register response missing token")
	}
	return resp.Token
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "new@example.com", "name": "New", "password": "secret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["email"] != "new@example.com" || resp["token"] == "" {
		t.Fatalf("unexpected response: %v", resp)
	}

	// Session cookie set alongside the token.
	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatal("expected HttpOnly session cookie")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "dup@example.com")

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "dup@example.com", "password": "another",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "x@example.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "login@example.com")

	rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "login@example.com", "password": "hunter22",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["token"] == "" {
		t.Fatal("expected token in login response")
	}
	if resp["onboarding_completed"] != false {
		t.Fatalf("expected onboarding_completed false, got %v", resp["onboarding_completed"])
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "login@example.com")

	rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "login@example.com", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != "Invalid email or password" {
		t.Fatalf("expected generic credentials error, got %q", resp["error"])
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "whatever",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestNews_PublicWithLimit(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/content/news?limit=3", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ts.contents.newsLimit != 3 {
		t.Fatalf("expected limit 3 passed through, got %d", ts.contents.newsLimit)
	}

	var items []content.NewsItem
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Title != "Bitcoin climbs" {
		t.Fatalf("unexpected news payload: %+v", items)
	}
}

func TestNews_DefaultLimit(t *testing.T) {
	ts := newTestServer(t)

	ts.do(t, http.MethodGet, "/api/content/news", "", nil)
	if ts.contents.newsLimit != content.MaxNewsItems {
		t.Fatalf("expected default limit %d, got %d", content.MaxNewsItems, ts.contents.newsLimit)
	}
}

func TestMeme_Public(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/content/meme", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var m content.Meme
	if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	if m.URL == "" || m.Alt == "" || m.RedditURL == "" {
		t.Fatalf("expected fully populated meme, got %+v", m)
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	ts := newTestServer(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/users/me"},
		{http.MethodPost, "/api/onboarding"},
		{http.MethodGet, "/api/content/insight"},
		{http.MethodPost, "/api/feedback"},
		{http.MethodPost, "/api/feedback/articles"},
		{http.MethodGet, "/api/feedback/articles"},
	}
	for _, rt := range routes {
		rec := ts.do(t, rt.method, rt.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: expected 401, got %d", rt.method, rt.path, rec.Code)
		}
	}
}

func TestRequireAuth_RejectsBadToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/users/me", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
}

func TestRequireAuth_CookieFallback(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "cookie@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected cookie auth to succeed, got %d", rec.Code)
	}
}

func TestOnboardingAndMe(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "profile@example.com")

	rec := ts.do(t, http.MethodPost, "/api/onboarding", token, OnboardingRequest{
		InvestorType:       "day trader",
		CryptoInterests:    []string{"BTC", "SOL"},
		ContentPreferences: []string{"News"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/users/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var me struct {
		InvestorType        string   `json:"investor_type"`
		CryptoInterests     []string `json:"crypto_interests"`
		OnboardingCompleted bool     `json:"onboarding_completed"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&me); err != nil {
		t.Fatal(err)
	}
	if !me.OnboardingCompleted || me.InvestorType != "day trader" {
		t.Fatalf("unexpected profile: %+v", me)
	}
	if len(me.CryptoInterests) != 2 {
		t.Fatalf("unexpected interests: %v", me.CryptoInterests)
	}
}

func TestInsight_UsesStoredProfile(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "insight@example.com")

	ts.do(t, http.MethodPost, "/api/onboarding", token, OnboardingRequest{
		InvestorType:    "nft collector",
		CryptoInterests: []string{"ETH"},
	})

	rec := ts.do(t, http.MethodGet, "/api/content/insight", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["insight"] != "Dollar-cost averaging smooths volatility." {
		t.Fatalf("unexpected insight payload: %v", resp)
	}
	if ts.insights.profile.InvestorType != "nft collector" {
		t.Fatalf("expected the stored profile to drive generation, got %+v", ts.insights.profile)
	}
}

func TestSectionFeedback(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "fb@example.com")

	rec := ts.do(t, http.MethodPost, "/api/feedback", token, SectionFeedbackRequest{
		Section: "memes", Vote: "up",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodPost, "/api/feedback", token, SectionFeedbackRequest{Section: "memes"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing vote, got %d", rec.Code)
	}
}

func TestArticleFeedbackRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "votes@example.com")

	for _, v := range []ArticleFeedbackRequest{
		{ArticleID: "a1", Vote: "up"},
		{ArticleID: "a2", Vote: "down"},
		{ArticleID: "a1", Vote: "down"}, // replaces the first vote
	} {
		rec := ts.do(t, http.MethodPost, "/api/feedback/articles", token, v)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := ts.do(t, http.MethodGet, "/api/feedback/articles", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var votes map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&votes); err != nil {
		t.Fatal(err)
	}
	if len(votes) != 2 || votes["a1"] != "down" || votes["a2"] != "down" {
		t.Fatalf("unexpected votes: %v", votes)
	}
}
