package content

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTokenURL is Reddit's client-credentials grant endpoint.
const DefaultTokenURL = "https://www.reddit.com/api/v1/access_token"

// tokenSafetyMargin is subtracted from the reported lifetime to absorb clock
// skew and in-flight latency.
const tokenSafetyMargin = 60 * time.Second

type accessToken struct {
	value     string
	expiresAt int64 // epoch millis
}

func (t accessToken) valid(now time.Time) bool {
	return t.value != "" && now.UnixMilli() < t.expiresAt
}

// TokenCache holds a single OAuth bearer token and refreshes it on demand.
// It is the only state shared across concurrent requests; the refresh path
// is single-flight so N expired callers share one credential exchange.
type TokenCache struct {
	clientID     string
	clientSecret string
	userAgent    string
	tokenURL     string

	client *http.Client
	logger *slog.Logger
	now    Clock

	mu    sync.Mutex
	token accessToken
	group singleflight.Group
}

// NewTokenCache creates a token cache for the given client credentials.
func NewTokenCache(clientID, clientSecret, userAgent string, timeout time.Duration) *TokenCache {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &TokenCache{
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
		tokenURL:     DefaultTokenURL,
		client:       &http.Client{Timeout: timeout},
		logger:       slog.Default(),
		now:          time.Now,
	}
}

// Token returns a valid bearer token, exchanging credentials only when the
// cached one is missing or expired. A valid cached token never triggers
// network I/O.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token.valid(c.now()) {
		value := c.token.value
		c.mu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("refresh", func() (any, error) {
		// A caller that queued behind an in-flight refresh sees the fresh
		// token here and skips the exchange.
		c.mu.Lock()
		if c.token.valid(c.now()) {
			value := c.token.value
			c.mu.Unlock()
			return value, nil
		}
		c.mu.Unlock()

		return c.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token so the next call refreshes. Used by the
// source client after a 401 from the API.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.token = accessToken{}
	c.mu.Unlock()
}

func (c *TokenCache) refresh(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrAuth, err)
	}
	creds := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+creds)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: identity provider returned %d", ErrAuth, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrAuth, err)
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &grant); err != nil {
		return "", fmt.Errorf("%w: parse response: %v", ErrAuth, err)
	}
	if grant.AccessToken == "" {
		return "", fmt.Errorf("%w: no access_token in response", ErrAuth)
	}
	if grant.ExpiresIn <= 0 {
		grant.ExpiresIn = 3600
	}

	lifetime := time.Duration(grant.ExpiresIn)*time.Second - tokenSafetyMargin
	c.mu.Lock()
	c.token = accessToken{
		value:     grant.AccessToken,
		expiresAt: c.now().Add(lifetime).UnixMilli(),
	}
	c.mu.Unlock()

	c.logger.Info("obtained access token", "expires_in", grant.ExpiresIn)
	return grant.AccessToken, nil
}
