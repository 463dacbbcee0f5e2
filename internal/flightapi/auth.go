package flightapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/triple-tgg/sams-sub001/internal/config"
	"github.com/triple-tgg/sams-sub001/internal/logger"
)

// tokenSlack is how long before expiry a cached token stops being handed
// out, so in-flight requests never carry a token that dies mid-call.
const tokenSlack = 30 * time.Second

// AuthManager holds the core-system bearer token. All client calls share
// one instance; a stale token triggers a single login, not one per caller.
type AuthManager struct {
	cfg    *config.Config
	client *http.Client
	log    zerolog.Logger

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

func NewAuthManager(cfg *config.Config) *AuthManager {
	return &AuthManager{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.FlightAPI.Timeout},
		log:    logger.With("flightapi"),
	}
}

func (a *AuthManager) GetToken(ctx context.Context) (string, error) {
	a.mu.RLock()
	token, ok := a.token, a.fresh()
	a.mu.RUnlock()
	if ok {
		return token, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	// Another caller may have logged in between the two locks.
	if a.fresh() {
		return a.token, nil
	}
	if err := a.login(ctx); err != nil {
		return "", err
	}
	return a.token, nil
}

// fresh reports whether the cached token still has slack left. Callers
// hold at least a read lock.
func (a *AuthManager) fresh() bool {
	return a.token != "" && time.Until(a.expiresAt) > tokenSlack
}

// login trades the configured credentials for a bearer token. Called with
// the write lock held.
func (a *AuthManager) login(ctx context.Context) error {
	payload, err := json.Marshal(map[string]string{
		"username": a.cfg.FlightAPI.Username,
		"password": a.cfg.FlightAPI.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	url := a.cfg.FlightAPI.BaseURL + a.cfg.FlightAPI.AuthEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("auth failed with status %d", resp.StatusCode)
	}

	var granted struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &granted); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	if granted.Token == "" {
		return fmt.Errorf("auth response carries no token")
	}

	a.token = granted.Token
	a.expiresAt = time.Now().Add(time.Duration(granted.ExpiresIn) * time.Second)
	a.log.Debug().Time("expires_at", a.expiresAt).Msg("Core system token obtained")
	return nil
}
