package flightapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/triple-tgg/sams-sub001/internal/config"
	"github.com/triple-tgg/sams-sub001/internal/logger"
	"github.com/triple-tgg/sams-sub001/internal/model"
	"github.com/triple-tgg/sams-sub001/pkg/errors"
)

// Client talks to the core system's flight import endpoints. One batch
// call per request, no retries: the caller owns the retry decision.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	auth       *AuthManager
	log        zerolog.Logger
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.FlightAPI.Timeout,
		},
		auth: NewAuthManager(cfg),
		log:  logger.With("flightapi"),
	}
}

// ValidateFlights submits the full cross-sheet batch for business-rule
// validation. Row verdicts are data in the response, not errors.
func (c *Client) ValidateFlights(ctx context.Context, items []model.ValidateItem) (*model.ValidateResponse, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("empty validate batch")
	}

	c.log.Debug().Int("batch_size", len(items)).Msg("Validating flight batch")

	body, err := c.post(ctx, c.cfg.FlightAPI.ValidateEndpoint, items)
	if err != nil {
		return nil, err
	}

	var resp model.ValidateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode validate response: %w", err)
	}
	return &resp, nil
}

// InsertFlights submits the uploaded subset as one all-or-nothing insert.
func (c *Client) InsertFlights(ctx context.Context, items []model.InsertItem) error {
	if len(items) == 0 {
		return fmt.Errorf("empty insert batch")
	}

	c.log.Debug().Int("batch_size", len(items)).Msg("Inserting flight batch")

	_, err := c.post(ctx, c.cfg.FlightAPI.InsertEndpoint, items)
	return err
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.cfg.FlightAPI.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.auth.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrAuthFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flight API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Surface the server message when one is present, else generic.
		var serverErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &serverErr) == nil && serverErr.Message != "" {
			return nil, fmt.Errorf("%w: %s", errors.ErrFlightAPIError, serverErr.Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d", errors.ErrFlightAPIError, resp.StatusCode)
	}
	return body, nil
}
