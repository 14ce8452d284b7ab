package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gdmcare/assessment-api/models"
)

const defaultTimeout = 30 * time.Second

// Client calls the external prediction service. Any transport failure
// or non-2xx response is treated as total prediction failure; there are
// no retries.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

// Predict posts the intake data to the service's /predict endpoint and
// returns the prediction record verbatim.
func (c *Client) Predict(ctx context.Context, intake models.IntakeData) (*models.Prediction, error) {
	body, err := json.Marshal(intake)
	if err != nil {
		return nil, fmt.Errorf("encode intake: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Error().Int("status", resp.StatusCode).Msg("prediction service returned an error")
		return nil, fmt.Errorf("prediction service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var pred models.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("decode prediction response: %w", err)
	}

	c.log.Info().
		Str("prediction", pred.Prediction).
		Str("risk_category", pred.RiskCategory).
		Float64("gdm_probability", pred.GDMProbability).
		Msg("prediction received")

	return &pred, nil
}
