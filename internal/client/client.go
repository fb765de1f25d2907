package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okonek/mathsprint/internal/logger"
	"github.com/okonek/mathsprint/internal/models"
)

// Client talks to a mathsprint score server over its JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("client"),
	}
}

func (c *Client) SubmitScore(ctx context.Context, draft models.GameScoreDraft) (*models.GameScore, error) {
	log := logger.FromContext(ctx).WithPrefix("client").WithField("player", draft.PlayerName)

	body, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}

	log.Debug("submitting score %d for mode %s", draft.Score, draft.GameMode)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scores", bytes.NewReader(body))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to submit score: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("submit response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("submit score", resp)
	}

	var record models.GameScore
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		log.Error("failed to decode submit response: %v", err)
		return nil, err
	}

	log.Info("score %d saved with id %d", record.Score, record.ID)
	return &record, nil
}

func (c *Client) Leaderboard(ctx context.Context, gameMode string) ([]models.GameScore, error) {
	log := logger.FromContext(ctx).WithPrefix("client").WithField("game_mode", gameMode)

	u := c.baseURL + "/api/leaderboard"
	if gameMode != "" {
		u += "?gameMode=" + url.QueryEscape(gameMode)
	}

	log.Debug("fetching leaderboard")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch leaderboard: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("leaderboard response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("leaderboard", resp)
	}

	var scores []models.GameScore
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		log.Error("failed to decode leaderboard response: %v", err)
		return nil, err
	}

	log.Info("fetched %d leaderboard entries", len(scores))
	return scores, nil
}

func (c *Client) BestScore(ctx context.Context, playerName, gameMode string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("client").WithField("player", playerName)

	q := url.Values{}
	q.Set("playerName", playerName)
	q.Set("gameMode", gameMode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/best-score?"+q.Encode(), nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch best score: %v", err)
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, statusError("best score", resp)
	}

	var out struct {
		BestScore int `json:"bestScore"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode best score response: %v", err)
		return 0, err
	}

	return out.BestScore, nil
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%s status %d: %s", op, resp.StatusCode, string(body))
}
