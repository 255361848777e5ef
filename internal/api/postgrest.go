package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RossFW/botc/internal/config"
	"github.com/RossFW/botc/internal/domain"

	"github.com/valyala/fasthttp"
)

// ErrSyncDisabled is returned when no remote endpoint is configured.
var ErrSyncDisabled = errors.New("remote sync disabled: SUPABASE_URL and SUPABASE_KEY not set")

// PostgRESTClient talks to the remote games table through the
// Supabase PostgREST API.
type PostgRESTClient struct {
	baseURL string
	apiKey  string
	client  *fasthttp.Client
}

func NewPostgRESTClient(cfg *config.Config) *PostgRESTClient {
	return &PostgRESTClient{
		baseURL: cfg.SupabaseURL,
		apiKey:  cfg.SupabaseKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *PostgRESTClient) Enabled() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// FetchGames pulls the entire remote game log, ordered by game id.
func (c *PostgRESTClient) FetchGames(ctx context.Context) ([]domain.MatchRecord, error) {
	if !c.Enabled() {
		return nil, ErrSyncDisabled
	}

	url := fmt.Sprintf("%s/rest/v1/games?select=*&order=game_id.asc", c.baseURL)
	body, err := c.doRequest(ctx, fasthttp.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote games: %w", err)
	}

	var games []domain.MatchRecord
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, fmt.Errorf("failed to decode remote games: %w", err)
	}
	return games, nil
}

// PushGames uploads local games, skipping ids that already exist on
// the remote side.
func (c *PostgRESTClient) PushGames(ctx context.Context, games []domain.MatchRecord) error {
	if !c.Enabled() {
		return ErrSyncDisabled
	}
	if len(games) == 0 {
		return nil
	}

	payload, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("failed to encode games: %w", err)
	}

	url := fmt.Sprintf("%s/rest/v1/games", c.baseURL)
	if _, err := c.doRequest(ctx, fasthttp.MethodPost, url, payload); err != nil {
		return fmt.Errorf("failed to push games: %w", err)
	}
	return nil
}

func (c *PostgRESTClient) doRequest(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.SetContentType("application/json")
		req.Header.Set("Prefer", "resolution=ignore-duplicates")
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() < fasthttp.StatusOK || resp.StatusCode() >= fasthttp.StatusMultipleChoices {
		return nil, fmt.Errorf("remote API error: %d", resp.StatusCode())
	}

	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}
