// Package advisory attaches a best-effort, human-readable explanation to a
// scheduler.IrrigationScheduleEntry. It is purely additive: any failure
// here (timeout, rate limit, malformed response) is swallowed by the
// caller, never surfaced as a scheduling error.
package advisory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sashabaranov/go-openai"

	"github.com/chrisharrington/irrigo/internal/scheduler"
	"github.com/chrisharrington/irrigo/pkg/types"
)

var (
	// ErrInvalidConfig is returned when advisory generation is requested
	// without a usable configuration.
	ErrInvalidConfig = errors.New("invalid advisory configuration")
	// ErrInvalidAPIKey is returned when the configured key is too short to
	// be a real OpenAI key, catching an empty/placeholder value early.
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// Client generates a short natural-language explanation for why an
// irrigation event was triggered, caching responses so an identical
// (zone, date, depletion, applied-depth) combination is not re-explained.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	cache   *gocache.Cache
	mu      sync.Mutex
}

// NewClient builds an advisory Client. Returns ErrInvalidConfig if cfg is
// nil or disabled, and ErrInvalidAPIKey if the key looks malformed.
func NewClient(cfg *types.AdvisoryConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("%w: advisory is not enabled", ErrInvalidConfig)
	}
	if len(cfg.APIKey) < 20 {
		return nil, fmt.Errorf("%w: key length insufficient", ErrInvalidAPIKey)
	}

	return &Client{
		client:  openai.NewClient(cfg.APIKey),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		cache:   gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}, nil
}

// Explain produces a one- or two-sentence explanation of why entry was
// triggered for zoneLabel. The returned string is empty (with a non-nil
// error) if the call fails; callers should treat that as "no advisory",
// not a scheduling failure.
func (c *Client) Explain(ctx context.Context, zoneLabel string, entry scheduler.IrrigationScheduleEntry) (string, error) {
	cacheKey := fmt.Sprintf("advisory:%s:%s:%.1f:%.1f", zoneLabel, entry.Date.Format("2006-01-02"), entry.DepletionBeforeMm, entry.AppliedDepthMm)

	if cached, found := c.cache.Get(cacheKey); found {
		return cached.(string), nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"In one short sentence, explain to a homeowner why the %q irrigation zone is running %.1f minutes of irrigation today, "+
			"given a soil moisture depletion of %.1f mm before watering.",
		zoneLabel, totalRuntimeMinutes(entry), entry.DepletionBeforeMm,
	)

	c.mu.Lock()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 80,
	})
	c.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("advisory generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("advisory generation returned no choices")
	}

	explanation := resp.Choices[0].Message.Content
	c.cache.Set(cacheKey, explanation, gocache.DefaultExpiration)
	return explanation, nil
}

func totalRuntimeMinutes(entry scheduler.IrrigationScheduleEntry) float64 {
	total := 0.0
	for _, c := range entry.Cycles {
		total += c.DurationMin
	}
	return total
}
