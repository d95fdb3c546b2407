package ai

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"unidash/internal/cache"
)

const aiCacheKeyPrefix = "ai:"

// Message is a role-tagged prompt message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Caller issues chat-completion requests. Implemented by Client; callers take
// the interface so tests can substitute a failing or canned implementation.
type Caller interface {
	Call(ctx context.Context, messages []Message, tag string) (string, bool)
}

// Options configures a Client.
type Options struct {
	Endpoint    string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	CacheTTL    time.Duration
}

// Client talks to a hosted chat-completion endpoint with response caching and
// a fail-soft contract: Call never returns an error, only an absent result.
type Client struct {
	opts       Options
	httpClient *http.Client
	cache      cache.Store
}

var _ Caller = (*Client)(nil)

// NewClient creates an inference client backed by the given cache store.
func NewClient(opts Options, store cache.Store) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &Client{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
		cache:      store,
	}
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Call sends the message sequence to the configured endpoint and returns the
// first completion's text. Identical calls within the freshness window are
// served from cache without touching the network. On any failure the second
// return value is false; callers substitute their own fallback.
func (c *Client) Call(ctx context.Context, messages []Message, tag string) (string, bool) {
	key := c.cacheKey(messages, tag)
	if data, _ := c.cache.Get(ctx, key); data != nil {
		return string(data), true
	}

	payload, err := json.Marshal(completionRequest{
		Model:       c.opts.Model,
		Messages:    messages,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
		Stream:      false,
	})
	if err != nil {
		log.Printf("ai: marshal request (%s): %v", tag, err)
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(payload))
	if err != nil {
		log.Printf("ai: build request (%s): %v", tag, err)
		return "", false
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("ai: call failed (%s): %v", tag, err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("ai: unexpected status %d (%s)", resp.StatusCode, tag)
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("ai: read response (%s): %v", tag, err)
		return "", false
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil || len(completion.Choices) == 0 {
		log.Printf("ai: malformed response body (%s)", tag)
		return "", false
	}

	text := completion.Choices[0].Message.Content
	_ = c.cache.Set(ctx, key, []byte(text), c.opts.CacheTTL)
	return text, true
}

// cacheKey partitions cached responses by tag and a digest of the serialized
// message sequence.
func (c *Client) cacheKey(messages []Message, tag string) string {
	payload, _ := json.Marshal(messages)
	digest := sha256.Sum256(payload)
	return fmt.Sprintf("%s%s:%s", aiCacheKeyPrefix, tag, hex.EncodeToString(digest[:]))
}
