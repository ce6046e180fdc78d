// Package saveapi talks to the remote save-lookup API.
package saveapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 8 << 20

type PlayerInfo struct {
	JoinDate      string  `json:"join_date"`
	TotalPlaytime float64 `json:"total_playtime"`
}

type PonyEntry struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

type SaveInventory struct {
	Ponies []PonyEntry `json:"ponies"`
	Shops  []string    `json:"shops"`
}

type Save struct {
	PlayerInfo PlayerInfo    `json:"player_info"`
	Inventory  SaveInventory `json:"inventory"`
}

type Options struct {
	PublicURL   string
	LocalURL    string
	Development bool
	// RateLimit is the sustained request rate per second; 0 disables limiting.
	RateLimit  float64
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Client struct {
	bases   []*url.URL
	local   bool
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func New(opts Options) (*Client, error) {
	public, err := parseBase(opts.PublicURL)
	if err != nil {
		return nil, fmt.Errorf("public url: %w", err)
	}

	c := &Client{
		http:   opts.HTTPClient,
		logger: opts.Logger,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	if opts.Development {
		local, err := parseBase(opts.LocalURL)
		if err != nil {
			return nil, fmt.Errorf("local url: %w", err)
		}
		c.bases = append(c.bases, local)
		c.local = true
	}
	c.bases = append(c.bases, public)

	return c, nil
}

func parseBase(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("missing host")
	}
	return u, nil
}

// GetSave fetches the save snapshot registered under a friend code.
func (c *Client) GetSave(ctx context.Context, friendCode string) (*Save, error) {
	var save Save
	if err := c.get(ctx, &save, "save", friendCode, "inventory/"); err != nil {
		return nil, err
	}
	return &save, nil
}

// GetShop fetches the current in-game shop sales as raw JSON.
func (c *Client) GetShop(ctx context.Context) (json.RawMessage, error) {
	var sales json.RawMessage
	if err := c.get(ctx, &sales, "sales", "shop/"); err != nil {
		return nil, err
	}
	return sales, nil
}

// get tries each base in turn. In development the local endpoint comes
// first and any failure there falls through to the public one.
func (c *Client) get(ctx context.Context, out any, elem ...string) error {
	var lastErr error
	for i, base := range c.bases {
		err := c.fetch(ctx, base.JoinPath(elem...), out)
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return err
		}
		if c.local && i == 0 {
			c.logger.Warn("local save api failed, falling back to public", "url", base.String(), "error", err)
		}
	}
	return lastErr
}

func (c *Client) fetch(ctx context.Context, u *url.URL, out any) error {
	target := u.String()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{URL: target, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &TransportError{URL: target, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("save api request", "url", target, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{URL: target, Status: resp.StatusCode, Err: err}
	}

	if gjson.ValidBytes(body) {
		if detail := gjson.GetBytes(body, "detail"); detail.Exists() {
			return &RejectedError{URL: target, Status: resp.StatusCode, Detail: detail.String()}
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{URL: target, Status: resp.StatusCode}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{URL: target, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
