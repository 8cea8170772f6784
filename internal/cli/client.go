package cli

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

	"cryptookie/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type loginResponse struct {
	OK     bool        `json:"ok"`
	Player game.Record `json:"player"`
}

type playerResponse struct {
	Player game.Record `json:"player"`
}

// Login authenticates and returns the saved record; the backend registers
// unknown usernames with a starter record.
func (c *Client) Login(ctx context.Context, username, password string) (game.Record, error) {
	var out loginResponse
	err := c.jsonRequest(ctx, http.MethodPost, "/api/login", map[string]any{
		"username": username,
		"password": password,
	}, &out)
	return out.Player, err
}

func (c *Client) Player(ctx context.Context, username string) (game.Record, error) {
	var out playerResponse
	err := c.jsonRequest(ctx, http.MethodGet, "/api/player/"+url.PathEscape(username), nil, &out)
	return out.Player, err
}

func (c *Client) Save(ctx context.Context, username string, rec game.Record) error {
	return c.jsonRequest(ctx, http.MethodPost, "/api/save", map[string]any{
		"username": username,
		"player":   rec,
	}, nil)
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
