package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"appliance-service-backend/config"
)

// Credentials is the email/password pair forwarded to the provider.
type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// TokenResponse is what the provider returns on sign-in.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// ProviderError carries a non-2xx answer of the identity provider.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider returned %d: %s", e.Status, e.Message)
}

// Client talks to the identity provider's REST API.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func NewClient(cfg config.AuthConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.ProviderURL, "/"),
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SignIn(ctx context.Context, cred Credentials) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, "/auth/v1/token?grant_type=password", "", cred, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUp registers a new account. Depending on the provider settings the
// response may or may not carry a token.
func (c *Client) SignUp(ctx context.Context, cred Credentials) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, "/auth/v1/signup", "", cred, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.do(ctx, "/auth/v1/logout", token, nil, nil)
}

func (c *Client) do(ctx context.Context, path, token string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &ProviderError{Status: resp.StatusCode, Message: providerMessage(msg)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// providerMessage extracts the human readable part of a provider error body.
func providerMessage(body []byte) string {
	var e struct {
		Message          string `json:"msg"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		for _, m := range []string{e.ErrorDescription, e.Message, e.Error} {
			if m != "" {
				return m
			}
		}
	}
	return strings.TrimSpace(string(body))
}
