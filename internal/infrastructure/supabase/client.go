// Package supabase is the identity provider client for the Supabase GoTrue
// REST API.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/core/ports"
	"github.com/99minutos/auth-gateway/internal/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Config captures the provider endpoint and credentials.
type Config struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// Client implements ports.IdentityProvider.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	log     zerolog.Logger
	now     func() time.Time
}

var _ ports.IdentityProvider = (*Client)(nil)

// NewClient returns a Client. A default timeout is applied when none is
// provided; it bounds every request including reading the body.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "supabase").Logger(),
		now:     time.Now,
	}
}

// Login exchanges email and password for a session at the provider.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := c.authenticate(ctx, "login", tokenPath, loginBody{Email: email, Password: password})
	if err != nil {
		return domain.User{}, err
	}
	c.log.Info().Str("user_id", user.ID).Msg("login successful")
	return user, nil
}

// Register signs a new user up with profile metadata.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (domain.User, error) {
	body := registerBody{
		Email:    in.Email,
		Password: in.Password,
		Data: registerMetadata{
			Username:         in.Username,
			PhoneCountryCode: in.PhoneCountryCode,
			PhoneNumber:      in.PhoneNumber,
		},
	}
	user, err := c.authenticate(ctx, "register", signupPath, body)
	if err != nil {
		return domain.User{}, err
	}
	c.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("registration successful")
	return user, nil
}

// Logout revokes accessToken at the provider. It is best effort: failures
// are logged at warn and never returned.
func (c *Client) Logout(ctx context.Context, accessToken string) {
	start := time.Now()
	outcome := "ok"
	defer func() { c.observe("logout", outcome, start) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+logoutPath, nil)
	if err != nil {
		outcome = string(domain.ProviderNetwork)
		c.log.Warn().Err(err).Msg("failed to build logout request")
		return
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		pe := classifyTransport(err)
		outcome = string(pe.Kind)
		c.log.Warn().Err(err).Msg("failed to notify identity provider of logout")
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = string(domain.ProviderHTTP)
		c.log.Warn().Int("status", resp.StatusCode).Msg("identity provider logout returned non-success status")
		return
	}
	c.log.Info().Msg("identity provider logout successful")
}

func (c *Client) authenticate(ctx context.Context, op, path string, payload any) (domain.User, error) {
	start := time.Now()
	user, err := c.doAuth(ctx, path, payload)

	outcome := "ok"
	var pe *domain.ProviderError
	if errors.As(err, &pe) {
		outcome = string(pe.Kind)
	}
	c.observe(op, outcome, start)
	return user, err
}

func (c *Client) doAuth(ctx context.Context, path string, payload any) (domain.User, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return domain.User{}, fmt.Errorf("encode request: %w", err)
	}

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return domain.User{}, &domain.ProviderError{Kind: domain.ProviderNetwork, Err: err}
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("endpoint", endpoint).Msg("sending identity request")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.User{}, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.User{}, classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.User{}, &domain.ProviderError{
			Kind:   domain.ProviderHTTP,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	var parsed authResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.User{}, &domain.ProviderError{Kind: domain.ProviderParse, Body: string(body), Err: err}
	}
	if parsed.User.ID == "" || parsed.AccessToken == "" {
		return domain.User{}, &domain.ProviderError{
			Kind: domain.ProviderParse,
			Body: string(body),
			Err:  errors.New("response carries no user or access token"),
		}
	}

	return parsed.toUser(c.now()), nil
}

func (c *Client) observe(op, outcome string, start time.Time) {
	metrics.IdentityRequestsTotal.WithLabelValues(op, outcome).Inc()
	metrics.IdentityRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// classifyTransport splits transport failures into timeouts and everything else.
func classifyTransport(err error) *domain.ProviderError {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &domain.ProviderError{Kind: domain.ProviderTimeout, Err: err}
	}
	return &domain.ProviderError{Kind: domain.ProviderNetwork, Err: err}
}
