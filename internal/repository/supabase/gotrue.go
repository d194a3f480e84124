package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"theaifactory-backend/internal/domain"
	"theaifactory-backend/pkg/apperror"
)

// Client talks to the Supabase GoTrue auth API. Token issuance, refresh
// and revocation all stay on the provider side; this is a pass-through.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(supabaseURL, apiKey string) domain.AuthGateway {
	return &Client{
		baseURL: supabaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// gotrueError is the error shape GoTrue returns; field names vary between
// endpoints so both are decoded.
type gotrueError struct {
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func (e *gotrueError) message(fallback string) string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	return fallback
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	signupURL := fmt.Sprintf("%s/auth/v1/signup", c.baseURL)

	body, _ := json.Marshal(credentials{Email: email, Password: password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, signupURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	c.setHeaders(req, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Registration service unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp gotrueError
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, apperror.BadRequest(errResp.message("Registration failed"))
	}

	// Signup responses differ depending on email-confirmation settings:
	// with auto-confirm the session is returned inline, otherwise only
	// the user object comes back and the token fields stay empty.
	var raw struct {
		ID          string      `json:"id"`
		Email       string      `json:"email"`
		AccessToken string      `json:"access_token"`
		ExpiresIn   int         `json:"expires_in"`
		User        domain.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to parse signup response", err)
	}

	session := &domain.Session{
		AccessToken: raw.AccessToken,
		ExpiresIn:   raw.ExpiresIn,
		User:        raw.User,
	}
	if session.User.ID == "" {
		session.User = domain.User{ID: raw.ID, Email: raw.Email}
	}
	return session, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	// Password login goes through the token grant endpoint.
	loginURL := fmt.Sprintf("%s/auth/v1/token?grant_type=password", c.baseURL)

	body, _ := json.Marshal(credentials{Email: email, Password: password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	c.setHeaders(req, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Login service unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp gotrueError
		_ = json.NewDecoder(resp.Body).Decode(&errResp)

		// Keep credential failures generic; pass through states the user
		// can act on ("Email not confirmed").
		msg := "Wrong password or account not found"
		if m := errResp.message(""); m == "Email not confirmed" {
			msg = m
		}
		return nil, apperror.Unauthorized(msg)
	}

	var session domain.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "Failed to parse login response", err)
	}
	return &session, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	logoutURL := fmt.Sprintf("%s/auth/v1/logout", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, logoutURL, nil)
	if err != nil {
		return apperror.Internal(err)
	}
	c.setHeaders(req, accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.New(http.StatusInternalServerError, "Logout service unavailable", err)
	}
	defer resp.Body.Close()

	// GoTrue answers 204 on success; an already-expired token is fine too.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusUnauthorized {
		return apperror.New(resp.StatusCode, "Logout failed", nil)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, bearer string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
}
