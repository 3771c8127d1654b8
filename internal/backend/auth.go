package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	pathLogin    = "/api/auth/login"
	pathRegister = "/api/auth/register"
	pathLogout   = "/api/auth/logout"
	pathGoogle   = "/api/auth/google"
)

// Login exchanges credentials for a session
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	return c.signIn(ctx, pathLogin, LoginRequest{Username: creds.Username, Password: creds.Password})
}

// LoginWithGoogle exchanges a Google ID token for a session
func (c *Client) LoginWithGoogle(ctx context.Context, idToken string) (domain.Session, error) {
	return c.signIn(ctx, pathGoogle, GoogleAuthRequest{IDToken: idToken})
}

func (c *Client) signIn(ctx context.Context, path string, payload any) (domain.Session, error) {
	body, err := c.doRequest(ctx, request{base: c.baseURL, method: http.MethodPost, path: path, body: payload})
	if err != nil {
		return domain.Session{}, err
	}

	var resp LoginResponse
	if err := decode(body, &resp); err != nil {
		return domain.Session{}, err
	}
	if resp.JWTResponse.AccessToken == "" {
		return domain.Session{}, &domain.APIError{Kind: domain.KindServer, Message: "login response carried no access token"}
	}

	c.logger.Debug("signed in", "username", resp.UserInfo.Username, "path", path)
	return mapSession(resp), nil
}

// Register creates an account and returns the server's message
func (c *Client) Register(ctx context.Context, reg domain.Registration) (string, error) {
	body, err := c.doRequest(ctx, request{
		base:   c.baseURL,
		method: http.MethodPost,
		path:   pathRegister,
		body:   RegistrationRequest{Username: reg.Username, Email: reg.Email, Password: reg.Password},
	})
	if err != nil {
		return "", err
	}
	return plainText(body), nil
}

// Logout revokes refreshToken. The body is the token as a JSON string.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	_, err := c.doRequest(ctx, request{base: c.baseURL, method: http.MethodPost, path: pathLogout, body: refreshToken})
	return err
}

// plainText returns a text response, unquoting it if it was sent as a JSON string
func plainText(body []byte) string {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(body))
}
