package client

import (
	"context"
	"net/http"

	"github.com/dimitrije/notes/pkg/dto"
)

// SignIn exchanges credentials for a token pair and uses the access token for
// subsequent requests.
func (c *Client) SignIn(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	var tokens dto.TokenResponse
	req := dto.SignInRequest{Email: email, Password: password}
	if err := c.do(ctx, "sign in", http.MethodPost, "/auth/signin", nil, req, &tokens); err != nil {
		return nil, err
	}
	c.SetToken(tokens.AccessToken)
	return &tokens, nil
}

func (c *Client) SignUp(ctx context.Context, email, name, password string) (*dto.TokenResponse, error) {
	var tokens dto.TokenResponse
	req := dto.SignUpRequest{Email: email, Name: name, Password: password}
	if err := c.do(ctx, "sign up", http.MethodPost, "/auth/signup", nil, req, &tokens); err != nil {
		return nil, err
	}
	c.SetToken(tokens.AccessToken)
	return &tokens, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	var tokens dto.TokenResponse
	req := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, "refresh session", http.MethodPost, "/auth/refresh", nil, req, &tokens); err != nil {
		return nil, err
	}
	c.SetToken(tokens.AccessToken)
	return &tokens, nil
}

func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.do(ctx, "fetch user", http.MethodGet, "/auth/user", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes refreshToken on the server and forgets the access token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	req := dto.RefreshTokenRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, "sign out", http.MethodPost, "/auth/logout", nil, req, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}
