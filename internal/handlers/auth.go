package handlers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dimitrije/notes/internal/config"
	"github.com/dimitrije/notes/internal/middleware"
	"github.com/dimitrije/notes/internal/models"
	"github.com/dimitrije/notes/internal/oauth"
	"github.com/dimitrije/notes/internal/services"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	stateTTL    = 10 * time.Minute
	authCodeTTL = 30 * time.Second
)

type AuthHandler struct {
	cfg          *config.Config
	providers    map[string]oauth.Provider
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
	states       sync.Map
	authCodes    sync.Map
}

type stateData struct {
	expiresAt time.Time
}

type authCodeData struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func NewAuthHandler(
	cfg *config.Config,
	providers map[string]oauth.Provider,
	userService UserServiceInterface,
	tokenService TokenServiceInterface,
	jwtService JWTServiceInterface,
) *AuthHandler {
	if providers == nil {
		providers = map[string]oauth.Provider{}
	}
	return &AuthHandler{
		cfg:          cfg,
		providers:    providers,
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
	}
}

// CleanupExpired drops OAuth states and one-time codes that were never used.
// It runs until ctx is cancelled.
func (h *AuthHandler) CleanupExpired(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.sweep(now)
		}
	}
}

func (h *AuthHandler) sweep(now time.Time) {
	h.states.Range(func(key, value interface{}) bool {
		if sd, ok := value.(stateData); ok && now.After(sd.expiresAt) {
			h.states.Delete(key)
		}
		return true
	})
	h.authCodes.Range(func(key, value interface{}) bool {
		if acd, ok := value.(authCodeData); ok && now.After(acd.expiresAt) {
			h.authCodes.Delete(key)
		}
		return true
	})
}

func (h *AuthHandler) SignUp(c *drift.Context) {
	var req dto.SignUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	ctx := context.Background()

	user, err := h.userService.Register(ctx, req.Email, req.Name, req.Password)
	switch {
	case errors.Is(err, services.ErrWeakPassword):
		c.BadRequest(err.Error())
		return
	case errors.Is(err, services.ErrEmailTaken):
		_ = c.JSON(409, map[string]string{"error": "email already registered"})
		return
	case err != nil:
		log.Printf("Failed to register user: %v", err)
		c.InternalServerError("failed to create user")
		return
	}

	h.issueTokens(ctx, c, user, 201)
}

func (h *AuthHandler) SignIn(c *drift.Context) {
	var req dto.SignInRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	ctx := context.Background()

	user, err := h.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		c.Unauthorized("invalid email or password")
		return
	}

	h.issueTokens(ctx, c, user, 200)
}

func (h *AuthHandler) GetConsentURL(c *drift.Context) {
	provider := c.Param("provider")

	p, ok := h.providers[provider]
	if !ok {
		c.BadRequest("unsupported provider: " + provider)
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		c.InternalServerError("failed to generate state")
		return
	}

	h.states.Store(state, stateData{expiresAt: time.Now().Add(stateTTL)})

	_ = c.JSON(200, dto.ConsentURLResponse{
		URL: p.GetConsentURL(state),
	})
}

func (h *AuthHandler) Callback(c *drift.Context) {
	provider := c.Param("provider")

	p, ok := h.providers[provider]
	if !ok {
		h.redirectWithError(c, "unsupported provider")
		return
	}

	state := c.QueryParam("state")
	if state == "" {
		h.redirectWithError(c, "missing state parameter")
		return
	}

	sd, ok := h.states.LoadAndDelete(state)
	if !ok {
		h.redirectWithError(c, "invalid or expired state")
		return
	}

	if sdTyped, ok := sd.(stateData); !ok || time.Now().After(sdTyped.expiresAt) {
		h.redirectWithError(c, "state expired")
		return
	}

	if errMsg := c.QueryParam("error"); errMsg != "" {
		h.redirectWithError(c, "sign-in cancelled: "+errMsg)
		return
	}

	code := c.QueryParam("code")
	if code == "" {
		h.redirectWithError(c, "missing authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userInfo, err := p.ExchangeCode(ctx, code)
	if err != nil {
		h.redirectWithError(c, "failed to exchange code: "+err.Error())
		return
	}

	user, err := h.userService.FindOrCreateFromOAuth(ctx, userInfo)
	if errors.Is(err, services.ErrEmailTaken) {
		h.redirectWithError(c, "this email is registered with a password")
		return
	}
	if err != nil {
		log.Printf("Failed to create user from %s sign-in: %v", provider, err)
		h.redirectWithError(c, "failed to create user")
		return
	}

	authCode, err := oauth.GenerateState()
	if err != nil {
		h.redirectWithError(c, "failed to generate auth code")
		return
	}

	h.authCodes.Store(authCode, authCodeData{
		userID:    user.ID,
		expiresAt: time.Now().Add(authCodeTTL),
	})

	redirectURL := fmt.Sprintf("%s?code=%s",
		h.cfg.FrontendCallbackURL,
		url.QueryEscape(authCode),
	)

	h.renderCallbackPage(c, redirectURL, authCode, false)
}

func (h *AuthHandler) ExchangeCode(c *drift.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Code == "" {
		c.BadRequest("code is required")
		return
	}

	acd, ok := h.authCodes.LoadAndDelete(req.Code)
	if !ok {
		c.Unauthorized("invalid or expired code")
		return
	}

	codeData, ok := acd.(authCodeData)
	if !ok || time.Now().After(codeData.expiresAt) {
		c.Unauthorized("code expired")
		return
	}

	ctx := context.Background()

	user, err := h.userService.GetByID(ctx, codeData.userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	h.issueTokens(ctx, c, user, 200)
}

// RefreshToken rotates the refresh token: the presented token is consumed and
// a new pair is issued. Replaying a consumed token fails.
func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	ctx := context.Background()

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	oldHash := services.HashToken(req.RefreshToken)
	newHash := services.HashToken(tokenPair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())

	err = h.tokenService.RotateRefreshToken(ctx, user.ID, oldHash, newHash, expiresAt)
	if errors.Is(err, services.ErrInvalidRefreshToken) {
		c.Unauthorized("refresh token not found or expired")
		return
	}
	if err != nil {
		log.Printf("Failed to rotate refresh token: %v", err)
		c.InternalServerError("failed to store refresh token")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken != "" {
		tokenHash := services.HashToken(req.RefreshToken)
		if err := h.tokenService.RevokeRefreshToken(context.Background(), tokenHash); err != nil {
			log.Printf("Failed to revoke refresh token: %v", err)
		}
	}

	_ = c.JSON(200, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) LogoutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(context.Background(), userID); err != nil {
		c.InternalServerError("failed to revoke tokens")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "all sessions logged out"})
}

func (h *AuthHandler) issueTokens(ctx context.Context, c *drift.Context, user *models.User, status int) {
	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	tokenHash := services.HashToken(tokenPair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		log.Printf("Failed to store refresh token: %v", err)
		c.InternalServerError("failed to store refresh token")
		return
	}

	_ = c.JSON(status, dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

func (h *AuthHandler) redirectWithError(c *drift.Context, errMsg string) {
	redirectURL := fmt.Sprintf("%s?error=%s",
		h.cfg.FrontendCallbackURL,
		url.QueryEscape(errMsg),
	)
	h.renderCallbackPage(c, redirectURL, errMsg, true)
}

type callbackPage struct {
	Title    string
	Heading  string
	Message  string
	Code     string
	Failed   bool
	Redirect string
}

var callbackTemplate = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { font-family: system-ui, -apple-system, sans-serif; background: #fafaf9; color: #44403c; margin: 0; padding: 40px 20px; }
        .card { max-width: 420px; margin: 0 auto; background: #fff; border: 1px solid #e7e5e4; border-radius: 8px; padding: 32px; text-align: center; }
        h1 { font-size: 20px; margin: 0 0 8px 0; color: {{if .Failed}}#991b1b{{else}}#1c1917{{end}}; }
        p { font-size: 14px; color: #78716c; }
        code { display: block; background: #f5f5f4; border-radius: 6px; padding: 8px 12px; word-break: break-all; font-size: 13px; }
    </style>
</head>
<body>
    <div class="card">
        <h1>{{.Heading}}</h1>
        <p>{{.Message}}</p>
        {{if not .Failed}}<p>If nothing happens, paste this code into the notes app:</p>
        <code id="auth-code">{{.Code}}</code>{{end}}
    </div>
    <script>window.location.href = {{.Redirect}};</script>
</body>
</html>`))

func (h *AuthHandler) renderCallbackPage(c *drift.Context, redirect, codeOrError string, failed bool) {
	page := callbackPage{
		Title:    "Signed in",
		Heading:  "You're signed in",
		Message:  "Returning you to your notes...",
		Code:     codeOrError,
		Redirect: redirect,
	}
	status := 200
	if failed {
		page = callbackPage{
			Title:    "Sign-in failed",
			Heading:  "Sign-in failed",
			Message:  codeOrError,
			Failed:   true,
			Redirect: redirect,
		}
		status = 400
	}

	var b strings.Builder
	if err := callbackTemplate.Execute(&b, page); err != nil {
		c.InternalServerError("failed to render page")
		return
	}
	_ = c.HTML(status, b.String())
}
