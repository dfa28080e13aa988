package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/dimitrije/notes/internal/config"
)

type UserInfo struct {
	Email     string
	Name      string
	AvatarURL string
	ID        string
	Provider  string
}

type Provider interface {
	GetConsentURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*UserInfo, error)
	Name() string
}

// NewProviders returns the sign-in providers that have credentials configured,
// keyed by name.
func NewProviders(cfg *config.Config) map[string]Provider {
	providers := make(map[string]Provider)
	if cfg.Google.Enabled() {
		p := NewGoogleProvider(cfg.Google)
		providers[p.Name()] = p
	}
	return providers
}

func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
