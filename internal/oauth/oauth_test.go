package oauth

import (
	"testing"

	"github.com/dimitrije/notes/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	assert.NoError(t, err)
	b, err := GenerateState()
	assert.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44)
}

func TestNewProviders(t *testing.T) {
	assert.Empty(t, NewProviders(&config.Config{}))

	providers := NewProviders(&config.Config{
		Google: config.OAuthConfig{ClientID: "id", ClientSecret: "secret"},
	})
	assert.Contains(t, providers, "google")
}
