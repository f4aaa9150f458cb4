package oauth

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateBindsUserAgent(t *testing.T) {
	svc := NewGoogleService("client-id", "secret", "http://localhost/cb", []string{"email"})

	state := svc.NewState("agent-x")
	require.NotEmpty(t, state)

	raw, err := base64.URLEncoding.DecodeString(state)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), ".agent-x"))

	// Two states for the same browser never collide.
	assert.NotEqual(t, state, svc.NewState("agent-x"))
}

func TestConsentURLCarriesState(t *testing.T) {
	svc := NewGoogleService("client-id", "secret", "http://localhost/cb", []string{"email"})

	u := svc.ConsentURL("state-123")
	assert.Contains(t, u, "state=state-123")
	assert.Contains(t, u, "client_id=client-id")
}
