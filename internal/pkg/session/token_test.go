package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Storefront"},
		Session: config.SessionConfig{
			Secret: "0123456789abcdef0123456789abcdef",
			TTL:    time.Hour,
		},
	}
}

func TestIssueAndParse(t *testing.T) {
	m := NewManager(testConfig())
	id := NewID()

	token, err := m.Issue(id)
	require.NoError(t, err)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Rejects(t *testing.T) {
	cfg := testConfig()
	m := NewManager(cfg)

	other := testConfig()
	other.Session.Secret = "ffffffffffffffffffffffffffffffff"
	foreign, err := NewManager(other).Issue(NewID())
	require.NoError(t, err)

	expiredCfg := testConfig()
	expiredCfg.Session.TTL = -time.Minute
	expired, err := NewManager(expiredCfg).Issue(NewID())
	require.NoError(t, err)

	notUUID, err := m.Issue("not-a-uuid")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: NewID(), Issuer: "Storefront"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":        "not.a.token",
		"wrong secret":   foreign,
		"expired":        expired,
		"malformed id":   notUUID,
		"unsigned token": unsigned,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
