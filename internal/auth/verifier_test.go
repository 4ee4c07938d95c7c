package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perisicnikola37/expense-tracker-api/internal/config"
)

const (
	testKey      = "0123456789abcdef0123456789abcdef"
	testIssuer   = "https://expense-tracker.local/"
	testAudience = "https://expense-tracker.local/"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SigningKey:       testKey,
		Issuer:           testIssuer,
		Audience:         testAudience,
		ValidateLifetime: true,
		TokenTTLMinutes:  60,
	}
}

// signToken builds a token with the given overrides applied to a valid claim set.
func signToken(t *testing.T, key string, overrides map[string]any) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":          "7",
		"account_type": "regular",
		"jti":          "test-token-id",
		"iss":          testIssuer,
		"aud":          testAudience,
		"iat":          jwt.NewNumericDate(time.Now()),
		"exp":          jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	for k, v := range overrides {
		if v == nil {
			delete(claims, k)
		} else {
			claims[k] = v
		}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestVerifier_ValidToken(t *testing.T) {
	verifier := NewVerifier(testJWTConfig())

	claims, verr := verifier.Verify(signToken(t, testKey, nil))
	require.Nil(t, verr)

	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "7", subject)
	assert.Equal(t, "regular", claims["account_type"])
}

// TestVerifier_KindExactness checks that each corrupted field produces its
// own specific error kind, never a neighbouring one.
func TestVerifier_KindExactness(t *testing.T) {
	tests := []struct {
		name     string
		token    func(t *testing.T) string
		wantKind VerificationErrorKind
	}{
		{
			name:     "corrupted signature",
			token:    func(t *testing.T) string { return signToken(t, "ffffffffffffffffffffffffffffffff", nil) },
			wantKind: VerificationBadSignature,
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				return signToken(t, testKey, map[string]any{"iss": "https://evil.example.com/"})
			},
			wantKind: VerificationBadIssuer,
		},
		{
			name: "missing issuer",
			token: func(t *testing.T) string {
				return signToken(t, testKey, map[string]any{"iss": nil})
			},
			wantKind: VerificationBadIssuer,
		},
		{
			name: "wrong audience",
			token: func(t *testing.T) string {
				return signToken(t, testKey, map[string]any{"aud": "https://other.example.com/"})
			},
			wantKind: VerificationBadAudience,
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				return signToken(t, testKey, map[string]any{"exp": jwt.NewNumericDate(time.Now().Add(-time.Hour))})
			},
			wantKind: VerificationExpired,
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				return signToken(t, testKey, map[string]any{"exp": nil})
			},
			wantKind: VerificationExpired,
		},
		{
			name:     "garbage token",
			token:    func(t *testing.T) string { return "not.a.token" },
			wantKind: VerificationMalformed,
		},
		{
			name:     "empty token",
			token:    func(t *testing.T) string { return "" },
			wantKind: VerificationMalformed,
		},
	}

	verifier := NewVerifier(testJWTConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, verr := verifier.Verify(tt.token(t))
			require.NotNil(t, verr)
			assert.Nil(t, claims)
			assert.Equal(t, tt.wantKind, verr.Kind)
		})
	}
}

// TestVerifier_LifetimeValidationDisabled reproduces the legacy deployment
// mode where expired tokens still authenticate.
func TestVerifier_LifetimeValidationDisabled(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ValidateLifetime = false
	verifier := NewVerifier(cfg)

	expired := signToken(t, testKey, map[string]any{"exp": jwt.NewNumericDate(time.Now().Add(-time.Hour))})

	claims, verr := verifier.Verify(expired)
	require.Nil(t, verr)
	assert.Equal(t, "7", claims["sub"])

	// Issuer and audience are still enforced even without lifetime checks.
	badIssuer := signToken(t, testKey, map[string]any{
		"iss": "https://evil.example.com/",
		"exp": jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	_, verr = verifier.Verify(badIssuer)
	require.NotNil(t, verr)
	assert.Equal(t, VerificationBadIssuer, verr.Kind)
}

func TestVerifier_IsPureAndRepeatable(t *testing.T) {
	verifier := NewVerifier(testJWTConfig())
	token := signToken(t, testKey, nil)

	first, verr := verifier.Verify(token)
	require.Nil(t, verr)
	second, verr := verifier.Verify(token)
	require.Nil(t, verr)

	assert.Equal(t, first, second)
}
