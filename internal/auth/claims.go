package auth

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"
)

// Subject and account-type claim keys used on every issued token.
const (
	ClaimSubject     = "sub"
	ClaimAccountType = "account_type"
	ClaimTokenID     = "jti"
)

// Claims is the normalized shape of a verified claim set. Decoding a raw
// claim map into this struct is the single place claim-shape differences
// are absorbed; everything downstream reads this struct, never the map.
type Claims struct {
	Subject     string `mapstructure:"sub"`
	AccountType string `mapstructure:"account_type"`
	TokenID     string `mapstructure:"jti"`
	Issuer      string `mapstructure:"iss"`
}

// DecodeClaims normalizes a verified claim map into the typed Claims shape.
// It tolerates numeric subjects (JSON numbers decode as float64) by
// stringifying them, matching what ExtractUserID accepts.
func DecodeClaims(raw jwt.MapClaims) (Claims, error) {
	var claims Claims
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &claims,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Claims{}, err
	}
	if err := decoder.Decode(map[string]any(raw)); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// ExtractUserID resolves the stable integer user identifier from a claim
// set. A missing or non-numeric subject yields ok=false, never an error:
// callers treat "no identity" as unauthenticated, since some routes are
// anonymous-accessible. Idempotent and side-effect free.
func ExtractUserID(claims Claims) (int, bool) {
	if claims.Subject == "" {
		return 0, false
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
