package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors distinguishing the two verification failure classes.
// An expired-but-correctly-signed token must never be reported as invalid.
var (
	// ErrTokenExpired means the signature verified but the "exp" claim is in
	// the past.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenInvalid means the token is malformed, carries a wrong issuer,
	// or its signature does not verify.
	ErrTokenInvalid = errors.New("token is invalid")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following claims:
//   - Issuer    (iss):  identifies the service that issued the token
//   - Subject   (sub):  the user ID encoded as a string
//   - IssuedAt  (iat):  the current time
//   - ExpiresAt (exp):  the current time plus tokenDuration
//   - role:             the user's role at issuance time
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Parameters:
//
//	issuer        - identifier of the token issuer (e.g. service name)
//	userID        - ID of the user the token is issued for
//	role          - the user's role at issuance time
//	tokenDuration - how long the token remains valid
//	signKey       - secret key used to sign the token with HMAC-SHA256
//
// Returns:
//
//	models.Token - contains the signed token string and the jwt.Token object
//	error        - non-nil if parameters are invalid or signing fails
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("mess-manager", 42, models.RoleAdmin, 24*time.Hour, "secret")
func GenerateJWTToken(issuer string, userID int64, role models.Role, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" || !role.Valid() {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &models.TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, TokenClaims: *claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence and conversion to int64 UserID
//
// Failure modes are separated so callers can map them to distinct results:
//   - [ErrTokenExpired] when the exp claim is in the past
//   - [ErrTokenInvalid] for every other validation failure
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "mess-manager")
//	if errors.Is(err, utils.ErrTokenExpired) {
//	    // expired, not forged
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	userIDStr, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: error getting subject from token: %w", ErrTokenInvalid, err)
	}
	if userIDStr == "" {
		return models.Token{}, fmt.Errorf("%w: empty subject", ErrTokenInvalid)
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: error converting subject to user ID: %w", ErrTokenInvalid, err)
	}

	return models.Token{Token: token, TokenClaims: *claims, SignedString: tokenString, UserID: userID}, nil
}

// Failure modes of [ParseBearerToken].
var (
	// ErrNotBearerToken means the header is not a two-part "Bearer <token>"
	// value; any other scheme (e.g. Basic) is rejected too.
	ErrNotBearerToken = errors.New("authorization header is not a bearer token")

	// ErrEmptyBearerToken means the Bearer scheme is present but the token
	// itself is an empty string.
	ErrEmptyBearerToken = errors.New("empty bearer token")
)

// ParseBearerToken extracts the token part of an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively per RFC 7235.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(authorizationHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrNotBearerToken
	}
	if parts[1] == "" {
		return "", ErrEmptyBearerToken
	}
	return parts[1], nil
}

// TokenExpiry parses tokenString without verifying the signature and returns
// the "exp" claim as a time.Time. The client uses this to persist the
// credential expiry exactly as the server set it.
func TokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}
	return exp.Time, nil
}
