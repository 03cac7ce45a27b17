// Package authtoken issues and verifies the signed bearer tokens used
// for admin authentication. A token passing Parse is only structurally
// valid; callers must still check the server-side session record before
// trusting it.
package authtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidToken covers malformed, tampered, mis-signed, and
// structurally expired tokens alike. Callers must not distinguish
// between those cases in responses.
var ErrInvalidToken = errors.New("authtoken: invalid token")

// Claims is the payload carried in an admin bearer token.
type Claims struct {
	AdminID  string `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AdminObjectID decodes the admin_id claim back to an ObjectID.
func (c *Claims) AdminObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.AdminID)
}

// Issuer signs and verifies admin tokens with an HMAC secret.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// New creates an Issuer. ttl bounds the structural lifetime of issued
// tokens; the matching session record carries the same expiry.
func New(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		issuer: "portfolio",
		ttl:    ttl,
	}
}

// Issue creates a signed token for the admin, expiring after the
// configured TTL. Returns the token string and its expiry time.
func (i *Issuer) Issue(adminID primitive.ObjectID, username, role string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		AdminID:  adminID.Hex(),
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    i.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies the signature and structure of a token and returns its
// claims. Any failure, including structural expiry, maps to
// ErrInvalidToken.
func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	}, jwt.WithIssuer(i.issuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
