package nonce

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Service issues and verifies single-purpose action tokens. Every mutating
// screen action carries a token scoped to (user, action name); a token minted
// for one action never validates another.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a nonce service. Tokens stay valid for 24 hours.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret), ttl: 24 * time.Hour}
}

type actionClaims struct {
	Action string `json:"action"`
	jwt.RegisteredClaims
}

// Issue mints a token binding the user to the named action
func (s *Service) Issue(userID uint, action string) (string, error) {
	now := time.Now()
	claims := &actionClaims{
		Action: action,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify reports whether the token was issued to this user for this action
// and has not expired. Any parse or claim mismatch fails closed.
func (s *Service) Verify(userID uint, action, tokenString string) bool {
	if tokenString == "" {
		return false
	}

	claims := &actionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	if claims.Action != action {
		return false
	}
	return claims.Subject == strconv.FormatUint(uint64(userID), 10)
}
