// Package auth issues and validates the HS256 access tokens that carry a
// caller's identity into every authorized operation.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/sellegate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims embeds the registered claims and adds the two identity facts the
// rest of the server needs: who is calling and whether they may evaluate.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"uid"`
	IsEvaluator bool   `json:"evaluator"`
}

// Identity is a resolved caller identity, the capability object passed into
// every service operation that requires authorization.
type Identity struct {
	UserID      string
	IsEvaluator bool
}

func GenerateToken(userID string, isEvaluator bool, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:      userID,
		IsEvaluator: isEvaluator,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// IdentityFromToken parses and validates an access token and returns the
// identity it carries. Expired tokens map to ErrTokenExpired, anything else
// invalid maps to ErrInvalidToken.
func IdentityFromToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, IsEvaluator: claims.IsEvaluator}, nil
}
