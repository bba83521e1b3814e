package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"guesthouse/pkg/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims is the JWT payload issued by the credential service and consumed
// here. Role is one of the model actor roles.
type Claims struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	jwt.RegisteredClaims
}

// TokenService validates bearer tokens and turns them into Actors. Token
// issuance lives in the credential service; IssueToken exists here for the
// migration job's smoke checks and for tests.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// ActorFromToken validates the signed token and maps its claims onto an
// Actor.
func (s *TokenService) ActorFromToken(tokenString string) (*model.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || !model.ValidRole(claims.Role) {
		return nil, ErrInvalidToken
	}

	return &model.Actor{
		ID:         claims.Subject,
		Name:       claims.Name,
		Email:      claims.Email,
		Department: claims.Department,
		Role:       claims.Role,
	}, nil
}

// IssueToken signs a token for the given actor.
func (s *TokenService) IssueToken(actor *model.Actor) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:       actor.Name,
		Email:      actor.Email,
		Role:       actor.Role,
		Department: actor.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
