package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cardtable/cardtable/internal/dependencies/clock"
	"github.com/cardtable/cardtable/internal/model"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Guest is the identity carried by a verified token
type Guest struct {
	ID       model.GuestID
	Nickname string
}

// Session is a freshly issued guest identity plus its bearer token
type Session struct {
	Guest Guest
	Token string
}

// Claims is the JWT payload for guest tokens. The guest id travels in the
// registered subject claim; the nickname is a private claim.
type Claims struct {
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

// Service issues and verifies guest tokens. There is no account store:
// identity lives entirely in the signed token, so a lost token is a lost
// identity.
type Service struct {
	secret []byte
	clock  clock.Clock
	cfg    Config
}

// New creates a new auth service
func New(secret string, clock clock.Clock, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		secret: []byte(secret),
		clock:  clock,
		cfg:    cfg,
	}
}

// CreateGuest mints a new guest identity and a signed HS256 token for it
func (s *Service) CreateGuest(nickname string) (*Session, error) {
	guest := Guest{
		ID:       model.GuestID(uuid.NewString()),
		Nickname: nickname,
	}

	now := s.clock.Now()
	claims := Claims{
		Nickname: guest.Nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(guest.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Session{Guest: guest, Token: token}, nil
}

// VerifyToken validates a bearer token and returns the guest it identifies.
// Any parse, signature or expiry failure comes back as ErrInvalidToken.
func (s *Service) VerifyToken(tokenString string) (*Guest, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Guest{
		ID:       model.GuestID(claims.Subject),
		Nickname: claims.Nickname,
	}, nil
}
