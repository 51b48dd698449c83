package session

import (
	"context"
	"errors"
	"time"

	"moneymarket/core"

	"github.com/asaskevich/govalidator"
	"github.com/bluele/gcache"
	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidToken token is malformed, expired or not signed by us
var ErrInvalidToken = errors.New("invalid token")

// Option session option
type Option func(s *session)

// WithClock clock used to issue and verify tokens
func WithClock(c clock.Clock) Option {
	return func(s *session) {
		s.clock = c
	}
}

// New new HS256 bearer token session, verified tokens are cached when capacity > 0
func New(secret string, ttl time.Duration, capacity int, opts ...Option) core.Session {
	base := &session{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock.New(),
		sf:     &singleflight.Group{},
	}

	for _, opt := range opts {
		opt(base)
	}

	var s core.Session = base
	if capacity > 0 {
		s = &cacheSession{
			Session: s,
			clock:   base.clock,
			tokens:  gcache.New(capacity).LRU().Build(),
		}
	}

	return s
}

type session struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
	sf     *singleflight.Group
}

func (s *session) Login(ctx context.Context, accessToken string) (*core.User, error) {
	user, err, _ := s.sf.Do(accessToken, func() (interface{}, error) {
		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(s.clock.Now),
			jwt.WithExpirationRequired(),
		)
		if err != nil {
			return nil, ErrInvalidToken
		}

		if claims.Subject == "" || !govalidator.IsPrintableASCII(claims.Subject) {
			return nil, ErrInvalidToken
		}

		return &core.User{UserID: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
	})

	if err != nil {
		return nil, err
	}

	return user.(*core.User), nil
}

func (s *session) Issue(ctx context.Context, userID string) (string, error) {
	if userID == "" || !govalidator.IsPrintableASCII(userID) {
		return "", core.ErrInvalidArgument
	}

	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

type cacheSession struct {
	core.Session
	clock  clock.Clock
	tokens gcache.Cache
}

func (s *cacheSession) Login(ctx context.Context, accessToken string) (*core.User, error) {
	if v, err := s.tokens.Get(accessToken); err == nil {
		if user, ok := v.(*core.User); ok && s.clock.Now().Before(user.ExpiresAt) {
			return user, nil
		}
	}

	user, err := s.Session.Login(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.SetWithExpire(accessToken, user, user.ExpiresAt.Sub(s.clock.Now())); err != nil {
		logger.FromContext(ctx).WithError(err).Debugln("cache session token")
	}

	return user, nil
}
