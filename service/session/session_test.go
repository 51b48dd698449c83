package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bluele/gcache"
	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueLogin(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()
	clk.Add(1700000000 * time.Second)

	for _, capacity := range []int{0, 16} {
		s := New("secret", time.Hour, capacity, WithClock(clk))

		token, err := s.Issue(ctx, "alice")
		require.NoError(t, err)

		user, err := s.Login(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.UserID)

		_, err = s.Login(ctx, token+"x")
		assert.Equal(t, ErrInvalidToken, err)

		other := New("other", time.Hour, capacity, WithClock(clk))
		_, err = other.Login(ctx, token)
		assert.Equal(t, ErrInvalidToken, err)

		clk.Add(2 * time.Hour)
		_, err = s.Login(ctx, token)
		assert.Equal(t, ErrInvalidToken, err, "expired")
	}
}

func TestLoginCacheFailure(t *testing.T) {
	clk := clock.NewMock()
	clk.Add(1700000000 * time.Second)

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	ctx := logger.WithContext(context.Background(), logrus.NewEntry(log))

	base := New("secret", time.Hour, 0, WithClock(clk))
	s := &cacheSession{
		Session: base,
		clock:   clk,
		tokens: gcache.New(4).LRU().SerializeFunc(func(_, _ interface{}) (interface{}, error) {
			return nil, errors.New("full")
		}).Build(),
	}

	token, err := s.Issue(ctx, "alice")
	require.NoError(t, err)

	user, err := s.Login(ctx, token)
	require.NoError(t, err, "a cache failure does not fail the login")
	assert.Equal(t, "alice", user.UserID)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Equal(t, "cache session token", hook.LastEntry().Message)
}
