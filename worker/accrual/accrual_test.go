package accrual

import (
	"context"
	"errors"
	"testing"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marketService struct {
	core.IMarketService
	calls int
	err   error
}

func (s *marketService) AccrueInterest(_ context.Context, symbols ...string) error {
	s.calls++
	return s.err
}

func TestAccrual(t *testing.T) {
	svc := &marketService{}
	w, err := New(&core.Config{}, svc)
	require.NoError(t, err)

	w.Run()
	w.Run()
	assert.Equal(t, 2, svc.calls)

	svc.err = errors.New("ledger closed")
	assert.Error(t, w.onWork(context.Background()))
}

func TestBadSchedule(t *testing.T) {
	_, err := New(&core.Config{Worker: core.Worker{Accrual: "every now and then"}}, &marketService{})
	assert.Error(t, err)
}
