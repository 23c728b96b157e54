package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute)
	boom := errors.New("boom")

	err := cb.Execute(func() error { return boom })
	assert.Equal(t, boom, err)
	assert.Equal(t, StateClosed, cb.GetState())

	err = cb.Execute(func() error { return boom })
	assert.Equal(t, boom, err)
	assert.Equal(t, StateOpen, cb.GetState())

	err = cb.Execute(func() error { return nil })
	assert.Equal(t, ErrOpen, err)
}

func TestBreakerIgnoresErrorsOutsidePredicate(t *testing.T) {
	notFound := errors.New("not found")
	outage := errors.New("outage")

	cb := NewCircuitBreaker(0, time.Minute)
	cb.SetFailurePredicate(func(err error) bool { return errors.Is(err, outage) })

	for i := 0; i < 5; i++ {
		err := cb.Execute(func() error { return notFound })
		assert.Equal(t, notFound, err)
	}
	assert.Equal(t, StateClosed, cb.GetState())

	err := cb.Execute(func() error { return outage })
	assert.Equal(t, outage, err)
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(0, 10*time.Millisecond)
	boom := errors.New("boom")

	_ = cb.Execute(func() error { return boom })
	assert.Equal(t, StateOpen, cb.GetState())

	time.Sleep(20 * time.Millisecond)

	err := cb.Execute(func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(0, 10*time.Millisecond)
	boom := errors.New("boom")

	_ = cb.Execute(func() error { return boom })
	assert.Equal(t, StateOpen, cb.GetState())

	time.Sleep(20 * time.Millisecond)

	err := cb.Execute(func() error { return boom })
	assert.Equal(t, boom, err)
	assert.Equal(t, StateOpen, cb.GetState())
}
