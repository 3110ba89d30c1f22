package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type doTransactionError struct{}

func (doTransactionError) Error() string { return "provider rejected transaction" }

type kindedError struct{}

func (kindedError) Error() string { return "kinded" }
func (kindedError) Kind() string  { return "UnbindError" }

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error", err: nil, want: ""},
		{name: "concrete type name", err: doTransactionError{}, want: "doTransactionError"},
		{name: "pointer type name", err: &doTransactionError{}, want: "doTransactionError"},
		{name: "explicit kind wins", err: kindedError{}, want: "UnbindError"},
		{name: "wrapped kind is found", err: fmt.Errorf("call failed: %w", kindedError{}), want: "UnbindError"},
		{name: "plain errors fall back to type", err: errors.New("boom"), want: "errorString"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}

func TestNewPaymentEvent(t *testing.T) {
	event := NewPaymentEvent("demo", KindSinglePayment, 100, "demo-terminal-1", doTransactionError{}, 1500*time.Millisecond)

	assert.Equal(t, "demo", event.Provider)
	assert.Equal(t, KindSinglePayment, event.Kind)
	assert.Equal(t, int64(100), event.Amount)
	assert.Equal(t, "demo-terminal-1", event.Terminal)
	assert.Equal(t, "doTransactionError", event.Exception)
	assert.Equal(t, int64(1500), event.ElapsedMS)
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	sink.Publish(NewPaymentEvent("demo", KindSinglePayment, 100, "t1", nil, time.Millisecond))
	sink.Publish(NewPaymentEvent("demo", KindSinglePayment, 200, "t1", nil, time.Millisecond))

	events := sink.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, int64(100), events[0].Amount)
	assert.Empty(t, events[0].Exception)
}
