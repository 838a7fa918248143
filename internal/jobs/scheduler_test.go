package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRentalService/pkg/logger"
)

type fakeCompleter struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCompleter) CompleteFinished(ctx context.Context) (int, error) {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("no deadline")
	}
	return 2, f.err
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler("not a cron", &fakeCompleter{}, logger.Nop{})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestScheduler_CompleteFinishedBookings(t *testing.T) {
	completer := &fakeCompleter{}
	s, err := NewScheduler("0 */5 * * * *", completer, logger.Nop{})
	require.NoError(t, err)

	s.CompleteFinishedBookings()
	assert.Equal(t, int32(1), completer.calls.Load())

	completer.err = errors.New("db down")
	assert.NotPanics(t, s.CompleteFinishedBookings)
	assert.Equal(t, int32(2), completer.calls.Load())
}

func TestScheduler_StartStop(t *testing.T) {
	completer := &fakeCompleter{}
	s, err := NewScheduler("* * * * * *", completer, logger.Nop{})
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return completer.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
