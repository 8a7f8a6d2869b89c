package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
	mx    sync.Mutex
}

func (r *recorder) record(v string) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.calls = append(r.calls, v)
}

func (r *recorder) snapshot() []string {
	r.mx.Lock()
	defer r.mx.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func TestDebouncerBurstPropagatesLastValue(t *testing.T) {
	delays := []time.Duration{25 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond}

	for _, delay := range delays {
		t.Run(delay.String(), func(t *testing.T) {
			rec := &recorder{}
			d := New(delay, rec.record)

			for _, v := range []string{"a", "al", "ali", "alic", "alice"} {
				d.Set(v)
				time.Sleep(delay / 10)
			}

			require.Eventually(t, func() bool {
				return len(rec.snapshot()) == 1
			}, 20*delay, delay/5)

			// Nothing else arrives afterwards.
			time.Sleep(3 * delay)
			assert.Equal(t, []string{"alice"}, rec.snapshot())
			assert.Equal(t, "alice", d.Value())
			assert.False(t, d.Pending())
		})
	}
}

func TestDebouncerSeparatedValues(t *testing.T) {
	rec := &recorder{}
	d := New(10*time.Millisecond, rec.record)

	d.Set("one")
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	d.Set("two")
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"one", "two"}, rec.snapshot())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)

	d.Set("x")
	d.Stop()
	d.Set("y")

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncerFlush(t *testing.T) {
	rec := &recorder{}
	d := New(time.Hour, rec.record)

	d.Flush()
	assert.Empty(t, rec.snapshot())

	d.Set("now")
	d.Flush()
	assert.Equal(t, []string{"now"}, rec.snapshot())

	d.Flush()
	assert.Equal(t, []string{"now"}, rec.snapshot())
}

func TestDebouncerZeroDelayIsSynchronous(t *testing.T) {
	rec := &recorder{}
	d := New(0, rec.record)

	d.Set("a")
	d.Set("b")
	assert.Equal(t, []string{"a", "b"}, rec.snapshot())
	assert.Equal(t, time.Duration(0), d.Delay())
}
