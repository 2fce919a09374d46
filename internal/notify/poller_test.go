package notify_test

import (
	"context"
	"io"
	"testing"
	"time"

	"diaglistapp/internal/domain"
	"diaglistapp/internal/notify"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCounter plays back a fixed count sequence, then repeats the
// last value.
type fakeCounter struct {
	counts []int
	calls  int
}

func (c *fakeCounter) CountByStatus(ctx context.Context, status string) (int, error) {
	i := c.calls
	if i >= len(c.counts) {
		i = len(c.counts) - 1
	}
	c.calls++
	return c.counts[i], nil
}

type recordingPlayer struct {
	played [][]notify.Tone
}

func (p *recordingPlayer) Play(tones []notify.Tone) error {
	p.played = append(p.played, tones)
	return nil
}

func testLog() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func TestFirstTickSeedsWithoutAlert(t *testing.T) {
	ctx := context.Background()
	player := &recordingPlayer{}
	p := notify.NewExecutorPoller(&fakeCounter{counts: []int{7}}, domain.StatusPending, player, testLog())

	require.NoError(t, p.Tick(ctx))

	assert.False(t, p.Alert().Active)
	assert.Empty(t, player.played)
}

func TestAlertFiresOnlyWhenCountGrows(t *testing.T) {
	ctx := context.Background()
	player := &recordingPlayer{}
	counter := &fakeCounter{counts: []int{3, 3, 5, 5, 2}}
	p := notify.NewExecutorPoller(counter, domain.StatusPending, player, testLog())

	require.NoError(t, p.Tick(ctx)) // seeds at 3
	require.NoError(t, p.Tick(ctx)) // 3, unchanged
	assert.False(t, p.Alert().Active)

	require.NoError(t, p.Tick(ctx)) // 5, grew by 2
	alert := p.Alert()
	assert.True(t, alert.Active)
	assert.Equal(t, 2, alert.NewItems)
	require.Len(t, player.played, 1)
	assert.Equal(t, 800, player.played[0][0].FreqHz)

	require.NoError(t, p.Tick(ctx)) // 5, unchanged
	require.NoError(t, p.Tick(ctx)) // 2, dropped
	assert.Len(t, player.played, 1)
}

func TestDropRearmsBaseline(t *testing.T) {
	ctx := context.Background()
	player := &recordingPlayer{}
	counter := &fakeCounter{counts: []int{5, 2, 3}}
	p := notify.NewManagerPoller(counter, domain.StatusCompleted, player, testLog())

	require.NoError(t, p.Tick(ctx)) // seeds at 5
	require.NoError(t, p.Tick(ctx)) // 2, dropped
	require.NoError(t, p.Tick(ctx)) // 3, grew from the new baseline

	require.Len(t, player.played, 1)
	assert.Equal(t, 1, p.Alert().NewItems)
}

func TestManagerSweepShape(t *testing.T) {
	ctx := context.Background()
	player := &recordingPlayer{}
	p := notify.NewManagerPoller(&fakeCounter{counts: []int{0, 1}}, domain.StatusCompleted, player, testLog())

	require.NoError(t, p.Tick(ctx))
	require.NoError(t, p.Tick(ctx))

	require.Len(t, player.played, 1)
	sweep := player.played[0]
	require.Len(t, sweep, 3)
	assert.Equal(t, 600, sweep[0].FreqHz)
	assert.Equal(t, 800, sweep[1].FreqHz)
	assert.Equal(t, 600, sweep[2].FreqHz)
}

func TestAlertExpiresAfterDwell(t *testing.T) {
	ctx := context.Background()
	p := notify.NewPollerForTest(&fakeCounter{counts: []int{0, 1}}, domain.StatusPending,
		time.Millisecond, 30*time.Millisecond, notify.NopPlayer{}, testLog())

	require.NoError(t, p.Tick(ctx))
	require.NoError(t, p.Tick(ctx))
	assert.True(t, p.Alert().Active)

	time.Sleep(50 * time.Millisecond)
	assert.False(t, p.Alert().Active)
}

func TestStartAndStop(t *testing.T) {
	counter := &fakeCounter{counts: []int{0, 1}}
	p := notify.NewPollerForTest(counter, domain.StatusPending,
		5*time.Millisecond, time.Second, notify.NopPlayer{}, testLog())

	p.Start(context.Background())
	assert.Eventually(t, func() bool {
		return p.Alert().Active
	}, time.Second, 5*time.Millisecond)
	p.Stop()
}
