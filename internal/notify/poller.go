// Package notify implements the cross-role notification pollers: each
// role periodically counts the orders it cares about and raises an
// audible alert when the count grows.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Tone is one beep of the alert sweep.
type Tone struct {
	FreqHz     int `json:"freqHz"`
	DurationMs int `json:"durationMs"`
}

// TonePlayer plays an alert sweep. Implementations may be backed by
// server-side audio or by nothing at all; the browser plays the tones
// it receives from the alert endpoint either way.
type TonePlayer interface {
	Play(tones []Tone) error
}

// NopPlayer ignores every sweep.
type NopPlayer struct{}

func (NopPlayer) Play([]Tone) error { return nil }

// StatusCounter counts orders currently in a status.
type StatusCounter interface {
	CountByStatus(ctx context.Context, status string) (int, error)
}

// Alert is the poller state exposed to the browser. Active stays true
// for the dwell window after new items appear so a page that polls
// slower than the counter still sees the alert.
type Alert struct {
	Active   bool   `json:"active"`
	NewItems int    `json:"newItems"`
	Tones    []Tone `json:"tones"`
}

// Poller watches one status on behalf of one role.
type Poller struct {
	counter  StatusCounter
	status   string
	interval time.Duration
	dwell    time.Duration
	sweep    []Tone
	player   TonePlayer
	log      *logrus.Entry

	mu        sync.Mutex
	seeded    bool
	lastKnown int
	newItems  int
	expires   time.Time

	stop chan struct{}
	done chan struct{}
}

// NewExecutorPoller watches pending orders: a short falling sweep
// every two seconds, alert shown for five.
func NewExecutorPoller(counter StatusCounter, status string, player TonePlayer, log *logrus.Entry) *Poller {
	return newPoller(counter, status, 2*time.Second, 5*time.Second, []Tone{
		{FreqHz: 800, DurationMs: 200},
		{FreqHz: 600, DurationMs: 200},
	}, player, log)
}

// NewManagerPoller watches completed orders: a rise-and-fall sweep
// every three seconds, alert shown for ten.
func NewManagerPoller(counter StatusCounter, status string, player TonePlayer, log *logrus.Entry) *Poller {
	return newPoller(counter, status, 3*time.Second, 10*time.Second, []Tone{
		{FreqHz: 600, DurationMs: 200},
		{FreqHz: 800, DurationMs: 200},
		{FreqHz: 600, DurationMs: 200},
	}, player, log)
}

func newPoller(counter StatusCounter, status string, interval, dwell time.Duration, sweep []Tone, player TonePlayer, log *logrus.Entry) *Poller {
	if player == nil {
		player = NopPlayer{}
	}
	return &Poller{
		counter:  counter,
		status:   status,
		interval: interval,
		dwell:    dwell,
		sweep:    sweep,
		player:   player,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the polling loop until Stop is called.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := p.Tick(ctx); err != nil {
					p.log.WithError(err).Warn("poll failed")
				}
			}
		}
	}()
}

// Stop halts the polling loop and waits for it to exit.
func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
}

// Tick performs one counting pass. The very first pass only seeds the
// baseline so a restart over existing data stays silent; after that an
// alert fires whenever the count grew since the previous pass. The
// baseline always follows the observed count, so a drop (orders
// claimed away) re-arms the alert at the lower number.
func (p *Poller) Tick(ctx context.Context) error {
	count, err := p.counter.CountByStatus(ctx, p.status)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.seeded {
		p.seeded = true
		p.lastKnown = count
		return nil
	}

	if count > p.lastKnown {
		p.newItems = count - p.lastKnown
		p.expires = time.Now().Add(p.dwell)
		if err := p.player.Play(p.sweep); err != nil {
			p.log.WithError(err).Debug("tone playback failed")
		}
	}
	p.lastKnown = count
	return nil
}

// Alert returns the current alert state for the browser.
func (p *Poller) Alert() Alert {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.newItems == 0 || time.Now().After(p.expires) {
		return Alert{Tones: []Tone{}}
	}
	return Alert{Active: true, NewItems: p.newItems, Tones: p.sweep}
}
