package notify

import (
	"time"

	"github.com/sirupsen/logrus"
)

// NewPollerForTest builds a poller with custom timings so dwell and
// interval behavior can be tested without real-time waits.
func NewPollerForTest(counter StatusCounter, status string, interval, dwell time.Duration, player TonePlayer, log *logrus.Entry) *Poller {
	return newPoller(counter, status, interval, dwell, []Tone{{FreqHz: 800, DurationMs: 200}}, player, log)
}
