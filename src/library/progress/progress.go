package progress

import (
	"time"

	"golang.org/x/time/rate"

	"SentiVec/src/library/log"
)

// Reporter emits throttled progress lines for long loops. At most one line
// per interval plus a final line from Done.
type Reporter struct {
	desc    string
	unit    string
	count   int
	started time.Time
	limiter *rate.Limiter
}

func NewReporter(desc, unit string) *Reporter {
	return &Reporter{
		desc:    desc,
		unit:    unit,
		started: time.Now(),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Incr counts one unit of work and maybe logs.
func (r *Reporter) Incr() {
	r.count++
	if r.limiter.Allow() {
		r.emit()
	}
}

// Add counts n units of work and maybe logs.
func (r *Reporter) Add(n int) {
	r.count += n
	if r.limiter.Allow() {
		r.emit()
	}
}

// Count returns the number of units counted so far.
func (r *Reporter) Count() int { return r.count }

// Done logs the final tally.
func (r *Reporter) Done() {
	elapsed := time.Since(r.started)
	perSec := float64(r.count) / elapsed.Seconds()
	log.Info("%s: %d %s in %v (%.0f %s/s)", r.desc, r.count, r.unit, elapsed.Round(time.Millisecond), perSec, r.unit)
}

func (r *Reporter) emit() {
	log.Debug("%s: %d %s", r.desc, r.count, r.unit)
}
