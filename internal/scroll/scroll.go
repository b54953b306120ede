// Package scroll detects when a scrollable region approaches or reaches its end.
//
// Two signals observe the same region. A proximity sentinel fires OnNearEnd
// once the end marker is within a lead distance of the viewport bottom, and an
// absolute-end check fires OnScrolledEnd when the remaining distance is below
// an epsilon. Distances are in logical units; the terminal UI uses rows.
package scroll

import "time"

// Defaults.
const (
	DefaultLoadBefore = 900
	DefaultEpsilon    = 4
	DefaultCooldown   = 500 * time.Millisecond
)

// Clock returns the current time.
type Clock func() time.Time

// Options configures a Detector.
type Options struct {
	// LoadBefore is the lead distance before the end that counts as near.
	LoadBefore int
	// Epsilon is the remaining distance below which the end is reached.
	Epsilon int
	// Cooldown suppresses repeated firing after a signal.
	Cooldown time.Duration
	// StripeHeight caps the lead distance for the paginated variant. Zero disables the cap.
	StripeHeight int
	Clock        Clock
}

func (o Options) withDefaults() Options {
	if o.LoadBefore <= 0 {
		o.LoadBefore = DefaultLoadBefore
	}
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.Cooldown < 0 {
		o.Cooldown = 0
	} else if o.Cooldown == 0 {
		o.Cooldown = DefaultCooldown
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Metrics describes the observed region.
type Metrics struct {
	// Offset is the scroll position of the viewport top.
	Offset int
	// Viewport is the visible height.
	Viewport int
	// Content is the total scrollable height.
	Content int
	// Sentinel is the position of the end marker. Zero means Content.
	Sentinel int
}

// Remaining returns the distance from the viewport bottom to the content end.
func (m Metrics) Remaining() int {
	return m.Content - m.Offset - m.Viewport
}

// Signal reports which callbacks an observation fired.
type Signal struct {
	NearEnd     bool
	ScrolledEnd bool
}

// Detector fires near-end and end-reached callbacks. Each callback is a single
// slot: the last Set wins, and an unset slot is a no-op. A Detector is owned by
// the UI loop and is not safe for concurrent use.
type Detector struct {
	opts Options

	onNearEnd   func()
	onEnd       func()
	coolingTill time.Time
}

// New creates a Detector.
func New(opts Options) *Detector {
	return &Detector{opts: opts.withDefaults()}
}

// SetOnNearEnd replaces the near-end callback. nil clears it.
func (d *Detector) SetOnNearEnd(fn func()) {
	d.onNearEnd = fn
}

// SetOnScrolledEnd replaces the end-reached callback. nil clears it.
func (d *Detector) SetOnScrolledEnd(fn func()) {
	d.onEnd = fn
}

// LeadDistance returns the effective lead distance for a viewport height.
func (d *Detector) LeadDistance(viewport int) int {
	lead := d.opts.LoadBefore
	if d.opts.StripeHeight > 0 {
		lead = min(lead, d.opts.StripeHeight)
		if viewport > 0 {
			lead = min(lead, viewport)
		}
	}
	return lead
}

// Observe evaluates the region after a scroll or content change and fires
// callbacks. Both signals share one cooldown. End-reached fires first.
func (d *Detector) Observe(m Metrics) Signal {
	sentinel := m.Sentinel
	if sentinel <= 0 {
		sentinel = m.Content
	}

	intersecting := sentinel-(m.Offset+m.Viewport) <= d.LeadDistance(m.Viewport)
	remaining := m.Remaining()
	if remaining < 0 {
		remaining = -remaining
	}
	atEnd := remaining < d.opts.Epsilon

	now := d.opts.Clock()
	var sig Signal
	if (intersecting || atEnd) && !now.Before(d.coolingTill) {
		sig = Signal{NearEnd: true, ScrolledEnd: atEnd}
		d.coolingTill = now.Add(d.opts.Cooldown)
	}
	if sig.ScrolledEnd && d.onEnd != nil {
		d.onEnd()
	}
	if sig.NearEnd && d.onNearEnd != nil {
		d.onNearEnd()
	}
	return sig
}

// Reset clears the cooldown, for example after the content was replaced.
func (d *Detector) Reset() {
	d.coolingTill = time.Time{}
}
