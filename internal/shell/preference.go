package shell

import "sync/atomic"

// Preference is the minimize-on-close flag. It is read by the close
// intercept and written by the settings command, possibly from different
// goroutines. It lives for the process only.
type Preference struct {
	v atomic.Bool
}

// NewPreference returns a preference initialised to minimize.
func NewPreference(minimize bool) *Preference {
	p := &Preference{}
	p.v.Store(minimize)
	return p
}

// Set stores the flag.
func (p *Preference) Set(minimize bool) { p.v.Store(minimize) }

// Get reports the most recently stored flag.
func (p *Preference) Get() bool { return p.v.Load() }
