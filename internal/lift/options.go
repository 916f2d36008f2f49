package lift

// Options configures the closure-elimination pass.
type Options struct {
	// MaxRounds caps the capture-analysis fixed point. The iteration is
	// monotone and bounded by the number of variables in scope, so hitting
	// the cap indicates a pass bug and is reported as an internal error.
	// Zero or negative selects the default.
	MaxRounds int

	// Validate runs post-pass invariant checks (no nested definitions left,
	// formal/actual parity at every call site).
	Validate bool
}

const defaultMaxRounds = 64

func (o Options) maxRounds() int {
	if o.MaxRounds <= 0 {
		return defaultMaxRounds
	}
	return o.MaxRounds
}
