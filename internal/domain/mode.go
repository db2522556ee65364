package domain

// Mode decides which rates govern rendering. It is either Live or Manual.
// A Manual mode always carries its rate pair.
type Mode interface {
	isMode()
	Name() string
}

// LiveMode fetches rates from the network.
type LiveMode struct{}

func (LiveMode) isMode()      {}
func (LiveMode) Name() string { return "live" }

// ManualMode overrides every fetch with a user supplied pair.
type ManualMode struct {
	Rates RatePair
}

func (ManualMode) isMode()      {}
func (ManualMode) Name() string { return "manual" }

// ManualRates returns the override pair when m is a ManualMode.
func ManualRates(m Mode) (RatePair, bool) {
	mm, ok := m.(ManualMode)
	if !ok {
		return RatePair{}, false
	}
	return mm.Rates, true
}
