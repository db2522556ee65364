package domain

// Source identifies which upstream serves the current rates.
type Source int

const (
	SourceKeyed Source = iota + 1
	SourceFallback
	SourceManual
)

// String returns the string representation of Source
func (s Source) String() string {
	switch s {
	case SourceKeyed:
		return "KEYED"
	case SourceFallback:
		return "FALLBACK"
	case SourceManual:
		return "MANUAL"
	default:
		return "UNKNOWN"
	}
}

// StatusText is the human readable label shown on the dashboard.
func (s Source) StatusText() string {
	switch s {
	case SourceKeyed:
		return "Live (real-time)"
	case SourceFallback:
		return "Live (daily fallback)"
	case SourceManual:
		return "Manual override"
	default:
		return "Unknown"
	}
}
