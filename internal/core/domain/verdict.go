package domain

// Verdict is the outcome of inspecting a file's content.
type Verdict int

const (
	// Inconclusive means the content could not be checked: it failed to
	// parse, or no structural check exists for its format.
	Inconclusive Verdict = iota

	// NotConfirmed means the content was checked and lacks translation structure.
	NotConfirmed

	// Confirmed means the content has translation structure.
	Confirmed
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Confirmed:
		return "confirmed"
	case NotConfirmed:
		return "not-confirmed"
	default:
		return "inconclusive"
	}
}

// IsConfirmed collapses the verdict to the boolean public contract.
func (v Verdict) IsConfirmed() bool {
	return v == Confirmed
}
