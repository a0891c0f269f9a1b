package domain

// InputSample holds the two logical buttons as sampled for a single tick.
// It is never cached across ticks.
type InputSample struct {
	Skip  bool `json:"skip"`
	Reset bool `json:"reset"`
}

// Button names the logical inputs understood by operator surfaces.
type Button string

const (
	ButtonSkip  Button = "skip"
	ButtonReset Button = "reset"
)

// ParseButton maps an operator-facing name to a Button.
func ParseButton(name string) (Button, bool) {
	switch Button(name) {
	case ButtonSkip:
		return ButtonSkip, true
	case ButtonReset:
		return ButtonReset, true
	}
	return "", false
}
