package ports

// InputSource exposes the two logical buttons of the installation.
// Implementations must reflect the current state on every call; the flow does
// no debouncing or caching of its own.
type InputSource interface {
	IsSkipPressed() bool
	IsResetPressed() bool
}

// InputFuncs adapts two plain functions to InputSource. A nil func reads as not pressed.
type InputFuncs struct {
	Skip  func() bool
	Reset func() bool
}

func (f InputFuncs) IsSkipPressed() bool  { return f.Skip != nil && f.Skip() }
func (f InputFuncs) IsResetPressed() bool { return f.Reset != nil && f.Reset() }
