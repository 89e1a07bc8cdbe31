package balance

import "sync"

// View holds the abbreviated/exact toggle for the aggregate balance. It
// resets to abbreviated whenever the active wallet identity changes.
type View struct {
	mu    sync.Mutex
	exact bool
	index int
}

// NewView starts abbreviated for the given identity.
func NewView(index int) *View {
	return &View{index: index}
}

// Toggle flips between abbreviated and exact rendering.
func (v *View) Toggle() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.exact = !v.exact
}

// Short reports whether the abbreviated form is selected.
func (v *View) Short() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.exact
}

// SetIndex records the active identity, resetting to abbreviated on change.
func (v *View) SetIndex(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if index != v.index {
		v.index = index
		v.exact = false
	}
}

// Text renders balance in the selected form, followed by its unit.
func (v *View) Text(balance int64) string {
	if v.Short() {
		return Abbreviated(balance)
	}
	return Exact(balance)
}

// Abbreviated rounds down to one decimal in the largest unit and appends
// "+" when that dropped precision.
func Abbreviated(balance int64) string {
	scaled := FormatValue(balance)
	text := formatFloat(RoundDown(scaled, 1))
	if balance >= 1000 && decimalPlaces(scaled) > 1 {
		text += "+"
	}
	return text + " " + FormatUnit(balance)
}

// Exact renders the full scaled value.
func Exact(balance int64) string {
	return formatFloat(FormatValue(balance)) + " " + FormatUnit(balance)
}
