package input

// Intents is the set of four directional movement flags read by locomotion each tick.
type Intents struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// Any reports whether at least one direction is active.
func (i Intents) Any() bool {
	return i.Forward || i.Back || i.Left || i.Right
}

// Merge combines intent sources with logical OR, so any source can drive motion on its own.
func Merge(sources ...Intents) Intents {
	var out Intents
	for _, s := range sources {
		out.Forward = out.Forward || s.Forward
		out.Back = out.Back || s.Back
		out.Left = out.Left || s.Left
		out.Right = out.Right || s.Right
	}
	return out
}

// Source is anything that can report movement intents for the current tick.
type Source interface {
	Intents() Intents
}
