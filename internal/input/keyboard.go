package input

// Bindings lists the key codes that drive each direction. Codes are whatever the host's input
// layer uses (raylib key codes in cmd/exhibition).
type Bindings struct {
	Forward []int32
	Back    []int32
	Left    []int32
	Right   []int32
}

// Keyboard turns held keys into movement intents.
type Keyboard struct {
	bindings Bindings
	isDown   func(key int32) bool
}

// NewKeyboard returns a keyboard source polling isDown for the given bindings.
func NewKeyboard(b Bindings, isDown func(key int32) bool) *Keyboard {
	return &Keyboard{bindings: b, isDown: isDown}
}

// Intents returns the currently held directions.
func (k *Keyboard) Intents() Intents {
	if k.isDown == nil {
		return Intents{}
	}
	return Intents{
		Forward: k.any(k.bindings.Forward),
		Back:    k.any(k.bindings.Back),
		Left:    k.any(k.bindings.Left),
		Right:   k.any(k.bindings.Right),
	}
}

func (k *Keyboard) any(keys []int32) bool {
	for _, key := range keys {
		if k.isDown(key) {
			return true
		}
	}
	return false
}
