package selection

// KeyState is the debounce state of the A-Z jump feature.
type KeyState int

const (
	KeyIdle KeyState = iota
	KeyHeld
)

// KeySelect records a pending letter jump. While a key is held no further
// jumps fire, so one long press is not read as many presses.
type KeySelect struct {
	state      KeyState
	key        rune
	target     string
	needScroll bool
}

// State returns the current debounce state.
func (k *KeySelect) State() KeyState {
	return k.state
}

// Key returns the held key, or 0 when idle.
func (k *KeySelect) Key() rune {
	if k.state != KeyHeld {
		return 0
	}
	return k.key
}

// NeedsScroll reports whether the view still has to bring the jump target into view.
func (k *KeySelect) NeedsScroll() bool {
	return k.needScroll
}

func (k *KeySelect) press(key rune, target string) {
	k.state = KeyHeld
	k.key = key
	k.target = target
	k.needScroll = true
}

// release moves KeyHeld -> KeyIdle when key matches the held key.
func (k *KeySelect) release(key rune) bool {
	if k.state != KeyHeld || normalizeLetter(key) != k.key {
		return false
	}
	k.state = KeyIdle
	k.key = 0
	return true
}

func (k *KeySelect) consumeScroll() (string, bool) {
	if !k.needScroll {
		return "", false
	}
	k.needScroll = false
	return k.target, true
}
