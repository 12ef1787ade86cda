package core

import "fmt"

// Button identifies one of the four player buttons.
type Button uint8

const (
	ButtonLeftUp Button = iota
	ButtonLeftDown
	ButtonRightUp
	ButtonRightDown
)

// AllButtons lists the buttons in the order the main loop evaluates them.
var AllButtons = [4]Button{ButtonLeftUp, ButtonLeftDown, ButtonRightUp, ButtonRightDown}

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonLeftUp:
		return "left-up"
	case ButtonLeftDown:
		return "left-down"
	case ButtonRightUp:
		return "right-up"
	case ButtonRightDown:
		return "right-down"
	default:
		return "unknown"
	}
}

// ParseButton resolves a name produced by Button.String.
func ParseButton(name string) (Button, error) {
	for _, b := range AllButtons {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

// ButtonSet is the instantaneous pressed state of all four buttons.
type ButtonSet uint8

// Set marks a button as pressed.
func (s *ButtonSet) Set(b Button) {
	*s |= 1 << b
}

// Has returns true if the button is pressed.
func (s ButtonSet) Has(b Button) bool {
	return s&(1<<b) != 0
}

// Clear releases all buttons.
func (s *ButtonSet) Clear() {
	*s = 0
}
