package glimpse

import (
	"fmt"
	"log/slog"
)

// Key identifies a physical keyboard key, independent of the windowing backend.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyLeftShift
	KeyRightShift
	KeyP
	KeyQ
	KeyR
	KeyS
)

var keyNames = map[Key]string{
	KeyUnknown:    "Unknown",
	KeyEscape:     "Escape",
	KeySpace:      "Space",
	KeyEnter:      "Enter",
	KeyLeft:       "Left",
	KeyRight:      "Right",
	KeyUp:         "Up",
	KeyDown:       "Down",
	KeyLeftShift:  "LeftShift",
	KeyRightShift: "RightShift",
	KeyP:          "P",
	KeyQ:          "Q",
	KeyR:          "R",
	KeyS:          "S",
}

func (k Key) String() string {
	name, ok := keyNames[k]
	if !ok {
		return fmt.Sprintf("Key(%d)", uint16(k))
	}

	return name
}

// Action is the kind of a key event.
type Action uint8

const (
	Release Action = iota
	Press
	Repeat
)

func (a Action) String() string {
	switch a {
	case Release:
		return "Release"
	case Press:
		return "Press"
	case Repeat:
		return "Repeat"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// KeyHandler receives key transitions. It is invoked synchronously
// from within Window.PollEvents.
type KeyHandler func(key Key, action Action)

// KeyRecorder wraps a KeyHandler and logs every press at debug level.
func KeyRecorder(next KeyHandler) KeyHandler {
	return func(key Key, action Action) {
		if action == Press {
			slog.Debug("Key just pressed", slog.String("key", key.String()))
		}

		next(key, action)
	}
}
