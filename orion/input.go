package orion

import (
	"log/slog"

	"github.com/oliverbestmann/polyspin/glimpse"
)

// key bindings
const (
	KeyPause = glimpse.KeyEscape
	KeyScale = glimpse.KeyS
	KeyFast  = glimpse.KeyLeftShift

	KeyMoveLeft  = glimpse.KeyLeft
	KeyMoveRight = glimpse.KeyRight
	KeyMoveUp    = glimpse.KeyUp
	KeyMoveDown  = glimpse.KeyDown
)

// InputState is the state controlled by the user. It starts zeroed: running,
// unscaled and centered.
type InputState struct {
	Paused  bool
	ScaleUp bool

	OffsetX float32
	OffsetY float32
}

// HandleKey applies edge triggered toggles. Only press transitions are
// considered, holding a key down does not toggle repeatedly.
func (s *InputState) HandleKey(key glimpse.Key, action glimpse.Action) {
	if action != glimpse.Press {
		return
	}

	switch key {
	case KeyPause:
		s.Paused = !s.Paused

		if s.Paused {
			slog.Info("Game Paused")
		} else {
			slog.Info("Game Unpaused")
		}

	case KeyScale:
		s.ScaleUp = !s.ScaleUp
	}
}

// Advance moves the offset according to the currently held direction keys.
// Each held key contributes speed * dt, opposing keys cancel each other.
// The speed is doubled while KeyFast is held. Nothing happens while paused.
func (s *InputState) Advance(isKeyDown func(glimpse.Key) bool, dt, baseSpeed float32) {
	if s.Paused {
		return
	}

	speed := baseSpeed
	if isKeyDown(KeyFast) {
		speed *= 2
	}

	if isKeyDown(KeyMoveLeft) {
		s.OffsetX -= speed * dt
	}

	if isKeyDown(KeyMoveRight) {
		s.OffsetX += speed * dt
	}

	if isKeyDown(KeyMoveUp) {
		s.OffsetY += speed * dt
	}

	if isKeyDown(KeyMoveDown) {
		s.OffsetY -= speed * dt
	}
}
