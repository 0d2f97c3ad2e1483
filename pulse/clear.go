package pulse

import "log/slog"

// ClearCommand clears the color buffer of the current framebuffer.
type ClearCommand struct {
	dev      Device
	color    Color
	colorSet bool
}

func NewClear(dev Device, color Color) *ClearCommand {
	return &ClearCommand{dev: dev, color: color}
}

func (c *ClearCommand) Clear() {
	// the clear color is context state, it only needs to be set once
	if !c.colorSet {
		c.dev.ClearColor(c.color)
		c.colorSet = true

		slog.Debug("Clear color set", slog.Any("color", c.color))
	}

	c.dev.Clear()
}

type Releaser interface {
	Release()
}

// ReleaseGuard releases the delegate unless Keep is called first.
type ReleaseGuard struct {
	delegate Releaser
}

func NewReleaseGuard(delegate Releaser) ReleaseGuard {
	return ReleaseGuard{delegate: delegate}
}

func (r *ReleaseGuard) Keep() {
	r.delegate = nil
}

func (r *ReleaseGuard) Release() {
	if r.delegate != nil {
		r.delegate.Release()
		r.delegate = nil
	}
}
