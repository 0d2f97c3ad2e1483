package glimpse

// Window is a presentable surface with a current OpenGL context.
type Window interface {
	ShouldClose() bool

	// SwapBuffers presents the frame rendered since the last call.
	SwapBuffers()

	// PollEvents processes pending window events without blocking.
	// Key and resize handlers are invoked from within this call.
	PollEvents()

	// IsKeyDown reports whether the key is currently held.
	IsKeyDown(key Key) bool

	// Time returns the seconds elapsed since the window system was initialized.
	Time() float64

	SetKeyHandler(handler KeyHandler)
	SetResizeHandler(handler func(width, height int))

	// FramebufferSize returns the size of the framebuffer in pixels.
	FramebufferSize() (width, height int)

	Terminate()
}
