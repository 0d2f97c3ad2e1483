package glimpse

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowOptions struct {
	Width  int
	Height int
	Title  string
}

type glfwWindow struct {
	win *glfw.Window

	keyHandler    KeyHandler
	resizeHandler func(width, height int)
}

// NewWindow creates a window with an OpenGL 3.3 core context and makes
// the context current on the calling thread.
func NewWindow(opts WindowOptions) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	window.MakeContextCurrent()

	w := &glfwWindow{win: window}

	configureCallbacks(window, w)

	slog.Info("Window created",
		slog.Int("width", opts.Width),
		slog.Int("height", opts.Height),
		slog.String("title", opts.Title),
	)

	return w, nil
}

func (g *glfwWindow) ShouldClose() bool {
	return g.win.ShouldClose()
}

func (g *glfwWindow) SwapBuffers() {
	g.win.SwapBuffers()
}

func (g *glfwWindow) PollEvents() {
	glfw.PollEvents()
}

func (g *glfwWindow) IsKeyDown(key Key) bool {
	glfwKey, ok := keyToGlfw[key]
	if !ok {
		return false
	}

	return g.win.GetKey(glfwKey) == glfw.Press
}

func (g *glfwWindow) Time() float64 {
	return glfw.GetTime()
}

func (g *glfwWindow) SetKeyHandler(handler KeyHandler) {
	g.keyHandler = handler
}

func (g *glfwWindow) SetResizeHandler(handler func(width, height int)) {
	g.resizeHandler = handler
}

func (g *glfwWindow) FramebufferSize() (int, int) {
	return g.win.GetFramebufferSize()
}

func (g *glfwWindow) Terminate() {
	g.win.Destroy()
	glfw.Terminate()
}

func configureCallbacks(window *glfw.Window, w *glfwWindow) {
	window.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if w.keyHandler == nil {
			return
		}

		key, ok := keyOf(glfwKey, scancode)
		if !ok {
			return
		}

		w.keyHandler(key, actionOf(action))
	})

	window.SetFramebufferSizeCallback(func(_win *glfw.Window, width int, height int) {
		slog.Debug("Framebuffer resized",
			slog.Int("width", width),
			slog.Int("height", height),
		)

		if w.resizeHandler != nil {
			w.resizeHandler(width, height)
		}
	})
}

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyEscape:     KeyEscape,
	glfw.KeySpace:      KeySpace,
	glfw.KeyEnter:      KeyEnter,
	glfw.KeyLeft:       KeyLeft,
	glfw.KeyRight:      KeyRight,
	glfw.KeyUp:         KeyUp,
	glfw.KeyDown:       KeyDown,
	glfw.KeyLeftShift:  KeyLeftShift,
	glfw.KeyRightShift: KeyRightShift,
	glfw.KeyP:          KeyP,
	glfw.KeyQ:          KeyQ,
	glfw.KeyR:          KeyR,
	glfw.KeyS:          KeyS,
}

var keyToGlfw = invert(glfwToKey)

func keyOf(glfwKey glfw.Key, scancode int) (key Key, ok bool) {
	key, ok = glfwToKey[glfwKey]
	if !ok {
		slog.Debug(
			"Unmapped key code",
			slog.String("key", glfw.GetKeyName(glfwKey, scancode)),
		)
	}

	return
}

func actionOf(action glfw.Action) Action {
	switch action {
	case glfw.Press:
		return Press
	case glfw.Repeat:
		return Repeat
	default:
		return Release
	}
}

func invert[K, V comparable](m map[K]V) map[V]K {
	res := make(map[V]K, len(m))
	for k, v := range m {
		res[v] = k
	}

	return res
}
