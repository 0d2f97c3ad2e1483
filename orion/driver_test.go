package orion

import (
	"testing"

	"github.com/oliverbestmann/polyspin/glimpse"
	"github.com/oliverbestmann/polyspin/pulse"
	"github.com/oliverbestmann/polyspin/pulse/pulsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `#version 330 core
layout (location = 0) in vec2 aPos;
uniform mat4 model;

void main() {
    gl_Position = model * vec4(aPos, 0.0, 1.0);
}
`

const fragmentSource = `#version 330 core
out vec4 FragColor;

void main() {
    FragColor = vec4(1.0, 0.5, 0.2, 1.0);
}
`

type keyEvent struct {
	key    glimpse.Key
	action glimpse.Action
}

// scriptedWindow advances its clock by step on every PollEvents and
// delivers the events queued for the current frame.
type scriptedWindow struct {
	now  float64
	step float64

	frames     int
	closeAfter int

	held   map[glimpse.Key]bool
	events map[int][]keyEvent

	keyHandler glimpse.KeyHandler
}

func newScriptedWindow(start, step float64, closeAfter int) *scriptedWindow {
	return &scriptedWindow{
		now:        start,
		step:       step,
		closeAfter: closeAfter,
		held:       map[glimpse.Key]bool{},
		events:     map[int][]keyEvent{},
	}
}

// pressAfter queues a press and release of key, delivered while polling
// events at the end of the given frame.
func (w *scriptedWindow) pressAfter(frame int, key glimpse.Key) {
	w.events[frame] = append(w.events[frame],
		keyEvent{key, glimpse.Press},
		keyEvent{key, glimpse.Release},
	)
}

func (w *scriptedWindow) ShouldClose() bool {
	return w.frames >= w.closeAfter
}

func (w *scriptedWindow) SwapBuffers() {
	w.frames++
}

func (w *scriptedWindow) PollEvents() {
	w.now += w.step

	for _, event := range w.events[w.frames] {
		if w.keyHandler != nil {
			w.keyHandler(event.key, event.action)
		}
	}
}

func (w *scriptedWindow) IsKeyDown(key glimpse.Key) bool {
	return w.held[key]
}

func (w *scriptedWindow) Time() float64 {
	return w.now
}

func (w *scriptedWindow) SetKeyHandler(handler glimpse.KeyHandler) {
	w.keyHandler = handler
}

func (w *scriptedWindow) SetResizeHandler(func(width, height int)) {}

func (w *scriptedWindow) FramebufferSize() (int, int) {
	return 1000, 1000
}

func (w *scriptedWindow) Terminate() {}

func newTestDriver(t *testing.T, win glimpse.Window, dev *pulsetest.Device, opts DriverOptions) *Driver {
	t.Helper()

	geometry, err := pulse.NewGeometry(dev, DefaultVertices, DefaultIndices)
	require.NoError(t, err)

	program, err := pulse.BuildProgram(dev, vertexSource, fragmentSource, pulse.LinkOptions{})
	require.NoError(t, err)

	return NewDriver(win, dev, geometry, program, opts)
}

func TestDriverDrawsQuadWithModel(t *testing.T) {
	dev := pulsetest.NewDevice()
	win := newScriptedWindow(2, 0.1, 1)

	driver := newTestDriver(t, win, dev, DriverOptions{ClearColor: pulse.ColorDarkTeal})
	require.NoError(t, driver.Run())

	assert.Empty(t, dev.Violations)
	assert.Equal(t, 1, dev.ClearCount)
	assert.Equal(t, pulse.ColorDarkTeal, dev.ClearedWith)

	require.Len(t, dev.Draws, 1)

	draw := dev.Draws[0]
	assert.Equal(t, driver.Program().ID, draw.Program)
	assert.EqualValues(t, 6, draw.Count)

	// rotation by the absolute time of the window
	assert.Equal(t, ComposeModel(0, 0, 2, false), draw.Model)
}

func TestDriverFrameOrder(t *testing.T) {
	dev := pulsetest.NewDevice()
	win := newScriptedWindow(0, 0.1, 1)

	driver := newTestDriver(t, win, dev, DriverOptions{})

	dev.Calls = nil
	driver.Frame()

	assert.Equal(t, []string{
		"ClearColor",
		"Clear",
		"UseProgram",
		"GetUniformLocation",
		"UniformMatrix4",
		"BindVertexArray",
		"DrawElements",
	}, dev.Calls)

	// the uniform location is looked up once per program
	dev.Calls = nil
	driver.Frame()

	assert.NotContains(t, dev.Calls, "GetUniformLocation")
	assert.NotContains(t, dev.Calls, "ClearColor")
	assert.Equal(t, 2, win.frames)
}

func TestDriverMovesWithHeldKeys(t *testing.T) {
	dev := pulsetest.NewDevice()

	// the first frame has a delta of zero, the following five advance by 0.1s each
	win := newScriptedWindow(0, 0.1, 6)
	win.held[KeyMoveRight] = true
	win.held[KeyFast] = true

	driver := newTestDriver(t, win, dev, DriverOptions{})
	require.NoError(t, driver.Run())

	assert.InDelta(t, 1.0, driver.Input().OffsetX, 1e-5)
	assert.Zero(t, driver.Input().OffsetY)

	last := dev.Draws[len(dev.Draws)-1]
	assert.InDelta(t, driver.Input().OffsetX, last.Model.Column(3)[0], 1e-6)
}

func TestDriverPauseStopsMovement(t *testing.T) {
	dev := pulsetest.NewDevice()

	win := newScriptedWindow(0, 0.1, 10)
	win.held[KeyMoveUp] = true
	win.pressAfter(2, KeyPause)

	driver := newTestDriver(t, win, dev, DriverOptions{})
	require.NoError(t, driver.Run())

	input := driver.Input()
	assert.True(t, input.Paused)

	// only the second frame moved before the pause was applied
	assert.InDelta(t, 0.1, input.OffsetY, 1e-6)

	// rendering continues while paused
	assert.Len(t, dev.Draws, 10)
}

func TestDriverScaleToggle(t *testing.T) {
	dev := pulsetest.NewDevice()

	win := newScriptedWindow(1, 0.5, 3)
	win.pressAfter(2, KeyScale)

	driver := newTestDriver(t, win, dev, DriverOptions{})

	driver.Frame()
	assert.False(t, driver.Input().ScaleUp)

	// the toggle is delivered while polling events at the end of the frame
	driver.Frame()
	assert.True(t, driver.Input().ScaleUp)

	driver.Frame()

	require.Len(t, dev.Draws, 3)
	assert.Equal(t, ComposeModel(0, 0, 2, true), dev.Draws[2].Model)
}

func TestDriverSkipsInvalidProgram(t *testing.T) {
	dev := pulsetest.NewDevice()
	win := newScriptedWindow(0, 0.1, 3)

	geometry, err := pulse.NewGeometry(dev, DefaultVertices, DefaultIndices)
	require.NoError(t, err)

	program, err := pulse.BuildProgram(dev, vertexSource, "not a shader", pulse.LinkOptions{})
	require.Error(t, err)
	require.False(t, program.Valid())

	driver := NewDriver(win, dev, geometry, program, DriverOptions{})
	require.NoError(t, driver.Run())

	assert.Empty(t, dev.Draws)
	assert.Empty(t, dev.Violations)
	assert.Equal(t, 3, dev.ClearCount)

	driver.Release()
	assert.Zero(t, dev.Live())
}

func TestDriverReloadKeepsProgramIfRebuildFails(t *testing.T) {
	dev := pulsetest.NewDevice()
	win := newScriptedWindow(0, 0.1, 1)

	reload := make(chan struct{}, 1)

	var rebuilt pulse.Program

	driver := newTestDriver(t, win, dev, DriverOptions{
		Reload: reload,
		Rebuild: func() (pulse.Program, error) {
			var err error
			rebuilt, err = pulse.BuildProgram(dev, vertexSource, "void main() {}", pulse.LinkOptions{})
			return rebuilt, err
		},
	})

	previous := driver.Program()

	reload <- struct{}{}
	driver.Frame()

	assert.Equal(t, previous, driver.Program())
	assert.False(t, dev.IsProgram(rebuilt.ID))
	assert.True(t, dev.IsProgram(previous.ID))

	require.Len(t, dev.Draws, 1)
	assert.Equal(t, previous.ID, dev.Draws[0].Program)
	assert.Empty(t, dev.Violations)
}

func TestDriverReloadReplacesProgram(t *testing.T) {
	dev := pulsetest.NewDevice()
	win := newScriptedWindow(0, 0.1, 1)

	reload := make(chan struct{}, 1)

	driver := newTestDriver(t, win, dev, DriverOptions{
		Reload: reload,
		Rebuild: func() (pulse.Program, error) {
			return pulse.BuildProgram(dev, vertexSource, fragmentSource, pulse.LinkOptions{})
		},
	})

	previous := driver.Program()
	driver.Frame()

	reload <- struct{}{}
	driver.Frame()

	current := driver.Program()
	assert.NotEqual(t, previous.ID, current.ID)
	assert.True(t, current.Valid())
	assert.False(t, dev.IsProgram(previous.ID))

	require.Len(t, dev.Draws, 2)
	assert.Equal(t, current.ID, dev.Draws[1].Program)

	// the model is uploaded to the new program too
	_, ok := dev.Matrix(current.ID, ModelUniform)
	assert.True(t, ok)

	assert.Empty(t, dev.Violations)
}

func TestDriverReleaseDeletesEverything(t *testing.T) {
	dev := pulsetest.NewDevice()
	win := newScriptedWindow(0, 0.1, 2)

	driver := newTestDriver(t, win, dev, DriverOptions{})
	require.NoError(t, driver.Run())

	driver.Release()

	assert.Zero(t, dev.Live())
	assert.Empty(t, dev.Violations)
}
