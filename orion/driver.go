package orion

import (
	"log/slog"

	"github.com/oliverbestmann/polyspin/glimpse"
	"github.com/oliverbestmann/polyspin/glm"
	"github.com/oliverbestmann/polyspin/pulse"
)

// ModelUniform is the name of the mat4 uniform receiving the model matrix.
const ModelUniform = "model"

type DriverOptions struct {
	// Speed of the polygon in units per second. Defaults to 1.
	Speed float32

	ClearColor pulse.Color

	// Reload signals that the program should be rebuilt using Rebuild.
	Reload <-chan struct{}

	// Rebuild creates a new program. The current program is only replaced
	// if the new one is valid.
	Rebuild func() (pulse.Program, error)
}

// Driver renders the polygon once per frame. It owns the geometry, the
// program and the input state and must only be used from the thread
// owning the gl context.
type Driver struct {
	win      glimpse.Window
	dev      pulse.Device
	geometry *pulse.Geometry
	program  pulse.Program
	uniforms *pulse.UniformCache
	clear    *pulse.ClearCommand
	opts     DriverOptions

	input InputState
	times FrameTimes

	lastTime      float64
	warnedInvalid bool
}

// NewDriver takes ownership of geometry and program and installs
// its key handler on the window.
func NewDriver(win glimpse.Window, dev pulse.Device, geometry *pulse.Geometry, program pulse.Program, opts DriverOptions) *Driver {
	if opts.Speed == 0 {
		opts.Speed = 1
	}

	d := &Driver{
		win:      win,
		dev:      dev,
		geometry: geometry,
		program:  program,
		uniforms: pulse.NewUniformCache(dev),
		clear:    pulse.NewClear(dev, opts.ClearColor),
		opts:     opts,
		lastTime: win.Time(),
	}

	win.SetKeyHandler(glimpse.KeyRecorder(d.input.HandleKey))

	return d
}

// Input returns a copy of the current input state.
func (d *Driver) Input() InputState {
	return d.input
}

// Program returns the program currently used for drawing.
func (d *Driver) Program() pulse.Program {
	return d.program
}

// Run renders frames until the window is asked to close.
func (d *Driver) Run() error {
	for !d.win.ShouldClose() {
		d.Frame()
	}

	slog.Info("Window closed", slog.Any("stats", &d.times))

	return nil
}

// Frame runs one iteration of the render loop.
func (d *Driver) Frame() {
	d.applyReload()

	now := d.win.Time()
	dt := float32(now - d.lastTime)
	d.lastTime = now

	if d.times.Tick(dt) {
		slog.Debug("Frame stats", slog.Any("stats", &d.times))
	}

	d.clear.Clear()

	// held keys are only evaluated while running
	d.input.Advance(d.win.IsKeyDown, dt, d.opts.Speed)

	// rotation uses the absolute time, not the frame delta
	model := ComposeModel(d.input.OffsetX, d.input.OffsetY, float32(now), d.input.ScaleUp)

	d.draw(model)

	d.win.SwapBuffers()

	// key callbacks run in here and are visible to the next frame
	d.win.PollEvents()
}

func (d *Driver) draw(model glm.Mat4f) {
	if !d.program.Valid() {
		if !d.warnedInvalid {
			slog.Warn("Shader program is not linked, skipping draw",
				slog.Int("program", int(d.program.ID)))

			d.warnedInvalid = true
		}

		return
	}

	d.dev.UseProgram(d.program.ID)

	location := d.uniforms.Location(d.program.ID, ModelUniform)
	d.dev.UniformMatrix4(location, model)

	d.geometry.Bind()
	d.geometry.Draw()
}

func (d *Driver) applyReload() {
	select {
	case <-d.opts.Reload:
		d.reloadProgram()
	default:
	}
}

func (d *Driver) reloadProgram() {
	if d.opts.Rebuild == nil {
		return
	}

	program, err := d.opts.Rebuild()
	if err != nil {
		slog.Error("Rebuild shader program", slog.Any("err", err))
	}

	if !program.Valid() {
		if program.ID != 0 {
			d.dev.DeleteProgram(program.ID)
		}

		slog.Warn("Keeping previous shader program", slog.Int("program", int(d.program.ID)))
		return
	}

	d.releaseProgram()

	d.program = program
	d.warnedInvalid = false

	slog.Info("Shader program reloaded", slog.Int("program", int(program.ID)))
}

func (d *Driver) releaseProgram() {
	if d.program.ID == 0 {
		return
	}

	d.uniforms.Forget(d.program.ID)
	d.dev.DeleteProgram(d.program.ID)
	d.program = pulse.Program{}
}

// Release deletes all gpu resources owned by the driver.
func (d *Driver) Release() {
	d.releaseProgram()
	d.geometry.Release()
}
