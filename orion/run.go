package orion

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/polyspin/glimpse"
	"github.com/oliverbestmann/polyspin/pulse"
	"github.com/pkg/profile"
)

// DefaultVertices describe a square of size 0.5 centered at the origin.
var DefaultVertices = []float32{
	-0.25, -0.25, // bottom left
	-0.25, 0.25, // top left
	0.25, 0.25, // top right
	0.25, -0.25, // bottom right
}

// DefaultIndices split the default square into two triangles.
var DefaultIndices = []uint32{
	0, 1, 2,
	2, 3, 0,
}

type RunOptions struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	// ClearColor defaults to pulse.ColorDarkTeal if nil
	ClearColor *pulse.Color

	VertexShader   string
	FragmentShader string

	// StrictLink skips linking if a shader failed to compile
	StrictLink bool

	// WatchShaders rebuilds the program if a shader file changes
	WatchShaders bool

	// polygon in x, y pairs and the triangle indices into it. If no
	// indices are given, the vertices are triangulated as an outline.
	Vertices []float32
	Indices  []uint32

	// Speed of the polygon in units per second
	Speed float32

	// Profile enables profiling: one of cpu, mem, block or trace
	Profile string
}

func (opts RunOptions) withDefaults() RunOptions {
	if opts.WindowWidth == 0 {
		opts.WindowWidth = 1000
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 1000
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = "GL Triangle Window"
	}

	if opts.ClearColor == nil {
		color := pulse.ColorDarkTeal
		opts.ClearColor = &color
	}

	if opts.VertexShader == "" {
		opts.VertexShader = "shaders/vertex.glsl"
	}

	if opts.FragmentShader == "" {
		opts.FragmentShader = "shaders/fragment.glsl"
	}

	switch {
	case len(opts.Vertices) == 0 && len(opts.Indices) == 0:
		opts.Vertices = DefaultVertices
		opts.Indices = DefaultIndices

	case len(opts.Indices) == 0 && len(opts.Vertices)%2 == 0:
		// only the outline is known
		opts.Vertices, opts.Indices = TriangulateOutline(opts.Vertices)
	}

	if opts.Speed == 0 {
		opts.Speed = 1
	}

	return opts
}

// Run opens the window and renders the polygon until the window is closed.
// An error is only returned if the window, the gl context or the geometry
// could not be created. Shader failures are logged and result in nothing
// being drawn.
func Run(opts RunOptions) error {
	opts = opts.withDefaults()

	if opts.Profile != "" {
		mode, err := profileMode(opts.Profile)
		if err != nil {
			return err
		}

		defer profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	win, err := glimpse.NewWindow(glimpse.WindowOptions{
		Width:  opts.WindowWidth,
		Height: opts.WindowHeight,
		Title:  opts.WindowTitle,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	dev, err := pulse.NewGLDevice()
	if err != nil {
		return fmt.Errorf("initialize gl: %w", err)
	}

	dev.Viewport(win.FramebufferSize())
	win.SetResizeHandler(dev.Viewport)

	geometry, err := pulse.NewGeometry(dev, opts.Vertices, opts.Indices)
	if err != nil {
		return fmt.Errorf("upload geometry: %w", err)
	}

	geometryGuard := pulse.NewReleaseGuard(geometry)
	defer geometryGuard.Release()

	build := func() (pulse.Program, error) {
		return buildProgram(dev, opts.VertexShader, opts.FragmentShader, opts.StrictLink)
	}

	program, err := build()
	if err != nil {
		slog.Error("Build shader program", slog.Any("err", err))
	}

	driverOpts := DriverOptions{
		Speed:      opts.Speed,
		ClearColor: *opts.ClearColor,
	}

	if opts.WatchShaders {
		watcher, err := WatchShaders(opts.VertexShader, opts.FragmentShader)
		if err != nil {
			slog.Warn("Shader hot reload disabled", slog.Any("err", err))
		} else {
			defer watcher.Close()

			driverOpts.Reload = watcher.Changes()
			driverOpts.Rebuild = build
		}
	}

	driver := NewDriver(win, dev, geometry, program, driverOpts)
	geometryGuard.Keep()

	defer driver.Release()

	return driver.Run()
}

// buildProgram loads both shader files and builds the program. An unreadable
// file is logged and compiled as empty source.
func buildProgram(dev pulse.Device, vertexPath, fragmentPath string, strict bool) (pulse.Program, error) {
	vertexSource, err := pulse.LoadShaderSource(vertexPath)
	if err != nil {
		slog.Error("Load vertex shader", slog.Any("err", err))
	}

	fragmentSource, err := pulse.LoadShaderSource(fragmentPath)
	if err != nil {
		slog.Error("Load fragment shader", slog.Any("err", err))
	}

	return pulse.BuildProgram(dev, vertexSource, fragmentSource, pulse.LinkOptions{
		SkipOnCompileFailure: strict,
	})
}

func profileMode(name string) (func(*profile.Profile), error) {
	switch name {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	case "block":
		return profile.BlockProfile, nil
	case "trace":
		return profile.TraceProfile, nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q", name)
	}
}
