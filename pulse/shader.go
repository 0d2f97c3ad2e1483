package pulse

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// MaxInfoLogLength bounds the diagnostic text read back from the driver
// after a failed compile or link.
const MaxInfoLogLength = 512

// ErrSkippedLink is returned by LinkProgram if linking was skipped because
// one of the stages failed to compile.
var ErrSkippedLink = errors.New("link skipped: shader stage failed to compile")

// CompileError describes a shader stage that failed to compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s shader: %s", e.Stage, e.Log)
}

// LinkError describes a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link program: %s", e.Log)
}

// Shader is a compiled (or failed) shader stage. It is only
// useful as input to LinkProgram, which takes ownership of it.
type Shader struct {
	ID       uint32
	Stage    Stage
	Compiled bool
}

// Program is a shader program. It may only be used for drawing if Valid.
type Program struct {
	ID     uint32
	Linked bool
}

// Valid reports whether the program was linked successfully.
func (p Program) Valid() bool {
	return p.ID != 0 && p.Linked
}

type LinkOptions struct {
	// SkipOnCompileFailure does not attempt to link if any of
	// the stages failed to compile. ErrSkippedLink is returned instead.
	SkipOnCompileFailure bool
}

// LoadShaderSource reads the shader source at path. Callers usually log
// the error and continue with the returned empty source, which will then
// fail to compile.
func LoadShaderSource(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader source %q: %w", path, err)
	}

	return string(buf), nil
}

// CompileShader compiles the source for the given stage. The shader is returned even if
// compilation fails, in which case the error is a *CompileError holding the
// drivers diagnostics. The returned shader must be passed to LinkProgram.
func CompileShader(dev Device, stage Stage, source string) (Shader, error) {
	id := dev.CreateShader(stage)
	dev.ShaderSource(id, source)
	dev.CompileShader(id)

	shader := Shader{ID: id, Stage: stage, Compiled: dev.ShaderCompileStatus(id)}
	if !shader.Compiled {
		return shader, &CompileError{
			Stage: stage,
			Log:   dev.ShaderInfoLog(id, MaxInfoLogLength),
		}
	}

	slog.Debug("Shader compiled", slog.String("stage", stage.String()), slog.Int("id", int(id)))

	return shader, nil
}

// LinkProgram links the vertex and fragment stage into a program. Both stages are deleted
// after the link attempt, regardless of its outcome. The program is returned even if
// linking fails; use Program.Valid before drawing with it.
func LinkProgram(dev Device, vertex, fragment Shader, opts LinkOptions) (Program, error) {
	defer dev.DeleteShader(vertex.ID)
	defer dev.DeleteShader(fragment.ID)

	if opts.SkipOnCompileFailure && !(vertex.Compiled && fragment.Compiled) {
		return Program{}, ErrSkippedLink
	}

	id := dev.CreateProgram()
	dev.AttachShader(id, vertex.ID)
	dev.AttachShader(id, fragment.ID)
	dev.LinkProgram(id)

	program := Program{ID: id, Linked: dev.ProgramLinkStatus(id)}
	if !program.Linked {
		return program, &LinkError{Log: dev.ProgramInfoLog(id, MaxInfoLogLength)}
	}

	slog.Debug("Program linked", slog.Int("id", int(id)))

	return program, nil
}

// BuildProgram compiles both stages and links them. All diagnostics are
// joined into the returned error, the program is returned in any case and
// must be checked with Program.Valid.
func BuildProgram(dev Device, vertexSource, fragmentSource string, opts LinkOptions) (Program, error) {
	vertex, errVertex := CompileShader(dev, StageVertex, vertexSource)
	fragment, errFragment := CompileShader(dev, StageFragment, fragmentSource)

	program, errLink := LinkProgram(dev, vertex, fragment, opts)

	return program, errors.Join(errVertex, errFragment, errLink)
}
