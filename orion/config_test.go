package orion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oliverbestmann/polyspin/pulse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "polyspin.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 640
  height: 480
  title: Triangle

clear_color: [0, 0, 0, 1]
speed: 2.5

shaders:
  vertex: shaders/tri.vert
  fragment: /opt/shaders/tri.frag
  watch: true
  strict_link: true

polygon:
  vertices:
    - [-0.5, -0.5]
    - [0.5, -0.5]
    - [0, 0.5]
  indices: [0, 1, 2]

profile: cpu
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	opts := config.Options()
	assert.Equal(t, 640, opts.WindowWidth)
	assert.Equal(t, 480, opts.WindowHeight)
	assert.Equal(t, "Triangle", opts.WindowTitle)
	assert.Equal(t, float32(2.5), opts.Speed)
	assert.True(t, opts.WatchShaders)
	assert.True(t, opts.StrictLink)
	assert.Equal(t, "cpu", opts.Profile)

	require.NotNil(t, opts.ClearColor)
	assert.Equal(t, pulse.ColorBlack, *opts.ClearColor)

	// relative shader paths are resolved against the config file
	assert.Equal(t, filepath.Join(filepath.Dir(path), "shaders/tri.vert"), opts.VertexShader)
	assert.Equal(t, "/opt/shaders/tri.frag", opts.FragmentShader)

	assert.Equal(t, []float32{-0.5, -0.5, 0.5, -0.5, 0, 0.5}, opts.Vertices)
	assert.Equal(t, []uint32{0, 1, 2}, opts.Indices)
}

func TestLoadEmptyConfigUsesDefaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	opts := config.Options().withDefaults()
	assert.Equal(t, RunOptions{}.withDefaults(), opts)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "window:\n  fullscreen: true\n"))
	assert.ErrorContains(t, err, "fullscreen")
}

func TestLoadConfigValidates(t *testing.T) {
	cases := map[string]string{
		"clear color":   "clear_color: [1, 0, 0]\n",
		"vertex":        "polygon:\n  vertices: [[0, 0, 0]]\n  indices: [0]\n",
		"short outline": "polygon:\n  vertices: [[0, 0], [1, 0]]\n",
		"no vertices":   "polygon:\n  indices: [0, 1, 2]\n",
		"profile":       "profile: gpu\n",
		"invalid yaml":  "window: [\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigTriangulatesOutline(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, `
polygon:
  vertices:
    - [0, 0]
    - [2, 0]
    - [2, 1]
    - [1, 1]
    - [1, 2]
    - [0, 2]
`))
	require.NoError(t, err)

	opts := config.Options().withDefaults()

	assert.Equal(t, []float32{0, 0, 2, 0, 2, 1, 1, 1, 1, 2, 0, 2}, opts.Vertices)

	// an l-shaped hexagon splits into four triangles covering its area of 3
	require.Len(t, opts.Indices, 12)
	assert.InDelta(t, 3.0, trianglesArea(opts.Vertices, opts.Indices), 1e-6)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunOptionsDefaults(t *testing.T) {
	opts := RunOptions{}.withDefaults()

	assert.Equal(t, 1000, opts.WindowWidth)
	assert.Equal(t, 1000, opts.WindowHeight)
	assert.Equal(t, "GL Triangle Window", opts.WindowTitle)
	assert.Equal(t, "shaders/vertex.glsl", opts.VertexShader)
	assert.Equal(t, "shaders/fragment.glsl", opts.FragmentShader)
	assert.Equal(t, float32(1), opts.Speed)
	assert.Equal(t, DefaultVertices, opts.Vertices)
	assert.Equal(t, DefaultIndices, opts.Indices)

	require.NotNil(t, opts.ClearColor)
	assert.Equal(t, pulse.ColorDarkTeal, *opts.ClearColor)
}

func TestRunOptionsKeepsExplicitValues(t *testing.T) {
	red := pulse.ColorLinearRGBA(1, 0, 0, 1)

	opts := RunOptions{
		WindowTitle: "Custom",
		ClearColor:  &red,
		Vertices:    []float32{0, 0, 1, 0, 0, 1},
		Indices:     []uint32{0, 1, 2},
		Speed:       3,
	}.withDefaults()

	assert.Equal(t, "Custom", opts.WindowTitle)
	assert.Equal(t, red, *opts.ClearColor)
	assert.Equal(t, []uint32{0, 1, 2}, opts.Indices)
	assert.Equal(t, float32(3), opts.Speed)
}

func TestProfileMode(t *testing.T) {
	for _, name := range []string{"cpu", "mem", "block", "trace"} {
		mode, err := profileMode(name)
		require.NoError(t, err)
		assert.NotNil(t, mode)
	}

	_, err := profileMode("gpu")
	assert.Error(t, err)
}
