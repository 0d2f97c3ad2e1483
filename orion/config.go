package orion

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oliverbestmann/polyspin/pulse"
	"gopkg.in/yaml.v3"
)

// Config is the yaml representation of RunOptions. Unset values fall back to
// the defaults of RunOptions.
type Config struct {
	Window struct {
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
		Title  string `yaml:"title"`
	} `yaml:"window"`

	// ClearColor in linear rgba
	ClearColor []float32 `yaml:"clear_color"`

	Speed float32 `yaml:"speed"`

	Shaders struct {
		Vertex     string `yaml:"vertex"`
		Fragment   string `yaml:"fragment"`
		Watch      bool   `yaml:"watch"`
		StrictLink bool   `yaml:"strict_link"`
	} `yaml:"shaders"`

	Polygon struct {
		Vertices [][]float32 `yaml:"vertices"`
		Indices  []uint32    `yaml:"indices"`
	} `yaml:"polygon"`

	Profile string `yaml:"profile"`

	// directory of the config file, shader paths are relative to it
	dir string
}

// LoadConfig parses the yaml file at path. Unknown fields are rejected.
// An empty file yields an empty config.
func LoadConfig(path string) (Config, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	defer fp.Close()

	var config Config

	dec := yaml.NewDecoder(fp)
	dec.KnownFields(true)

	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	if err := config.validate(); err != nil {
		return Config{}, fmt.Errorf("validate config %q: %w", path, err)
	}

	config.dir = filepath.Dir(path)

	return config, nil
}

func (c *Config) validate() error {
	if c.ClearColor != nil && len(c.ClearColor) != 4 {
		return fmt.Errorf("clear_color must have 4 components, got %d", len(c.ClearColor))
	}

	for idx, vertex := range c.Polygon.Vertices {
		if len(vertex) != 2 {
			return fmt.Errorf("polygon vertex %d must have 2 components, got %d", idx, len(vertex))
		}
	}

	if len(c.Polygon.Vertices) == 0 && len(c.Polygon.Indices) > 0 {
		return errors.New("polygon has indices but no vertices")
	}

	// an outline without indices is triangulated
	if len(c.Polygon.Indices) == 0 && len(c.Polygon.Vertices) > 0 && len(c.Polygon.Vertices) < 3 {
		return fmt.Errorf("polygon outline needs at least 3 vertices, got %d", len(c.Polygon.Vertices))
	}

	switch c.Profile {
	case "", "cpu", "mem", "block", "trace":
	default:
		return fmt.Errorf("unknown profile mode %q", c.Profile)
	}

	return nil
}

// Options converts the config into RunOptions.
func (c *Config) Options() RunOptions {
	opts := RunOptions{
		WindowWidth:    c.Window.Width,
		WindowHeight:   c.Window.Height,
		WindowTitle:    c.Window.Title,
		VertexShader:   c.resolve(c.Shaders.Vertex),
		FragmentShader: c.resolve(c.Shaders.Fragment),
		StrictLink:     c.Shaders.StrictLink,
		WatchShaders:   c.Shaders.Watch,
		Indices:        c.Polygon.Indices,
		Speed:          c.Speed,
		Profile:        c.Profile,
	}

	if len(c.ClearColor) == 4 {
		color := pulse.ColorLinearRGBA(c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], c.ClearColor[3])
		opts.ClearColor = &color
	}

	for _, vertex := range c.Polygon.Vertices {
		opts.Vertices = append(opts.Vertices, vertex[0], vertex[1])
	}

	return opts
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}

	return filepath.Join(c.dir, path)
}
