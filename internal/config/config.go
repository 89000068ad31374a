package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/mzgui/internal/geom"
	"github.com/1broseidon/mzgui/internal/logx"
)

// WindowConfig describes the top-level window.
type WindowConfig struct {
	Name   string `yaml:"name"`
	Width  uint   `yaml:"width"`
	Height uint   `yaml:"height"`
}

// Size returns the configured client size.
func (w WindowConfig) Size() geom.Size {
	return geom.Size{Width: w.Width, Height: w.Height}
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level controls verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// Format is auto, text or json. Auto picks text on a terminal.
	Format string `yaml:"format,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	Include includeList          `yaml:"include,omitempty"`
	Display string               `yaml:"display,omitempty"`
	Window  WindowConfig         `yaml:"window"`
	Logging LoggingConfig        `yaml:"logging,omitempty"`
	Scene   string               `yaml:"scene"`
	Scenes  map[string]*CellSpec `yaml:"scenes,omitempty"`
}

// DefaultConfig returns a configuration that opens an 800x600 window
// showing the default builtin scene.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Name:   "mzgui",
			Width:  800,
			Height: 600,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Scene:  DefaultBuiltinScene,
		Scenes: BuiltinScenes(),
	}
}

// ActiveScene returns the cell tree selected by Scene.
func (c *Config) ActiveScene() (*CellSpec, error) {
	spec, ok := c.Scenes[c.Scene]
	if !ok || spec == nil {
		return nil, fmt.Errorf("scene %q not found", c.Scene)
	}
	return spec, nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Window.Name) == "" {
		return &ValidationError{Path: "window.name", Err: fmt.Errorf("window name is required")}
	}
	if c.Window.Width == 0 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Window.Height == 0 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height must be > 0")}
	}
	if _, err := logx.ParseLevel(c.Logging.Level); err != nil {
		return &ValidationError{Path: "logging.level", Err: err}
	}
	switch c.Logging.Format {
	case "auto", "text", "json":
	default:
		return &ValidationError{Path: "logging.format", Err: fmt.Errorf("format must be one of: auto, text, json")}
	}

	if len(c.Scenes) == 0 {
		return &ValidationError{Path: "scenes", Err: fmt.Errorf("scenes must not be empty")}
	}
	if c.Scene == "" {
		return &ValidationError{Path: "scene", Err: fmt.Errorf("scene is required")}
	}
	if _, ok := c.Scenes[c.Scene]; !ok {
		return &ValidationError{Path: "scene", Err: fmt.Errorf("scene %q not found in scenes", c.Scene)}
	}
	for name, spec := range c.Scenes {
		if err := spec.validate("scenes." + name); err != nil {
			return err
		}
	}
	return nil
}

// SaveTo writes the configuration to path. Builtin scenes that were not
// changed are left out.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal encodes the configuration as YAML without unchanged builtin
// scenes.
func (c *Config) Marshal() ([]byte, error) {
	save := *c
	save.Include = nil
	save.Scenes = scenesForSave(c.Scenes)

	data, err := yaml.Marshal(&save)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func scenesForSave(scenes map[string]*CellSpec) map[string]*CellSpec {
	builtin := BuiltinScenes()
	out := make(map[string]*CellSpec)
	for name, spec := range scenes {
		if base, ok := builtin[name]; ok && reflect.DeepEqual(base, spec) {
			continue
		}
		out[name] = spec
	}
	return out
}

// includeList accepts either a single path or a list of paths.
type includeList []string

func (l *includeList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = includeList{node.Value}
		return nil
	case yaml.SequenceNode:
		var paths []string
		if err := node.Decode(&paths); err != nil {
			return err
		}
		*l = paths
		return nil
	}
	return fmt.Errorf("line %d: include must be a path or a list of paths", node.Line)
}
