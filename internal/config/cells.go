package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/1broseidon/mzgui/internal/cell"
	"github.com/1broseidon/mzgui/internal/geom"
	"github.com/1broseidon/mzgui/internal/surface"
)

// CellType selects the drawable a CellSpec builds.
type CellType string

const (
	CellSolid   CellType = "solid"
	CellSplit   CellType = "split"
	CellLayered CellType = "layered"
	CellInset   CellType = "inset"
)

// CellSpec is the declarative form of a drawable tree.
type CellSpec struct {
	Type CellType `yaml:"type"`

	// Solid
	Color string `yaml:"color,omitempty"`

	// Split. Distance is a pixel count ("120" or "120px"), a percentage
	// ("40%") or a fraction with a decimal point ("0.4").
	Direction string    `yaml:"direction,omitempty"`
	Distance  string    `yaml:"distance,omitempty"`
	Near      *CellSpec `yaml:"near,omitempty"`
	Far       *CellSpec `yaml:"far,omitempty"`

	// Layered, drawn first to last.
	Layers []*CellSpec `yaml:"layers,omitempty"`

	// Inset
	Margin uint      `yaml:"margin,omitempty"`
	Inner  *CellSpec `yaml:"inner,omitempty"`
}

// Build validates the spec and turns it into a drawable.
func (s *CellSpec) Build() (cell.Drawable, error) {
	if err := s.validate(""); err != nil {
		return nil, err
	}
	return s.build(), nil
}

func (s *CellSpec) build() cell.Drawable {
	switch s.Type {
	case CellSolid:
		px, _ := ParseColor(s.Color)
		return cell.NewSolid(px)
	case CellSplit:
		dir, _ := geom.ParseDirection(s.Direction)
		dist, _ := ParseDistance(s.Distance)
		return &cell.Split{
			Direction: dir,
			Distance:  dist,
			Near:      s.Near.build(),
			Far:       s.Far.build(),
		}
	case CellLayered:
		layers := make([]cell.Drawable, 0, len(s.Layers))
		for _, l := range s.Layers {
			layers = append(layers, l.build())
		}
		return &cell.Layered{Layers: layers}
	case CellInset:
		return &cell.Inset{Margin: s.Margin, Inner: s.Inner.build()}
	}
	return nil
}

func (s *CellSpec) validate(path string) error {
	fail := func(field string, err error) error {
		return &ValidationError{Path: joinPath(path, field), Err: err}
	}
	if s == nil {
		return &ValidationError{Path: path, Err: fmt.Errorf("cell must not be empty")}
	}

	switch s.Type {
	case CellSolid:
		if _, err := ParseColor(s.Color); err != nil {
			return fail("color", err)
		}
	case CellSplit:
		if _, err := geom.ParseDirection(s.Direction); err != nil {
			return fail("direction", err)
		}
		if _, err := ParseDistance(s.Distance); err != nil {
			return fail("distance", err)
		}
		if s.Near == nil {
			return fail("near", fmt.Errorf("split requires a near cell"))
		}
		if s.Far == nil {
			return fail("far", fmt.Errorf("split requires a far cell"))
		}
		if err := s.Near.validate(joinPath(path, "near")); err != nil {
			return err
		}
		return s.Far.validate(joinPath(path, "far"))
	case CellLayered:
		if len(s.Layers) == 0 {
			return fail("layers", fmt.Errorf("layered requires at least one layer"))
		}
		for i, l := range s.Layers {
			if err := l.validate(fmt.Sprintf("%s[%d]", joinPath(path, "layers"), i)); err != nil {
				return err
			}
		}
	case CellInset:
		if s.Inner == nil {
			return fail("inner", fmt.Errorf("inset requires an inner cell"))
		}
		return s.Inner.validate(joinPath(path, "inner"))
	default:
		return fail("type", fmt.Errorf("invalid cell type %q (want solid, split, layered or inset)", s.Type))
	}
	return nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// ParseColor accepts #rrggbb, #aarrggbb or an SVG color name.
func ParseColor(s string) (surface.Pixel, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return surface.Pixel{}, fmt.Errorf("color is required")
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return surface.Pixel{}, fmt.Errorf("invalid color %q", s)
		}
		switch len(hex) {
		case 6:
			return surface.PixelFromUint32(0xff000000 | uint32(v)), nil
		case 8:
			return surface.PixelFromUint32(uint32(v)), nil
		}
		return surface.Pixel{}, fmt.Errorf("invalid color %q: want #rrggbb or #aarrggbb", s)
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return surface.Pixel{}, fmt.Errorf("unknown color name %q", s)
	}
	return surface.PixelFromColor(c), nil
}

// ParseDistance reads the distance forms accepted by split cells.
func ParseDistance(s string) (geom.Distance, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return geom.Distance{}, fmt.Errorf("distance is required")
	case strings.HasSuffix(s, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return geom.Distance{}, fmt.Errorf("invalid percentage %q", s)
		}
		return relative(pct / 100)
	case strings.Contains(s, "."):
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return geom.Distance{}, fmt.Errorf("invalid fraction %q", s)
		}
		return relative(p)
	}
	n, err := strconv.ParseUint(strings.TrimSuffix(s, "px"), 10, 0)
	if err != nil {
		return geom.Distance{}, fmt.Errorf("invalid pixel distance %q", s)
	}
	return geom.Pixels(uint(n)), nil
}

func relative(p float64) (geom.Distance, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return geom.Distance{}, fmt.Errorf("relative distance %v outside [0, 1]", p)
	}
	return geom.Relative(p), nil
}
