package config

const (
	DefaultBuiltinScene = "solid"
)

// BuiltinScenes returns the built-in scene library.
//
// These are always available without defining them in YAML. Scenes defined
// in a config file with the same name replace them.
func BuiltinScenes() map[string]*CellSpec {
	return map[string]*CellSpec{
		"solid": {
			Type:  CellSolid,
			Color: "#ff0000",
		},
		"halves": {
			Type:      CellSplit,
			Direction: "horizontal",
			Distance:  "50%",
			Near:      &CellSpec{Type: CellSolid, Color: "red"},
			Far:       &CellSpec{Type: CellSolid, Color: "blue"},
		},
		"sidebar": {
			Type:      CellSplit,
			Direction: "horizontal",
			Distance:  "200px",
			Near:      &CellSpec{Type: CellSolid, Color: "darkslategray"},
			Far: &CellSpec{
				Type:      CellSplit,
				Direction: "vertical",
				Distance:  "0.25",
				Near:      &CellSpec{Type: CellSolid, Color: "steelblue"},
				Far:       &CellSpec{Type: CellSolid, Color: "whitesmoke"},
			},
		},
		"framed": {
			Type: CellLayered,
			Layers: []*CellSpec{
				{Type: CellSolid, Color: "black"},
				{Type: CellInset, Margin: 16, Inner: &CellSpec{Type: CellSolid, Color: "gold"}},
			},
		},
	}
}
