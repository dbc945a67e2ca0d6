package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

const DefaultLevel = "compass"

type Level struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Entities []Entity `json:"entities,omitempty"`
}

// Entity places one prefab-backed thing in the level. Type picks the builder;
// Props carries builder specific settings such as "scale".
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// FloatProp reads a numeric prop, returning def when it is missing or not a number.
func (e Entity) FloatProp(key string, def float64) float64 {
	v, ok := e.Props[key]
	if !ok {
		return def
	}
	if f, ok := v.(float64); ok {
		return f
	}
	return def
}

func (e Entity) StringProp(key, def string) string {
	if s, ok := e.Props[key].(string); ok && s != "" {
		return s
	}
	return def
}

func LoadLevelFromFS(name string) (*Level, error) {
	file := name
	if path.Ext(file) == "" {
		file += ".json"
	}
	file = strings.TrimPrefix(file, "levels/")

	data, err := fs.ReadFile(LevelsFS, file)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level %q: invalid size %dx%d", name, lvl.Width, lvl.Height)
	}
	return &lvl, nil
}
