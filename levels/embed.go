package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Arena is a fight layout: static floor geometry plus entity placements.
type Arena struct {
	Name     string    `json:"name"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Segments []Segment `json:"segments"`
	Entities []Entity  `json:"entities,omitempty"`
}

type Segment struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Radius float64 `json:"radius"`
}

// Entity places a prefab. Type is one of spawn, switch_orb, weapon or prop;
// weapons and props name their prefab in Props["prefab"].
type Entity struct {
	Type  string                 `json:"type"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Prefab returns the prefab file named by the placement, if any.
func (e Entity) Prefab() string {
	if e.Props == nil {
		return ""
	}
	s, _ := e.Props["prefab"].(string)
	return s
}

func LoadArenaFromFS(name string) (*Arena, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read arena: %w", err)
	}
	var arena Arena
	if err := json.Unmarshal(data, &arena); err != nil {
		return nil, fmt.Errorf("unmarshal arena: %w", err)
	}
	if len(arena.Segments) == 0 {
		return nil, fmt.Errorf("arena %s: no floor segments", name)
	}
	return &arena, nil
}

// SpawnPoints returns spawn placements in file order.
func (a *Arena) SpawnPoints() []Entity {
	var out []Entity
	for _, e := range a.Entities {
		if e.Type == "spawn" {
			out = append(out, e)
		}
	}
	return out
}
