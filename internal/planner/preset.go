package planner

import (
	"sort"
	"strings"
)

// Preset trades latency for plan quality. Restarts is the number of
// candidates sampled per slot; nothing else differs between presets.
type Preset struct {
	Name     string `json:"name"`
	Restarts int    `json:"restarts"`
}

const DefaultPreset = "balanced"

var presets = map[string]Preset{
	"fast":     {Name: "fast", Restarts: 30},
	"balanced": {Name: "balanced", Restarts: 180},
	"quality":  {Name: "quality", Restarts: 360},
	"deep":     {Name: "deep", Restarts: 720},
}

// LookupPreset resolves a preset name; an empty name selects the default.
func LookupPreset(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultPreset
	}
	p, ok := presets[key]
	if !ok {
		return Preset{}, validationErrorf("preset", "unknown preset %q (want one of %s)", name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// PresetNames lists presets from cheapest to most thorough.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return presets[names[i]].Restarts < presets[names[j]].Restarts
	})
	return names
}
