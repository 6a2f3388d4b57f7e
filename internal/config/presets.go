package config

import "sort"

var Presets = map[string]*Config{
	"quick": {
		Strategy: "bulk", Dice: 1, Throws: 1000,
	},
	"standard": {
		Strategy: "bulk", Dice: 2, Throws: 10000,
	},
	"convergence": {
		Strategy: "bulk", Dice: 1, Throws: 1000000,
	},
	"rare": {
		Strategy: "bulk", Dice: 3, Throws: 100000,
	},
}

// GetPreset returns a copy of the named preset with the remaining fields
// taken from the defaults, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Strategy = p.Strategy
	cfg.Dice = p.Dice
	cfg.Throws = p.Throws
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
