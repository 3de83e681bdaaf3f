package config

// Presets trade tracing fidelity against run time.
var Presets = map[string]*Config{
	"fast": {
		Equilibrium: EquilibriumConfig{GridSize: 65, ProfilePoints: 33, Times: []float64{0.0}},
		Trace: TraceConfig{
			Upsample: 1, ContourPoints: 51, BoundaryRelTol: 1e-4,
			MaxBisect: 60, Squareness: false, COCOS: DefaultCOCOS, GradTol: 1e-6,
		},
		Store: StoreConfig{Path: "imasgo.db"},
	},
	"standard": {
		Equilibrium: EquilibriumConfig{GridSize: 129, ProfilePoints: 65, Times: []float64{0.0}},
		Trace: TraceConfig{
			Upsample: 1, ContourPoints: 101, BoundaryRelTol: 1e-6,
			MaxBisect: 100, Squareness: true, COCOS: DefaultCOCOS, GradTol: 1e-8,
		},
		Store: StoreConfig{Path: "imasgo.db"},
	},
	"accurate": {
		Equilibrium: EquilibriumConfig{GridSize: 257, ProfilePoints: 129, Times: []float64{0.0}},
		Trace: TraceConfig{
			Upsample: 2, ContourPoints: 201, BoundaryRelTol: 1e-8,
			MaxBisect: 100, Squareness: true, COCOS: DefaultCOCOS, GradTol: 1e-10,
		},
		Store: StoreConfig{Path: "imasgo.db"},
	},
}

// GetPreset returns a copy of the named preset, so callers can layer
// flag overrides on the result without mutating the shared table.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	out.Equilibrium.Times = append([]float64(nil), cfg.Equilibrium.Times...)
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
