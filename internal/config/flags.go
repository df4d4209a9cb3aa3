package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagWidth  = flag.Int("width", 0, "Grid width")
	flagHeight = flag.Int("height", 0, "Grid height")
	flagWeight = flag.Float64("weight", 0, "A* heuristic weight")
	flagSeed   = flag.Int64("seed", 0, "Map generation seed")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Grid.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Grid.Height = *flagHeight
	}
	if *flagWeight > 0 {
		cfg.Pathing.AstarWeight = *flagWeight
	}
	if *flagSeed != 0 {
		cfg.Grid.Seed = *flagSeed
	}
}
