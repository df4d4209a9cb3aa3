// Package config handles kernel demo-host configuration loading and
// management.
package config

// Config holds all demo-host settings.
type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Pathing  PathingConfig  `yaml:"pathing"`
	Dijkstra DijkstraConfig `yaml:"dijkstra"`
	Turn     TurnConfig     `yaml:"turn"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GridConfig holds the dungeon grid's generated dimensions and the
// hierarchical pathfinder's super-tile size.
type GridConfig struct {
	Width     int   `yaml:"width"`
	Height    int   `yaml:"height"`
	SuperTile int   `yaml:"super_tile"`
	Seed      int64 `yaml:"seed"`
}

// PathingConfig holds default pathfinder tuning.
type PathingConfig struct {
	AstarWeight float64 `yaml:"astar_weight"`
	UseIDA      bool    `yaml:"use_ida"`
}

// DijkstraConfig holds default influence-map ranges.
type DijkstraConfig struct {
	ApproachRange int     `yaml:"approach_range"`
	ExploreRange  int     `yaml:"explore_range"`
	AllyHPFloor   float64 `yaml:"ally_hp_floor"`
}

// TurnConfig holds turn-loop pacing settings.
type TurnConfig struct {
	PlayerActionBudget int `yaml:"player_action_budget"`
	HealCooldown       int `yaml:"heal_cooldown"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Width:     64,
			Height:    64,
			SuperTile: 10,
			Seed:      1,
		},
		Pathing: PathingConfig{
			AstarWeight: 1.0,
			UseIDA:      false,
		},
		Dijkstra: DijkstraConfig{
			ApproachRange: 12,
			ExploreRange:  6,
			AllyHPFloor:   40,
		},
		Turn: TurnConfig{
			PlayerActionBudget: 1,
			HealCooldown:       10,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
