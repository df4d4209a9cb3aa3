// Package main is a thin terminal demo host for the dungeon kernel: it
// renders a generated grid as text and drives the configured pathfinder
// against operator commands. It is a collaborator adapter, not kernel code.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/dungeonkernel/internal/config"
	"github.com/Faultbox/dungeonkernel/internal/logger"
	"github.com/Faultbox/dungeonkernel/pkg/grid"
	"github.com/Faultbox/dungeonkernel/pkg/pathfind"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== dungeonkernel demo ===")
	logger.Sugar.Debugf("config: %+v", cfg)

	d := newDemo(cfg)
	if err := d.run(os.Stdin, os.Stdout); err != nil {
		logger.Error("demo error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}

// demo holds the interactive state a single terminal session mutates:
// the live grid, the chosen start/goal, and the pathfinder tuning.
type demo struct {
	cfg    *config.Config
	rng    *rand.Rand
	d      *grid.DungeonData
	start  grid.Position
	goal   grid.Position
	weight float64
	useIDA bool
}

func newDemo(cfg *config.Config) *demo {
	dm := &demo{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Grid.Seed)),
		weight: cfg.Pathing.AstarWeight,
		useIDA: cfg.Pathing.UseIDA,
	}
	dm.regenerate()
	return dm
}

// regenerate carves a fresh random grid and re-picks a start/goal pair of
// open floor cells.
func (d *demo) regenerate() {
	d.d = randomGrid(d.rng, d.cfg.Grid.Width, d.cfg.Grid.Height)
	d.start = randomFloor(d.rng, d.d)
	d.goal = randomFloor(d.rng, d.d)
}

// run drives the read-eval-print loop until the operator quits or stdin
// closes. Commands are read line-by-line rather than raw keystrokes: no
// library in this module's dependency set does terminal raw-mode input, so
// a line-buffered REPL is the honest stdlib-only rendition of "single-key
// commands".
func (d *demo) run(in *os.File, out *os.File) error {
	scanner := bufio.NewScanner(in)
	d.render(out)
	d.printHelp(out)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		cmd := strings.TrimSpace(scanner.Text())
		switch cmd {
		case "q", "quit":
			return nil
		case "space", " ":
			d.regenerate()
			d.render(out)
		case "up":
			d.weight += 0.5
			fmt.Fprintf(out, "A* weight: %.2f\n", d.weight)
		case "down":
			d.weight -= 0.5
			if d.weight < 1.0 {
				d.weight = 1.0
			}
			fmt.Fprintf(out, "A* weight: %.2f\n", d.weight)
		case "ida":
			d.useIDA = !d.useIDA
			fmt.Fprintf(out, "IDA*: %v\n", d.useIDA)
		case "", "enter":
			d.runPathfind(out)
		case "help", "?":
			d.printHelp(out)
		default:
			fmt.Fprintf(out, "unknown command %q\n", cmd)
		}
	}
}

func (d *demo) runPathfind(out *os.File) {
	var path []grid.Position
	if d.useIDA {
		path = pathfind.FindIDA(d.d, d.start, d.goal)
	} else {
		path = pathfind.FindAstar(d.d, d.start, d.goal, d.weight)
	}
	if path == nil {
		fmt.Fprintln(out, "no path found")
		return
	}
	fmt.Fprintf(out, "path length: %d, cost: %d\n", len(path), pathfind.PathCost(d.d, path))
	d.renderPath(out, path)
}

func (d *demo) printHelp(out *os.File) {
	fmt.Fprintln(out, "commands: enter=run pathfinder, space=regenerate grid, up/down=adjust A* weight, ida=toggle IDA*, q=quit")
}

// render prints the grid as text: ' ' floor, '#' wall, 'o' costly, plus
// '@'/'$' for the current start/goal.
func (d *demo) render(out *os.File) {
	for y := 0; y < d.d.Height; y++ {
		row := make([]byte, d.d.Width)
		for x := 0; x < d.d.Width; x++ {
			p := grid.Position{X: x, Y: y}
			switch {
			case p == d.start:
				row[x] = '@'
			case p == d.goal:
				row[x] = '$'
			default:
				row[x] = d.d.At(x, y).Byte()
			}
		}
		fmt.Fprintln(out, string(row))
	}
}

// renderPath overlays a found route on the grid as '*'.
func (d *demo) renderPath(out *os.File, path []grid.Position) {
	on := make(map[grid.Position]bool, len(path))
	for _, p := range path {
		on[p] = true
	}
	for y := 0; y < d.d.Height; y++ {
		row := make([]byte, d.d.Width)
		for x := 0; x < d.d.Width; x++ {
			p := grid.Position{X: x, Y: y}
			switch {
			case p == d.start:
				row[x] = '@'
			case p == d.goal:
				row[x] = '$'
			case on[p]:
				row[x] = '*'
			default:
				row[x] = d.d.At(x, y).Byte()
			}
		}
		fmt.Fprintln(out, string(row))
	}
}

// randomGrid carves a random dungeon: floor everywhere, with walls and
// costly tiles sprayed at fixed densities. Not kernel code; a quick source
// of demo content.
func randomGrid(rng *rand.Rand, w, h int) *grid.DungeonData {
	d := grid.New(w, h)
	const wallDensity = 0.2
	const costlyDensity = 0.1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch r := rng.Float64(); {
			case r < wallDensity:
				d.Set(x, y, grid.Wall)
			case r < wallDensity+costlyDensity:
				d.Set(x, y, grid.Costly)
			}
		}
	}
	return d
}

// randomFloor picks a uniformly random floor cell, retrying on walls.
func randomFloor(rng *rand.Rand, d *grid.DungeonData) grid.Position {
	for {
		x := rng.Intn(d.Width)
		y := rng.Intn(d.Height)
		if d.IsFloor(x, y) {
			return grid.Position{X: x, Y: y}
		}
	}
}
