// balance is a Monte Carlo simulator for testing game balance in DeepDelve.
//
// Usage:
//
//	balance [command] [options]
//
// Commands:
//
//	runs       - Play many automated runs with one hero
//	sweep      - Compare every hero over the same seeds
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lawnchairsociety/deepdelve/internal/balance"
	"github.com/lawnchairsociety/deepdelve/internal/catalog"
	"github.com/lawnchairsociety/deepdelve/internal/hero"
	"github.com/lawnchairsociety/deepdelve/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Generation warnings would drown the report.
	logger.SetOutput(os.Stderr, "ERROR")

	switch os.Args[1] {
	case "runs":
		runHeroSim()
	case "sweep":
		runSweep()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`DeepDelve Balance Simulator

A Monte Carlo simulator for testing game balance. A greedy bot plays
whole runs through the game engine.

Usage: balance <command> [options]

Commands:
  runs      Play many automated runs with one hero
  sweep     Compare every hero over the same seeds

Examples:
  balance runs -hero=berserk -iterations=2000
  balance runs -hero=assassin -max-floor=20 -event-chance=0.5
  balance sweep -iterations=500

Use "balance <command> -h" for more information about a command.`)
}

// simFlags are the options shared by every command.
type simFlags struct {
	catalogDir  *string
	bossFloor   *int
	iterations  *int
	seed        *int64
	maxFloor    *int
	eventChance *float64
}

func addSimFlags(fs *flag.FlagSet) simFlags {
	defaults := balance.DefaultOptions()
	return simFlags{
		catalogDir:  fs.String("catalog", "data", "Path to content tables directory"),
		bossFloor:   fs.Int("boss-floor", 10, "First boss floor"),
		iterations:  fs.Int("iterations", 1000, "Number of runs to simulate"),
		seed:        fs.Int64("seed", 0, "Base seed (default: based on current time)"),
		maxFloor:    fs.Int("max-floor", defaults.MaxFloor, "Stop runs that reach this floor (0 = never)"),
		eventChance: fs.Float64("event-chance", defaults.Rules.EventChance, "Chance of a side room after each reward"),
	}
}

func (f simFlags) load() (*catalog.Catalog, balance.Options, int64) {
	cat, err := catalog.LoadDir(*f.catalogDir, *f.bossFloor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	opts := balance.DefaultOptions()
	opts.MaxFloor = *f.maxFloor
	opts.Rules.EventChance = *f.eventChance

	seed := *f.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return cat, opts, seed
}

func runHeroSim() {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	heroID := fs.String("hero", "wanderer", "Hero to play (wanderer, rune_guard, berserk, assassin)")
	sf := addSimFlags(fs)
	fs.Parse(os.Args[2:])

	cat, opts, seed := sf.load()

	fmt.Println("=== Run Simulation ===")
	fmt.Println()
	fmt.Printf("Hero:       %s\n", hero.Get(*heroID).Name())
	fmt.Printf("Iterations: %d  Seed: %d  Max floor: %d  Event chance: %.2f\n",
		*sf.iterations, seed, opts.MaxFloor, opts.Rules.EventChance)
	fmt.Println()

	result := balance.RunSimulation(cat, *heroID, *sf.iterations, seed, opts)
	printSimulationResult(result)
	fmt.Println()
	assessBalance(result, cat.BossFloor())
}

func runSweep() {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	sf := addSimFlags(fs)
	fs.Parse(os.Args[2:])

	cat, opts, seed := sf.load()

	fmt.Println("=== Hero Sweep ===")
	fmt.Printf("Iterations: %d per hero  Seed: %d\n", *sf.iterations, seed)
	fmt.Println()
	fmt.Printf("%-12s %9s %9s %9s %9s %11s\n", "Hero", "AvgFloor", "MaxFloor", "AvgKills", "Deaths", "BossKill%")
	fmt.Println(strings.Repeat("-", 64))

	for _, h := range hero.All() {
		r := balance.RunSimulation(cat, string(h.ID()), *sf.iterations, seed, opts)
		fmt.Printf("%-12s %9.1f %9d %9.1f %9d %10.1f%%\n",
			h.Name(), r.AvgFloor, r.MaxFloor, r.AvgKills, r.Deaths, r.BossKillRate)
	}
}

func printSimulationResult(r balance.SimulationResult) {
	fmt.Printf("Results (%d runs):\n", r.Simulations)
	fmt.Printf("  Avg Floor:     %.1f (min: %d, max: %d)\n", r.AvgFloor, r.MinFloor, r.MaxFloor)
	fmt.Printf("  Avg Kills:     %.1f\n", r.AvgKills)
	fmt.Printf("  Deaths:        %d\n", r.Deaths)
	fmt.Printf("  Boss Kills:    %d (%.1f%%)\n", r.BossKills, r.BossKillRate)
	fmt.Printf("  Avg Actions:   %.1f\n", r.AvgSteps)
}

// assessBalance grades how far a typical run gets relative to the first boss.
func assessBalance(r balance.SimulationResult, bossFloor int) {
	if bossFloor <= 0 {
		bossFloor = 10
	}
	depth := r.AvgFloor / float64(bossFloor)

	var assessment string
	switch {
	case depth < 0.4:
		assessment = "TOO HARD"
	case depth < 0.7:
		assessment = "CHALLENGING"
	case depth < 1.1:
		assessment = "BALANCED"
	case depth < 1.6:
		assessment = "EASY"
	default:
		assessment = "TOO EASY"
	}

	// Color-code if terminal supports it
	color := ""
	reset := ""
	if isTerminal() {
		switch assessment {
		case "TOO HARD", "TOO EASY":
			color = "\033[31m" // Red
		case "CHALLENGING", "EASY":
			color = "\033[33m" // Yellow
		case "BALANCED":
			color = "\033[32m" // Green
		}
		reset = "\033[0m"
	}

	fmt.Printf("Assessment: %s%s%s\n", color, assessment, reset)
}

func isTerminal() bool {
	return os.Getenv("TERM") != "" && !strings.Contains(os.Getenv("TERM"), "dumb")
}
