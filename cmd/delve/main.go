package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lawnchairsociety/deepdelve/internal/catalog"
	"github.com/lawnchairsociety/deepdelve/internal/command"
	"github.com/lawnchairsociety/deepdelve/internal/config"
	"github.com/lawnchairsociety/deepdelve/internal/game"
	"github.com/lawnchairsociety/deepdelve/internal/logger"
	"github.com/lawnchairsociety/deepdelve/internal/store"
)

func main() {
	configFile := flag.String("config", "data/config.yaml", "Path to config YAML file")
	seed := flag.Int64("seed", 0, "Random seed (overrides config; default: based on current time)")
	catalogDir := flag.String("catalog", "", "Path to content tables directory (overrides config)")
	memory := flag.Bool("memory", false, "Keep runs in memory only (no database)")
	verbose := flag.Bool("verbose", false, "Log to the console as well as the log file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Printf("Failed to load config %s, using defaults: %v", *configFile, err)
	}
	if err := cfg.ParseEnv(); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if *catalogDir != "" {
		cfg.Catalog.Dir = *catalogDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// The console is the game screen, so logs stay out of it unless asked.
	cfg.Logging.ConsoleEnabled = *verbose
	if err := logger.Initialize(cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	runSeed := cfg.Game.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
		logger.Info("Seed selected", "seed", runSeed, "random", true)
	} else {
		logger.Info("Seed selected", "seed", runSeed, "random", false)
	}

	cat, err := catalog.LoadDir(cfg.Catalog.Dir, cfg.Game.BossFloor)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runs command.RunStore
	if !*memory {
		db, err := store.Open(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to open run store: %v", err)
		}
		defer db.Close()
		runs = db
	}

	engine := game.New(cat, rand.New(rand.NewSource(runSeed)), cfg.Game.Rules)
	session := command.NewSession(engine, runs)

	fmt.Println("Welcome to DeepDelve. Type 'help' for commands, 'new' to begin.")
	repl(ctx, session)
	logger.Info("Session ended")
}

// repl reads commands until quit, EOF or a signal. Input is read on its own
// goroutine so the session is only touched from this one.
func repl(ctx context.Context, session *command.Session) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			logger.Error("Input error", "error", err)
		}
	}()

	for !session.Quit() {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			fmt.Println(session.Execute(context.Background(), command.ParseCommand("quit")))
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Println()
				fmt.Println(session.Execute(ctx, command.ParseCommand("quit")))
				return
			}
			if out := session.Execute(ctx, command.ParseCommand(line)); out != "" {
				fmt.Println(out)
			}
		}
	}
}
