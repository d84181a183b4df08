package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lawnchairsociety/deepdelve/internal/game"
	"github.com/lawnchairsociety/deepdelve/internal/hero"
	"github.com/lawnchairsociety/deepdelve/internal/logger"
	"github.com/lawnchairsociety/deepdelve/internal/run"
	"github.com/lawnchairsociety/deepdelve/internal/store"
	"github.com/lawnchairsociety/deepdelve/internal/tasks"
	"github.com/lawnchairsociety/deepdelve/internal/tutorial"
)

// RunStore is the persistence a session needs. *store.Store satisfies it.
type RunStore interface {
	Save(ctx context.Context, s *run.State) error
	Load(ctx context.Context, id string) (*run.State, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]store.Summary, error)
}

// Session is one player's terminal session: at most one live run and at
// most one tutorial. Not safe for concurrent use.
type Session struct {
	engine   *game.Engine
	store    RunStore
	run      *run.State
	tutorial *tutorial.Tutorial
	now      func() time.Time
	quit     bool
}

// NewSession creates a session. rs may be nil, in which case runs are
// kept in memory only.
func NewSession(engine *game.Engine, rs RunStore) *Session {
	return &Session{engine: engine, store: rs, now: time.Now}
}

// Run returns the current run, or nil.
func (s *Session) Run() *run.State { return s.run }

// Quit reports whether the player asked to leave.
func (s *Session) Quit() bool { return s.quit }

// Execute runs one command and returns the text to show.
func (s *Session) Execute(ctx context.Context, c *Command) string {
	if s.tutorial != nil {
		if out, ok := s.executeTutorial(c); ok {
			return out
		}
	}

	switch c.Name {
	case "":
		return ""
	case "help":
		return helpText
	case "heroes":
		return s.executeHeroes()
	case "new":
		return s.executeNew(ctx, c)
	case "attack", "potion", "scroll", "end", "choose", "skip", "equip", "leave", "abandon":
		return s.executeAction(ctx, c)
	case "status":
		if s.run == nil {
			return "No run in progress. Type 'new' to start one."
		}
		return game.Render(s.run)
	case "tasks":
		return tasks.Summary(tasks.Current(s.now()), s.run)
	case "tutorial":
		s.tutorial = tutorial.New()
		return renderTutorial(s.tutorial)
	case "runs":
		return s.executeRuns(ctx)
	case "load":
		return s.executeLoad(ctx, c)
	case "save":
		if s.run == nil {
			return "No run to save."
		}
		if err := s.save(ctx); err != nil {
			return "Save failed: " + err.Error()
		}
		return fmt.Sprintf("Run %s saved.", s.run.ID)
	case "delete":
		return s.executeDelete(ctx, c)
	case "quit":
		s.quit = true
		if s.run != nil {
			if err := s.save(ctx); err != nil {
				return "Save failed: " + err.Error()
			}
		}
		return "Farewell."
	default:
		return fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", c.Name)
	}
}

func (s *Session) executeHeroes() string {
	var b strings.Builder
	for _, h := range hero.All() {
		fmt.Fprintf(&b, "%-10s %s\n", h.ID(), h.Description())
	}
	return b.String()
}

func (s *Session) executeNew(ctx context.Context, c *Command) string {
	if s.run != nil && !s.run.Phase.Terminal() {
		if err := s.save(ctx); err != nil {
			logger.Warning("Failed to save run before starting another", "run", s.run.ID, "error", err)
		}
	}
	s.tutorial = nil
	s.run = s.engine.NewRun(strings.Join(c.Args, " "))
	if err := s.save(ctx); err != nil {
		return "Save failed: " + err.Error() + "\n" + game.Render(s.run)
	}
	return game.Render(s.run)
}

func (s *Session) executeAction(ctx context.Context, c *Command) string {
	st := s.run
	if st == nil {
		return "No run in progress. Type 'new' to start one."
	}

	var err error
	switch c.Name {
	case "attack":
		err = s.engine.PlayerAttack(st)
	case "potion":
		err = s.engine.PlayerUsePotion(st)
	case "scroll":
		i, ok := c.Index(0)
		if !ok {
			return "Usage: scroll <number>"
		}
		err = s.engine.PlayerUseScroll(st, i)
	case "end":
		err = s.engine.EndTurn(st)
	case "choose":
		if e := c.RequireArgs(1, "Usage: choose <number|name>"); e != nil {
			return e.Error()
		}
		err = s.choose(st, c)
	case "skip":
		if st.Phase == run.PhaseTreasure {
			err = s.engine.ApplyTreasureChoice(st, false)
		} else {
			err = s.engine.SkipReward(st)
		}
	case "equip":
		err = s.engine.ApplyTreasureChoice(st, true)
	case "leave":
		err = s.engine.ApplyTreasureChoice(st, false)
	case "abandon":
		err = s.engine.Abandon(st)
	}
	if err != nil {
		logger.Error("Action failed", "run", st.ID, "command", c.Name, "error", err)
		return "Something went wrong: " + err.Error()
	}

	if err := s.save(ctx); err != nil {
		logger.Warning("Autosave failed", "run", st.ID, "error", err)
	}
	return game.Render(st)
}

// choose picks from whatever menu the run is showing.
func (s *Session) choose(st *run.State, c *Command) error {
	switch st.Phase {
	case run.PhaseReward:
		i, ok := c.Index(0)
		if !ok {
			st.Narrate("Pick a reward by number.")
			return nil
		}
		return s.engine.ApplyReward(st, i)
	case run.PhaseEvent:
		return s.engine.ApplyEventChoice(st, c.Arg(0))
	case run.PhaseBossPrep:
		return s.engine.ApplyBossArtifactChoice(st, c.Arg(0))
	case run.PhaseTreasure:
		switch c.Arg(0) {
		case "yes", "y", "equip", "take":
			return s.engine.ApplyTreasureChoice(st, true)
		default:
			return s.engine.ApplyTreasureChoice(st, false)
		}
	default:
		st.Narrate("There is nothing to choose.")
		return nil
	}
}

func (s *Session) executeRuns(ctx context.Context) string {
	if s.store == nil {
		return "Runs are not being saved."
	}
	list, err := s.store.ListActive(ctx)
	if err != nil {
		return "Failed to list runs: " + err.Error()
	}
	if len(list) == 0 {
		return "No saved runs."
	}
	var b strings.Builder
	for _, sum := range list {
		fmt.Fprintf(&b, "%s  %-10s floor %-3d %s\n", sum.ID, sum.Hero, sum.Floor, sum.Phase)
	}
	return b.String()
}

func (s *Session) executeLoad(ctx context.Context, c *Command) string {
	if err := c.RequireArgs(1, "Usage: load <run id>"); err != nil {
		return err.Error()
	}
	if s.store == nil {
		return "Runs are not being saved."
	}
	st, err := s.store.Load(ctx, c.Args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Sprintf("No run %s.", c.Args[0])
	}
	if err != nil {
		return "Load failed: " + err.Error()
	}
	s.run = st
	s.tutorial = nil
	return game.Render(st)
}

func (s *Session) executeDelete(ctx context.Context, c *Command) string {
	if err := c.RequireArgs(1, "Usage: delete <run id>"); err != nil {
		return err.Error()
	}
	if s.store == nil {
		return "Runs are not being saved."
	}
	id := c.Args[0]
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Sprintf("No run %s.", id)
		}
		return "Delete failed: " + err.Error()
	}
	if s.run != nil && s.run.ID == id {
		s.run = nil
	}
	return fmt.Sprintf("Run %s deleted.", id)
}

// executeTutorial routes combat commands to an active tutorial. It reports
// false for commands the tutorial does not handle.
func (s *Session) executeTutorial(c *Command) (string, bool) {
	t := s.tutorial
	switch c.Name {
	case "abandon":
		t.Forfeit()
	case "status":
	default:
		a, ok := tutorial.ParseAction(c.Name)
		if !ok {
			return "", false
		}
		t.Apply(a)
	}

	out := renderTutorial(t)
	if t.Done() {
		s.tutorial = nil
	}
	return out, true
}

func renderTutorial(t *tutorial.Tutorial) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== Training %d/%d ==\n", min(t.Step+1, tutorial.Steps()), tutorial.Steps())
	fmt.Fprintf(&b, "HP %d/%d  AP %d/%d\n", t.Player.HP, t.Player.HPMax, t.Player.AP, t.Player.APMax)
	fmt.Fprintf(&b, "  %s  HP %d/%d\n", t.Golem.Name, t.Golem.HP, t.Golem.MaxHP)
	for _, line := range t.Log {
		fmt.Fprintf(&b, "> %s\n", line)
	}
	return b.String()
}

func (s *Session) save(ctx context.Context) error {
	if s.store == nil || s.run == nil {
		return nil
	}
	return s.store.Save(ctx, s.run)
}

const helpText = `Commands:
  new [hero]        Start a run (wanderer, rune_guard, berserk, assassin)
  heroes            List heroes
  attack            Attack the first living enemy (1 AP)
  potion            Drink your newest potion
  scroll <n>        Read scroll n
  end               End your turn
  choose <n|name>   Pick a reward, path, artifact or treasure
  skip              Leave the rewards or treasure behind
  status            Show the run
  tasks             Show this window's challenges
  tutorial          Practice against a training golem
  runs              List saved runs
  load <id>         Resume a saved run
  delete <id>       Delete a saved run
  abandon           Give up the current run
  quit              Save and leave`
