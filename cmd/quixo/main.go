// Quixo against an MCTS computer opponent, line-oriented terminal front end.
//
// Usage:
//
//	quixo [-cycles N] [-movetime MS] [-threads N] [-seed N] [-verbose]
//
// Commands: a move in notation form (e.g. "a1R": pick up the tile at a1
// and push it to the right end of its row), "ai" to let the engine move,
// "moves", "reset", "quit".
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/quixo-engine/go-quixo/pkg/mcts"
	"github.com/quixo-engine/go-quixo/pkg/quixo"
)

func main() {
	var (
		cycles   = flag.Int("cycles", 5000, "search cycle budget per engine move")
		movetime = flag.Int("movetime", 0, "search time per engine move in ms, 0 uses the cycle budget only")
		threads  = flag.Int("threads", 1, "number of search workers")
		seed     = flag.Int64("seed", 0, "fixed rollout seed, 0 seeds from the clock")
		verbose  = flag.Bool("verbose", false, "log search progress")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	if *seed != 0 {
		mcts.SetSeedGeneratorFn(func() int64 { return *seed })
	}

	limits := mcts.DefaultLimits().SetCycles(*cycles).SetThreads(*threads)
	if *movetime > 0 {
		limits.SetMovetime(*movetime)
	}

	app := &app{
		out:    termenv.NewOutput(os.Stdout),
		tree:   quixo.NewQuixoMCTS(*quixo.NewPosition()),
		logger: logger,
	}
	app.tree.SetLimits(limits)

	if *verbose {
		listener := mcts.NewStatsListener[quixo.Move]()
		listener.OnDepth(func(stats mcts.ListenerTreeStats[quixo.Move]) {
			logger.Debug().
				Int("depth", stats.Maxdepth).
				Int("cycles", stats.Cycles).
				Uint32("cps", stats.Cps).
				Float64("eval", stats.Eval).
				Str("bestmove", stats.BestMove.String()).
				Msg("search progress")
		})
		app.tree.SetListener(listener)
	}

	app.run()
}

type app struct {
	out    *termenv.Output
	tree   *quixo.QuixoMCTS
	logger zerolog.Logger
}

func (a *app) run() {
	renderPosition(a.out, a.tree.Position())
	a.printHelp()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
		case "q", "quit", "exit":
			return
		case "r", "reset":
			a.tree.SetPosition(*quixo.NewPosition())
			renderPosition(a.out, a.tree.Position())
		case "ai", "c":
			a.computeMove()
			renderPosition(a.out, a.tree.Position())
		case "moves":
			fmt.Println(a.tree.Position().LegalMoves())
		case "h", "help":
			a.printHelp()
		default:
			a.humanMove(line)
			renderPosition(a.out, a.tree.Position())
		}
		fmt.Print("> ")
	}
}

// Blocking "compute move" operation: search within the configured limits,
// then play the chosen move
func (a *app) computeMove() {
	a.tree.Reset()
	a.tree.Search()

	result, err := a.tree.SearchResult()
	if err != nil {
		if errors.Is(err, quixo.ErrNoLegalMoves) {
			a.logger.Info().Msg("game is over, nothing to compute")
			return
		}
		a.logger.Error().Err(err).Msg("search failed")
		return
	}

	a.logger.Info().
		Str("bestmove", result.BestMove.String()).
		Float64("eval", result.Eval).
		Int("cycles", result.Cycles).
		Int("depth", result.Depth).
		Msg("engine move")

	a.tree.MakeMove(result.BestMove)
}

// A move request from the keyboard. If the move is not valid, nothing
// happens: the state is left unchanged and the board re-rendered.
func (a *app) humanMove(line string) {
	mv := quixo.MoveFromString(line)
	if mv == quixo.MoveIllegal || !a.tree.MakeMove(mv) {
		a.logger.Debug().Str("input", line).Msg("illegal move, ignored")
	}
}

func (a *app) printHelp() {
	fmt.Println("moves are <col a-e><row 1-5><T|B|L|R>, e.g. b5L")
	fmt.Println("commands: ai (engine move), moves, reset, quit")
}
