// Package arena plays batches of Quixo games between two engine
// configurations, to compare search settings (cycle budgets, movetime,
// exploration) by win rate.
package arena

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/quixo-engine/go-quixo/pkg/mcts"
	"github.com/quixo-engine/go-quixo/pkg/quixo"
)

// Games running longer than this many plies are scored as draws
const DefaultMoveCap = 200

type Config struct {
	Games   int
	Workers int
	MoveCap int
	// Search limits for each contestant, player 1 plays Cross in
	// even-numbered games, Circle in odd ones
	LimitsP1 *mcts.Limits
	LimitsP2 *mcts.Limits
	Logger   zerolog.Logger
}

type MatchResult int

const (
	P1Win MatchResult = 1
	P2Win MatchResult = -1
	Draw  MatchResult = 0
)

// Aggregated match statistics, updated by the workers
type Stats struct {
	p1Wins uint32
	p2Wins uint32
	draws  uint32
}

func (s *Stats) P1Wins() int {
	return int(atomic.LoadUint32(&s.p1Wins))
}

func (s *Stats) P2Wins() int {
	return int(atomic.LoadUint32(&s.p2Wins))
}

func (s *Stats) Draws() int {
	return int(atomic.LoadUint32(&s.draws))
}

func (s *Stats) Total() int {
	return s.P1Wins() + s.P2Wins() + s.Draws()
}

func (s *Stats) add(result MatchResult) {
	switch result {
	case P1Win:
		atomic.AddUint32(&s.p1Wins, 1)
	case P2Win:
		atomic.AddUint32(&s.p2Wins, 1)
	default:
		atomic.AddUint32(&s.draws, 1)
	}
}

func (s *Stats) String() string {
	return fmt.Sprintf("p1 %d, p2 %d, draws %d (total %d)",
		s.P1Wins(), s.P2Wins(), s.Draws(), s.Total())
}

// Run plays cfg.Games games over cfg.Workers goroutines and returns the
// aggregated statistics. Cancelling the context stops the match early,
// the stats collected so far stay valid.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	if cfg.Games <= 0 {
		cfg.Games = 1
	}
	if cfg.MoveCap <= 0 {
		cfg.MoveCap = DefaultMoveCap
	}
	if cfg.LimitsP1 == nil {
		cfg.LimitsP1 = mcts.DefaultLimits().SetCycles(200)
	}
	if cfg.LimitsP2 == nil {
		cfg.LimitsP2 = mcts.DefaultLimits().SetCycles(200)
	}
	workers := max(1, cfg.Workers)

	stats := &Stats{}
	group, ctx := errgroup.WithContext(ctx)

	games := make(chan int)
	group.Go(func() error {
		defer close(games)
		for i := 0; i < cfg.Games; i++ {
			select {
			case games <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		group.Go(func() error {
			for idx := range games {
				result, err := playGame(ctx, cfg, idx)
				if err != nil {
					return err
				}
				stats.add(result)

				cfg.Logger.Info().
					Int("game", idx).
					Int("result", int(result)).
					Str("stats", stats.String()).
					Msg("game finished")
			}
			return nil
		})
	}

	err := group.Wait()
	return stats, err
}

// Plays a single game between the two configurations, keeping each
// engine's tree across moves (the built subtree for the played move
// survives via MakeMove).
func playGame(ctx context.Context, cfg Config, gameIdx int) (MatchResult, error) {
	p1IsCross := gameIdx%2 == 0

	pos := quixo.NewPosition()
	p1 := quixo.NewQuixoMCTS(pos.Clone())
	p2 := quixo.NewQuixoMCTS(pos.Clone())
	p1.SetLimits(cfg.LimitsP1)
	p2.SetLimits(cfg.LimitsP2)
	p1.SetContext(ctx)
	p2.SetContext(ctx)

	for !pos.IsTerminated() && pos.MoveCount() < cfg.MoveCap {
		select {
		case <-ctx.Done():
			return Draw, ctx.Err()
		default:
		}

		tree := p1
		if (pos.Turn() == quixo.CrossTurn) != p1IsCross {
			tree = p2
		}

		tree.Search()
		mv, err := tree.BestMove()
		if err != nil {
			break
		}

		if err := pos.MakeMove(mv); err != nil {
			return Draw, fmt.Errorf("arena: engine played illegal move %s: %w", mv, err)
		}
		p1.MakeMove(mv)
		p2.MakeMove(mv)
	}

	switch pos.Winner() {
	case quixo.PieceCross:
		if p1IsCross {
			return P1Win, nil
		}
		return P2Win, nil
	case quixo.PieceCircle:
		if p1IsCross {
			return P2Win, nil
		}
		return P1Win, nil
	}
	return Draw, nil
}
