package arena

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixo-engine/go-quixo/pkg/mcts"
)

func TestMain(m *testing.M) {
	mcts.SetSeedGeneratorFn(func() int64 { return 42 })
	m.Run()
}

func TestRunPlaysAllGames(t *testing.T) {
	stats, err := Run(context.Background(), Config{
		Games:    4,
		Workers:  2,
		MoveCap:  30,
		LimitsP1: mcts.DefaultLimits().SetCycles(20),
		LimitsP2: mcts.DefaultLimits().SetCycles(20),
		Logger:   zerolog.Nop(),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total())
	assert.Equal(t, 4, stats.P1Wins()+stats.P2Wins()+stats.Draws())
}

func TestRunDefaults(t *testing.T) {
	// Zero-value config still plays one game with default limits
	stats, err := Run(context.Background(), Config{
		MoveCap: 10,
		Logger:  zerolog.Nop(),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := Run(ctx, Config{
		Games:   8,
		Workers: 2,
		Logger:  zerolog.Nop(),
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, stats.Total(), 8)
}

func TestStatsCounting(t *testing.T) {
	stats := &Stats{}
	stats.add(P1Win)
	stats.add(P1Win)
	stats.add(P2Win)
	stats.add(Draw)

	assert.Equal(t, 2, stats.P1Wins())
	assert.Equal(t, 1, stats.P2Wins())
	assert.Equal(t, 1, stats.Draws())
	assert.Equal(t, 4, stats.Total())
	assert.Equal(t, "p1 2, p2 1, draws 1 (total 4)", stats.String())
}
