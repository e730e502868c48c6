package main

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/quixo-engine/go-quixo/pkg/quixo"
)

// Renders the position: column letters, row numbers and colored pieces,
// falls back to plain ASCII on colorless terminals.
func renderPosition(out *termenv.Output, pos *quixo.Position) {
	builder := strings.Builder{}

	builder.WriteString("    a b c d e\n")
	board := pos.Board()
	for y := 0; y < quixo.Size; y++ {
		builder.WriteString("  ")
		builder.WriteByte('1' + byte(y))
		builder.WriteByte(' ')
		for x := 0; x < quixo.Size; x++ {
			builder.WriteString(renderPiece(out, board.At(x, y)))
			if x < quixo.Size-1 {
				builder.WriteByte(' ')
			}
		}
		builder.WriteByte('\n')
	}

	builder.WriteString(renderStatus(out, pos))
	builder.WriteByte('\n')
	out.WriteString(builder.String())
}

func renderPiece(out *termenv.Output, p quixo.Piece) string {
	switch p {
	case quixo.PieceCross:
		return out.String("X").Foreground(out.Color("12")).Bold().String()
	case quixo.PieceCircle:
		return out.String("O").Foreground(out.Color("9")).Bold().String()
	default:
		return out.String(".").Faint().String()
	}
}

func renderStatus(out *termenv.Output, pos *quixo.Position) string {
	if pos.IsTerminated() {
		winner := pos.Winner()
		return "  winner: " + renderPiece(out, winner)
	}
	return "  turn: " + renderPiece(out, pos.Turn().Piece())
}
