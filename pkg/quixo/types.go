package quixo

// Type defines for the game
type Piece int8
type TurnType bool
type Termination uint8

// Enum for the piece type, Cross moves first
const (
	PieceNone Piece = iota
	PieceCross
	PieceCircle
)

// Enum for the turns
const (
	CrossTurn  TurnType = false
	CircleTurn TurnType = true
)

// Enum for game termination
const (
	TerminationNone Termination = iota
	TerminationCrossWon
	TerminationCircleWon
	TerminationDraw
)

func (p Piece) Opponent() Piece {
	switch p {
	case PieceCross:
		return PieceCircle
	case PieceCircle:
		return PieceCross
	default:
		return PieceNone
	}
}

func (p Piece) Rune() rune {
	switch p {
	case PieceCross:
		return 'X'
	case PieceCircle:
		return 'O'
	default:
		return '.'
	}
}

func (p Piece) String() string {
	return string(p.Rune())
}

// The piece the given side plays with
func (t TurnType) Piece() Piece {
	if t == CrossTurn {
		return PieceCross
	}
	return PieceCircle
}

func (t TurnType) String() string {
	if t == CrossTurn {
		return "X"
	}
	return "O"
}

// The winning piece, PieceNone for unresolved or drawn games
func (t Termination) Winner() Piece {
	switch t {
	case TerminationCrossWon:
		return PieceCross
	case TerminationCircleWon:
		return PieceCircle
	default:
		return PieceNone
	}
}

func (t Termination) String() string {
	switch t {
	case TerminationCrossWon:
		return "cross won"
	case TerminationCircleWon:
		return "circle won"
	case TerminationDraw:
		return "draw"
	default:
		return "none"
	}
}

func terminationOf(winner Piece) Termination {
	switch winner {
	case PieceCross:
		return TerminationCrossWon
	case PieceCircle:
		return TerminationCircleWon
	default:
		return TerminationNone
	}
}
