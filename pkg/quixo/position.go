package quixo

// History of the position, used for undo during the search. A shift
// destroys information (whether the claimed source tile was empty), so
// the whole 25-byte board is snapshotted per ply.
type boardState struct {
	board       Board
	termination Termination
}

// Position is the single mutable game state: board, side to move,
// termination status and the move history. The zero value is not usable,
// construct with NewPosition.
type Position struct {
	board       Board
	turn        TurnType
	history     []boardState
	termination Termination
}

// NewPosition returns the starting game state: an empty board with
// Cross (the first player) to move and no winner.
func NewPosition() *Position {
	return &Position{
		history: make([]boardState, 0, 16),
	}
}

func (p *Position) Board() Board {
	return p.board
}

func (p *Position) Turn() TurnType {
	return p.turn
}

// Number of moves played from the starting position
func (p *Position) MoveCount() int {
	return len(p.history)
}

// Every legal move for the side to move. Calling this repeatedly on an
// unchanged position yields the same list.
func (p *Position) LegalMoves() *MoveList {
	return p.board.LegalMoves(p.turn.Piece())
}

// MakeMove validates and applies a move for the side to move, flips the
// turn and recomputes the winner under the mover-loses tie-break. On
// ErrIllegalMove the position is left untouched.
//
// A decided game does not lock the board: moves stay applicable and the
// winner is recomputed, so a UI may keep editing the board after a win.
func (p *Position) MakeMove(mv Move) error {
	mover := p.turn.Piece()
	next, err := p.board.Apply(mv, mover)
	if err != nil {
		return err
	}

	p.history = append(p.history, boardState{p.board, p.termination})
	p.board = next
	p.turn = !p.turn
	p.termination = terminationOf(next.Winner(mover))
	return nil
}

// UndoMove reverts the last applied move, no-op on the starting position
func (p *Position) UndoMove() {
	if len(p.history) == 0 {
		return
	}

	last := p.history[len(p.history)-1]
	p.board = last.board
	p.termination = last.termination
	p.turn = !p.turn
	p.history = p.history[:len(p.history)-1]
}

// Reset brings the position back to the starting game state,
// equivalent to NewPosition
func (p *Position) Reset() {
	p.board = Board{}
	p.turn = CrossTurn
	p.history = p.history[:0]
	p.termination = TerminationNone
}

func (p *Position) IsTerminated() bool {
	return p.termination != TerminationNone
}

func (p *Position) Termination() Termination {
	return p.termination
}

// The winning piece, PieceNone while the game is running
func (p *Position) Winner() Piece {
	return p.termination.Winner()
}

// Clone returns a deep copy sharing no memory with the original, so
// simulations can branch off without aliasing hazards
func (p *Position) Clone() Position {
	clone := Position{
		board:       p.board,
		turn:        p.turn,
		history:     make([]boardState, len(p.history), cap(p.history)),
		termination: p.termination,
	}
	copy(clone.history, p.history)
	return clone
}

func (p *Position) String() string {
	return p.board.String() + "turn: " + p.turn.String()
}
