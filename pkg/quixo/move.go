package quixo

import "strings"

// Direction the picked-up tile is pushed toward, ie. the terminal slot of
// its row or column where the tile re-emerges after the shift.
type Shift uint8

const (
	ShiftTop Shift = iota
	ShiftBottom
	ShiftLeft
	ShiftRight
)

func (s Shift) Rune() rune {
	switch s {
	case ShiftTop:
		return 'T'
	case ShiftBottom:
		return 'B'
	case ShiftLeft:
		return 'L'
	default:
		return 'R'
	}
}

func (s Shift) String() string {
	return string(s.Rune())
}

const (
	_moveIndexMask = 0b00011111
	_moveShiftMask = 0b01100000
)

// Compact move representation: bits 0-4 hold the source cell index
// (row-major, 0..24), bits 5-6 the shift direction.
type Move uint8

const MoveIllegal Move = 0xFF

// Create a move from board coordinates and a shift direction
func MakeMove(x, y int, shift Shift) Move {
	return Move(((y*Size + x) & _moveIndexMask) | ((int(shift) << 5) & _moveShiftMask))
}

// Source cell column, 0..4 left to right
func (m Move) X() int {
	return int(m&_moveIndexMask) % Size
}

// Source cell row, 0..4 top to bottom
func (m Move) Y() int {
	return int(m&_moveIndexMask) / Size
}

// Row-major source cell index
func (m Move) Index() int {
	return int(m & _moveIndexMask)
}

func (m Move) Shift() Shift {
	return Shift((m & _moveShiftMask) >> 5)
}

// Get the string representation of the move: column letter (a-e), row
// digit (1-5, top to bottom) and the shift letter, for example "a1R"
// picks up the top left tile and pushes it to the right end of row 1.
func (m Move) String() string {
	if m == MoveIllegal || m.Index() >= Size*Size {
		return "(none)"
	}

	builder := strings.Builder{}
	builder.WriteByte('a' + byte(m.X()))
	builder.WriteByte('1' + byte(m.Y()))
	builder.WriteRune(m.Shift().Rune())
	return builder.String()
}

// Convert the given move notation (as produced by Move.String) back
// into a Move, returns MoveIllegal on malformed input
func MoveFromString(str string) Move {
	if len(str) != 3 {
		return MoveIllegal
	}

	col := str[0]
	row := str[1]
	if col < 'a' || col > 'e' || row < '1' || row > '5' {
		return MoveIllegal
	}

	var shift Shift
	switch str[2] {
	case 'T', 't':
		shift = ShiftTop
	case 'B', 'b':
		shift = ShiftBottom
	case 'L', 'l':
		shift = ShiftLeft
	case 'R', 'r':
		shift = ShiftRight
	default:
		return MoveIllegal
	}

	return MakeMove(int(col-'a'), int(row-'1'), shift)
}

// Fixed-capacity move buffer, 44 is the number of structurally allowed
// moves on an empty board, no position has more.
type MoveList struct {
	moves [44]Move
	size  uint8
}

func NewMoveList() *MoveList {
	return &MoveList{}
}

// Reset the movelist, simply sets the size to 0
func (ml *MoveList) Clear() {
	ml.size = 0
}

// Get the actual slice of valid moves
func (ml *MoveList) Slice() []Move {
	return ml.moves[0:ml.size]
}

func (ml *MoveList) Size() int {
	return int(ml.size)
}

func (ml *MoveList) At(i int) Move {
	return ml.moves[i]
}

// Append a new move to the list
func (ml *MoveList) Append(m Move) {
	ml.moves[ml.size] = m
	ml.size++
}

// Convert the movelist into a string with space-separated move notation
func (ml *MoveList) String() string {
	if ml.size == 0 {
		return "empty"
	}

	strMoves := make([]string, ml.size)
	for i, m := range ml.Slice() {
		strMoves[i] = m.String()
	}
	return strings.Join(strMoves, " ")
}
