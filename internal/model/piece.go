package model

type Team string

const (
	TeamOur      Team = "our"
	TeamOpponent Team = "opponent"
)

func (t Team) Opponent() Team {
	if t == TeamOur {
		return TeamOpponent
	}
	return TeamOur
}

func (t Team) valid() bool {
	return t == TeamOur || t == TeamOpponent
}

// pawnDirection is the y step a pawn of this team advances by.
func (t Team) pawnDirection() int {
	if t == TeamOur {
		return 1
	}
	return -1
}

func (t Team) pawnStartRank() int {
	if t == TeamOur {
		return 1
	}
	return 6
}

// doubleStepRank is where a pawn of this team lands after its two-square advance.
func (t Team) doubleStepRank() int {
	return t.pawnStartRank() + 2*t.pawnDirection()
}

func (t Team) promotionRank() int {
	if t == TeamOur {
		return 7
	}
	return 0
}

func (t Team) backRank() int {
	if t == TeamOur {
		return 0
	}
	return 7
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

func (p PieceType) valid() bool {
	_, ok := moveGenerators[p]
	return ok
}

// CanPromoteTo reports whether a pawn may be replaced by this type.
func (p PieceType) CanPromoteTo() bool {
	switch p {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// Piece is a value; moves produce new pieces rather than editing old ones.
// ID is the only key that survives a move.
type Piece struct {
	ID            int        `json:"id"`
	Position      Position   `json:"position"`
	Type          PieceType  `json:"type"`
	Team          Team       `json:"team"`
	HasMoved      bool       `json:"hasMoved"`
	EnPassant     bool       `json:"enPassant"`
	PossibleMoves []Position `json:"possibleMoves"`
}

func (p Piece) IsPawn() bool { return p.Type == Pawn }
func (p Piece) IsKing() bool { return p.Type == King }

func (p Piece) Clone() Piece {
	clone := p
	clone.PossibleMoves = make([]Position, len(p.PossibleMoves))
	copy(clone.PossibleMoves, p.PossibleMoves)
	return clone
}

func (p Piece) CanMoveTo(to Position) bool {
	return containsPosition(p.PossibleMoves, to)
}
