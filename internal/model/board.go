package model

// Board is an unordered set of pieces; occupancy is found by position lookup.
type Board []Piece

func (b Board) Clone() Board {
	clone := make(Board, len(b))
	for i, piece := range b {
		clone[i] = piece.Clone()
	}
	return clone
}

func (b Board) pieceIndexAt(pos Position) int {
	for i := range b {
		if SamePosition(b[i].Position, pos) {
			return i
		}
	}
	return -1
}

func (b Board) PieceAt(pos Position) (Piece, bool) {
	if i := b.pieceIndexAt(pos); i >= 0 {
		return b[i], true
	}
	return Piece{}, false
}

func (b Board) FindByID(id int) (Piece, bool) {
	for _, piece := range b {
		if piece.ID == id {
			return piece, true
		}
	}
	return Piece{}, false
}

func (b Board) King(team Team) (Piece, bool) {
	for _, piece := range b {
		if piece.IsKing() && piece.Team == team {
			return piece, true
		}
	}
	return Piece{}, false
}

func (b Board) IsOccupied(pos Position) bool {
	return b.pieceIndexAt(pos) >= 0
}

func (b Board) IsOccupiedByOpponent(pos Position, team Team) bool {
	piece, ok := b.PieceAt(pos)
	return ok && piece.Team != team
}

func (b Board) IsEmptyOrOpponent(pos Position, team Team) bool {
	return !b.IsOccupied(pos) || b.IsOccupiedByOpponent(pos, team)
}

// IsAttackedBy reports whether any piece of team lists pos among its cached moves.
func (b Board) IsAttackedBy(pos Position, team Team) bool {
	for _, piece := range b {
		if piece.Team == team && piece.CanMoveTo(pos) {
			return true
		}
	}
	return false
}

func (b Board) TeamPieces(team Team) Board {
	pieces := Board{}
	for _, piece := range b {
		if piece.Team == team {
			pieces = append(pieces, piece)
		}
	}
	return pieces
}
