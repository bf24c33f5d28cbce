package model

// moveOutcome is what the referee reports back about an accepted move.
type moveOutcome struct {
	board    Board
	moved    Piece
	captured *Piece
	castle   *CastleRookMove
}

// ApplyMove plays the piece on from to to and returns the resulting board with
// every move set recomputed. An illegal or malformed request returns the input
// board untouched and false.
func ApplyMove(board Board, from, to Position) (Board, bool) {
	outcome, ok := applyMove(board, from, to)
	if !ok {
		return board, false
	}
	return outcome.board, true
}

// ApplyMoveByID is ApplyMove addressed by piece identifier.
func ApplyMoveByID(board Board, id int, to Position) (Board, bool) {
	piece, ok := board.FindByID(id)
	if !ok {
		return board, false
	}
	return ApplyMove(board, piece.Position, to)
}

func applyMove(board Board, from, to Position) (moveOutcome, bool) {
	index := board.pieceIndexAt(from)
	if index < 0 || !IsInsideBoard(from) || !IsInsideBoard(to) {
		return moveOutcome{}, false
	}
	piece := board[index]
	if !containsPosition(LegalMoves(piece, board), to) {
		return moveOutcome{}, false
	}

	capturedAt := to
	if piece.IsPawn() && from.X != to.X && !board.IsOccupied(to) {
		capturedAt = Position{X: to.X, Y: from.Y}
	}

	var castle *CastleRookMove
	if piece.IsKing() && from.Y == to.Y && abs(to.X-from.X) == 2 {
		castle = castleRookMove(from, to)
	}

	outcome := moveOutcome{board: make(Board, 0, len(board)), castle: castle}
	for i, other := range board {
		if i == index {
			moved := other.Clone()
			moved.Position = to
			moved.HasMoved = true
			moved.EnPassant = moved.IsPawn() && abs(to.Y-from.Y) == 2
			outcome.moved = moved
			outcome.board = append(outcome.board, moved)
			continue
		}
		if SamePosition(other.Position, capturedAt) {
			captured := other.Clone()
			outcome.captured = &captured
			continue
		}
		next := other.Clone()
		if castle != nil && SamePosition(next.Position, castle.From) {
			next.Position = castle.To
			next.HasMoved = true
		}
		// the en passant window closes after one half-move
		next.EnPassant = false
		outcome.board = append(outcome.board, next)
	}

	calculateAllMoves(outcome.board)
	for _, piece := range outcome.board {
		if piece.ID == outcome.moved.ID {
			outcome.moved = piece
		}
	}
	return outcome, true
}

func castleRookMove(from, to Position) *CastleRookMove {
	if to.X > from.X {
		return &CastleRookMove{
			From: Position{X: boardSize - 1, Y: from.Y},
			To:   Position{X: to.X - 1, Y: from.Y},
		}
	}
	return &CastleRookMove{
		From: Position{X: 0, Y: from.Y},
		To:   Position{X: to.X + 1, Y: from.Y},
	}
}

// CalculateAllMoves returns a copy of board with every piece's PossibleMoves
// regenerated for the current position.
func CalculateAllMoves(board Board) Board {
	next := board.Clone()
	calculateAllMoves(next)
	return next
}

// calculateAllMoves works in place. Kings go last because their moves depend on
// the enemy's move sets; while kings are resolved each one sees the other as its
// plain adjacent squares, so the result does not depend on piece order.
func calculateAllMoves(board Board) {
	for i := range board {
		if !board[i].IsKing() {
			board[i].PossibleMoves = LegalMoves(board[i], board)
		}
	}

	kings := []int{}
	for i := range board {
		if board[i].IsKing() {
			board[i].PossibleMoves = kingSteps(board[i], board)
			kings = append(kings, i)
		}
	}
	resolved := make([][]Position, len(kings))
	for k, i := range kings {
		resolved[k] = kingMoves(board[i], board)
	}
	for k, i := range kings {
		board[i].PossibleMoves = resolved[k]
	}
}
