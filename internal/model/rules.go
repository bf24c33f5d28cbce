package model

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	kingDirs   = append(append([]Position{}, rookDirs...), bishopDirs...)
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
)

type moveGenerator func(piece Piece, board Board) []Position

var moveGenerators = map[PieceType]moveGenerator{
	Pawn:   pawnMoves,
	Knight: knightMoves,
	Bishop: bishopMoves,
	Rook:   rookMoves,
	Queen:  queenMoves,
	King:   kingMoves,
}

// LegalMoves generates the destinations of piece on board. King moves read the
// cached PossibleMoves of the enemy pieces, so those must be current.
func LegalMoves(piece Piece, board Board) []Position {
	generate, ok := moveGenerators[piece.Type]
	if !ok {
		return []Position{}
	}
	return generate(piece, board)
}

// slidingMoves walks each direction until it leaves the board or hits a piece.
// An enemy piece ends the walk as a capture, an own piece ends it exclusively.
func slidingMoves(piece Piece, board Board, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		targetPos := piece.Position.add(dir)
		for step := 1; step < boardSize && IsInsideBoard(targetPos); step++ {
			if !board.IsOccupied(targetPos) {
				moves = append(moves, targetPos)
			} else if board.IsOccupiedByOpponent(targetPos, piece.Team) {
				moves = append(moves, targetPos)
				break
			} else {
				break
			}
			targetPos = targetPos.add(dir)
		}
	}
	return moves
}

func rookMoves(piece Piece, board Board) []Position {
	return slidingMoves(piece, board, rookDirs)
}

func bishopMoves(piece Piece, board Board) []Position {
	return slidingMoves(piece, board, bishopDirs)
}

func queenMoves(piece Piece, board Board) []Position {
	return slidingMoves(piece, board, kingDirs)
}

func knightMoves(piece Piece, board Board) []Position {
	moves := []Position{}
	for _, dir := range knightDirs {
		targetPos := piece.Position.add(dir)
		if IsInsideBoard(targetPos) && board.IsEmptyOrOpponent(targetPos, piece.Team) {
			moves = append(moves, targetPos)
		}
	}
	return moves
}

func pawnMoves(piece Piece, board Board) []Position {
	moves := []Position{}
	dir := piece.Team.pawnDirection()

	oneAhead := Position{X: piece.Position.X, Y: piece.Position.Y + dir}
	if IsInsideBoard(oneAhead) && !board.IsOccupied(oneAhead) {
		moves = append(moves, oneAhead)
		twoAhead := Position{X: piece.Position.X, Y: piece.Position.Y + 2*dir}
		if piece.Position.Y == piece.Team.pawnStartRank() && IsInsideBoard(twoAhead) && !board.IsOccupied(twoAhead) {
			moves = append(moves, twoAhead)
		}
	}

	for _, dx := range []int{-1, 1} {
		targetPos := Position{X: piece.Position.X + dx, Y: piece.Position.Y + dir}
		if !IsInsideBoard(targetPos) {
			continue
		}
		if board.IsOccupiedByOpponent(targetPos, piece.Team) {
			moves = append(moves, targetPos)
			continue
		}
		if !board.IsOccupied(targetPos) && isEnPassantVictim(board, Position{X: targetPos.X, Y: piece.Position.Y}, piece.Team) {
			moves = append(moves, targetPos)
		}
	}
	return moves
}

// isEnPassantVictim reports whether pos holds an enemy pawn that just double-stepped.
func isEnPassantVictim(board Board, pos Position, team Team) bool {
	victim, ok := board.PieceAt(pos)
	return ok && victim.IsPawn() && victim.Team != team && victim.EnPassant
}

// kingSteps lists the adjacent squares a king could enter, ignoring attacks.
func kingSteps(piece Piece, board Board) []Position {
	moves := []Position{}
	for _, dir := range kingDirs {
		targetPos := piece.Position.add(dir)
		if IsInsideBoard(targetPos) && board.IsEmptyOrOpponent(targetPos, piece.Team) {
			moves = append(moves, targetPos)
		}
	}
	return moves
}

func kingMoves(piece Piece, board Board) []Position {
	enemy := piece.Team.Opponent()
	moves := []Position{}
	for _, targetPos := range kingSteps(piece, board) {
		if !board.IsAttackedBy(targetPos, enemy) {
			moves = append(moves, targetPos)
		}
	}
	return append(moves, castlingMoves(piece, board)...)
}

func castlingMoves(king Piece, board Board) []Position {
	enemy := king.Team.Opponent()
	if king.HasMoved || board.IsAttackedBy(king.Position, enemy) {
		return nil
	}

	moves := []Position{}
	for _, side := range []struct{ rookX, dir int }{{rookX: 7, dir: 1}, {rookX: 0, dir: -1}} {
		rook, ok := board.PieceAt(Position{X: side.rookX, Y: king.Position.Y})
		if !ok || rook.Type != Rook || rook.Team != king.Team || rook.HasMoved {
			continue
		}
		transit := Position{X: king.Position.X + side.dir, Y: king.Position.Y}
		destination := Position{X: king.Position.X + 2*side.dir, Y: king.Position.Y}
		// the king has to land strictly between its square and the rook
		if (side.rookX-destination.X)*side.dir <= 0 {
			continue
		}
		if !pathClear(board, king.Position, rook.Position) {
			continue
		}
		if board.IsAttackedBy(transit, enemy) || board.IsAttackedBy(destination, enemy) {
			continue
		}
		moves = append(moves, destination)
	}
	return moves
}

// pathClear reports whether every square strictly between two squares on one rank is empty.
func pathClear(board Board, from, to Position) bool {
	dir := 1
	if to.X < from.X {
		dir = -1
	}
	for x := from.X + dir; x != to.X; x += dir {
		if board.IsOccupied(Position{X: x, Y: from.Y}) {
			return false
		}
	}
	return true
}
