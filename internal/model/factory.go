package model

// IDGenerator hands out piece identifiers. Each game session owns one.
type IDGenerator struct {
	next int
}

func NewIDGenerator(start int) *IDGenerator {
	return &IDGenerator{next: start}
}

func (g *IDGenerator) Next() int {
	id := g.next
	g.next++
	return id
}

var backRankLayout = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// CreateBoard returns the 32-piece starting position. Move sets are left empty;
// run CalculateAllMoves before asking the engine for legality.
func CreateBoard(ids *IDGenerator) Board {
	board := make(Board, 0, 32)
	for _, team := range []Team{TeamOur, TeamOpponent} {
		for x, pieceType := range backRankLayout {
			board = append(board, newPiece(ids, pieceType, team, Position{X: x, Y: team.backRank()}))
		}
		for x := 0; x < boardSize; x++ {
			board = append(board, newPiece(ids, Pawn, team, Position{X: x, Y: team.pawnStartRank()}))
		}
	}
	return board
}

func newPiece(ids *IDGenerator, pieceType PieceType, team Team, pos Position) Piece {
	return Piece{
		ID:            ids.Next(),
		Position:      pos,
		Type:          pieceType,
		Team:          team,
		HasMoved:      false,
		EnPassant:     false,
		PossibleMoves: []Position{},
	}
}
