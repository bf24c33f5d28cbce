package model

import "fmt"

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply records one half-move for the game history.
type Ply struct {
	Turn           int             `json:"turn"`
	Piece          Piece           `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion,omitempty"`
	Notation       string          `json:"notation"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func newPly(turn int, before Piece, outcome moveOutcome) Ply {
	ply := Ply{
		Turn:           turn,
		Piece:          outcome.moved,
		From:           before.Position,
		To:             outcome.moved.Position,
		CapturedPiece:  outcome.captured,
		CastleRookMove: outcome.castle,
	}
	ply.Notation = ply.getNotation(before)
	return ply
}

func (p Ply) getNotation(before Piece) string {
	if p.CastleRookMove != nil {
		if p.To.X > p.From.X {
			return "O-O"
		}
		return "O-O-O"
	}
	pieceNotationPrefix := before.Type.getPieceNotation()
	pieceNotationCapture := ""
	if p.CapturedPiece != nil {
		pieceNotationCapture = "x"
	}
	pawnFileSpecifier := ""
	if before.IsPawn() && p.From.X != p.To.X {
		pawnFileSpecifier = p.From.getFileNotation()
	}
	return fmt.Sprintf("%s%s%s%s", pieceNotationPrefix, pawnFileSpecifier, pieceNotationCapture, p.To.getSquareNotation())
}

func (p *Ply) withPromotion(pieceType PieceType) {
	p.Promotion = pieceType
	p.Notation += "=" + pieceType.getPieceNotation()
}

func (p *Ply) withCheck(board Board, defender Team) {
	if IsInCheck(board, defender) {
		p.Notation += "+"
	}
}
