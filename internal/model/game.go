package model

import "fmt"

// PromotionRequest is open from the moment a pawn reaches its far rank until
// the mover picks the replacement piece. No other move is accepted meanwhile.
type PromotionRequest struct {
	Position Position `json:"position"`
	Team     Team     `json:"team"`
}

type Status struct {
	Check     *CheckedKing      `json:"check"`
	Winner    *Team             `json:"winner"`
	Checkmate bool              `json:"checkmate"`
	Promotion *PromotionRequest `json:"promotion"`
}

type GameState struct {
	ID          string      `json:"id"`
	Pieces      Board       `json:"pieces"`
	TotalTurns  int         `json:"totalTurns"`
	CurrentTeam Team        `json:"currentTeam"`
	Status      Status      `json:"status"`
	History     []Ply       `json:"history"`
	LastMove    *SimpleMove `json:"lastMove"`
}

// Game is one session's state machine on top of the referee. It is not safe for
// concurrent use; the service layer serialises access.
type Game struct {
	ID         string
	Board      Board
	TotalTurns int
	Promotion  *PromotionRequest
	History    []Ply
	ids        *IDGenerator
}

func NewGame(id string) *Game {
	g := &Game{
		ID:  id,
		ids: NewIDGenerator(1),
	}
	g.Reset()
	return g
}

// RestoreGame rebuilds a session from a stored snapshot. Move sets are
// regenerated rather than trusted.
func RestoreGame(id string, board Board, totalTurns int, promotion *PromotionRequest) (*Game, error) {
	if err := board.Validate(); err != nil {
		return nil, err
	}
	if totalTurns < 0 {
		return nil, fmt.Errorf("%w: negative turn counter %d", ErrInvalidBoard, totalTurns)
	}
	mover := teamToMove(totalTurns)
	if promotion != nil {
		pawn, ok := board.PieceAt(promotion.Position)
		if !ok || !pawn.IsPawn() || pawn.Team != promotion.Team || promotion.Position.Y != pawn.Team.promotionRank() {
			return nil, fmt.Errorf("%w: no pawn awaiting promotion on %s", ErrInvalidBoard, promotion.Position)
		}
		if promotion.Team != mover {
			return nil, fmt.Errorf("%w: %s cannot promote on turn %d", ErrInvalidBoard, promotion.Team, totalTurns)
		}
	}
	// only the side that just moved can carry an en passant pawn
	for _, piece := range board {
		if piece.EnPassant && piece.Team == mover {
			return nil, fmt.Errorf("%w: piece %d of %s is en passant on its own turn", ErrInvalidBoard, piece.ID, mover)
		}
	}

	nextID := 1
	for _, piece := range board {
		if piece.ID >= nextID {
			nextID = piece.ID + 1
		}
	}
	return &Game{
		ID:         id,
		Board:      CalculateAllMoves(board),
		TotalTurns: totalTurns,
		Promotion:  promotion,
		History:    []Ply{},
		ids:        NewIDGenerator(nextID),
	}, nil
}

// Reset lays out a fresh board. Identifiers keep counting from the session's
// generator, so pieces from an earlier game are never confused with new ones.
func (g *Game) Reset() {
	g.Board = CalculateAllMoves(CreateBoard(g.ids))
	g.TotalTurns = 0
	g.Promotion = nil
	g.History = []Ply{}
}

// CurrentTeam is derived from turn parity: even turns belong to our side.
func (g *Game) CurrentTeam() Team {
	return teamToMove(g.TotalTurns)
}

func teamToMove(totalTurns int) Team {
	if totalTurns%2 == 0 {
		return TeamOur
	}
	return TeamOpponent
}

func (g *Game) Status() Status {
	status := Status{
		Check:     GetCheckedKing(g.Board),
		Winner:    CheckWinningTeam(g.Board),
		Promotion: g.Promotion,
	}
	if status.Winner == nil && g.Promotion == nil {
		mover := g.CurrentTeam()
		if IsCheckmate(g.Board, mover) {
			winner := mover.Opponent()
			status.Winner = &winner
			status.Checkmate = true
		}
	}
	return status
}

func (g *Game) canMove() error {
	if g.Promotion != nil {
		return ErrPromotionPending
	}
	if g.Status().Winner != nil {
		return ErrGameOver
	}
	return nil
}

func (g *Game) Move(from, to Position) (Ply, error) {
	if err := g.canMove(); err != nil {
		return Ply{}, err
	}
	piece, ok := g.Board.PieceAt(from)
	if !ok {
		return Ply{}, ErrNoPiece
	}
	if piece.Team != g.CurrentTeam() {
		return Ply{}, ErrNotYourTurn
	}

	outcome, ok := applyMove(g.Board, from, to)
	if !ok {
		return Ply{}, fmt.Errorf("%w: %s to %s", ErrIllegalMove, from, to)
	}
	ply := newPly(g.TotalTurns, piece, outcome)
	g.Board = outcome.board

	if outcome.moved.IsPawn() && to.Y == piece.Team.promotionRank() {
		g.Promotion = &PromotionRequest{Position: to, Team: piece.Team}
	} else {
		ply.withCheck(g.Board, piece.Team.Opponent())
		g.TotalTurns++
	}
	g.History = append(g.History, ply)
	return ply, nil
}

func (g *Game) MoveByID(id int, to Position) (Ply, error) {
	piece, ok := g.Board.FindByID(id)
	if !ok {
		return Ply{}, fmt.Errorf("%w: unknown piece %d", ErrNoPiece, id)
	}
	return g.Move(piece.Position, to)
}

// Promote resolves the open promotion request and hands the turn over.
func (g *Game) Promote(pieceType PieceType) (Ply, error) {
	if g.Promotion == nil {
		return Ply{}, ErrNoPromotionPending
	}
	if !pieceType.CanPromoteTo() {
		return Ply{}, fmt.Errorf("%w: %q", ErrInvalidPromotion, pieceType)
	}

	next := g.Board.Clone()
	index := next.pieceIndexAt(g.Promotion.Position)
	if index < 0 {
		return Ply{}, ErrNoPiece
	}
	next[index].Type = pieceType
	calculateAllMoves(next)
	g.Board = next

	// a restored game may carry the request without the ply that opened it
	last := len(g.History) - 1
	if last < 0 || g.History[last].Turn != g.TotalTurns {
		pos := g.Promotion.Position
		g.History = append(g.History, Ply{Turn: g.TotalTurns, From: pos, To: pos, Notation: pos.getSquareNotation()})
		last = len(g.History) - 1
	}
	ply := &g.History[last]
	ply.Piece = next[index]
	ply.withPromotion(pieceType)
	ply.withCheck(g.Board, g.Promotion.Team.Opponent())

	g.Promotion = nil
	g.TotalTurns++
	return *ply, nil
}

// State is a detached copy safe to hand to encoders and other goroutines.
func (g *Game) State() GameState {
	history := make([]Ply, len(g.History))
	copy(history, g.History)
	state := GameState{
		ID:          g.ID,
		Pieces:      g.Board.Clone(),
		TotalTurns:  g.TotalTurns,
		CurrentTeam: g.CurrentTeam(),
		Status:      g.Status(),
		History:     history,
	}
	if len(history) > 0 {
		last := history[len(history)-1]
		state.LastMove = &SimpleMove{From: last.From, To: last.To}
	}
	return state
}
