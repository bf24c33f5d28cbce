package model

type CheckedKing struct {
	Team     Team     `json:"team"`
	Position Position `json:"position"`
}

// GetCheckedKing returns the first king, in board order, whose square appears in
// an enemy piece's cached move set.
func GetCheckedKing(board Board) *CheckedKing {
	for _, piece := range board {
		if piece.IsKing() && board.IsAttackedBy(piece.Position, piece.Team.Opponent()) {
			return &CheckedKing{Team: piece.Team, Position: piece.Position}
		}
	}
	return nil
}

func IsInCheck(board Board, team Team) bool {
	king, ok := board.King(team)
	return ok && board.IsAttackedBy(king.Position, team.Opponent())
}

// CheckWinningTeam names the side whose opponent has lost its king, or nil while
// both kings stand.
func CheckWinningTeam(board Board) *Team {
	_, ourKing := board.King(TeamOur)
	_, opponentKing := board.King(TeamOpponent)
	switch {
	case ourKing && !opponentKing:
		winner := TeamOur
		return &winner
	case opponentKing && !ourKing:
		winner := TeamOpponent
		return &winner
	}
	return nil
}

// IsCheckmate reports whether team is in check and no move of any of its pieces
// leaves its king out of the enemy's reach.
func IsCheckmate(board Board, team Team) bool {
	if !IsInCheck(board, team) {
		return false
	}
	for _, piece := range board {
		if piece.Team != team {
			continue
		}
		for _, to := range LegalMoves(piece, board) {
			next, ok := ApplyMove(board, piece.Position, to)
			if ok && !IsInCheck(next, team) {
				return false
			}
		}
	}
	return true
}
