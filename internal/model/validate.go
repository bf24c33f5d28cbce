package model

import (
	"errors"
	"fmt"
)

var ErrInvalidBoard = errors.New("invalid board")

// Validate checks a snapshot received from outside before the engine trusts it.
// All problems are reported together.
func (b Board) Validate() error {
	var errs []error
	ids := make(map[int]bool, len(b))
	squares := make(map[Position]int, len(b))
	kings := map[Team]int{}
	enPassant := map[Team]int{}

	for _, piece := range b {
		if !piece.Team.valid() {
			errs = append(errs, fmt.Errorf("piece %d: unknown team %q", piece.ID, piece.Team))
		}
		if !piece.Type.valid() {
			errs = append(errs, fmt.Errorf("piece %d: unknown type %q", piece.ID, piece.Type))
		}
		if !IsInsideBoard(piece.Position) {
			errs = append(errs, fmt.Errorf("piece %d: position %s is off the board", piece.ID, piece.Position))
		}
		if ids[piece.ID] {
			errs = append(errs, fmt.Errorf("piece %d: duplicate id", piece.ID))
		}
		ids[piece.ID] = true
		if other, taken := squares[piece.Position]; taken {
			errs = append(errs, fmt.Errorf("pieces %d and %d share %s", other, piece.ID, piece.Position))
		} else {
			squares[piece.Position] = piece.ID
		}
		if piece.IsKing() {
			kings[piece.Team]++
		}
		if piece.EnPassant {
			if !piece.IsPawn() {
				errs = append(errs, fmt.Errorf("piece %d: en passant flag on a %s", piece.ID, piece.Type))
			} else if piece.Team.valid() && piece.Position.Y != piece.Team.doubleStepRank() {
				errs = append(errs, fmt.Errorf("piece %d: en passant flag off the double-step rank at %s", piece.ID, piece.Position))
			}
			enPassant[piece.Team]++
		}
		for _, pos := range piece.PossibleMoves {
			if !IsInsideBoard(pos) {
				errs = append(errs, fmt.Errorf("piece %d: possible move %s is off the board", piece.ID, pos))
			}
		}
	}
	for _, team := range []Team{TeamOur, TeamOpponent} {
		if kings[team] > 1 {
			errs = append(errs, fmt.Errorf("team %s has %d kings", team, kings[team]))
		}
		if enPassant[team] > 1 {
			errs = append(errs, fmt.Errorf("team %s has %d en passant pawns", team, enPassant[team]))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidBoard, errors.Join(errs...))
}
