package model

import "errors"

var (
	ErrGameOver           = errors.New("game is over")
	ErrNoPiece            = errors.New("no piece at from square")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrIllegalMove        = errors.New("invalid move, not legal")
	ErrPromotionPending   = errors.New("promotion choice pending")
	ErrNoPromotionPending = errors.New("no promotion pending")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
)
