package model

import "fmt"

const boardSize = 8

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func SamePosition(a, b Position) bool {
	return a.X == b.X && a.Y == b.Y
}

func IsInsideBoard(p Position) bool {
	return p.X >= 0 && p.X < boardSize && p.Y >= 0 && p.Y < boardSize
}

func (p Position) add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// getSquareNotation renders the square as file letter plus rank, rank 1 being y == 0.
func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+97, p.Y+1)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.X+97)
}

func (p Position) String() string {
	if !IsInsideBoard(p) {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return p.getSquareNotation()
}

func containsPosition(positions []Position, p Position) bool {
	for _, candidate := range positions {
		if SamePosition(candidate, p) {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
