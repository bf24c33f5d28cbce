package service

import "errors"

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrGameExists         = errors.New("game already exists")
	ErrConnectionNotFound = errors.New("connection not found")
	ErrInvalidRequest     = errors.New("invalid request")
)
