package model

import "errors"

var (
	ErrInvalidFEN       = errors.New("invalid FEN")
	ErrInvalidSquare    = errors.New("invalid square")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
)
