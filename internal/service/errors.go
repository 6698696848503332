package service

import "errors"

var (
	ErrUnauthorized = errors.New("invalid game password")
)
