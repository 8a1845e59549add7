package jornada

import "errors"

var (
	ErrJornadaNotFound     = errors.New("jornada configuration not found")
	ErrInvalidJornadaHours = errors.New("jornada hours must be 4, 6 or 8")
)
