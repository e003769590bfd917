package model

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidTransition = goerr.New("invalid brief status transition")
	ErrValidation        = goerr.New("validation failed")
	ErrInvalidRecord     = goerr.New("invalid record")
)

// Context keys for error values
const (
	BriefIDKey    = "brief_id"
	ResponseIDKey = "brief_response_id"
	StatusKey     = "status"
	NextStatusKey = "next_status"
	FieldKey      = "field"
)
