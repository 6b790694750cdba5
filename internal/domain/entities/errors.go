package entities

import "errors"

// Domain errors
var (
	// Generation errors
	ErrMissingTitle       = errors.New("meeting title is required")
	ErrMissingDuration    = errors.New("meeting duration is required")
	ErrMissingTopic       = errors.New("agenda item topic is required")
	ErrMissingAgendaItems = errors.New("agenda items list is missing")
	ErrEmptyResponse      = errors.New("empty response from model")
	ErrMalformedAgenda    = errors.New("model response is not a valid agenda")

	// Session errors
	ErrSessionNotFound = errors.New("edit session not found")
)
