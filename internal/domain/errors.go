package domain

import "errors"

var (
	// ErrInvalidUsername is returned when a session is started with a
	// blank display name.
	ErrInvalidUsername = errors.New("username is required")
	// ErrSessionNotFound is returned for unknown or finalized session IDs.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrNoActiveQuestion is returned when a hint or answer arrives
	// before a question has been drawn.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrNoHintsLeft is returned once the five-hint budget is spent.
	ErrNoHintsLeft = errors.New("no hints left")
	// ErrQuestionMismatch is returned when a submission references a
	// question that is not the session's active one.
	ErrQuestionMismatch = errors.New("question does not match the active question")
	// ErrCatalogExhausted is returned by catalogs that have no unseen
	// movies left for a session.
	ErrCatalogExhausted = errors.New("no more unique questions available")
	// ErrMovieNotFound indicates the catalog content could not be loaded.
	ErrMovieNotFound = errors.New("movie not found")
)
