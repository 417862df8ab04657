package domain

import "errors"

// ErrStateNotFound is returned when a state ID cannot be resolved by the catalog.
var ErrStateNotFound = errors.New("state not found")

// ErrTransitionNotFound is returned when a transition ID cannot be resolved by the catalog.
var ErrTransitionNotFound = errors.New("transition not found")

// ErrDuplicateID is returned when a catalog defines the same ID twice.
var ErrDuplicateID = errors.New("duplicate id")

// ErrInvalidEvent is returned when an upstream event is malformed.
var ErrInvalidEvent = errors.New("invalid event")

// ErrInvalidHistorySize is returned for negative history capacities.
var ErrInvalidHistorySize = errors.New("invalid history size")
