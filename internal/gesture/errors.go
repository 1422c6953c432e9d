package gesture

import "errors"

var (
	// ErrInvalidSettings is returned when a configuration breaks a layout or timing invariant.
	ErrInvalidSettings = errors.New("invalid gesture settings")
	// ErrInvalidGeometry is returned when the surface size cannot host a session.
	ErrInvalidGeometry = errors.New("invalid screen geometry")
	// ErrMalformedSequence is returned for events that do not fit the current session.
	ErrMalformedSequence = errors.New("malformed pointer sequence")
	// ErrSessionAborted is returned when a session could not schedule its timers.
	ErrSessionAborted = errors.New("gesture session aborted")
)
