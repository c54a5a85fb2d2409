package scoring

import "errors"

var (
	// ErrUnknownAircraftType is returned when a type code is not in the spec table
	ErrUnknownAircraftType = errors.New("unknown aircraft type")
	// ErrNoCandidates is returned when the fleet optimizer is given nothing to rank
	ErrNoCandidates = errors.New("no candidate aircraft types")
	// ErrInvalidSpec is returned when a spec table fails construction checks
	ErrInvalidSpec = errors.New("invalid aircraft spec")
)
