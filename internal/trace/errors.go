package trace

import (
	"errors"
	"fmt"
)

var (
	// ErrNoOpenEvent indicates an end call on a track whose span stack is empty.
	ErrNoOpenEvent = errors.New("no open event to end")
	// ErrNameMismatch indicates an end call whose asserted name differs from
	// the most recently opened span on the track.
	ErrNameMismatch = errors.New("end event name mismatch")
	// ErrExtent indicates a complete-event call without a valid extent.
	ErrExtent = errors.New("complete event requires exactly one of end timestamp or duration")
	// ErrNegativeDuration indicates a complete event whose computed duration
	// came out negative.
	ErrNegativeDuration = errors.New("negative event duration")
	// ErrTrackNotRegistered indicates a track value this tracer never minted.
	ErrTrackNotRegistered = errors.New("track not registered with this tracer")
	// ErrModuleNotRegistered indicates a module value this tracer never minted.
	ErrModuleNotRegistered = errors.New("module not registered with this tracer")
	// ErrNonFinite indicates a NaN or infinite cycle value.
	ErrNonFinite = errors.New("non-finite cycle value")
	// ErrNoTracer indicates that the context carries no tracer.
	ErrNoTracer = errors.New("no tracer attached to context")
	// ErrSnapshotSchema indicates a snapshot written by an incompatible version.
	ErrSnapshotSchema = errors.New("snapshot schema version mismatch")
)

func errUnknownPhase(p Phase) error {
	return fmt.Errorf("unknown event phase %d", uint8(p))
}
