package versioncell

import "github.com/e7canasta/orion-care-sensor/modules/versioncell/internal"

// Public errors
var (
	// ErrReaderConsumed is the panic value raised when a Reader is used after
	// Reader.Updates converted it into an update stream.
	ErrReaderConsumed = internal.ErrReaderConsumed

	// ErrStreamOwned is the panic value raised when Updates.Next, All or Chan
	// is called after Updates.Chan took the stream over.
	ErrStreamOwned = internal.ErrStreamOwned

	// ErrUnknownPollMode is returned by ParsePollMode for unrecognised names.
	ErrUnknownPollMode = internal.ErrUnknownPollMode
)
