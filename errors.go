package resampler

import "errors"

// Construction errors.
var (
	// ErrInvalidConfig indicates invalid construction parameters.
	ErrInvalidConfig = errors.New("invalid resampler configuration")
)

// Processing errors. A failed Process call leaves the instance unchanged.
var (
	// ErrWrongChannelCount indicates an input or output buffer with the
	// wrong number of channels.
	ErrWrongChannelCount = errors.New("wrong number of channels")

	// ErrWrongFrameCount indicates an input buffer whose per-channel length
	// does not match InputFramesNext.
	ErrWrongFrameCount = errors.New("wrong number of input frames")

	// ErrInsufficientOutput indicates an output buffer shorter than
	// OutputFramesNext.
	ErrInsufficientOutput = errors.New("output buffer too short")
)

// Ratio and chunk-size errors.
var (
	// ErrRatioOutOfBounds indicates a requested ratio outside the range
	// allowed by the construction ratio and maxResampleRatioRelative.
	ErrRatioOutOfBounds = errors.New("resample ratio out of bounds")

	// ErrSyncNotAdjustable is returned by synchronous resamplers, whose
	// ratio is fixed at construction.
	ErrSyncNotAdjustable = errors.New("synchronous resampler ratio is not adjustable")

	// ErrInvalidChunkSize indicates a chunk size of zero or above the
	// construction value.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrChunkSizeNotAdjustable is returned by resamplers whose block size
	// is fixed at construction.
	ErrChunkSizeNotAdjustable = errors.New("chunk size is not adjustable")
)
