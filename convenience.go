package resampler

// DefaultMaxRatioRelative is the ratio adjustment range used by the
// convenience constructors: the ratio may move within a factor of 10 of the
// construction value in either direction.
const DefaultMaxRatioRelative = 10.0

// DefaultSincConfig returns filter parameters suitable for high quality
// conversion: a 256-tap filter with 128 phases, cubic phase interpolation
// and a squared Blackman-Harris window.
func DefaultSincConfig() SincConfig {
	return SincConfig{
		SincLen:       128,
		FCutoff:       0.95,
		Oversampling:  128,
		Interpolation: InterpolationCubic,
		Window:        WindowBlackmanHarris2,
	}
}

// NewSincFixedIn creates an asynchronous resampler with the default filter
// that consumes exactly chunkSize frames per call.
func NewSincFixedIn[F Float](ratio float64, chunkSize, channels int) (*Sinc[F], error) {
	return NewSinc[F](ratio, DefaultMaxRatioRelative, DefaultSincConfig(), chunkSize, channels, FixedInput)
}

// NewSincFixedOut creates an asynchronous resampler with the default filter
// that produces exactly chunkSize frames per call.
func NewSincFixedOut[F Float](ratio float64, chunkSize, channels int) (*Sinc[F], error) {
	return NewSinc[F](ratio, DefaultMaxRatioRelative, DefaultSincConfig(), chunkSize, channels, FixedOutput)
}

// Common sample rates in Hz.
const (
	Rate8000   = 8000
	Rate11025  = 11025
	Rate16000  = 16000
	Rate22050  = 22050
	Rate44100  = 44100
	Rate48000  = 48000
	Rate88200  = 88200
	Rate96000  = 96000
	Rate176400 = 176400
	Rate192000 = 192000
)
