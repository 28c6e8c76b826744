// Package resampler converts audio between sample rates in streamed chunks.
//
// Two engines are provided behind the common Resampler interface:
//
//   - Sinc: asynchronous conversion by any real ratio, adjustable at
//     runtime. Output samples are interpolated from an oversampled
//     windowed-sinc filter bank driven by a fractional read cursor. Use it
//     for varispeed playback, clock drift compensation, or whenever the
//     ratio is not a simple fraction.
//
//   - Fft and FftFixedIn: synchronous conversion by a fixed rational ratio
//     using overlap-add FFT convolution. Cheaper than Sinc for plain rate
//     conversion such as 44100 to 48000 Hz.
//
// Buffers are non-interleaved, indexed as buf[channel][frame], and every
// channel is processed in lockstep. Samples are generic over float32 and
// float64; one precision per instance.
//
// A minimal fixed-input loop:
//
//	rs, err := resampler.NewSincFixedIn[float64](48000.0/44100.0, 1024, 2)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out := resampler.MakeBuffer[float64](2, rs.OutputFramesMax(), false)
//	for {
//		input := readFrames(rs.InputFramesNext())
//		if input == nil {
//			break
//		}
//		_, n, err := rs.ProcessInto(input, out)
//		if err != nil {
//			log.Fatal(err)
//		}
//		writeFrames(out, n)
//	}
//
// The first OutputDelay frames of the stream are filter transient; drain
// the tail at end of stream by calling ProcessPartial with the remaining
// short chunk and then with nil.
//
// Instances are not safe for concurrent use. For multichannel work across
// goroutines, create one instance per goroutine.
package resampler
