// Command resample-wav converts a WAV file to a different sample rate.
//
// Usage:
//
//	resample-wav -in input.wav -out output.wav -rate 48000 [-engine sinc|fft]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
	"github.com/tphakala/simd/f64"

	resampler "github.com/tphakala/go-stream-resampler"
)

const chunkSize = 8192

func main() {
	inPath := flag.String("in", "", "input WAV file")
	outPath := flag.String("out", "", "output WAV file")
	rate := flag.Int("rate", 48000, "target sample rate in Hz")
	engine := flag.String("engine", "fft", "resampling engine: sinc or fft")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*inPath, *outPath, *rate, *engine); err != nil {
		logrus.WithError(err).Fatal("resampling failed")
	}
}

func run(inPath, outPath string, rate int, engine string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	decoder := wav.NewDecoder(in)
	if !decoder.IsValidFile() {
		return fmt.Errorf("%s is not a valid WAV file", inPath)
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}

	channels := buf.Format.NumChannels
	srcRate := buf.Format.SampleRate
	bitDepth := int(decoder.BitDepth)

	logrus.WithFields(logrus.Fields{
		"file":      inPath,
		"rate":      srcRate,
		"channels":  channels,
		"bit_depth": bitDepth,
		"frames":    buf.NumFrames(),
	}).Debug("decoded input")

	input := deinterleave(buf.Data, channels, bitDepth)

	var rs resampler.Resampler[float64]
	switch engine {
	case "sinc":
		rs, err = resampler.NewSincFixedIn[float64](float64(rate)/float64(srcRate), chunkSize, channels)
	case "fft":
		rs, err = resampler.NewFftFixedIn[float64](srcRate, rate, chunkSize, channels)
	default:
		return fmt.Errorf("unknown engine %q", engine)
	}
	if err != nil {
		return err
	}

	output, err := resampleAll(rs, input)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	encoder := wav.NewEncoder(out, rate, bitDepth, channels, 1)
	outBuf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           interleave(output, bitDepth),
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(outBuf); err != nil {
		return fmt.Errorf("encoding %s: %w", outPath, err)
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"file":   outPath,
		"rate":   rate,
		"frames": len(output[0]),
	}).Info("wrote resampled file")
	return nil
}

// resampleAll streams the whole signal through rs in fixed-size chunks,
// zero-padding the final partial chunk and flushing the filter tail.
func resampleAll(rs resampler.Resampler[float64], input [][]float64) ([][]float64, error) {
	channels := rs.NbrChannels()
	frames := len(input[0])
	output := make([][]float64, channels)

	pos := 0
	chunk := make([][]float64, channels)
	for pos+rs.InputFramesNext() <= frames {
		n := rs.InputFramesNext()
		for ch := range chunk {
			chunk[ch] = input[ch][pos : pos+n]
		}
		out, err := rs.Process(chunk)
		if err != nil {
			return nil, err
		}
		for ch := range output {
			output[ch] = append(output[ch], out[ch]...)
		}
		pos += n
	}

	// Remainder plus one silent chunk to flush the group delay.
	for ch := range chunk {
		chunk[ch] = input[ch][pos:]
	}
	for _, part := range [][][]float64{chunk, nil} {
		out, err := rs.ProcessPartial(part)
		if err != nil {
			return nil, err
		}
		for ch := range output {
			output[ch] = append(output[ch], out[ch]...)
		}
	}
	return output, nil
}

// pcmOffset returns the integer midpoint of the PCM encoding: 8-bit WAV is
// unsigned and centered on 128, deeper formats are signed two's complement.
func pcmOffset(bitDepth int) float64 {
	if bitDepth == 8 {
		return 128.0
	}
	return 0.0
}

func deinterleave(data []int, channels, bitDepth int) [][]float64 {
	frames := len(data) / channels
	scale := 1.0 / float64(int(1)<<(bitDepth-1))
	offset := pcmOffset(bitDepth)
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
		for i := 0; i < frames; i++ {
			out[ch][i] = (float64(data[i*channels+ch]) - offset) * scale
		}
	}
	return out
}

func interleave(planar [][]float64, bitDepth int) []int {
	channels := len(planar)
	frames := len(planar[0])
	scale := float64(int(1) << (bitDepth - 1))
	offset := pcmOffset(bitDepth)
	lo := -scale + offset
	hi := scale - 1 + offset

	flat := make([]float64, channels*frames)
	if channels == 2 {
		f64.Interleave2(flat, planar[0], planar[1])
	} else {
		for ch := range planar {
			for i, v := range planar[ch] {
				flat[i*channels+ch] = v
			}
		}
	}

	data := make([]int, len(flat))
	for i, v := range flat {
		s := v*scale + offset
		if s > hi {
			s = hi
		}
		if s < lo {
			s = lo
		}
		data[i] = int(s)
	}
	return data
}
