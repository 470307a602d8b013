package alert

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// Step switches the tone frequency at an offset from the start.
type Step struct {
	At        time.Duration
	Frequency float64
}

// Tone is a short sine chirp with an exponential fade.
type Tone struct {
	SampleRate int
	Duration   time.Duration
	Steps      []Step
	StartGain  float64
	EndGain    float64
}

// CompletionTone is the 800/600/800 Hz chime played when a session ends.
func CompletionTone() Tone {
	return Tone{
		SampleRate: 22050,
		Duration:   300 * time.Millisecond,
		Steps: []Step{
			{At: 0, Frequency: 800},
			{At: 100 * time.Millisecond, Frequency: 600},
			{At: 200 * time.Millisecond, Frequency: 800},
		},
		StartGain: 0.3,
		EndGain:   0.01,
	}
}

// Samples renders the tone as signed 16-bit mono PCM.
func (tone Tone) Samples() []int16 {
	count := int(tone.Duration.Seconds() * float64(tone.SampleRate))
	if count <= 0 || len(tone.Steps) == 0 {
		return nil
	}
	samples := make([]int16, count)
	phase := 0.0
	step := 0
	for i := range samples {
		at := time.Duration(float64(i) / float64(tone.SampleRate) * float64(time.Second))
		for step+1 < len(tone.Steps) && at >= tone.Steps[step+1].At {
			step++
		}
		phase += 2 * math.Pi * tone.Steps[step].Frequency / float64(tone.SampleRate)

		progress := float64(i) / float64(count)
		gain := tone.StartGain
		if tone.StartGain > 0 && tone.EndGain > 0 {
			gain = tone.StartGain * math.Pow(tone.EndGain/tone.StartGain, progress)
		}
		samples[i] = int16(math.Sin(phase) * gain * math.MaxInt16)
	}
	return samples
}

// WAV encodes the tone as a RIFF/WAVE file.
func (tone Tone) WAV() []byte {
	samples := tone.Samples()
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := len(samples) * 2
	byteRate := tone.SampleRate * channels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.Grow(44 + dataSize)
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(tone.SampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels*bitsPerSample/8))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}
