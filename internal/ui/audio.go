package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundCheck
	SoundCastle
	SoundPromote
	SoundUndo
	SoundInvalid
	SoundGameEnd
)

const (
	sampleRate = 44100
)

// AudioManager handles sound effect playback.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates a new audio manager.
func NewAudioManager() *AudioManager {
	am := &AudioManager{
		context: audioContext(),
		sounds:  make(map[SoundType][]byte),
		enabled: true,
		volume:  0.5,
	}
	am.generateSounds()
	return am
}

var sharedContext *audio.Context

// audioContext returns the process audio context; ebiten allows only one.
func audioContext() *audio.Context {
	if sharedContext == nil {
		sharedContext = audio.NewContext(sampleRate)
	}
	return sharedContext
}

// generateSounds creates procedural sounds for each event type.
func (am *AudioManager) generateSounds() {
	// Move sound: short click (wood on wood)
	am.sounds[SoundMove] = generateClick(440, 0.08, 0.3)

	// Capture sound: sharper impact
	am.sounds[SoundCapture] = generateClick(330, 0.12, 0.5)

	// Check sound: alert tone
	am.sounds[SoundCheck] = generateTone(880, 0.15, 0.4)

	// Castle sound: double click
	am.sounds[SoundCastle] = concat(generateClick(400, 0.06, 0.3), silence(0.05), generateClick(440, 0.06, 0.24))

	// Promotion: rising pair of tones
	am.sounds[SoundPromote] = concat(generateTone(523.25, 0.08, 0.3), generateTone(783.99, 0.12, 0.3))

	// Undo: soft low click
	am.sounds[SoundUndo] = generateClick(260, 0.06, 0.2)

	// Invalid sound: low buzz
	am.sounds[SoundInvalid] = generateBuzz(150, 0.1, 0.3)

	// Game end sound: C major chord
	am.sounds[SoundGameEnd] = generateChord([]float64{261.63, 329.63, 392.00}, 0.4, 0.5)
}

// synth renders duration seconds of 16-bit stereo PCM from a sample function.
func synth(duration float64, sample func(t, progress float64) float64) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4) // stereo 16-bit

	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		v := math.Max(-1, math.Min(1, sample(t, t/duration)))
		val := int16(v * 32767)
		// Write stereo samples (left and right)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func silence(duration float64) []byte {
	return make([]byte, int(sampleRate*duration)*4)
}

// generateClick creates a short percussive click sound.
func generateClick(freq, duration, amplitude float64) []byte {
	i := 0.0
	return synth(duration, func(t, _ float64) float64 {
		// Exponential decay envelope
		envelope := math.Exp(-t * 30)
		// Some noise for wood texture
		noise := (math.Sin(i*0.3) + math.Sin(i*0.7)) * 0.3
		i++
		return (math.Sin(2*math.Pi*freq*t) + noise) * envelope * amplitude
	})
}

// generateTone creates a simple tone with attack and decay.
func generateTone(freq, duration, amplitude float64) []byte {
	return synth(duration, func(t, progress float64) float64 {
		envelope := 1.0 - (progress-0.1)/0.9
		if progress < 0.1 {
			envelope = progress / 0.1
		}
		return math.Sin(2*math.Pi*freq*t) * envelope * amplitude
	})
}

// generateBuzz creates a low error buzz.
func generateBuzz(freq, duration, amplitude float64) []byte {
	return synth(duration, func(t, progress float64) float64 {
		// Square-ish wave with linear decay
		wave := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
		return wave * (1.0 - progress) * amplitude * 0.5
	})
}

// generateChord creates a chord that fades in then out.
func generateChord(freqs []float64, duration, amplitude float64) []byte {
	return synth(duration, func(t, progress float64) float64 {
		envelope := 1.0
		if progress < 0.1 {
			envelope = progress / 0.1
		} else if progress > 0.7 {
			envelope = (1.0 - progress) / 0.3
		}

		sum := 0.0
		for _, f := range freqs {
			sum += math.Sin(2 * math.Pi * f * t)
		}
		return sum / float64(len(freqs)) * envelope * amplitude
	})
}

// Play plays a sound effect.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}

	data, ok := am.sounds[sound]
	if !ok {
		return
	}

	// Create a new player for each play (allows overlapping sounds)
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// SetVolume sets the audio volume (0.0 to 1.0).
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = math.Max(0, math.Min(1, volume))
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
