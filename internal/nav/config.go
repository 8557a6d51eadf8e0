package nav

import "github.com/chewxy/math32"

// Config holds the navigation tuning constants.
type Config struct {
	Speed    float32 `mapstructure:"speed"`
	Damping  float32 `mapstructure:"damping"`
	Deadzone float32 `mapstructure:"deadzone"`

	EyeHeight          float32 `mapstructure:"eyeHeight"`
	FollowFactor       float32 `mapstructure:"followFactor"`
	SeatedFollowFactor float32 `mapstructure:"seatedFollowFactor"`

	PointerSensitivity float32 `mapstructure:"pointerSensitivity"`
	TouchSensitivity   float32 `mapstructure:"touchSensitivity"`
	// PitchLimitDeg is the symmetric pitch clamp in degrees.
	PitchLimitDeg float32 `mapstructure:"pitchLimitDeg"`
}

// DefaultConfig returns the tuning used by the exhibition.
func DefaultConfig() Config {
	return Config{
		Speed:              10,
		Damping:            0.8,
		Deadzone:           0.01,
		EyeHeight:          0.6,
		FollowFactor:       0.5,
		SeatedFollowFactor: 0.25,
		PointerSensitivity: 0.002,
		TouchSensitivity:   0.0012,
		PitchLimitDeg:      90,
	}
}

func (c Config) pitchLimit() float32 {
	return c.PitchLimitDeg * math32.Pi / 180
}
