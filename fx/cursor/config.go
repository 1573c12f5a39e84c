package cursor

// Config holds the particle engine constants.
type Config struct {
	// DecayStep is subtracted from every particle's life once per tick.
	DecayStep      float64 `mapstructure:"decay_step" validate:"gt=0,lte=1"`
	BurstSize      int     `mapstructure:"burst_size" validate:"gte=0"`
	SteadyEmission int     `mapstructure:"steady_emission" validate:"gte=0"`
	HoverEmission  int     `mapstructure:"hover_emission" validate:"gte=0"`
	Drag           float64 `mapstructure:"drag" validate:"gt=0,lte=1"`
	AttractRadius  float64 `mapstructure:"attract_radius" validate:"gte=0"`
	AttractCoeff   float64 `mapstructure:"attract_coeff" validate:"gte=0"`
	// Jitter is the half-extent of the square new steady particles are scattered over.
	Jitter      float64 `mapstructure:"jitter" validate:"gte=0"`
	PointerFine bool    `mapstructure:"pointer_fine"`
	// Follower tunes the spring-follower variant.
	Follower FollowerSprings `mapstructure:"follower"`
}

// FollowerSprings are the follower's dot and ring springs.
type FollowerSprings struct {
	Dot  Spring `mapstructure:"dot"`
	Ring Spring `mapstructure:"ring"`
}

func DefaultConfig() Config {
	return Config{
		DecayStep:      0.02,
		BurstSize:      20,
		SteadyEmission: 1,
		HoverEmission:  4,
		Drag:           0.95,
		AttractRadius:  100,
		AttractCoeff:   0.005,
		Jitter:         5,
		PointerFine:    true,
		Follower: FollowerSprings{
			Dot:  Spring{Stiffness: 800, Damping: 50},
			Ring: Spring{Stiffness: 150, Damping: 18},
		},
	}
}
