package sim

// Weather is the global condition perturbing vision and movement cadence.
type Weather uint8

const (
	WeatherClear Weather = iota
	WeatherFog
	WeatherStorm
)

func (w Weather) String() string {
	switch w {
	case WeatherClear:
		return "clear"
	case WeatherFog:
		return "fog"
	case WeatherStorm:
		return "storm"
	default:
		return "unknown"
	}
}

const (
	weatherPeriod    = 100 // ticks between weather re-rolls
	fogVisionPenalty = 2   // vision radius lost under fog
	minVisionRadius  = 2   // fog never blinds a unit completely
)

// moveCooldownMul returns the movement-cooldown scale for the weather.
func (w Weather) moveCooldownMul() float64 {
	if w == WeatherStorm {
		return 1.5
	}
	return 1.0
}

// visionPenalty returns the vision radius reduction for the weather.
func (w Weather) visionPenalty() int {
	if w == WeatherFog {
		return fogVisionPenalty
	}
	return 0
}

// updateWeather re-rolls the global weather on its fixed period.
// Clear is twice as likely as either disturbance.
func (w *World) updateWeather() {
	if w.tick%weatherPeriod != 0 {
		return
	}
	switch w.rng.Intn(4) {
	case 0:
		w.weather = WeatherFog
	case 1:
		w.weather = WeatherStorm
	default:
		w.weather = WeatherClear
	}
}
