package model

import (
	"fmt"
	"strings"
)

// Weather is the weather category applied to a simulated day.
type Weather string

const (
	WeatherInclement Weather = "inclement"
	WeatherSunny     Weather = "sunny"
	WeatherOther     Weather = "other"
)

// BigEventMultiplier scales demand on days with a big event in the city.
const BigEventMultiplier = 1.6

// ParseWeather maps a configuration value to a Weather. The empty string is
// treated as WeatherOther.
func ParseWeather(s string) (Weather, error) {
	switch w := Weather(strings.ToLower(strings.TrimSpace(s))); w {
	case "":
		return WeatherOther, nil
	case WeatherInclement, WeatherSunny, WeatherOther:
		return w, nil
	default:
		return "", fmt.Errorf("unknown weather %q", s)
	}
}

// Multiplier returns the demand scaling factor for the weather category.
func (w Weather) Multiplier() float64 {
	switch w {
	case WeatherInclement:
		return 0.8
	case WeatherSunny:
		return 1.5
	default:
		return 1.0
	}
}

// DemandMultiplier combines the weather and big event scaling factors.
func DemandMultiplier(w Weather, bigEvent bool) float64 {
	m := w.Multiplier()
	if bigEvent {
		m *= BigEventMultiplier
	}
	return m
}
