package domain

import "fmt"

// Weather is one of the fixed set of weather categories accepted by the API.
type Weather string

const (
	WeatherClear   Weather = "Clear"
	WeatherFog     Weather = "Fog"
	WeatherRain    Weather = "Rain"
	WeatherSnow    Weather = "Snow"
	WeatherExtreme Weather = "Extreme"
)

// severityByWeather is the ordinal severity encoding the delay model was
// fitted against. The values are an external contract: changing them without
// refitting the model silently corrupts every prediction.
var severityByWeather = map[Weather]float64{
	WeatherClear:   1,
	WeatherFog:     2,
	WeatherRain:    3,
	WeatherSnow:    4,
	WeatherExtreme: 5,
}

// WeatherCategories lists the accepted categories in increasing severity order.
func WeatherCategories() []Weather {
	return []Weather{WeatherClear, WeatherFog, WeatherRain, WeatherSnow, WeatherExtreme}
}

// Severity maps the weather category to its numeric severity scalar.
// Unknown categories are rejected rather than defaulted: the transport layer
// should already have filtered them, but the encoder must not guess.
func (w Weather) Severity() (float64, error) {
	s, ok := severityByWeather[w]
	if !ok {
		return 0, fmt.Errorf("encode weather: unknown category %q", w)
	}
	return s, nil
}

// Valid reports whether the category is part of the accepted set.
func (w Weather) Valid() bool {
	_, ok := severityByWeather[w]
	return ok
}
