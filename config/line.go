package config

import (
	"github.com/kilianp07/ridership/core/model"
)

// LineConfig describes the simulated line in travel order.
type LineConfig struct {
	Name     string                 `json:"name"`
	Stations []model.StationProfile `json:"stations"`
}

// SetDefaults falls back to the CTA Blue Line weekday table.
func (c *LineConfig) SetDefaults() {
	if len(c.Stations) == 0 {
		c.Stations = BlueLineStations()
		if c.Name == "" {
			c.Name = BlueLineName
		}
	}
	if c.Name == "" {
		c.Name = "line"
	}
}

// Validate checks that the stations form a usable line.
func (c LineConfig) Validate() error {
	_, err := c.Build()
	return err
}

// Build returns the validated line.
func (c LineConfig) Build() (model.Line, error) {
	return model.NewLine(c.Name, c.Stations)
}

// BlueLineName is the name of the default line.
const BlueLineName = "CTA Blue Line"

// BlueLineStations returns the weekday daily entries of the CTA Blue Line
// stations, mean and standard deviation.
func BlueLineStations() []model.StationProfile {
	return []model.StationProfile{
		{Name: "Addison-O'Hare", MeanRiders: 2455, StddevRiders: 917},
		{Name: "Austin-Forest Park", MeanRiders: 1629, StddevRiders: 605},
		{Name: "Belmont-O'Hare", MeanRiders: 4532, StddevRiders: 1447},
		{Name: "California/Milwaukee", MeanRiders: 4609, StddevRiders: 1421},
		{Name: "Chicago/Milwaukee", MeanRiders: 3469, StddevRiders: 1269},
		{Name: "Cicero-Forest Park", MeanRiders: 1220, StddevRiders: 307},
		{Name: "Clark/Lake", MeanRiders: 16359, StddevRiders: 7331},
		{Name: "Clinton-Forest Park", MeanRiders: 3020, StddevRiders: 1196},
		{Name: "Cumberland", MeanRiders: 3750, StddevRiders: 1387},
		{Name: "Damen/Milwaukee", MeanRiders: 5865, StddevRiders: 1463},
		{Name: "Division/Milwaukee", MeanRiders: 5153, StddevRiders: 1749},
		{Name: "Forest Park", MeanRiders: 2854, StddevRiders: 998},
		{Name: "Grand/Milwaukee", MeanRiders: 2375, StddevRiders: 722},
		{Name: "Harlem-Forest Park", MeanRiders: 1020, StddevRiders: 348},
		{Name: "Medical Center", MeanRiders: 2278, StddevRiders: 1134},
		{Name: "Irving Park-O'Hare", MeanRiders: 3694, StddevRiders: 1130},
		{Name: "Jackson/Dearborn", MeanRiders: 6026, StddevRiders: 2466},
		{Name: "Jefferson Park", MeanRiders: 5647, StddevRiders: 1807},
		{Name: "Kedzie-Homan-Forest Park", MeanRiders: 1835, StddevRiders: 489},
		{Name: "LaSalle", MeanRiders: 2529, StddevRiders: 1002},
		{Name: "Logan Square", MeanRiders: 6271, StddevRiders: 1859},
		{Name: "Monroe/Dearborn", MeanRiders: 6310, StddevRiders: 2868},
		{Name: "Montrose-O'Hare", MeanRiders: 2141, StddevRiders: 767},
		{Name: "O'Hare Airport", MeanRiders: 10832, StddevRiders: 2082},
		{Name: "Oak Park-Forest Park", MeanRiders: 1466, StddevRiders: 621},
		{Name: "Pulaski-Forest Park", MeanRiders: 1615, StddevRiders: 297},
		{Name: "Racine", MeanRiders: 1843, StddevRiders: 772},
		{Name: "Rosemont", MeanRiders: 5598, StddevRiders: 1685},
		{Name: "UIC-Halsted", MeanRiders: 4686, StddevRiders: 2737},
		{Name: "Washington/Dearborn", MeanRiders: 10718, StddevRiders: 3669},
		{Name: "Western-Forest Park", MeanRiders: 1421, StddevRiders: 424},
		{Name: "Western/Milwaukee", MeanRiders: 4496, StddevRiders: 1564},
	}
}
