package analytics

import "time"

// Season is one of the four Southern-Hemisphere calendar seasons.
type Season string

// Season names as served to the dashboard. The mapping and order are
// fixed (Australian market): December-February is summer.
const (
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
)

// Seasons lists the four seasons in their fixed output order.
var Seasons = [4]Season{SeasonSummer, SeasonAutumn, SeasonWinter, SeasonSpring}

// SeasonOf maps a departure date to its Southern-Hemisphere season,
// keyed off the calendar month only.
func SeasonOf(t time.Time) Season {
	switch t.Month() {
	case time.December, time.January, time.February:
		return SeasonSummer
	case time.March, time.April, time.May:
		return SeasonAutumn
	case time.June, time.July, time.August:
		return SeasonWinter
	default: // September, October, November
		return SeasonSpring
	}
}
