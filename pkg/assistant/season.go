package assistant

import "time"

// Season names follow the Indian cropping calendar
const (
	SeasonKharif = "Kharif"
	SeasonRabi   = "Rabi"
	SeasonZaid   = "Zaid"
)

// SeasonProvider supplies seasonal context for prompt assembly
type SeasonProvider interface {
	// CurrentSeason returns the active cropping season and a short
	// description suitable for inclusion in a prompt
	CurrentSeason() (name, description string)
}

// CalendarSeasonProvider derives the season from the calendar month
type CalendarSeasonProvider struct {
	now func() time.Time
}

// NewCalendarSeasonProvider creates a provider using the system clock
func NewCalendarSeasonProvider() *CalendarSeasonProvider {
	return &CalendarSeasonProvider{now: time.Now}
}

// CurrentSeason maps the current month onto the cropping calendar:
// Kharif June-October, Rabi November-March, Zaid April-May.
func (p *CalendarSeasonProvider) CurrentSeason() (string, string) {
	switch p.now().Month() {
	case time.June, time.July, time.August, time.September, time.October:
		return SeasonKharif, "Kharif (monsoon) season: paddy, cotton, maize and millets are in the field."
	case time.November, time.December, time.January, time.February, time.March:
		return SeasonRabi, "Rabi (winter) season: wheat, mustard, gram and barley are in the field."
	default:
		return SeasonZaid, "Zaid (summer) season: short-duration vegetables, melons and fodder crops."
	}
}
