package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func seasonAt(month time.Month) string {
	p := &CalendarSeasonProvider{now: func() time.Time {
		return time.Date(2026, month, 15, 12, 0, 0, 0, time.UTC)
	}}
	name, _ := p.CurrentSeason()
	return name
}

func TestCalendarSeasonProvider(t *testing.T) {
	cases := map[time.Month]string{
		time.January:   SeasonRabi,
		time.March:     SeasonRabi,
		time.April:     SeasonZaid,
		time.May:       SeasonZaid,
		time.June:      SeasonKharif,
		time.October:   SeasonKharif,
		time.November:  SeasonRabi,
		time.December:  SeasonRabi,
		time.September: SeasonKharif,
	}
	for month, want := range cases {
		assert.Equal(t, want, seasonAt(month), "month %s", month)
	}
}

func TestCurrentSeasonDescription(t *testing.T) {
	p := &CalendarSeasonProvider{now: func() time.Time {
		return time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	}}
	name, desc := p.CurrentSeason()
	assert.Equal(t, SeasonKharif, name)
	assert.Contains(t, desc, "monsoon")
}
