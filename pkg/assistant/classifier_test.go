package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

func TestClassifierNoKeywords(t *testing.T) {
	c := NewIntentClassifier()

	result := c.Classify("hello there friend")
	assert.Equal(t, types.IntentUnknown, result.Intent)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestClassifierEmptyQuery(t *testing.T) {
	c := NewIntentClassifier()

	result := c.Classify("")
	assert.Equal(t, types.IntentUnknown, result.Intent)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestClassifierFullMatch(t *testing.T) {
	c := NewIntentClassifier()

	// Both tokens sit in the WEATHER list, so confidence is exactly 1.0.
	result := c.Classify("monsoon rainfall")
	assert.Equal(t, types.IntentWeather, result.Intent)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestClassifierThresholdBoundary(t *testing.T) {
	c := NewIntentClassifier()

	// One keyword among five tokens scores exactly 0.2, which does not
	// exceed the threshold.
	result := c.Classify("please tell me about rain")
	assert.Equal(t, types.IntentUnknown, result.Intent)

	// One keyword among four tokens scores 0.25 and wins.
	result = c.Classify("tell me about rain")
	assert.Equal(t, types.IntentWeather, result.Intent)
	assert.InDelta(t, 0.25, result.Confidence, 1e-9)
}

func TestClassifierCategories(t *testing.T) {
	c := NewIntentClassifier()

	cases := map[string]types.Intent{
		"what is the mandi price today":        types.IntentMarket,
		"aphid infestation on my cotton":       types.IntentPest,
		"pmkisan subsidy enrollment":           types.IntentScheme,
		"when to sow wheat seeds":              types.IntentCrop,
		"soil nitrogen and compost":            types.IntentSoil,
		"drip irrigation for my field":         types.IntentIrrigation,
		"will it rain during monsoon forecast": types.IntentWeather,
	}
	for query, want := range cases {
		result := c.Classify(query)
		assert.Equal(t, want, result.Intent, "query %q", query)
	}
}

func TestClassifierFirstRegisteredWinsTies(t *testing.T) {
	c := NewIntentClassifier()

	// "rain" (WEATHER) and "price" (MARKET) each match one of two tokens.
	// WEATHER registers first, so it wins the tie.
	result := c.Classify("rain price")
	assert.Equal(t, types.IntentWeather, result.Intent)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
}

func TestClassifierCaseInsensitive(t *testing.T) {
	c := NewIntentClassifier()

	result := c.Classify("MONSOON Rainfall Forecast")
	assert.Equal(t, types.IntentWeather, result.Intent)
}
