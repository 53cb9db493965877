// Package assistant orchestrates the question-answering pipeline
package assistant

import (
	"strings"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// classificationThreshold is the minimum keyword-overlap score a category
// must exceed to win; anything at or below classifies as UNKNOWN.
const classificationThreshold = 0.2

// intentCategory pairs an intent with its fixed keyword list
type intentCategory struct {
	intent   types.Intent
	keywords map[string]struct{}
}

// IntentClassifier scores queries against fixed per-category keyword lists.
// Registration order decides ties: the earliest category wins.
type IntentClassifier struct {
	categories []intentCategory
}

// NewIntentClassifier creates a classifier with the built-in categories
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{
		categories: []intentCategory{
			{types.IntentWeather, keywordSet(
				"weather", "rain", "rainfall", "monsoon", "temperature",
				"forecast", "humidity", "storm", "drought", "frost", "heatwave",
			)},
			{types.IntentMarket, keywordSet(
				"price", "market", "mandi", "sell", "selling", "rate",
				"rates", "msp", "procurement", "buyer", "demand", "wholesale",
			)},
			{types.IntentPest, keywordSet(
				"pest", "pests", "insect", "insects", "disease", "fungus",
				"blight", "aphid", "borer", "larvae", "pesticide", "infestation", "spray",
			)},
			{types.IntentScheme, keywordSet(
				"scheme", "schemes", "subsidy", "subsidies", "yojana", "loan",
				"insurance", "government", "pmkisan", "credit", "grant",
			)},
			{types.IntentCrop, keywordSet(
				"crop", "crops", "grow", "growing", "sow", "sowing", "seed",
				"seeds", "harvest", "yield", "variety", "planting", "wheat",
				"rice", "cotton", "sugarcane", "maize",
			)},
			{types.IntentSoil, keywordSet(
				"soil", "fertilizer", "fertiliser", "nutrient", "nutrients",
				"compost", "manure", "nitrogen", "phosphorus", "potassium", "ph",
			)},
			{types.IntentIrrigation, keywordSet(
				"water", "irrigation", "irrigate", "drip", "sprinkler",
				"watering", "canal", "borewell", "moisture",
			)},
		},
	}
}

// Classify scores the query against every category and returns the winner.
// Confidence is the fraction of query tokens found in the winning list,
// clamped to 1.0.
func (c *IntentClassifier) Classify(query string) types.Classification {
	tokens := tokenizeQuery(query)
	if len(tokens) == 0 {
		return types.Classification{Intent: types.IntentUnknown, Confidence: 0}
	}

	best := types.Classification{Intent: types.IntentUnknown, Confidence: 0}
	for _, cat := range c.categories {
		matches := 0
		for _, tok := range tokens {
			if _, ok := cat.keywords[tok]; ok {
				matches++
			}
		}
		score := float64(matches) / float64(len(tokens))
		if score > 1.0 {
			score = 1.0
		}
		// Strict inequality keeps the first-registered category on ties.
		if score > best.Confidence {
			best = types.Classification{Intent: cat.intent, Confidence: score}
		}
	}

	if best.Confidence <= classificationThreshold {
		return types.Classification{Intent: types.IntentUnknown, Confidence: best.Confidence}
	}
	return best
}

func tokenizeQuery(query string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(query) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

func keywordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
