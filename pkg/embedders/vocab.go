package embedders

// Domain vocabulary compiled into the binary. The synonym table folds
// common variants onto a canonical term so that, say, "paddy" and "rice"
// land on the same vector indices; the important-term set boosts words that
// carry most of the agricultural signal in short farmer queries.

// synonyms maps a token to the canonical term appended alongside it during
// tokenization.
var synonyms = map[string]string{
	"paddy":      "rice",
	"dhan":       "rice",
	"wheat":      "gehu",
	"maize":      "corn",
	"makka":      "corn",
	"bajra":      "millet",
	"jowar":      "millet",
	"ragi":       "millet",
	"cotton":     "kapas",
	"sugarcane":  "ganna",
	"mustard":    "sarson",
	"groundnut":  "peanut",
	"brinjal":    "eggplant",
	"ladyfinger": "okra",
	"bhindi":     "okra",
	"chilli":     "pepper",
	"mirchi":     "pepper",
	"dal":        "pulses",
	"gram":       "pulses",
	"chana":      "pulses",
	"tur":        "pulses",
	"moong":      "pulses",
	"urad":       "pulses",
	"rain":       "monsoon",
	"rainfall":   "monsoon",
	"barish":     "monsoon",
	"manure":     "fertilizer",
	"khad":       "fertilizer",
	"urea":       "fertilizer",
	"compost":    "fertilizer",
	"pesticide":  "insecticide",
	"spray":      "insecticide",
	"keet":       "pest",
	"insects":    "pest",
	"bugs":       "pest",
	"watering":   "irrigation",
	"sinchai":    "irrigation",
	"drip":       "irrigation",
	"mandi":      "market",
	"bazar":      "market",
	"rate":       "price",
	"bhav":       "price",
	"msp":        "price",
	"yojana":     "scheme",
	"subsidy":    "scheme",
	"loan":       "credit",
	"kisan":      "farmer",
	"kheti":      "farming",
	"fasal":      "crop",
	"beej":       "seed",
	"mitti":      "soil",
	"zameen":     "land",
	"acre":       "acres",
	"hectare":    "acres",
	"bigha":      "acres",
}

// importantTerms get a 1.5x weight boost during embedding.
var importantTerms = map[string]struct{}{
	"rice":        {},
	"wheat":       {},
	"corn":        {},
	"millet":      {},
	"cotton":      {},
	"sugarcane":   {},
	"pulses":      {},
	"vegetables":  {},
	"tomato":      {},
	"potato":      {},
	"onion":       {},
	"okra":        {},
	"crop":        {},
	"seed":        {},
	"soil":        {},
	"fertilizer":  {},
	"pest":        {},
	"disease":     {},
	"insecticide": {},
	"irrigation":  {},
	"monsoon":     {},
	"weather":     {},
	"drought":     {},
	"harvest":     {},
	"sowing":      {},
	"yield":       {},
	"market":      {},
	"price":       {},
	"scheme":      {},
	"credit":      {},
	"insurance":   {},
	"farmer":      {},
	"farming":     {},
	"organic":     {},
	"acres":       {},
}
