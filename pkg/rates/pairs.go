package rates

// Pair is one enumerated currency pairing for the dashboard.
type Pair struct {
	From string
	To   string
}

// Pairs is the fixed cycle order for the currency panel.
var Pairs = []Pair{
	{"NZD", "USD"},
	{"NZD", "EUR"},
	{"NZD", "GBP"},
	{"NZD", "AUD"},
	{"NZD", "JPY"},
}
