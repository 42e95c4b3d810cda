package domain

// Result is a single qualifying time-trial result row. Filtering happens
// before a Result exists: every record already passed the year cutoff, the
// race class whitelist, the top-20 place check and the race blocklist.
type Result struct {
	RiderURL    string
	Place       int
	Points      int
	SecondsLost int
	RaceURL     string
}
