package versioncell

// SkipRate returns the fraction (0.0 to 1.0) of versions a reader jumped over,
// relative to refreshes plus skips.
// Returns 0.0 if the reader has not refreshed yet.
func SkipRate(stats ReaderStats) float64 {
	total := stats.Refreshes + stats.Skipped
	if total == 0 {
		return 0.0
	}
	return float64(stats.Skipped) / float64(total)
}
