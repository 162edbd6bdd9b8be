package yahoohdd

import "strings"

// NormalizeTickers returns an upper-cased copy of the given tickers.
// Duplicates are kept and existence is not checked; an unknown ticker simply
// comes back from the fetch step as a per-ticker error.
func NormalizeTickers(tickers ...string) []string {
	out := make([]string, len(tickers))
	for i, t := range tickers {
		out[i] = strings.ToUpper(t)
	}
	return out
}
