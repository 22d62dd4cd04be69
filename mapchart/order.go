package mapchart

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// MarkerPosition is a marker and its genetic position in cM.
type MarkerPosition struct {
	Marker   string
	Position float64
}

// OrderMarkers sorts markers by position. Markers sharing a position keep the
// order they were given in, and markers without a label are dropped.
func OrderMarkers(pairs []MarkerPosition) []MarkerPosition {
	buckets := make(map[float64][]string)
	keys := make([]float64, 0)
	for _, p := range pairs {
		if _, exists := buckets[p.Position]; !exists {
			keys = append(keys, p.Position)
		}
		buckets[p.Position] = append(buckets[p.Position], p.Marker)
	}

	sort.Float64s(keys)

	out := make([]MarkerPosition, 0, len(pairs))
	for _, key := range keys {
		for _, marker := range buckets[key] {
			if marker == "" {
				continue
			}
			out = append(out, MarkerPosition{Marker: marker, Position: key})
		}
	}

	return out
}

// FormatPosition renders a position canonically: the shortest decimal that
// parses back to p, with integral values keeping a ".0" (12 -> "12.0"). Very
// small or very large magnitudes use exponent notation.
func FormatPosition(p float64) string {
	if abs := math.Abs(p); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(p, 'e', -1, 64)
	}

	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// ParsePosition parses a position cell. Surrounding whitespace is ignored and
// only finite values are accepted.
func ParsePosition(s string) (float64, error) {
	return parseFinite(s)
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	}

	return v, nil
}
