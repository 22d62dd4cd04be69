package mapchart

import (
	"reflect"
	"testing"
)

func TestOrderMarkersStableTies(t *testing.T) {
	in := []MarkerPosition{
		{"a", 2}, {"b", 1}, {"c", 2}, {"d", 0}, {"", 1}, {"e", 1},
	}

	expected := []MarkerPosition{
		{"d", 0}, {"b", 1}, {"e", 1}, {"a", 2}, {"c", 2},
	}

	if got := OrderMarkers(in); !reflect.DeepEqual(got, expected) {
		t.Errorf("Got %v, expected %v", got, expected)
	}
}

func TestOrderMarkersIdempotent(t *testing.T) {
	in := []MarkerPosition{
		{"m1", 35.2}, {"m2", 0}, {"m3", 12.50}, {"m4", 12.5}, {"m5", 101}, {"m6", 3.333},
	}

	first := OrderMarkers(in)

	// Round trip through the text form, as a second run on the written map
	// would see it.
	reparsed := make([]MarkerPosition, 0, len(first))
	for _, m := range first {
		pos, err := ParsePosition(FormatPosition(m.Position))
		if err != nil {
			t.Fatal(err)
		}
		reparsed = append(reparsed, MarkerPosition{m.Marker, pos})
	}

	if second := OrderMarkers(reparsed); !reflect.DeepEqual(first, second) {
		t.Errorf("Ordering changed on the second pass:\n%v\n%v", first, second)
	}
}

func TestFormatPosition(t *testing.T) {
	for _, v := range []struct {
		in       float64
		expected string
	}{
		{0, "0.0"},
		{12, "12.0"},
		{12.5, "12.5"},
		{123.456, "123.456"},
		{-0.5, "-0.5"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
	} {
		if got := FormatPosition(v.in); got != v.expected {
			t.Errorf("FormatPosition(%v): got %q, expected %q", v.in, got, v.expected)
		}
	}
}

func TestParsePosition(t *testing.T) {
	if v, err := ParsePosition(" 12.50 "); err != nil || v != 12.5 {
		t.Errorf("Got %v (%v), expected 12.5", v, err)
	}

	for _, bad := range []string{"", "abc", "NaN", "inf"} {
		if _, err := ParsePosition(bad); err == nil {
			t.Errorf("Expected an error parsing %q", bad)
		}
	}
}
