package mapchart

import (
	"fmt"
	"sort"
	"strings"
)

// Layout maps the columns of a QTL matrix to their roles. LOD columns run from
// ColFirstLOD up to, but excluding, the last TrailingCols columns of each row.
type Layout struct {
	ColGroup     int
	ColPosition  int
	ColMarker    int
	ColFirstLOD  int
	TrailingCols int
	// Unlinked is the group key of markers outside any linkage group. It is
	// never written to the map.
	Unlinked string
}

var Layouts = map[string]Layout{
	// Matrix assembled by MQ2 from MapQTL output: marker, group, position,
	// locus, one LOD column per trait and a trailing bookkeeping column.
	"MQ2": {
		ColGroup:     1,
		ColPosition:  2,
		ColMarker:    3,
		ColFirstLOD:  4,
		TrailingCols: 1,
		Unlinked:     "U",
	},
}

// DefaultLayout is the layout Generate uses unless WithLayout says otherwise.
const DefaultLayout = "MQ2"

// LayoutNames lists the known layouts, sorted, for help and error messages.
func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// LookupLayout returns the named layout.
func LookupLayout(name string) (Layout, error) {
	l, exists := Layouts[name]
	if !exists {
		return Layout{}, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", name, LayoutNames())
	}

	return l, nil
}

// minWidth is the number of fields a data row needs before any LOD column.
func (l Layout) minWidth() int {
	w := l.ColGroup
	if l.ColPosition > w {
		w = l.ColPosition
	}
	if l.ColMarker > w {
		w = l.ColMarker
	}

	return w + 1
}

// lodColumns returns the half-open range of LOD columns in row.
func (l Layout) lodColumns(row []string) (int, int) {
	end := len(row) - l.TrailingCols
	if end < l.ColFirstLOD {
		end = l.ColFirstLOD
	}

	return l.ColFirstLOD, end
}
