package mapchart

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// LinkageGroup holds the markers, ordered by position, and the QTLs of one
// linkage group.
type LinkageGroup struct {
	Key     string
	Markers []MarkerPosition
	QTLs    []QTL
}

// MapChart is the content of a MapChart map file: the linkage groups to draw,
// in output order.
type MapChart struct {
	Groups []LinkageGroup

	// LODThreshold is the threshold the QTLs were called at.
	LODThreshold float64
}

// groupAccumulator collects one contiguous run of rows sharing a group key.
type groupAccumulator struct {
	group *LinkageGroup
	block []BlockRow
	peaks map[string]int
}

func newGroupAccumulator(key string) *groupAccumulator {
	return &groupAccumulator{
		group: &LinkageGroup{Key: key, Markers: make([]MarkerPosition, 0)},
		block: make([]BlockRow, 0),
		peaks: make(map[string]int),
	}
}

// addCell appends a block row and keeps it as the trait's peak if it reaches
// the threshold and beats the current peak.
func (acc *groupAccumulator) addCell(row BlockRow, lodThreshold float64) {
	acc.block = append(acc.block, row)
	if !row.LOD.Valid || row.LOD.Float64 < lodThreshold {
		return
	}

	peak, seen := acc.peaks[row.Trait]
	if !seen || row.LOD.Float64 > acc.block[peak].LOD.Float64 {
		acc.peaks[row.Trait] = len(acc.block) - 1
	}
}

func (acc *groupAccumulator) finalize(cutoff float64) {
	acc.group.QTLs = ExtractQTLs(acc.peaks, acc.block, cutoff)
}

// Generate converts a QTL matrix, header row first, into a MapChart. Cells at
// or above lodThreshold are QTL peak candidates; the strongest per trait and
// linkage group becomes the peak of that group's QTL for the trait.
//
// Rows are grouped by runs of equal group keys. The unlinked group is left
// out and the remaining groups are sorted numerically when every key is an
// integer, lexically otherwise.
func Generate(matrix [][]string, lodThreshold float64, opts ...Option) (*MapChart, error) {
	if math.IsNaN(lodThreshold) || math.IsInf(lodThreshold, 0) || lodThreshold < 0 {
		return nil, pfx.Err(fmt.Errorf("LOD threshold must be a non-negative number, got %v", lodThreshold))
	}
	if len(matrix) < 1 {
		return nil, pfx.Err(fmt.Errorf("matrix has no header row"))
	}

	cfg := newConfig(opts)
	layout := cfg.layout
	header := matrix[0]
	cutoff := lodThreshold - cfg.drop

	groups := make(map[string]*LinkageGroup)
	keys := make([]string, 0)

	var acc *groupAccumulator
	for i, row := range matrix[1:] {
		line := i + 2

		if len(row) < layout.minWidth() {
			return nil, pfx.Err(fmt.Errorf("line %d: expected at least %d fields, found %d", line, layout.minWidth(), len(row)))
		}
		firstLOD, endLOD := layout.lodColumns(row)
		if endLOD > len(header) {
			return nil, pfx.Err(fmt.Errorf("line %d: %d LOD columns but the header only names traits up to column %d", line, endLOD-firstLOD, len(header)))
		}

		key := row[layout.ColGroup]

		// The first row starts a group; afterwards a group ends wherever the
		// key differs from the previous row's.
		if acc == nil || key != acc.group.Key {
			if acc != nil {
				acc.finalize(cutoff)
				cfg.log.Debugf("Linkage group %s: %d markers, %d QTLs\n", acc.group.Key, len(acc.group.Markers), len(acc.group.QTLs))
			}

			acc = newGroupAccumulator(key)
			if _, exists := groups[key]; exists {
				cfg.log.Warnf("Linkage group %s reappears at line %d, its earlier rows are discarded\n", key, line)
			} else {
				keys = append(keys, key)
			}
			groups[key] = acc.group
		}

		// Unlinked markers are never drawn, so their positions may be blank or
		// anything else.
		marker := row[layout.ColMarker]
		var position float64
		if key != layout.Unlinked {
			var err error
			position, err = ParsePosition(row[layout.ColPosition])
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("line %d, column %d: bad position: %w", line, layout.ColPosition+1, err))
			}
			acc.group.Markers = append(acc.group.Markers, MarkerPosition{Marker: marker, Position: position})
		}

		for col := firstLOD; col < endLOD; col++ {
			lod, err := parseLOD(row[col])
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("line %d, column %d: bad LOD score: %w", line, col+1, err))
			}

			acc.addCell(BlockRow{
				Group:    key,
				Marker:   marker,
				Position: position,
				Trait:    header[col],
				LOD:      lod,
			}, lodThreshold)
		}
	}

	if acc != nil {
		if cfg.legacyTrailing {
			cfg.log.Debugf("Linkage group %s is last, its QTLs are not computed\n", acc.group.Key)
		} else {
			acc.finalize(cutoff)
		}
		cfg.log.Debugf("Linkage group %s: %d markers, %d QTLs\n", acc.group.Key, len(acc.group.Markers), len(acc.group.QTLs))
	}

	mc := &MapChart{
		Groups:       make([]LinkageGroup, 0, len(keys)),
		LODThreshold: lodThreshold,
	}
	for _, key := range SortGroupKeys(keys, layout.Unlinked) {
		g := groups[key]
		mc.Groups = append(mc.Groups, LinkageGroup{
			Key:     g.Key,
			Markers: OrderMarkers(g.Markers),
			QTLs:    g.QTLs,
		})
	}

	return mc, nil
}

// parseLOD reads a LOD cell. Blank cells are not an error; they come back
// invalid.
func parseLOD(s string) (null.Float, error) {
	if strings.TrimSpace(s) == "" {
		return null.Float{}, nil
	}

	v, err := parseFinite(s)
	if err != nil {
		return null.Float{}, err
	}

	return null.FloatFrom(v), nil
}

// SortGroupKeys returns keys without unlinked, sorted ascending. If every key
// is an integer the sort is numeric; a single non-integer key makes the sort
// lexical for all of them.
func SortGroupKeys(keys []string, unlinked string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == unlinked {
			continue
		}
		out = append(out, key)
	}

	numeric := make(map[string]int, len(out))
	for _, key := range out {
		n, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			sort.Strings(out)
			return out
		}
		numeric[key] = n
	}

	sort.Slice(out, func(i, j int) bool {
		if numeric[out[i]] != numeric[out[j]] {
			return numeric[out[i]] < numeric[out[j]]
		}
		return out[i] < out[j]
	})

	return out
}
