package mapchart

import (
	"fmt"
	"sort"

	"gopkg.in/guregu/null.v3"
)

// BlockRow is one (marker, trait) cell of a linkage group.
type BlockRow struct {
	Group    string
	Marker   string
	Position float64
	Trait    string
	// LOD is invalid when the matrix cell was empty.
	LOD null.Float
}

// QTL is the LOD interval of one trait on one linkage group. PeakStart and
// PeakStop are the same marker position; peak width is not modeled.
type QTL struct {
	Trait     string
	Start     float64
	PeakStart float64
	PeakStop  float64
	Stop      float64
}

// String renders the QTL the way MapChart expects it on a qtls line.
func (q QTL) String() string {
	return fmt.Sprintf("%s %s %s %s %s",
		q.Trait,
		FormatPosition(q.Start),
		FormatPosition(q.PeakStart),
		FormatPosition(q.PeakStop),
		FormatPosition(q.Stop))
}

// qualifies reports whether row is a row of trait whose LOD reaches cutoff.
func (row BlockRow) qualifies(trait string, cutoff float64) bool {
	return row.Trait == trait && row.LOD.Valid && row.LOD.Float64-cutoff >= 0
}

// ExtractQTLs determines a QTL interval for every trait in peaks, which maps
// a trait to the block index of its peak row. The interval runs from the
// lowest-index to the highest-index row of the trait, on either side of the
// peak, whose LOD is at least cutoff. The whole block is scanned, so a dip
// below cutoff does not end the interval. QTLs come out in peak order.
func ExtractQTLs(peaks map[string]int, block []BlockRow, cutoff float64) []QTL {
	qtls := make([]QTL, 0, len(peaks))
	if len(peaks) == 0 {
		return qtls
	}

	traits := make([]string, 0, len(peaks))
	for trait := range peaks {
		traits = append(traits, trait)
	}
	sort.Slice(traits, func(i, j int) bool {
		return peaks[traits[i]] < peaks[traits[j]]
	})

	for _, trait := range traits {
		peak := peaks[trait]
		if peak < 0 || peak >= len(block) {
			continue
		}

		// Search QTL start
		start := block[peak]
		for i := peak; i >= 0; i-- {
			if block[i].qualifies(trait, cutoff) {
				start = block[i]
			}
		}

		// Search QTL end
		end := block[peak]
		for i := peak; i < len(block); i++ {
			if block[i].qualifies(trait, cutoff) {
				end = block[i]
			}
		}

		qtls = append(qtls, QTL{
			Trait:     trait,
			Start:     start.Position,
			PeakStart: block[peak].Position,
			PeakStop:  block[peak].Position,
			Stop:      end.Position,
		})
	}

	return qtls
}
