package mapchart

import (
	"fmt"
	"strings"
	"testing"
)

type markerRow struct {
	group    string
	marker   string
	position string
	lods     []string
}

// buildMatrix lays rows out the way MQ2 writes its matrix.
func buildMatrix(traits []string, rows []markerRow) [][]string {
	header := []string{"", "Group", "Position", "Locus"}
	header = append(header, traits...)
	header = append(header, "")

	out := [][]string{header}
	for _, r := range rows {
		row := []string{r.marker, r.group, r.position, r.marker}
		row = append(row, r.lods...)
		row = append(row, "")
		out = append(out, row)
	}

	return out
}

// singleTrait builds one group of markers m0, m1... with positions 0, 1...
func singleTrait(group string, lods ...string) []markerRow {
	rows := make([]markerRow, 0, len(lods))
	for i, lod := range lods {
		rows = append(rows, markerRow{
			group:    group,
			marker:   fmt.Sprintf("%sm%d", group, i),
			position: fmt.Sprintf("%d", i),
			lods:     []string{lod},
		})
	}

	return rows
}

func render(t *testing.T, mc *MapChart) string {
	t.Helper()

	var b strings.Builder
	if _, err := mc.WriteTo(&b); err != nil {
		t.Fatal(err)
	}

	return b.String()
}
