package mapchart

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/mapqtl"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
)

// WriteTo writes the MapChart map format: a "group" header per linkage group,
// one "marker  position" line per marker, an optional "qtls" section, and two
// blank lines after each group. Every group gets its header, even when none
// of its markers has a label.
func (mc *MapChart) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer

	for _, g := range mc.Groups {
		fmt.Fprintf(&b, "group %s\n", g.Key)
		for _, m := range g.Markers {
			fmt.Fprintf(&b, "%s  %s\n", m.Marker, FormatPosition(m.Position))
		}

		if len(g.QTLs) > 0 {
			b.WriteString("\nqtls\n")
			for _, q := range g.QTLs {
				// MapChart tolerates, and MQ2 always wrote, the trailing space.
				fmt.Fprintf(&b, "%s \n", q)
			}
		}

		b.WriteString("\n\n")
	}

	n, err := w.Write(b.Bytes())
	return int64(n), err
}

// qtlRecord is one line of the QTL table.
type qtlRecord struct {
	Group     string `csv:"group"`
	Trait     string `csv:"trait"`
	Start     string `csv:"start"`
	PeakStart string `csv:"peak_start"`
	PeakStop  string `csv:"peak_stop"`
	Stop      string `csv:"stop"`
}

// WriteQTLCSV writes every QTL of the map as a comma-delimited table with a
// header line, in map order.
func (mc *MapChart) WriteQTLCSV(w io.Writer) error {
	records := make([]*qtlRecord, 0)
	for _, g := range mc.Groups {
		for _, q := range g.QTLs {
			records = append(records, &qtlRecord{
				Group:     g.Key,
				Trait:     q.Trait,
				Start:     FormatPosition(q.Start),
				PeakStart: FormatPosition(q.PeakStart),
				PeakStop:  FormatPosition(q.PeakStop),
				Stop:      FormatPosition(q.Stop),
			})
		}
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// QTLCount is the number of QTLs across all groups.
func (mc *MapChart) QTLCount() int {
	n := 0
	for _, g := range mc.Groups {
		n += len(g.QTLs)
	}

	return n
}

// Save writes the map to path (local, "-" or gs://, see mapqtl.CreateOutput).
func (mc *MapChart) Save(ctx context.Context, path string, client *storage.Client) error {
	if err := save(ctx, path, client, func(w io.Writer) error {
		_, err := mc.WriteTo(w)
		return err
	}); err != nil {
		return pfx.Err(fmt.Errorf("writing the map chart map to %s: %w", path, err))
	}

	log.Infof("Wrote MapChart map in file %s\n", path)
	return nil
}

// SaveQTLCSV writes the QTL table to path.
func (mc *MapChart) SaveQTLCSV(ctx context.Context, path string, client *storage.Client) error {
	if err := save(ctx, path, client, mc.WriteQTLCSV); err != nil {
		return pfx.Err(fmt.Errorf("writing the QTL table to %s: %w", path, err))
	}

	log.Infof("Wrote %d QTLs in file %s\n", mc.QTLCount(), path)
	return nil
}

// save opens path, hands it to write and closes it on every path. A failed
// Close is reported since that is when Google Storage commits the object.
func save(ctx context.Context, path string, client *storage.Client, write func(io.Writer) error) error {
	w, err := mapqtl.CreateOutput(ctx, path, client)
	if err != nil {
		return err
	}

	if err := write(w); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}
