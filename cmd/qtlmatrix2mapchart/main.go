package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/mapqtl"
	"github.com/carbocation/mapqtl/mapchart"
	"github.com/carbocation/pfx"
	log "github.com/sirupsen/logrus"

	_ "github.com/carbocation/mapqtl/compileinfoprint"
)

type Settings struct {
	MatrixPath     string
	OutPath        string
	QTLPath        string
	Delimiter      string
	Layout         string
	LODThreshold   float64
	Drop           float64
	LegacyTrailing bool
}

func main() {
	// Consumes a QTL matrix (marker, group, position, locus, one LOD column per
	// trait) and writes a MapChart map with the LOD-2 interval of every QTL.
	var s Settings
	var verbose bool
	flag.StringVar(&s.MatrixPath, "matrix", "", "QTL matrix. May be gzip/bzip2/xz compressed, inside a zip archive, or on Google Storage (gs://)")
	flag.Float64Var(&s.LODThreshold, "lod", -1, "LOD threshold. A trait with a LOD score at or above it on a linkage group gets a QTL there")
	flag.StringVar(&s.OutPath, "out", "MapChart.map", "MapChart map file to write. Use - for stdout; may be gs://")
	flag.StringVar(&s.QTLPath, "qtls", "", "(Optional) file to write the QTLs to as a CSV table; may be gs://")
	flag.StringVar(&s.Delimiter, "delim", ",", "delimiter of the matrix. Use 'tab' for tabs or 'auto' to detect it")
	flag.StringVar(&s.Layout, "layout", mapchart.DefaultLayout, fmt.Sprintf("Column layout of the matrix. One of: %s", mapchart.LayoutNames()))
	flag.Float64Var(&s.Drop, "drop", mapchart.Drop, "LOD drop-off below the threshold that bounds a QTL interval")
	flag.BoolVar(&s.LegacyTrailing, "legacy-trailing", false, "Do not compute QTLs for the last linkage group of the matrix, like MQ2")
	flag.BoolVar(&verbose, "verbose", false, "Log per linkage group details")
	flag.Parse()

	if s.MatrixPath == "" || s.LODThreshold < 0 {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx := context.Background()

	var client *storage.Client
	if mapqtl.IsGoogleStoragePath(s.MatrixPath) || mapqtl.IsGoogleStoragePath(s.OutPath) || mapqtl.IsGoogleStoragePath(s.QTLPath) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		defer client.Close()
	}

	if err := run(ctx, s, client); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, s Settings, client *storage.Client) error {
	delim, err := parseDelimiter(s.Delimiter)
	if err != nil {
		return err
	}

	layout, err := mapchart.LookupLayout(s.Layout)
	if err != nil {
		return err
	}

	m, err := mapqtl.OpenMatrix(ctx, s.MatrixPath, client, delim)
	if err != nil {
		return err
	}
	defer m.Close()

	rows, err := m.ReadAll()
	if err != nil {
		return err
	}
	log.Infof("Read %d rows from %s\n", len(rows), s.MatrixPath)

	opts := []mapchart.Option{mapchart.WithLayout(layout), mapchart.WithDrop(s.Drop)}
	if s.LegacyTrailing {
		opts = append(opts, mapchart.WithLegacyTrailingGroup())
	}

	mc, err := mapchart.Generate(rows, s.LODThreshold, opts...)
	if err != nil {
		return pfx.Err(fmt.Errorf("%s: %w", s.MatrixPath, err))
	}

	if err := mc.Save(ctx, s.OutPath, client); err != nil {
		return err
	}

	if s.QTLPath != "" {
		if err := mc.SaveQTLCSV(ctx, s.QTLPath, client); err != nil {
			return err
		}
	}

	return nil
}

func parseDelimiter(delim string) (rune, error) {
	switch delim {
	case "auto":
		return mapqtl.AutoDelimiter, nil
	case "tab", `\t`:
		return '\t', nil
	}

	runes := []rune(delim)
	if len(runes) != 1 {
		return 0, fmt.Errorf("Delimiter must be a single character, 'tab' or 'auto'. Saw %q", delim)
	}

	return runes[0], nil
}
