package mapqtl

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	log "github.com/sirupsen/logrus"
)

// AutoDelimiter asks the matrix reader to guess the delimiter from the data.
const AutoDelimiter rune = 0

// Matrix reads the rows of a delimited QTL matrix. The header row is returned
// like any other row.
type Matrix struct {
	path   string
	rc     io.ReadCloser
	reader *csv.Reader
	delim  rune
}

// OpenMatrix opens a QTL matrix, which may live on Google Storage and may be
// compressed or inside a zip archive. Pass AutoDelimiter to detect the field
// delimiter.
func OpenMatrix(ctx context.Context, path string, client *storage.Client, delim rune) (*Matrix, error) {
	rc, err := OpenInput(ctx, path, client)
	if err != nil {
		return nil, err
	}

	m := newMatrix(rc, delim)
	m.path = path

	return m, nil
}

func newMatrix(rc io.ReadCloser, delim rune) *Matrix {
	br := bufio.NewReader(rc)
	if delim == AutoDelimiter {
		delim = PeekDelimiter(br)
		log.Debugf("Determined matrix delimiter to be %q\n", string(delim))
	}

	r := csv.NewReader(br)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	return &Matrix{rc: rc, reader: r, delim: delim}
}

// Delimiter is the delimiter in use, which is only interesting when it was
// detected.
func (m *Matrix) Delimiter() rune {
	return m.delim
}

// Read returns the next row, or io.EOF after the last one.
func (m *Matrix) Read() ([]string, error) {
	row, err := m.reader.Read()
	if err == io.EOF {
		return nil, err
	} else if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", m.path, err))
	}

	return row, nil
}

// ReadAll returns every remaining row.
func (m *Matrix) ReadAll() ([][]string, error) {
	rows := make([][]string, 0)
	for {
		row, err := m.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (m *Matrix) Close() error {
	return m.rc.Close()
}

// ReadMatrix parses a whole matrix from r.
func ReadMatrix(r io.Reader, delim rune) ([][]string, error) {
	return newMatrix(io.NopCloser(r), delim).ReadAll()
}
