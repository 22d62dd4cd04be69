package mapqtl

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDetermineDelimiter(t *testing.T) {
	for _, v := range []struct {
		in       string
		expected rune
	}{
		{"a\tb\tc\n1\t2\t3\n4\t5\t6\n", '\t'},
		{"a,b,c\n1,2,3\n4,5,6\n", ','},
	} {
		if got := DetermineDelimiter(strings.NewReader(v.in)); got != v.expected {
			t.Errorf("%q: got %q, expected %q", v.in, got, v.expected)
		}
	}
}

func TestReadMatrix(t *testing.T) {
	in := ",Group,Position,Locus,T1,\nm1,1,0.0,m1,3.2,\nm2,1,5.5,m2,,\n"

	expected := [][]string{
		{"", "Group", "Position", "Locus", "T1", ""},
		{"m1", "1", "0.0", "m1", "3.2", ""},
		{"m2", "1", "5.5", "m2", "", ""},
	}

	for _, delim := range []rune{',', AutoDelimiter} {
		rows, err := ReadMatrix(strings.NewReader(in), delim)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(rows, expected) {
			t.Errorf("delimiter %q: got %v, expected %v", delim, rows, expected)
		}
	}
}

func TestOpenMatrixGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.tsv.gz")
	if err := os.WriteFile(path, gzipped(t, sampleMatrix), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := OpenMatrix(context.Background(), path, nil, '\t')
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	rows, err := m.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][4] != "3.2" {
		t.Errorf("Unexpected rows %v", rows)
	}
}

func TestOpenInputNeedsClientForGoogleStorage(t *testing.T) {
	if _, err := OpenInput(context.Background(), "gs://bucket/matrix.csv", nil); err == nil {
		t.Error("Expected an error without a storage client")
	}
	if _, err := CreateOutput(context.Background(), "gs://bucket/MapChart.map", nil); err == nil {
		t.Error("Expected an error without a storage client")
	}
}

func TestCreateOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MapChart.map")

	w, err := CreateOutput(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("group 1\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "group 1\n" {
		t.Errorf("Got %q", got)
	}
}
