package mapchart

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
)

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errDiskFull
}

func sampleMapChart(t *testing.T) *MapChart {
	t.Helper()

	matrix := buildMatrix([]string{"T1"}, singleTrait("1", "0", "5", "0"))
	mc, err := Generate(matrix, 3, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}

	return mc
}

func loggedWrote(hook *test.Hook) bool {
	for _, entry := range hook.AllEntries() {
		if strings.HasPrefix(entry.Message, "Wrote") {
			return true
		}
	}

	return false
}

func TestWriteToReturnsWriteError(t *testing.T) {
	if _, err := sampleMapChart(t).WriteTo(failingWriter{}); !errors.Is(err, errDiskFull) {
		t.Errorf("Expected %v, got %v", errDiskFull, err)
	}
}

func TestSaveUnwritablePath(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	mc := sampleMapChart(t)
	missing := filepath.Join(t.TempDir(), "missing", "MapChart.map")

	if err := mc.Save(context.Background(), missing, nil); err == nil {
		t.Error("Expected an error saving into a missing directory")
	}
	if err := mc.SaveQTLCSV(context.Background(), missing, nil); err == nil {
		t.Error("Expected an error saving the QTL table into a missing directory")
	}
	if loggedWrote(hook) {
		t.Error("Logged a completion line for a failed save")
	}
}

func TestSaveWriteErrorIsReturned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MapChart.map")

	err := save(context.Background(), path, nil, func(io.Writer) error {
		return errDiskFull
	})
	if !errors.Is(err, errDiskFull) {
		t.Errorf("Expected %v, got %v", errDiskFull, err)
	}
}

func TestSaveLogsOnSuccess(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	path := filepath.Join(t.TempDir(), "MapChart.map")
	if err := sampleMapChart(t).Save(context.Background(), path, nil); err != nil {
		t.Fatal(err)
	}

	if !loggedWrote(hook) {
		t.Error("Expected a completion line after saving")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(got), "group 1\n") {
		t.Errorf("Unexpected map %q", got)
	}
}
