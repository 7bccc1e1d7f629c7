package writer_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/donaldgifford/spfmt/internal/syntax"
	"github.com/donaldgifford/spfmt/internal/testutil"
	"github.com/donaldgifford/spfmt/internal/writer"
)

func TestGoldenFiles(t *testing.T) {
	formatFn := func(t *testing.T, input string) string {
		t.Helper()
		tree, err := syntax.Parse([]byte(input))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		res, err := writer.Format(tree, writer.DefaultOptions())
		if err != nil {
			t.Fatalf("format: %v", err)
		}
		for _, d := range res.Diagnostics {
			t.Errorf("unexpected diagnostic: %s", d)
		}
		return res.Output
	}

	_, filename, _, _ := runtime.Caller(0)
	testdataDir := filepath.Join(filepath.Dir(filename), "..", "..", "testdata")

	testutil.RunGoldenDir(t, testdataDir, formatFn)
}
