package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/donaldgifford/spfmt/internal/syntax"
	"github.com/donaldgifford/spfmt/internal/writer"
)

const (
	unformattedSrc = "int x=1;\n"
	formattedSrc   = "int x = 1;\n"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()

	// Unformatted file.
	unformatted := writeFile(t, dir, "bad.sp", unformattedSrc)

	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Files:  []string{unformatted},
		Check:  true,
		Stdout: &stdout,
		Stderr: &stderr,
	})

	if code != ExitFormatDiff {
		t.Errorf("check unformatted: got %d, want %d", code, ExitFormatDiff)
	}
	if !strings.Contains(stderr.String(), "bad.sp") {
		t.Errorf("check should name the unformatted file, got: %s", stderr.String())
	}

	// Formatted file.
	formatted := writeFile(t, dir, "good.sp", formattedSrc)

	stdout.Reset()
	stderr.Reset()
	code = Run(&Options{
		Files:  []string{formatted},
		Check:  true,
		Stdout: &stdout,
		Stderr: &stderr,
	})

	if code != ExitOK {
		t.Errorf("check formatted: got %d, want %d", code, ExitOK)
	}
}

func TestRunCheckQuiet(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.sp", unformattedSrc)

	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Files:  []string{path},
		Check:  true,
		Quiet:  true,
		Stdout: &stdout,
		Stderr: &stderr,
	})

	if code != ExitFormatDiff {
		t.Errorf("exit code: got %d, want %d", code, ExitFormatDiff)
	}
	if stderr.Len() != 0 {
		t.Errorf("quiet check should print nothing, got: %s", stderr.String())
	}
}

func TestRunDiff(t *testing.T) {
	path := writeFile(t, t.TempDir(), "test.sp", unformattedSrc)

	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Files:  []string{path},
		Diff:   true,
		Stdout: &stdout,
		Stderr: &stderr,
	})

	if code != ExitFormatDiff {
		t.Errorf("exit code: got %d, want %d", code, ExitFormatDiff)
	}

	output := stdout.String()
	if output == "" {
		t.Fatal("expected non-empty diff")
	}
	// Should contain both old and new versions.
	if !strings.Contains(output, "-int x=1;") {
		t.Error("diff missing old line")
	}
	if !strings.Contains(output, "+int x = 1;") {
		t.Error("diff missing new line")
	}
	if !strings.Contains(output, "--- a/"+path) || !strings.Contains(output, "+++ b/"+path) {
		t.Errorf("diff missing file headers: %s", output)
	}
	// Not a terminal, so no color codes.
	if strings.Contains(output, "\x1b[") {
		t.Error("diff to a buffer should not be colored")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != unformattedSrc {
		t.Error("diff mode must not modify the file")
	}
}

func TestRunWrite(t *testing.T) {
	path := writeFile(t, t.TempDir(), "test.sp", unformattedSrc)

	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Files:  []string{path},
		Write:  true,
		Stdout: &stdout,
		Stderr: &stderr,
	})

	if code != ExitOK {
		t.Errorf("exit code: got %d, want %d", code, ExitOK)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != formattedSrc {
		t.Errorf("file content: got %q, want %q", string(data), formattedSrc)
	}
}

func TestRunMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Files:  []string{"/nonexistent/path/test.sp"},
		Stdout: &stdout,
		Stderr: &stderr,
	})

	if code != ExitError {
		t.Errorf("exit code: got %d, want %d", code, ExitError)
	}
	if !strings.HasPrefix(stderr.String(), "spfmt: ") {
		t.Errorf("error should carry the program prefix, got: %s", stderr.String())
	}
}

func TestRunAlreadyFormatted(t *testing.T) {
	path := writeFile(t, t.TempDir(), "test.sp", formattedSrc)

	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Files:  []string{path},
		Diff:   true,
		Stdout: &stdout,
		Stderr: &stderr,
	})

	if code != ExitOK {
		t.Errorf("exit code: got %d, want %d", code, ExitOK)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no diff output, got: %s", stdout.String())
	}
}

func TestRunMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.sp", formattedSrc)
	bad := writeFile(t, dir, "bad.sp", unformattedSrc)

	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Files:  []string{good, bad},
		Check:  true,
		Stdout: &stdout,
		Stderr: &stderr,
	})

	// One file needs formatting, so exit code should be 1.
	if code != ExitFormatDiff {
		t.Errorf("exit code: got %d, want %d", code, ExitFormatDiff)
	}
}

func TestRunSyntaxError(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.sp", "int x = ;\n")
	bad := writeFile(t, dir, "bad.sp", unformattedSrc)

	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Files:  []string{broken, bad},
		Check:  true,
		Stdout: &stdout,
		Stderr: &stderr,
	})

	// The worst result wins.
	if code != ExitError {
		t.Errorf("exit code: got %d, want %d", code, ExitError)
	}
	want := "spfmt: " + broken + ": 1:9: expected expression"
	if !strings.Contains(stderr.String(), want) {
		t.Errorf("stderr: want %q in %q", want, stderr.String())
	}
}

func TestRunDecodeError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.sp", "char s[] = \"\xff\";\n")

	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Files:  []string{path},
		Write:  true,
		Stdout: &stdout,
		Stderr: &stderr,
	})

	if code != ExitError {
		t.Errorf("exit code: got %d, want %d", code, ExitError)
	}
	if !strings.Contains(stderr.String(), "invalid utf-8") {
		t.Errorf("stderr should report the decode failure, got: %s", stderr.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "char s[] = \"\xff\";\n" {
		t.Error("a failed format must not rewrite the file")
	}
}

func TestRunVerbose(t *testing.T) {
	path := writeFile(t, t.TempDir(), "test.sp", formattedSrc)

	var stdout, stderr bytes.Buffer
	_ = Run(&Options{
		Files:   []string{path},
		Verbose: true,
		Stdout:  &stdout,
		Stderr:  &stderr,
	})

	if !strings.Contains(stderr.String(), "test.sp") {
		t.Errorf("verbose mode should print filename to stderr, got: %s", stderr.String())
	}
}

func TestRunExcluded(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "spfmt.yml", "exclude:\n  - \"**/vendor/**\"\n")
	vendored := writeFile(t, dir, "vendor/lib.sp", unformattedSrc)
	own := writeFile(t, dir, "main.sp", formattedSrc)

	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Files:      []string{vendored, own},
		Check:      true,
		Verbose:    true,
		ConfigPath: configPath,
		Stdout:     &stdout,
		Stderr:     &stderr,
	})

	if code != ExitOK {
		t.Errorf("exit code: got %d, want %d", code, ExitOK)
	}
	want := "skipping " + vendored + ` (matches "**/vendor/**")`
	if !strings.Contains(stderr.String(), want) {
		t.Errorf("verbose mode should report skipped files with the pattern, got: %s", stderr.String())
	}
}

func TestRunConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "spfmt.yml",
		"formatter:\n  indent_style: tab\n  use_editorconfig: false\n")

	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		ConfigPath: configPath,
		Stdin:      strings.NewReader("{\nint x=1;\n}\n"),
		Stdout:     &stdout,
		Stderr:     &stderr,
	})

	if code != ExitOK {
		t.Fatalf("exit code: got %d, want %d (stderr: %s)", code, ExitOK, stderr.String())
	}
	if got, want := stdout.String(), "{\n\tint x = 1;\n}\n"; got != want {
		t.Errorf("output: got %q, want %q", got, want)
	}
}

func TestRunBadConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		ConfigPath: "/nonexistent/spfmt.yml",
		Stdin:      strings.NewReader(formattedSrc),
		Stdout:     &stdout,
		Stderr:     &stderr,
	})

	if code != ExitError {
		t.Errorf("exit code: got %d, want %d", code, ExitError)
	}
}

func TestRunEditorConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".editorconfig", "root = true\n\n[*.sp]\nindent_style = space\nindent_size = 2\n")
	path := writeFile(t, dir, "test.sp", "{\nint x;\n}\n")

	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Files:  []string{path},
		Write:  true,
		Stdout: &stdout,
		Stderr: &stderr,
	})

	if code != ExitOK {
		t.Fatalf("exit code: got %d, want %d (stderr: %s)", code, ExitOK, stderr.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{\n  int x;\n}\n" {
		t.Errorf("file content: got %q", string(data))
	}
}

func TestRunStdin(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		check  bool
		diff   bool
		code   int
		stdout string
	}{
		{"format", unformattedSrc, false, false, ExitOK, formattedSrc},
		{"check formatted", formattedSrc, true, false, ExitOK, ""},
		{"check unformatted", unformattedSrc, true, false, ExitFormatDiff, ""},
		{"diff formatted", formattedSrc, false, true, ExitOK, ""},
		{"syntax error", "int = 1;\n", false, false, ExitError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Run(&Options{
				Check:  tt.check,
				Diff:   tt.diff,
				Stdin:  strings.NewReader(tt.input),
				Stdout: &stdout,
				Stderr: &stderr,
			})

			if code != tt.code {
				t.Errorf("exit code: got %d, want %d (stderr: %s)", code, tt.code, stderr.String())
			}
			if stdout.String() != tt.stdout {
				t.Errorf("stdout: got %q, want %q", stdout.String(), tt.stdout)
			}
		})
	}
}

func TestRunStdinDiff(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(&Options{
		Diff:   true,
		Stdin:  strings.NewReader(unformattedSrc),
		Stdout: &stdout,
		Stderr: &stderr,
	})

	if code != ExitFormatDiff {
		t.Errorf("exit code: got %d, want %d", code, ExitFormatDiff)
	}
	if !strings.Contains(stdout.String(), "--- a/<stdin>") {
		t.Errorf("diff should name stdin, got: %s", stdout.String())
	}
}

func TestReport(t *testing.T) {
	diags := []writer.Diagnostic{
		{Line: 2, Col: 5, Kind: syntax.KindType, Context: "old_global_variable_declaration"},
		{Line: 7, Col: 1, Kind: syntax.KindComma, Context: "variable_declaration"},
	}

	var buf bytes.Buffer
	report(&buf, "plugin.sp", diags)

	want := "plugin.sp:2:5: warning: unexpected type in old_global_variable_declaration\n" +
		"plugin.sp:7:1: warning: unexpected , in variable_declaration\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestColorize(t *testing.T) {
	d := "--- a/x.sp\n+++ b/x.sp\n@@ -1 +1 @@\n-int x=1;\n+int x = 1;\n"
	got := colorize(d)

	want := "--- a/x.sp\n+++ b/x.sp\n" +
		colorCyan + "@@ -1 +1 @@" + colorReset + "\n" +
		colorRed + "-int x=1;" + colorReset + "\n" +
		colorGreen + "+int x = 1;" + colorReset + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
