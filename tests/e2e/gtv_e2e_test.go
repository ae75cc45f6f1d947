package main_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// End-to-end tests run the real gtv binary with stdout piped, so it never
// opens the terminal UI and prints the tree instead.

var (
	buildOnce sync.Once
	gtvPath   string
	buildErr  error
)

func buildGtvBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "gtv-e2e-*")
		if err != nil {
			buildErr = err
			return
		}
		name := "gtv"
		if runtime.GOOS == "windows" {
			name += ".exe"
		}
		gtvPath = filepath.Join(dir, name)
		cmd := exec.Command("go", "build", "-o", gtvPath, "../../cmd/gtv")
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = errors.New(string(out))
		}
	})
	if buildErr != nil {
		t.Fatalf("build gtv: %v", buildErr)
	}
	return gtvPath
}

func runGtv(t *testing.T, dir string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	cmd := exec.Command(buildGtvBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GTV_LOG_LEVEL=", "GTV_RESOLVE=", "GTV_CATALOG=", "GTV_LOG_FILE=")
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		code = 0
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
	default:
		t.Fatalf("run gtv: %v", err)
	}
	return out.String(), errOut.String(), code
}

const catalogXML = `<?xml version="1.0" encoding="UTF-8"?>
<obo>
  <header><format-version>1.2</format-version></header>
  <term>
    <id>GO:0000001</id>
    <name>mitochondrion inheritance</name>
    <is_a>GO:0048308</is_a>
    <is_a>GO:0048311</is_a>
  </term>
  <term>
    <id>GO:0048308</id>
    <name>organelle inheritance</name>
  </term>
  <term>
    <id>GO:0048311</id>
    <name>mitochondrion distribution</name>
    <is_a>GO:0051646</is_a>
  </term>
</obo>
`

func writeCatalog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestE2E_DefaultPathDump(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "go_200911-termdb.obo-xml", catalogXML)

	out, errOut, code := runGtv(t, dir, "-log-level", "error")
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	want := strings.Join([]string{
		"Gene Ontology terms",
		"├── mitochondrion inheritance",
		"│   ├── GO:0048308",
		"│   └── GO:0048311",
		"├── organelle inheritance",
		"└── mitochondrion distribution",
		"    └── GO:0051646",
		"",
	}, "\n")
	if out != want {
		t.Errorf("dump mismatch:\n%s\nwant:\n%s", out, want)
	}
}

func TestE2E_GzipCatalog(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(catalogXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	path := writeCatalog(t, dir, "terms.obo-xml.gz", buf.String())

	out, errOut, code := runGtv(t, dir, "-dump", "-log-level", "error", path)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	if !strings.Contains(out, "organelle inheritance") {
		t.Errorf("expected decompressed catalog in dump:\n%s", out)
	}
}

func TestE2E_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	good := writeCatalog(t, dir, "good.obo-xml", catalogXML)
	bad := writeCatalog(t, dir, "bad.obo-xml", "<obo><term><id>GO:1</id>")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"ok", []string{good}, 0},
		{"missing default file", nil, 1},
		{"malformed", []string{bad}, 1},
		{"two positionals", []string{good, good}, 2},
		{"unknown strategy", []string{"-resolve", "fuzzy", good}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, code := runGtv(t, dir, append([]string{"-log-level", "error"}, tt.args...)...)
			if code != tt.code {
				t.Fatalf("exit %d, want %d (stderr=%s)", code, tt.code, errOut)
			}
			if tt.code == 1 {
				if n := strings.Count(strings.TrimSpace(errOut), "\n"); n != 0 {
					t.Errorf("expected one diagnostic line, got:\n%s", errOut)
				}
			}
		})
	}
}

func TestE2E_WarningsGoToStderr(t *testing.T) {
	dir := t.TempDir()
	content := strings.Replace(catalogXML, "</obo>", `  <term><id>GO:9</id></term>
  <term><id>GO:0048308</id><name>organelle inheritance (renamed)</name></term>
</obo>`, 1)
	path := writeCatalog(t, dir, "warn.obo-xml", content)

	out, errOut, code := runGtv(t, dir, path)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	for _, want := range []string{"term skipped", "replaced", "catalog loaded"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %q:\n%s", want, errOut)
		}
	}
	if strings.Contains(out, "GO:9") {
		t.Errorf("skipped term leaked into the tree:\n%s", out)
	}
	if !strings.Contains(out, "organelle inheritance (renamed)") {
		t.Errorf("later duplicate should win:\n%s", out)
	}
}

func TestE2E_Stats(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, "stats.obo-xml", catalogXML)
	out, errOut, code := runGtv(t, dir, "-stats", "-log-level", "error", path)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	for _, want := range []string{"Terms:       3", "Dangling:    1", "acyclic"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}
}
