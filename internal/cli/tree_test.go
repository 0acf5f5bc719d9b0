package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumipallolabs/sizemap/internal/config"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "big.bin"), make([]byte, 300), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "docs", "readme.md"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	return tmp
}

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := newTreeCmd(config.Default())
	if args[0] == "rects" {
		cmd = newRectsCmd(config.Default())
	}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args[1:])
	if err := cmd.Execute(); err != nil {
		t.Fatalf("command failed: %v\n%s", err, buf.String())
	}
	return buf.String()
}

func TestTreeCommand(t *testing.T) {
	tmp := writeFixture(t)
	out := runCmd(t, "tree", tmp)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "[400B] (100.0%)") {
		t.Errorf("root line wrong: %s", lines[0])
	}
	// Largest child first.
	if !strings.Contains(lines[1], "big.bin [300B] (75.0%)") {
		t.Errorf("expected big.bin first: %s", lines[1])
	}
	if !strings.Contains(lines[2], "docs [100B] (25.0%)") {
		t.Errorf("expected docs second: %s", lines[2])
	}
}

func TestTreeCommandDirsOnly(t *testing.T) {
	tmp := writeFixture(t)
	out := runCmd(t, "tree", tmp, "--dirs-only")

	if strings.Contains(out, "big.bin") || strings.Contains(out, "readme.md") {
		t.Errorf("files should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "docs") {
		t.Errorf("directories should remain:\n%s", out)
	}
}

func TestRectsCommand(t *testing.T) {
	tmp := writeFixture(t)
	out := runCmd(t, "rects", tmp, "--width", "100", "--height", "60")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// big.bin, docs, readme.md.
	if len(lines) != 3 {
		t.Fatalf("expected 3 blocks, got %d:\n%s", len(lines), out)
	}
	// big.bin holds 75% of the area and is packed first against the
	// shorter side: a vertical strip 75 wide over the full height.
	if !strings.HasPrefix(lines[0], "0.00 0.00 75.00 60.00") {
		t.Errorf("unexpected first block: %s", lines[0])
	}
	if !strings.Contains(out, "big.bin") || !strings.Contains(out, "readme.md") {
		t.Errorf("missing entries:\n%s", out)
	}
}

func TestRectsCommandRejectsBadBounds(t *testing.T) {
	cmd := newRectsCmd(config.Default())
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{t.TempDir(), "--width", "0"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for zero width")
	}
}
