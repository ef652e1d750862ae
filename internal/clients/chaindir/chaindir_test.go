package chaindir

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"go.uber.org/zap"

	"github.com/yungbote/ragulator-backend/internal/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("# chain"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestList_OnlyPythonFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "simple_chain.py")
	writeFile(t, dir, "rag_chain.py")
	writeFile(t, dir, "README.md")
	if err := os.Mkdir(filepath.Join(dir, "nested.py"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	d := &directory{path: dir, log: testLogger()}
	files, err := d.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	sort.Strings(files)
	want := []string{"rag_chain.py", "simple_chain.py"}
	if len(files) != len(want) || files[0] != want[0] || files[1] != want[1] {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestList_SeesNewFilesWithoutRestart(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "first.py")

	d := &directory{path: dir, log: testLogger()}
	files, err := d.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("files = %v, want one", files)
	}

	writeFile(t, dir, "second.py")
	files, err = d.List()
	if err != nil {
		t.Fatalf("list after add: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("files = %v, want two after adding a chain", files)
	}
}

func TestList_MissingDirectory(t *testing.T) {
	d := &directory{path: filepath.Join(t.TempDir(), "nope"), log: testLogger()}
	if _, err := d.List(); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
