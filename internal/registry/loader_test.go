package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, size int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDirPairsVectors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "beta.bin", 10)
	writeFile(t, dir, "beta.vec", 6)
	writeFile(t, dir, "alpha.BIN", 3)
	writeFile(t, dir, "notes.txt", 1)
	writeFile(t, dir, "orphan.vec", 1)
	writeFile(t, dir, ".bin", 1)
	if err := os.Mkdir(filepath.Join(dir, "sub.bin"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	models, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %+v", models)
	}
	if models[0].ID != "alpha" || models[1].ID != "beta" {
		t.Fatalf("unexpected order: %s, %s", models[0].ID, models[1].ID)
	}
	if models[0].VectorsPath != "" || models[0].SizeBytes != 3 {
		t.Fatalf("alpha: %+v", models[0])
	}
	if models[1].VectorsPath != filepath.Join(dir, "beta.vec") || models[1].SizeBytes != 16 {
		t.Fatalf("beta: %+v", models[1])
	}
	if !filepath.IsAbs(models[1].Path) {
		t.Fatalf("path not absolute: %s", models[1].Path)
	}
}

func TestLoadDirExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.Mkdir(filepath.Join(home, "models"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(home, "models"), "x.bin", 1)
	models, err := LoadDir("~/models")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 1 || models[0].ID != "x" {
		t.Fatalf("unexpected models: %+v", models)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m.bin", 1)
	models, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := Find(models, "m"); !ok {
		t.Fatalf("expected to find m")
	}
	if _, ok := Find(models, "m.bin"); ok {
		t.Fatalf("id is the stem, not the file name")
	}
}
