package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", `addr: :9999
models_dir: /tmp
budget_mb: 123
margin_mb: 7
default_model: m1
preload: [m1, m2]
normalize: NFC
cors:
  enabled: true
  origins: ["https://example.org"]
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.ModelsDir != "/tmp" || cfg.BudgetMB != 123 || cfg.MarginMB != 7 || cfg.DefaultModel != "m1" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Preload) != 2 || !cfg.CORS.Enabled || cfg.CORS.Origins[0] != "https://example.org" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	cfg.ApplyDefaults()
	if cfg.Normalize != "nfc" {
		t.Fatalf("normalize not lowered: %q", cfg.Normalize)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","models_dir":"/m","max_k":5,"max_batch":9,"max_wait_ms":250,"default_model":"m2"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.ModelsDir != "/m" || cfg.MaxK != 5 || cfg.MaxBatch != 9 || cfg.DefaultModel != "m2" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.MaxWait() != 250*time.Millisecond {
		t.Fatalf("max wait = %v", cfg.MaxWait())
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nmodels_dir=\"/x\"\nbudget_mb=9\nmargin_mb=1\ndefault_model=\"m3\"\n[cors]\nenabled=true\nmethods=[\"GET\"]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.ModelsDir != "/x" || cfg.BudgetMB != 9 || cfg.MarginMB != 1 || cfg.DefaultModel != "m3" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if !cfg.CORS.Enabled || len(cfg.CORS.Methods) != 1 {
		t.Fatalf("cors: %+v", cfg.CORS)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
	for name, body := range map[string]string{
		"bad.yaml": "addr: :8080\n: broken\n",
		"bad.json": `{ "addr": ":8080", "models_dir": }`,
		"bad.toml": "addr=:8080\nmodels_dir\n",
	} {
		if _, err := Load(writeTempFile(t, d, name, body)); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Addr != DefaultAddr || cfg.ModelsDir != DefaultModelsDir {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.MaxQueueDepth != DefaultMaxQueueDepth || cfg.MaxInflight != DefaultMaxInflight || cfg.MaxK != DefaultMaxK || cfg.MaxBatch != DefaultMaxBatch {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
	if cfg.DrainTimeout() != 5*time.Second || cfg.RequestTimeout() != 0 {
		t.Fatalf("durations: %v %v", cfg.DrainTimeout(), cfg.RequestTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	kept := Config{Addr: ":1", MaxK: 3}
	kept.ApplyDefaults()
	if kept.Addr != ":1" || kept.MaxK != 3 {
		t.Fatalf("explicit values overwritten: %+v", kept)
	}
}

func TestValidate(t *testing.T) {
	bad := []Config{
		{Normalize: "nfd", LogFormat: "json"},
		{LogFormat: "xml"},
		{LogFormat: "json", BudgetMB: 10, MarginMB: 10},
		{LogFormat: "json", BudgetMB: -1},
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected error for %+v", i, c)
		}
	}
}
