package rconfig

import "testing"

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`historyPath: /tmp/history.db`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.Cache.Enabled {
		t.Errorf("expected the default cache policy to remain enabled")
	}
	if cfg.ListenAddr != "127.0.0.1:7433" {
		t.Errorf("expected the default listen address to survive an omitted field, got %q", cfg.ListenAddr)
	}
	if cfg.HistoryPath != "/tmp/history.db" {
		t.Errorf("expected the supplied historyPath to override the default, got %q", cfg.HistoryPath)
	}
}

func TestParseRejectsInvalidListenAddr(t *testing.T) {
	_, err := Parse([]byte(`listenAddr: "not a hostport"`))
	if err == nil {
		t.Fatalf("expected an invalid listenAddr to fail validation")
	}
}

func TestParseRejectsUnnamedDecoratorToggle(t *testing.T) {
	_, err := Parse([]byte("decorators:\n  - enabled: true\n"))
	if err == nil {
		t.Fatalf("expected a nameless decorator toggle to fail validation")
	}
}

func TestParseAcceptsValidDecoratorToggle(t *testing.T) {
	cfg, err := Parse([]byte("decorators:\n  - name: validate\n    enabled: false\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Decorators) != 1 || cfg.Decorators[0].Name != "validate" || cfg.Decorators[0].Enabled {
		t.Fatalf("unexpected decorators: %+v", cfg.Decorators)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/reflectdump.yaml"); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
