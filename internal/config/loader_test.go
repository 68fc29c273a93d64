package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
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
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nlog_level: debug\nmax_body_bytes: 2048\ncors_enabled: true\ncors_allowed_origins:\n  - http://a\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.LogLevel != "debug" || cfg.MaxBodyBytes != 2048 || !cfg.CORSEnabled || len(cfg.CORSAllowedOrigins) != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	// keys absent from the file keep their default
	if cfg.LogFormat != "console" || !cfg.DocsEnabled {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","log_format":"json","request_timeout_seconds":5,"docs_enabled":false}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.LogFormat != "json" || cfg.RequestTimeoutSeconds != 5 || cfg.DocsEnabled {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nlog_level=\"warn\"\ncors_allowed_methods=[\"GET\"]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.LogLevel != "warn" || len(cfg.CORSAllowedMethods) != 1 || cfg.CORSAllowedMethods[0] != "GET" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	cases := map[string]string{
		"cfg.txt":   "not supported",
		"bad.yaml":  "addr: :8080\n: broken\n",
		"bad.json":  `{ "addr": ":8080", "log_level": }`,
		"bad.toml":  "addr=:8080\nlog_level\n",
		"type.yaml": "max_body_bytes: lots\n",
	}
	for name, content := range cases {
		if _, err := Load(writeTempFile(t, d, name, content)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv("PARAMD_ADDR", ":9100")
	t.Setenv("PARAMD_MAX_BODY_BYTES", "512")
	t.Setenv("PARAMD_CORS_ENABLED", "true")
	t.Setenv("PARAMD_CORS_ALLOWED_ORIGINS", "http://a, http://b,")
	t.Setenv("PARAMD_DOCS_ENABLED", "false")

	cfg := Defaults()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Addr != ":9100" || cfg.MaxBodyBytes != 512 || !cfg.CORSEnabled || cfg.DocsEnabled {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if strings.Join(cfg.CORSAllowedOrigins, "|") != "http://a|http://b" {
		t.Fatalf("origins=%v", cfg.CORSAllowedOrigins)
	}
	// untouched keys keep their value
	if cfg.LogLevel != "info" || len(cfg.CORSAllowedMethods) == 0 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestApplyEnv_BadNumber(t *testing.T) {
	t.Setenv("PARAMD_REQUEST_TIMEOUT_SECONDS", "soon")
	cfg := Defaults()
	if err := ApplyEnv(&cfg); err == nil {
		t.Fatalf("expected error for a non-numeric timeout")
	}
}

func TestResolve_Precedence(t *testing.T) {
	d := t.TempDir()
	cfgPath := writeTempFile(t, d, "cfg.yaml", "addr: :1111\nlog_level: debug\nlog_format: json\n")
	envPath := writeTempFile(t, d, "test.env", "PARAMD_LOG_LEVEL=warn\nPARAMD_LOG_FORMAT=console\n")
	t.Setenv("PARAMD_LOG_FORMAT", "json")
	// godotenv exports into the process; make sure the test leaves nothing behind
	t.Cleanup(func() { _ = os.Unsetenv("PARAMD_LOG_LEVEL") })

	cfg, err := Resolve(cfgPath, envPath)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Addr != ":1111" {
		t.Fatalf("file value lost: %s", cfg.Addr)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf(".env should override the file, got %s", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("environment should win over .env, got %s", cfg.LogFormat)
	}
}

func TestResolve_MissingEnvFile(t *testing.T) {
	if _, err := Resolve("", filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Fatalf("expected error for a missing explicit env file")
	}
}

func TestValidate(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	cfg := Defaults()
	cfg.Addr = "nope"
	cfg.LogLevel = "loud"
	cfg.MaxBodyBytes = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, field := range []string{"Addr", "LogLevel", "MaxBodyBytes"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("error does not mention %s: %v", field, err)
		}
	}

	cfg = Defaults()
	cfg.CORSEnabled = true
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "CORSAllowedOrigins") {
		t.Fatalf("expected origins to be required with CORS on, got %v", err)
	}
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v", got)
	}
	if got := SplitCSV(""); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}
