package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Stub.Port != 6100 {
		t.Errorf("Stub.Port default = %d, want %d", cfg.Stub.Port, 6100)
	}
	if cfg.Client.Shape != "json" {
		t.Errorf("Client.Shape default = %q, want %q", cfg.Client.Shape, "json")
	}
	if cfg.Client.GetTimeout() != 0 {
		t.Errorf("Client.GetTimeout() default = %v, want 0", cfg.Client.GetTimeout())
	}
}

func TestConfig_StubPortEnvOverride(t *testing.T) {
	t.Setenv("BUILDUP_STUB_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Stub.Port != 9090 {
		t.Errorf("Stub.Port = %d after env override, want %d", cfg.Stub.Port, 9090)
	}
}

func TestConfig_StubPortEnvOverride_IgnoresGarbage(t *testing.T) {
	t.Setenv("BUILDUP_STUB_PORT", "not-a-port")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Stub.Port != 6100 {
		t.Errorf("Stub.Port = %d, want default %d", cfg.Stub.Port, 6100)
	}
}

func TestConfig_CredentialEnvOverrides(t *testing.T) {
	t.Setenv("BUILDUP_API_KEY", "key-from-env")
	t.Setenv("BUILDUP_API_SECRET", "secret-from-env")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Credentials.Key != "key-from-env" {
		t.Errorf("Credentials.Key = %q, want %q", cfg.Credentials.Key, "key-from-env")
	}
	if cfg.Credentials.Secret != "secret-from-env" {
		t.Errorf("Credentials.Secret = %q, want %q", cfg.Credentials.Secret, "secret-from-env")
	}
	if missing := cfg.ValidateRequired(); len(missing) != 0 {
		t.Errorf("expected 0 missing after env overrides, got %v", missing)
	}
}

func TestConfig_ValidateRequired_AllMissing(t *testing.T) {
	cfg := NewDefaultConfig()
	missing := cfg.ValidateRequired()
	if len(missing) != 2 {
		t.Errorf("expected 2 missing fields, got %d: %v", len(missing), missing)
	}
}

func TestConfig_ResolveBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "development", env: "development", want: LocalOrigin},
		{name: "local", env: "local", want: LocalOrigin},
		{name: "production", env: "production", want: ProductionOrigin},
		{name: "explicit wins", env: "production", baseURL: "http://10.0.0.1:8080/", want: "http://10.0.0.1:8080"},
		{name: "unknown", env: "staging", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Environment = tt.env
			cfg.Client.BaseURL = tt.baseURL

			got, err := cfg.ResolveBaseURL()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for env %q", tt.env)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveBaseURL: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveBaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientConfig_GetTimeout(t *testing.T) {
	cfg := &ClientConfig{Timeout: "5s"}
	if d := cfg.GetTimeout(); d != 5*time.Second {
		t.Errorf("GetTimeout() = %v, want 5s", d)
	}

	cfg = &ClientConfig{Timeout: "soon"}
	if d := cfg.GetTimeout(); d != 0 {
		t.Errorf("GetTimeout() = %v, want 0 for invalid duration", d)
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buildup.toml")
	content := `
environment = "production"

[client]
shape = "uid"
uid = "user-1"
timeout = "10s"

[credentials]
key = "toml-key"
secret = "toml-secret"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.IsProduction() {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.Client.Shape != "uid" || cfg.Client.UID != "user-1" {
		t.Errorf("Client = %+v, want shape uid and uid user-1", cfg.Client)
	}
	if cfg.Credentials.Key != "toml-key" {
		t.Errorf("Credentials.Key = %q, want toml-key", cfg.Credentials.Key)
	}
	// Unset sections keep their defaults
	if cfg.Stub.Port != 6100 {
		t.Errorf("Stub.Port = %d, want default 6100", cfg.Stub.Port)
	}
}

func TestLoadConfig_YAMLOverridesTOML(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	local := filepath.Join(dir, "local.yaml")

	if err := os.WriteFile(base, []byte("[credentials]\nkey = \"base-key\"\nsecret = \"base-secret\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte("credentials:\n  key: yaml-key\nstub:\n  port: 7100\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(base, local)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Credentials.Key != "yaml-key" {
		t.Errorf("Credentials.Key = %q, want yaml-key", cfg.Credentials.Key)
	}
	if cfg.Credentials.Secret != "base-secret" {
		t.Errorf("Credentials.Secret = %q, want base-secret", cfg.Credentials.Secret)
	}
	if cfg.Stub.Port != 7100 {
		t.Errorf("Stub.Port = %d, want 7100", cfg.Stub.Port)
	}
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"), "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("environment = \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error for broken TOML")
	}
}
