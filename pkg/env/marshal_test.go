package env

import (
	"strings"
	"testing"
	"time"
)

type sampleConfig struct {
	Name     string        `env:"APP_NAME"`
	Token    string        `env:"APP_TOKEN,required,notEmpty"`
	Port     int           `env:"APP_PORT"`
	Debug    bool          `env:"APP_DEBUG"`
	Timeout  time.Duration `env:"APP_TIMEOUT"`
	Ignored  string
	internal string `env:"APP_INTERNAL"`
}

func TestMarshalEnv(t *testing.T) {
	c := &sampleConfig{
		Name:     "sparrow",
		Token:    "secret",
		Port:     8080,
		Debug:    true,
		Timeout:  90 * time.Second,
		Ignored:  "skip me",
		internal: "skip me too",
	}

	got, err := MarshalEnv(c)
	if err != nil {
		t.Fatalf("MarshalEnv: %v", err)
	}

	want := "APP_NAME=sparrow\nAPP_TOKEN=secret\nAPP_PORT=8080\nAPP_DEBUG=true\nAPP_TIMEOUT=1m30s\n"
	if got != want {
		t.Errorf("MarshalEnv = %q, want %q", got, want)
	}
}

func TestMarshalEnvSkipsZeroValues(t *testing.T) {
	got, err := MarshalEnv(&sampleConfig{Name: "sparrow"})
	if err != nil {
		t.Fatalf("MarshalEnv: %v", err)
	}

	if got != "APP_NAME=sparrow\n" {
		t.Errorf("MarshalEnv = %q, want only the non-zero field", got)
	}
	if strings.Contains(got, "APP_TIMEOUT") {
		t.Errorf("zero duration should be omitted, got %q", got)
	}
}

func TestMarshalEnvDurationRoundTrips(t *testing.T) {
	c := &sampleConfig{Timeout: 60 * time.Second}

	got, err := MarshalEnv(c)
	if err != nil {
		t.Fatalf("MarshalEnv: %v", err)
	}
	if got != "APP_TIMEOUT=1m0s\n" {
		t.Fatalf("MarshalEnv = %q, want APP_TIMEOUT=1m0s", got)
	}

	val := strings.TrimPrefix(strings.TrimSpace(got), "APP_TIMEOUT=")
	d, err := time.ParseDuration(val)
	if err != nil {
		t.Fatalf("ParseDuration(%q): %v", val, err)
	}
	if d != c.Timeout {
		t.Errorf("round trip = %v, want %v", d, c.Timeout)
	}
}
