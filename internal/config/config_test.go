package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.RestartDelay != DefaultRestartDelay {
		t.Errorf("RestartDelay = %v, want %v", cfg.RestartDelay, DefaultRestartDelay)
	}
	if cfg.SendQueue != DefaultSendQueue {
		t.Errorf("SendQueue = %d, want %d", cfg.SendQueue, DefaultSendQueue)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DURAK_ADDR", ":9000")
	t.Setenv("DURAK_RESTART_DELAY", "500ms")
	t.Setenv("DURAK_SEND_QUEUE", "128")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q, want :9000", cfg.Addr)
	}
	if cfg.RestartDelay != 500*time.Millisecond {
		t.Errorf("RestartDelay = %v, want 500ms", cfg.RestartDelay)
	}
	if cfg.SendQueue != 128 {
		t.Errorf("SendQueue = %d, want 128", cfg.SendQueue)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DURAK_RESTART_DELAY", "soon")
	if _, err := Load(); err == nil {
		t.Error("bad duration accepted")
	}

	t.Setenv("DURAK_RESTART_DELAY", "")
	t.Setenv("DURAK_SEND_QUEUE", "-1")
	if _, err := Load(); err == nil {
		t.Error("negative queue size accepted")
	}
}
