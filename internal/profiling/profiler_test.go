package profiling

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigEnabled(t *testing.T) {
	tests := []struct {
		cfg  Config
		want bool
	}{
		{Config{}, false},
		{Config{CPUProfilePath: "cpu.prof"}, true},
		{Config{MemProfilePath: "mem.prof"}, true},
	}
	for _, tt := range tests {
		if got := tt.cfg.Enabled(); got != tt.want {
			t.Errorf("%+v.Enabled() = %v, want %v", tt.cfg, got, tt.want)
		}
	}
}

func TestStartStop(t *testing.T) {
	dir := t.TempDir()
	cpuPath := filepath.Join(dir, "cpu.prof")
	memPath := filepath.Join(dir, "mem.prof")

	p, err := Start(Config{CPUProfilePath: cpuPath, MemProfilePath: memPath})
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}

	for _, path := range []string{cpuPath, memPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("profile %s not written: %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("profile %s is empty", path)
		}
	}

	if err := p.Stop(); err == nil {
		t.Error("second Stop() should fail")
	}
}

func TestStartDisabled(t *testing.T) {
	p, err := Start(Config{})
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Errorf("Stop() failed: %v", err)
	}
}

func TestStartBadPath(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing", "cpu.prof")
	if _, err := Start(Config{CPUProfilePath: bad}); err == nil {
		t.Error("Start() should fail for an uncreatable path")
	}
}

func TestStopMemProfileError(t *testing.T) {
	p, err := Start(Config{MemProfilePath: filepath.Join(t.TempDir(), "missing", "mem.prof")})
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := p.Stop(); err == nil {
		t.Error("Stop() should report the heap profile error")
	}
}
