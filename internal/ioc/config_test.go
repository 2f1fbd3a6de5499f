package ioc

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/stm32-platform/ioc-check/internal/errors"
)

func writeIOC(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.ioc")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestLoad_KeyValueParsing(t *testing.T) {
	path := writeIOC(t, "Mcu.Family=STM32F4\n  RCC.APB1Freq_Value =  45000000  \nCAN1.BS1=CAN_BS1_12TQ\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if got := cfg.Get("Mcu.Family"); got != "STM32F4" {
		t.Errorf("Get(Mcu.Family) = %q, want %q", got, "STM32F4")
	}
	if got := cfg.Get("RCC.APB1Freq_Value"); got != "45000000" {
		t.Errorf("Expected whitespace around key and value to be trimmed, got %q", got)
	}
	if cfg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cfg.Len())
	}
}

func TestLoad_SplitsOnFirstEqualsOnly(t *testing.T) {
	path := writeIOC(t, "ProjectManager.ToolChainLocation=C:=\\tools\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if got := cfg.Get("ProjectManager.ToolChainLocation"); got != "C:=\\tools" {
		t.Errorf("Expected value to keep everything after the first '=', got %q", got)
	}
}

func TestLoad_SkipsCommentsBlankAndMalformedLines(t *testing.T) {
	path := writeIOC(t, "# header comment\n\n   \nno equals sign here\nMcu.Name=STM32F407\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Len() != 1 {
		t.Errorf("Expected 1 key, got %d", cfg.Len())
	}
	if cfg.Has("no equals sign here") {
		t.Errorf("Malformed line should not contribute a key")
	}
}

func TestLoad_DuplicateKeyLastWins(t *testing.T) {
	path := writeIOC(t, "A=1\nA=2\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if got := cfg.Get("A"); got != "2" {
		t.Errorf("Get(A) = %q, want %q (last occurrence wins)", got, "2")
	}
}

func TestLoad_Idempotent(t *testing.T) {
	path := writeIOC(t, "A=1\nB=2\nC=3\n")

	first, err := Load(path)
	if err != nil {
		t.Fatalf("First Load() failed: %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("Second Load() failed: %v", err)
	}

	if !reflect.DeepEqual(first.values, second.values) {
		t.Errorf("Loading the same file twice produced different mappings: %v vs %v", first.values, second.values)
	}
}

func TestLoad_LongLine(t *testing.T) {
	longValue := strings.Repeat("PA0/PA1/PA2/", 20000) // ~240 KiB, past the default scanner limit
	path := writeIOC(t, "Mcu.PinsNb=3\nMcu.PinList="+longValue+"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed on a long line: %v", err)
	}

	if got := cfg.Get("Mcu.PinList"); got != longValue {
		t.Errorf("Long value truncated: got %d bytes, want %d", len(got), len(longValue))
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ioc"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("Expected %v error, got %v", apperrors.ErrCodeNotFound, err)
	}
}

func TestGet_MissingKeyDefaultsToEmpty(t *testing.T) {
	cfg := NewConfig(map[string]string{"A": "1"})

	if got := cfg.Get("B"); got != "" {
		t.Errorf("Get(B) = %q, want empty string", got)
	}
	if got := cfg.GetOr("B", "0"); got != "0" {
		t.Errorf("GetOr(B, 0) = %q, want %q", got, "0")
	}
	if got := cfg.GetOr("A", "0"); got != "1" {
		t.Errorf("GetOr(A, 0) = %q, want %q", got, "1")
	}
}

func TestSerialize_RendersTOML(t *testing.T) {
	cfg := NewConfig(map[string]string{"Mcu.Family": "STM32F4"})

	buf, err := cfg.Serialize()
	if err != nil {
		t.Fatalf("Serialize() failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Expected non-empty TOML output")
	}
}
