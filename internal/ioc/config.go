// Package ioc loads STM32CubeMX .ioc project files into a flat key/value
// mapping. Only the flat `key=value` surface of the format is understood;
// comment lines and lines without an equals sign are skipped.
package ioc

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/stm32-platform/ioc-check/internal/errors"
	"github.com/stm32-platform/ioc-check/internal/log"
	"github.com/stm32-platform/ioc-check/internal/utils"
)

// maxLineBytes caps a single .ioc line. Inputs are expected to be tens of
// kilobytes in total; anything above this is treated as a read error.
const maxLineBytes = 1024 * 1024

// Config is the loaded .ioc mapping. It is built once by Load and never
// mutated afterwards.
type Config struct {
	path    string
	values  map[string]string
	skipped int
}

// Load reads the .ioc file at path and returns its key/value mapping.
//
// Every line is trimmed of surrounding whitespace; empty lines, lines
// starting with '#' and lines without '=' are skipped. A line splits on
// the first '=' only, both halves trimmed. A later duplicate key
// overwrites an earlier one.
func Load(path string) (*Config, error) {
	configFile := filepath.Clean(path)

	if !filepath.IsAbs(configFile) {
		if abs, err := filepath.Abs(configFile); err != nil {
			return nil, errors.NewReadError("failed to get absolute path", err)
		} else {
			configFile = abs
		}
	}

	if !utils.FileExists(configFile) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("IOC file not found: %s", path))
	}

	file, err := os.Open(configFile)
	if err != nil {
		return nil, errors.NewReadError(fmt.Sprintf("failed to open IOC file: %s", path), err)
	}
	defer utils.CloseOrWarn(file)

	cfg := &Config{
		path:   configFile,
		values: make(map[string]string),
	}

	scanner := bufio.NewScanner(file)
	// Some generated values (pin lists, IP configurations) can exceed the
	// default 64 KiB token limit.
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "=") {
			cfg.skipped++
			continue
		}

		key, value, _ := strings.Cut(line, "=")
		cfg.values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewReadError(fmt.Sprintf("failed to read IOC file: %s", path), err)
	}

	log.Debugf("Loaded %d keys from %s (%d lines skipped)", len(cfg.values), configFile, cfg.skipped)

	return cfg, nil
}

// NewConfig builds a Config directly from a mapping. Intended for tests
// and embedding; Load is the normal construction path.
func NewConfig(values map[string]string) *Config {
	if values == nil {
		values = make(map[string]string)
	}
	return &Config{values: values}
}

// Get returns the value for key, or the empty string if the key is absent.
// A missing key is never an error.
func (c *Config) Get(key string) string {
	return c.values[key]
}

// GetOr returns the value for key, or def if the key is absent.
func (c *Config) GetOr(key string, def string) string {
	if v, ok := c.values[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is present in the mapping.
func (c *Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Path returns the absolute path the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Len returns the number of loaded keys.
func (c *Config) Len() int {
	return len(c.values)
}

// Serialize renders the mapping as TOML for diagnostic dumps.
func (c *Config) Serialize() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c.values); err != nil {
		return nil, err
	}
	return &buf, nil
}
