package config

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RCParser parses plain "key value" configuration files.
//
//	# comment
//	output  palettes.html
//	title   My palettes
//	strict_header yes
type RCParser struct{}

// NewRCParser creates a new RCParser instance.
func NewRCParser() *RCParser {
	return &RCParser{}
}

// Parse parses an rc configuration from content bytes.
func (p *RCParser) Parse(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	scanner := bufio.NewScanner(strings.NewReader(string(content)))

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		trimmed := strings.TrimSpace(scanner.Text())

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if err := p.parseDirective(&cfg, trimmed, lineNum); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}

	return &cfg, nil
}

// parseDirective parses a single "key value" line.
func (p *RCParser) parseDirective(cfg *Config, line string, lineNum int) error {
	key, value, _ := strings.Cut(line, " ")
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case "output":
		cfg.Output.Path = value
	case "title":
		cfg.Output.Title = value
	case "strict_header":
		cfg.Parse.StrictHeader = parseBool(value)

	case "swatch_dir":
		cfg.Swatch.Dir = value
	case "swatch_format":
		cfg.Swatch.Format = strings.ToLower(value)
	case "swatch_cell":
		n, err := parseInt(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid swatch_cell: %w", lineNum, err)
		}
		cfg.Swatch.Cell = n

	case "watch":
		cfg.Watch.Enabled = parseBool(value)
	case "watch_debounce":
		secs, err := parseFloat(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid watch_debounce: %w", lineNum, err)
		}
		cfg.Watch.Debounce = time.Duration(secs * float64(time.Second))

	case "log_level":
		cfg.Log.Level = strings.ToLower(value)
	case "log_format":
		cfg.Log.Format = strings.ToLower(value)

	default:
		// Unknown keys are ignored so newer files still load.
	}

	return nil
}

// parseBool parses a boolean value from common string representations.
// Accepts: yes, no, true, false, 1, 0. A bare key with no value is true.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "":
		return true
	default:
		return false
	}
}

// parseFloat parses a float64 from a string.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseInt parses an int from a string.
func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
