// Package config is the gateway's configuration record (spec §6.4, A2):
// the CLI surface plus anything persisted across invocations. The
// pointer-field, omitempty-tagged shape is grounded on the teacher's
// TuningConfig, which uses the same pattern to support partial JSON
// updates without clobbering unspecified fields.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TargetMode mirrors spec §6.4's targets enum.
type TargetMode string

const (
	TargetsArpa   TargetMode = "arpa"
	TargetsTrails TargetMode = "trails"
	TargetsNone   TargetMode = "none"
)

// Config is the gateway's configuration record. Every field is a pointer
// so a JSON file on disk can specify only the fields it wants to
// override; CLI flags always win over the file, and built-in defaults
// fill whatever neither specifies (see Merge).
type Config struct {
	Port               *uint16     `json:"port,omitempty"`
	Interface          *string     `json:"interface,omitempty"`
	Brand              *string     `json:"brand,omitempty"`
	Targets            *TargetMode `json:"targets,omitempty"`
	NavigationAddress  *string     `json:"navigation_address,omitempty"`
	NMEA0183           *bool       `json:"nmea0183,omitempty"`
	Output             *bool       `json:"output,omitempty"`
	Replay             *bool       `json:"replay,omitempty"`
	AllowWifi          *bool       `json:"allow_wifi,omitempty"`
	Stationary         *bool       `json:"stationary,omitempty"`
	DBPath             *string     `json:"db_path,omitempty"`
	MetricsAddr        *string     `json:"metrics_addr,omitempty"`
}

func ptrU16(v uint16) *uint16        { return &v }
func ptrBool(v bool) *bool           { return &v }
func ptrString(v string) *string     { return &v }
func ptrTargets(v TargetMode) *TargetMode { return &v }

// Default returns the built-in defaults, matching the original project's
// CLI defaults (port 6502, targets Arpa, everything else off).
func Default() *Config {
	return &Config{
		Port:        ptrU16(6502),
		Targets:     ptrTargets(TargetsArpa),
		NMEA0183:    ptrBool(false),
		Output:      ptrBool(false),
		Replay:      ptrBool(false),
		AllowWifi:   ptrBool(false),
		Stationary:  ptrBool(false),
		DBPath:      ptrString("radargw.db"),
		MetricsAddr: ptrString(":9090"),
	}
}

// Load reads a partial Config from a JSON file. Fields omitted from the
// file are left nil, so Merge can fill them from defaults.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Merge overlays non-nil fields of override onto a copy of c, returning
// the result. Used to layer CLI flags over a loaded file over defaults.
func (c *Config) Merge(override *Config) *Config {
	merged := *c
	if override.Port != nil {
		merged.Port = override.Port
	}
	if override.Interface != nil {
		merged.Interface = override.Interface
	}
	if override.Brand != nil {
		merged.Brand = override.Brand
	}
	if override.Targets != nil {
		merged.Targets = override.Targets
	}
	if override.NavigationAddress != nil {
		merged.NavigationAddress = override.NavigationAddress
	}
	if override.NMEA0183 != nil {
		merged.NMEA0183 = override.NMEA0183
	}
	if override.Output != nil {
		merged.Output = override.Output
	}
	if override.Replay != nil {
		merged.Replay = override.Replay
	}
	if override.AllowWifi != nil {
		merged.AllowWifi = override.AllowWifi
	}
	if override.Stationary != nil {
		merged.Stationary = override.Stationary
	}
	if override.DBPath != nil {
		merged.DBPath = override.DBPath
	}
	if override.MetricsAddr != nil {
		merged.MetricsAddr = override.MetricsAddr
	}
	return &merged
}
