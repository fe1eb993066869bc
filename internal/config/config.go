// Package config handles abcmesh configuration loading and management.
package config

import (
	"github.com/Faultbox/abcmesh/internal/logger"
	"github.com/Faultbox/abcmesh/pkg/polymesh"
)

// Config holds all abcmesh settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds mesh processing settings. Modes are spelled by name in
// YAML, e.g. "compute_if_missing" or "split".
type MeshConfig struct {
	Normals       polymesh.NormalsMode  `yaml:"normals"`
	Tangents      polymesh.TangentsMode `yaml:"tangents"`
	Winding       polymesh.Winding      `yaml:"winding"`
	VertexCeiling int                   `yaml:"vertex_ceiling"`
}

// Options converts the settings to mesh processor options.
func (m MeshConfig) Options() polymesh.Options {
	return polymesh.Options{
		NormalsMode:   m.Normals,
		TangentsMode:  m.Tangents,
		Winding:       m.Winding,
		VertexCeiling: m.VertexCeiling,
	}
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// FileConfig returns the rotation settings for the log file. The path is
// empty when file logging is off.
func (l LoggingConfig) FileConfig() logger.FileConfig {
	return logger.FileConfig{
		Path:       l.LogFile,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	opts := polymesh.DefaultOptions()
	rotation := logger.DefaultFileConfig("")
	return &Config{
		Mesh: MeshConfig{
			Normals:       opts.NormalsMode,
			Tangents:      opts.TangentsMode,
			Winding:       opts.Winding,
			VertexCeiling: opts.VertexCeiling,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
			MaxAgeDays: rotation.MaxAgeDays,
			Compress:   rotation.Compress,
		},
	}
}
