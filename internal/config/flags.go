package config

import (
	"flag"
	"fmt"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile  = flag.String("log", "", "Also write logs to this file")
	flagNormals  = flag.String("normals", "", "Normals mode: read_from_file, compute_if_missing, always_compute, ignore")
	flagTangents = flag.String("tangents", "", "Tangents mode: none, smooth, split")
	flagWinding  = flag.String("winding", "", "Front face winding: ccw, cw")
	flagCeiling  = flag.Int("ceiling", 0, "Maximum vertices per split")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagNormals != "" {
		if err := cfg.Mesh.Normals.UnmarshalText([]byte(*flagNormals)); err != nil {
			return fmt.Errorf("-normals: %w", err)
		}
	}
	if *flagTangents != "" {
		if err := cfg.Mesh.Tangents.UnmarshalText([]byte(*flagTangents)); err != nil {
			return fmt.Errorf("-tangents: %w", err)
		}
	}
	if *flagWinding != "" {
		if err := cfg.Mesh.Winding.UnmarshalText([]byte(*flagWinding)); err != nil {
			return fmt.Errorf("-winding: %w", err)
		}
	}
	if *flagCeiling > 0 {
		cfg.Mesh.VertexCeiling = *flagCeiling
	}
	return nil
}
