// abcmesh is a CLI utility for inspecting how animated polygon meshes are
// split, grouped and expanded into vertex buffers.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/abcmesh/internal/config"
	"github.com/Faultbox/abcmesh/internal/fixture"
	"github.com/Faultbox/abcmesh/internal/logger"
)

var errUsage = errors.New("usage")

func main() {
	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, cfg.Logging.FileConfig(), true); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	code := run(cfg, config.Args())
	logger.Sync()
	os.Exit(code)
}

// run executes the command named by args[0] and returns the exit code.
func run(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(cfg, args)
	case "submeshes", "sm":
		err = cmdSubmeshes(cfg, args)
	case "buffers", "vb":
		err = cmdBuffers(cfg, args)
	case "config":
		err = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "Usage: abcmesh [flags] %s <scene.yaml> [time]\n", command)
		return 1
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println(`abcmesh - polygon mesh sample inspector

Usage:
  abcmesh [flags] <command> [arguments]

Commands:
  info <scene.yaml> [time]        Show objects, mesh statistics and split plan
  submeshes <scene.yaml> [time]   List submeshes by split, faceset and UV tile
  buffers <scene.yaml> [time]     Fill vertex buffers and summarize each split
  config [path]                   Write the effective configuration

Flags:
  -config <path>    Config file (default ./abcmesh.yaml or user config dir)
  -debug            Enable debug logging
  -log <path>       Also write JSON logs to a rotated file
  -normals <mode>   read_from_file, compute_if_missing, always_compute, ignore
  -tangents <mode>  none, smooth, split
  -winding <order>  ccw, cw
  -ceiling <n>      Maximum vertices per split

Examples:
  abcmesh info internal/fixture/testdata/strip.yaml
  abcmesh -ceiling 4 submeshes internal/fixture/testdata/strip.yaml 1
  abcmesh -tangents split buffers internal/fixture/testdata/strip.yaml 2`)
}

// openScene loads the scene named by args[0] and updates it to the time in
// args[1], or to the first frame time when no time is given.
func openScene(cfg *config.Config, args []string) (*fixture.Scene, float64, error) {
	if len(args) < 1 {
		return nil, 0, errUsage
	}

	file, err := fixture.Load(args[0])
	if err != nil {
		return nil, 0, err
	}

	t, _, _ := file.TimeRange()
	if len(args) > 1 {
		if t, err = strconv.ParseFloat(args[1], 64); err != nil {
			return nil, 0, fmt.Errorf("invalid time %q: %w", args[1], err)
		}
	}

	scene, err := file.Scene(logger.Named("scene"), meshOptions(cfg)...)
	if err != nil {
		return nil, 0, err
	}
	if err := scene.Update(t); err != nil {
		return nil, 0, err
	}
	logger.Debug("scene loaded",
		zap.String("path", args[0]),
		zap.Float64("time", t),
		zap.Int("objects", scene.Objects.Len()))
	return scene, t, nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", args[0])
		return nil
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", config.DefaultPath())
	return nil
}
