package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names consumed by the client.
const (
	EnvSendInterval      = "SEND_INTERVAL"      // milliseconds
	EnvPositionThreshold = "POSITION_THRESHOLD" // world units, per axis
	EnvServerAddr        = "SERVER_ADDR"
	EnvPlayerName        = "PLAYER_NAME"
)

// LoadEnv reads the given dotenv files (default ".env") into the process
// environment and applies the recognised variables. A missing file is not an
// error.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return ApplyEnv(os.LookupEnv)
}

// ApplyEnv overlays Net settings from lookup. Values that fail to parse are
// reported and leave the current setting untouched.
func ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	if v, ok := lookup(EnvSendInterval); ok && v != "" {
		ms, err := strconv.ParseFloat(v, 64)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", EnvSendInterval, err))
		case ms < 0:
			errs = append(errs, fmt.Errorf("%s: negative interval %v", EnvSendInterval, ms))
		default:
			Net.SendInterval = time.Duration(ms * float64(time.Millisecond))
		}
	}

	if v, ok := lookup(EnvPositionThreshold); ok && v != "" {
		th, err := strconv.ParseFloat(v, 64)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", EnvPositionThreshold, err))
		case th < 0:
			errs = append(errs, fmt.Errorf("%s: negative threshold %v", EnvPositionThreshold, th))
		default:
			Net.PositionThreshold = th
		}
	}

	if v, ok := lookup(EnvServerAddr); ok && v != "" {
		Net.ServerAddr = v
	}
	if v, ok := lookup(EnvPlayerName); ok && v != "" {
		Net.PlayerName = v
	}

	return errors.Join(errs...)
}

// tuningFile mirrors the global config sections that may be overridden from
// YAML. Absent sections keep their defaults; present sections are decoded on
// top of the current values so partial sections work too.
type tuningFile struct {
	Client    yaml.Node `yaml:"client"`
	Net       yaml.Node `yaml:"net"`
	Movement  yaml.Node `yaml:"movement"`
	Interp    yaml.Node `yaml:"interp"`
	Animation yaml.Node `yaml:"animation"`
	Camera    yaml.Node `yaml:"camera"`
	Arena     yaml.Node `yaml:"arena"`
	Audio     yaml.Node `yaml:"audio"`
}

// LoadTuning overlays a YAML tuning file onto the global configuration.
func LoadTuning(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return ApplyTuning(data)
}

// ApplyTuning overlays YAML tuning data onto the global configuration.
func ApplyTuning(data []byte) error {
	var f tuningFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse tuning: %w", err)
	}

	sections := []struct {
		name string
		node *yaml.Node
		dst  any
	}{
		{"client", &f.Client, C},
		{"net", &f.Net, &Net},
		{"movement", &f.Movement, &Movement},
		{"interp", &f.Interp, &Interp},
		{"animation", &f.Animation, &Animation},
		{"camera", &f.Camera, &Camera},
		{"arena", &f.Arena, &Arena},
		{"audio", &f.Audio, &Audio},
	}
	for _, s := range sections {
		if s.node.Kind == 0 {
			continue
		}
		if err := s.node.Decode(s.dst); err != nil {
			return fmt.Errorf("decode %s: %w", s.name, err)
		}
	}
	return nil
}
