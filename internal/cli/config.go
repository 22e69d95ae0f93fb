package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/quantities/internal/paths"
	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/units"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyPrecision      = "precision"
	cfgKeyLocale         = "locale"
	cfgKeyPreferredUnits = "preferred_units"
	cfgKeyUnits          = "units"

	defaultBackend   = "sqlite"
	defaultPrecision = 6
	defaultLocale    = "en"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# qty configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Significant digits in human-readable output
precision: 6

# Locale used to format numbers (BCP 47 tag)
locale: en

# Unit used to show sheet entries of a kind when --unit is not given
# preferred_units:
#   length: ft
#   pressure: psi

# Custom units, defined in terms of known units. units.yaml in this
# directory is read as well.
# units:
#   - name: furlong
#     definition: 660 ft
#     aliases: [furlongs]
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyPrecision, defaultPrecision)
	v.SetDefault(cfgKeyLocale, defaultLocale)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// loadCustomUnits registers the units declared under the units key of
// config.yaml and in units.yaml into the default registry. Names that are
// already registered are skipped, so repeated loads in one process are
// harmless.
func loadCustomUnits(cfg *viper.Viper, configDir string, logger *zap.Logger) error {
	var defs []units.Definition
	if err := cfg.UnmarshalKey(cfgKeyUnits, &defs); err != nil {
		return fmt.Errorf("config key %q: %w", cfgKeyUnits, err)
	}

	fileDefs, err := readUnitsFile(paths.UnitsFile(configDir))
	if err != nil {
		return err
	}
	defs = append(defs, fileDefs...)

	reg := units.Default()
	pending := make([]units.Definition, 0, len(defs))
	for _, def := range defs {
		if _, ok := reg.Lookup(def.Name); ok {
			logger.Debug("unit already registered", zap.String("name", def.Name))
			continue
		}
		pending = append(pending, def)
	}
	if err := reg.DefineAll(pending); err != nil {
		return fmt.Errorf("custom units: %w", err)
	}
	if len(pending) > 0 {
		logger.Debug("custom units registered", zap.Int("count", len(pending)))
	}
	return nil
}

// readUnitsFile decodes the definitions in path. A missing file yields none.
func readUnitsFile(path string) ([]units.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, systemError(fmt.Errorf("open %s: %w", filepath.Base(path), err))
	}
	defer f.Close()

	defs, err := units.LoadDefinitions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return defs, nil
}

// precision returns flagValue when positive, otherwise the configured
// precision.
func (a *app) precision(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if p := a.cfg.GetInt(cfgKeyPrecision); p > 0 {
		return p
	}
	return defaultPrecision
}

// preferredUnit returns the display unit configured for k, or "".
func (a *app) preferredUnit(k dim.Kind) string {
	return a.cfg.GetStringMapString(cfgKeyPreferredUnits)[string(k)]
}
