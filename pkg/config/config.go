// Linear uses flags and a single config file for configuration.
// The config file is a flat YAML mapping from flag names to values, e.g.
//
//	address: ":6390"
//	log_level: debug
//
// Flags passed explicitly on the command line take precedence over the config file.

package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var configFilePath = flag.String("config_file", "config.yaml", "Path to the YAML configuration file.")

// skippedConfigFlags are the flags that make no sense inside a config file.
var skippedConfigFlags = []string{"print_version", "config_file"}

// readConfigFile parses the YAML file at `path` into flag name / value pairs.
func readConfigFile(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	values := make(map[string]string, len(raw))
	for name, value := range raw {
		switch value.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("flag %s: nested values are not supported", name)
		case nil:
			values[name] = ""
		default:
			values[name] = fmt.Sprint(value)
		}
	}
	return values, nil
}

// applyConfigFile sets every flag found in the config file at `path`, except the ones set on the command line.
func applyConfigFile(path string) error {
	values, err := readConfigFile(path)
	if err != nil {
		return err
	}
	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	var errs []error
	for name, value := range values {
		if flag.Lookup(name) == nil {
			errs = append(errs, fmt.Errorf("unknown flag %q", name))
			continue
		}
		if explicit[name] {
			slog.Debug("Flag set on the command line; ignoring config file value.", "flag", name)
			continue
		}
		if err := flag.Set(name, value); err != nil {
			errs = append(errs, fmt.Errorf("failed to set flag %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// InitFlags parses the command line and then fills in flags from the file given by --config_file.
// It should be called after defining all flags and before using them.
func InitFlags() {
	flag.Parse()

	if *configFilePath == "" {
		slog.Info("Config file not specified. Skipping config initialization.")
		return
	}
	err := applyConfigFile(*configFilePath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("Config file does not exist.", "path", *configFilePath, "error", err)
		return
	}
	if err != nil { // Flags that could be applied keep their value; the rest stay on defaults.
		slog.Error("Failed to apply config file.", "path", *configFilePath, "error", err)
	}
}

// CollectUnregisteredFlags returns an error for every registered flag missing from the config file at `path`.
// It keeps the example config in sync with the flags a binary defines.
func CollectUnregisteredFlags(path string) []error {
	values, err := readConfigFile(path)
	if err != nil {
		return []error{err}
	}
	var errs []error
	flag.VisitAll(func(f *flag.Flag) {
		if slices.Contains(skippedConfigFlags, f.Name) || strings.HasPrefix(f.Name, "test.") {
			return
		}
		if _, ok := values[f.Name]; !ok {
			errs = append(errs, fmt.Errorf("flag %q is not present in %s", f.Name, path))
		}
	})
	return errs
}
