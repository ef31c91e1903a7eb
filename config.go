package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"dntk/internal/bc"

	"gopkg.in/yaml.v3"
)

//
// Settings that may come from the YAML config file.  Anything given
// on the command line wins over the file
//

type config struct {
	Scale   uint32 `yaml:"scale"`
	White   bool   `yaml:"white"`
	Quiet   bool   `yaml:"quiet"`
	Stats   bool   `yaml:"stats"`
	History string `yaml:"history"`
}

func defaultConfig() config {

	return config{Scale: bc.DefaultScale}
}

//
// Where to look for the config file: the --config flag, then
// $DNTK_CONFIG, then the XDG config directory, then ~/.config
//

func configPath(flagPath string) string {

	if flagPath != "" {
		return flagPath
	}

	if p := os.Getenv("DNTK_CONFIG"); p != "" {
		return p
	}

	return userConfigFile(configFileName)
}

//
// Path of name inside the dntk config directory, or "" if there is
// no home directory to put it in
//

func userConfigFile(name string) string {

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDirName, name)
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}

	return filepath.Join(home, ".config", configDirName, name)
}

//
// Read the config file.  A missing file just gives the defaults.
// Keys the file leaves out keep their default values
//

func loadConfig(path string) (config, error) {

	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig(), err
	}

	return cfg, nil
}

//
// Command line values that remember whether they were given, so a
// flag can override the config file in either direction.  The bool
// flavor is a kingpin boolean flag, so --no-white works too
//

type optBool struct {
	set bool
	val bool
}

func (o *optBool) Set(v string) error {

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf(EBADSETTING, v, "boolean flag")
	}

	o.set = true
	o.val = b

	return nil
}

func (o *optBool) String() string {

	return strconv.FormatBool(o.val)
}

func (o *optBool) IsBoolFlag() bool {

	return true
}

func (o *optBool) apply(dst *bool) {

	if o.set {
		*dst = o.val
	}
}

type optUint32 struct {
	set bool
	val uint32
}

func (o *optUint32) Set(v string) error {

	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return fmt.Errorf(EBADSETTING, v, "scale")
	}

	o.set = true
	o.val = uint32(n)

	return nil
}

func (o *optUint32) String() string {

	return strconv.FormatUint(uint64(o.val), 10)
}

func (o *optUint32) apply(dst *uint32) {

	if o.set {
		*dst = o.val
	}
}

type optString struct {
	set bool
	val string
}

func (o *optString) Set(v string) error {

	o.set = true
	o.val = v

	return nil
}

func (o *optString) String() string {

	return o.val
}

func (o *optString) apply(dst *string) {

	if o.set {
		*dst = o.val
	}
}

//
// The flags that may override the config file
//

type cliOverrides struct {
	scale   optUint32
	white   optBool
	quiet   optBool
	stats   optBool
	history optString
}

func (o *cliOverrides) merge(cfg config) config {

	o.scale.apply(&cfg.Scale)
	o.white.apply(&cfg.White)
	o.quiet.apply(&cfg.Quiet)
	o.stats.apply(&cfg.Stats)
	o.history.apply(&cfg.History)

	return cfg
}
