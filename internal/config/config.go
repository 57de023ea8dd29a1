// Package config loads ff's configuration via viper, following the XDG
// resolution tsm itself uses.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ivuorinen/ff/internal/navstate"
)

const (
	cfgDirName  = "ff"
	cfgBaseName = "config"
)

// Config is the subset of settings a session needs at startup; the rest
// of navigation state is purely runtime.
type Config struct {
	ItemsPerPage        int      `mapstructure:"items_per_page"`
	NameColumnWidth      int      `mapstructure:"name_column_width"`
	Editor               string   `mapstructure:"editor"`
	TerminalPriority     []string `mapstructure:"terminal_priority"`
	PartnerProgramsFile  string   `mapstructure:"partner_programs_file"`
}

func defaultTerminalPriority() []string {
	return []string{
		"gnome-terminal", "konsole", "xfce4-terminal", "terminator",
		"tilix", "kitty", "alacritty", "xterm",
	}
}

func defaultEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	return "vim"
}

// Load reads ff's config file, following the same best-effort
// tolerance tsm's loadConfig does: a missing or unparsable file is not
// an error, defaults simply apply.
func Load(explicit string) (Config, error) {
	v := viper.New()
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		xdg := os.Getenv("XDG_CONFIG_HOME")
		if xdg == "" {
			home, _ := os.UserHomeDir()
			xdg = filepath.Join(home, ".config")
		}
		v.AddConfigPath(filepath.Join(xdg, cfgDirName))
		v.SetConfigName(cfgBaseName)
	}

	v.SetDefault("items_per_page", navstate.DefaultItemsPerPage)
	v.SetDefault("name_column_width", navstate.DefaultNameWidth)
	v.SetDefault("editor", defaultEditor())
	v.SetDefault("terminal_priority", defaultTerminalPriority())

	_ = v.ReadInConfig() // best-effort, same as tsm

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Path returns the config file ff would read by default, for --init-config
// style tooling and for logging which file (if any) was consulted.
func Path() (string, error) {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if home == "" {
			return "", errors.New("config: cannot resolve $HOME for XDG")
		}
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, cfgDirName, cfgBaseName+".yaml"), nil
}
