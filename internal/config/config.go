package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mgpai22/subshift/internal/language"
)

const envPrefix = "SUBSHIFT_"

// Config holds user defaults for saving shifted subtitles.
type Config struct {
	// Destination folder used when a command is not given one.
	OutputDir string `toml:"output_dir" yaml:"output_dir"`
	// Language tag used when a track has none of its own.
	FallbackLang string `toml:"fallback_lang" yaml:"fallback_lang"`
	DelayInName  bool   `toml:"delay_in_name" yaml:"delay_in_name"`
	LangInName   bool   `toml:"lang_in_name" yaml:"lang_in_name"`
	Overwrite    bool   `toml:"overwrite" yaml:"overwrite"`
	SetActive    bool   `toml:"set_active" yaml:"set_active"`

	// Trash folder in freedesktop.org layout; empty uses the system trash.
	TrashDir string `toml:"trash_dir" yaml:"trash_dir"`

	HistoryPath  string `toml:"history_path" yaml:"history_path"`
	HistoryLimit int    `toml:"history_limit" yaml:"history_limit"`

	MPVSocket             string `toml:"mpv_socket" yaml:"mpv_socket"`
	ListenAddr            string `toml:"listen_addr" yaml:"listen_addr"`
	SaveCooldownMs        int    `toml:"save_cooldown_ms" yaml:"save_cooldown_ms"`
	FFprobeTimeoutSeconds int    `toml:"ffprobe_timeout_seconds" yaml:"ffprobe_timeout_seconds"`
}

// DefaultConfigPath returns the absolute path of the default config file.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/subshift/config.toml")
}

// Load reads .env, then the config file at path (or the default location),
// then SUBSHIFT_* environment overrides. A missing file is not an error; the
// returned bool reports whether one was read.
func Load(path string) (*Config, string, bool, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		if err := decode(resolved, data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolved, exists, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return toml.Unmarshal(data, cfg)
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"OUTPUT_DIR":    &c.OutputDir,
		"FALLBACK_LANG": &c.FallbackLang,
		"HISTORY_PATH":  &c.HistoryPath,
		"TRASH_DIR":     &c.TrashDir,
		"MPV_SOCKET":    &c.MPVSocket,
		"LISTEN_ADDR":   &c.ListenAddr,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"DELAY_IN_NAME": &c.DelayInName,
		"LANG_IN_NAME":  &c.LangInName,
		"OVERWRITE":     &c.Overwrite,
		"SET_ACTIVE":    &c.SetActive,
	}
	for key, dst := range bools {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = b
		}
	}

	ints := map[string]*int{
		"HISTORY_LIMIT":           &c.HistoryLimit,
		"SAVE_COOLDOWN_MS":        &c.SaveCooldownMs,
		"FFPROBE_TIMEOUT_SECONDS": &c.FFprobeTimeoutSeconds,
	}
	for key, dst := range ints {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = n
		}
	}
	return nil
}

func (c *Config) normalize() error {
	c.FallbackLang = language.NormalizeFallback(c.FallbackLang)

	var err error
	if c.OutputDir, err = ExpandPath(strings.TrimSpace(c.OutputDir)); err != nil {
		return err
	}
	if c.HistoryPath, err = ExpandPath(strings.TrimSpace(c.HistoryPath)); err != nil {
		return err
	}
	if c.TrashDir, err = ExpandPath(strings.TrimSpace(c.TrashDir)); err != nil {
		return err
	}
	if c.MPVSocket, err = ExpandPath(strings.TrimSpace(c.MPVSocket)); err != nil {
		return err
	}
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	return nil
}

// ExpandPath resolves a leading ~ and makes the path absolute. Empty input
// stays empty.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
