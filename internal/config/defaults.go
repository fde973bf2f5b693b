package config

const (
	defaultHistoryPath           = "~/.local/share/subshift/history.db"
	defaultHistoryLimit          = 10
	defaultListenAddr            = "127.0.0.1:8765"
	defaultSaveCooldownMs        = 1000
	defaultFFprobeTimeoutSeconds = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		HistoryPath:           defaultHistoryPath,
		HistoryLimit:          defaultHistoryLimit,
		ListenAddr:            defaultListenAddr,
		SaveCooldownMs:        defaultSaveCooldownMs,
		FFprobeTimeoutSeconds: defaultFFprobeTimeoutSeconds,
	}
}
