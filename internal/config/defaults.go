package config

const (
	defaultLogDir         = "~/.local/share/starsort/logs"
	defaultTempToleranceC = 4.0
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

func defaultExtensions() []string {
	return []string{".fit", ".fits", ".fts"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Organize: Organize{
			TempToleranceC:     defaultTempToleranceC,
			Extensions:         defaultExtensions(),
			CalibrationLibrary: true,
			RenameFiles:        true,
		},
		Catalog: Catalog{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
