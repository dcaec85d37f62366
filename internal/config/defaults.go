package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Domains: Domains{
			Cleanup:      true,
			Performance:  true,
			Applications: true,
		},
		Categories: Categories{
			SystemCache:  true,
			UserCache:    true,
			Temp:         true,
			Logs:         true,
			BrowserCache: true,
			Trash:        true,
			DevJunk:      true,
		},
		Concurrency:      3,
		DownloadsAgeDays: 90,
		UnusedAppDays:    180,
		LargeAppMinSize:  "1GB",
		IncludeDotfiles:  false,
		ExcludePatterns: []string{
			"*/Documents/*",
			"*/Pictures/*",
			"*/Music/*",
			"*/Movies/*",
			"*.keep",
		},
		Verbose: false,
	}
}
