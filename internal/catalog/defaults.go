package catalog

// Default returns the built-in catalog of known transient-file locations.
// Order is fixed so runs produce reproducible logs. Entries that do not
// exist on a given machine resolve to nothing and are skipped.
//
// Absolute entries (%WINDIR%, %LOCALAPPDATA%, ...) follow the
// environment; bare entries are resolved relative to the target volume.
func Default() []Entry {
	return []Entry{
		// Update and servicing leftovers
		{Name: "WindowsUpdateCache", Pattern: `%WINDIR%\SoftwareDistribution\Download`},
		{Name: "DeliveryOptimization", Pattern: `%WINDIR%\SoftwareDistribution\DeliveryOptimization`},
		{Name: "CBSLogs", Pattern: `%WINDIR%\Logs\CBS`},
		{Name: "DISMLogs", Pattern: `%WINDIR%\Logs\DISM`},
		{Name: "InstallerPatchCache", Pattern: `%WINDIR%\Installer\$PatchCache$`},
		{Name: "PreviousInstallation", Pattern: `Windows.old`},

		// Temp stores
		{Name: "UserTemp", Pattern: `%TEMP%`},
		{Name: "SystemTemp", Pattern: `%WINDIR%\Temp`},

		// Browser caches
		{Name: "ChromeCache", Pattern: `%LOCALAPPDATA%\Google\Chrome\User Data\Default\Cache`},
		{Name: "ChromeCodeCache", Pattern: `%LOCALAPPDATA%\Google\Chrome\User Data\Default\Code Cache`},
		{Name: "EdgeCache", Pattern: `%LOCALAPPDATA%\Microsoft\Edge\User Data\Default\Cache`},
		{Name: "FirefoxCache", Pattern: `%LOCALAPPDATA%\Mozilla\Firefox\Profiles\*\cache2`},

		// Crash dumps and error reports
		{Name: "MemoryDump", Pattern: `%WINDIR%\MEMORY.DMP`},
		{Name: "Minidumps", Pattern: `%WINDIR%\Minidump`},
		{Name: "WERReportArchive", Pattern: `%PROGRAMDATA%\Microsoft\Windows\WER\ReportArchive`},
		{Name: "WERReportQueue", Pattern: `%PROGRAMDATA%\Microsoft\Windows\WER\ReportQueue`},

		// Misc caches
		{Name: "ThumbnailCache", Pattern: `%LOCALAPPDATA%\Microsoft\Windows\Explorer\thumbcache_*.db`},
		{Name: "FontCache", Pattern: `%WINDIR%\ServiceProfiles\LocalService\AppData\Local\FontCache`},
	}
}

// FromPatterns builds an ordered catalog from bare pattern strings, as
// supplied by configuration. Names fall back to the pattern itself.
func FromPatterns(patterns []string) []Entry {
	entries := make([]Entry, 0, len(patterns))
	for _, p := range patterns {
		entries = append(entries, Entry{Name: p, Pattern: p})
	}
	return entries
}
