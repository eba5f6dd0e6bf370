package types

// CLIArgs represents the command-line arguments after merging with the config file.
type CLIArgs struct {
	ConfigFile         string
	RetentionDays      int
	MaxPages           int
	PageSize           int
	SkipShorterPeriods bool
	Profile            string
	Regions            []string
	AllRegions         bool
	LogGroupPrefix     string
	Exclude            []string
	DryRun             bool
	FailOnError        bool
	ReportName         string
	ReportType         []string
	Dir                string
	ReportBucket       string
	LogLevel           string
	LogFormat          string
}
