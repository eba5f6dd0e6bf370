package types

// Config represents the application configuration that can be loaded from a file.
// Ponteiros distinguem "ausente" de zero/false para aplicar os defaults.
type Config struct {
	RetentionDays      *int     `json:"retention_days" yaml:"retention_days" toml:"retention_days"`
	MaxPages           *int     `json:"max_pages" yaml:"max_pages" toml:"max_pages"`
	PageSize           *int     `json:"page_size" yaml:"page_size" toml:"page_size"`
	SkipShorterPeriods *bool    `json:"skip_shorter_periods" yaml:"skip_shorter_periods" toml:"skip_shorter_periods"`
	Profile            string   `json:"profile" yaml:"profile" toml:"profile"`
	Regions            []string `json:"regions" yaml:"regions" toml:"regions"`
	AllRegions         bool     `json:"all_regions" yaml:"all_regions" toml:"all_regions"`
	LogGroupPrefix     string   `json:"log_group_prefix" yaml:"log_group_prefix" toml:"log_group_prefix"`
	Exclude            []string `json:"exclude" yaml:"exclude" toml:"exclude"`
	DryRun             bool     `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	FailOnError        bool     `json:"fail_on_error" yaml:"fail_on_error" toml:"fail_on_error"`
	ReportName         string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType         []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir                string   `json:"dir" yaml:"dir" toml:"dir"`
	ReportBucket       string   `json:"report_bucket" yaml:"report_bucket" toml:"report_bucket"`
}
