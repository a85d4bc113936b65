package cmd

import "scan-smuggler/internal/tio"

// config is the decoded INI file.
type config struct {
	TenableIO ioConfig       `mapstructure:"tenable_io"`
	TenableSC scConfig       `mapstructure:"tenable_sc"`
	Smuggler  smugglerConfig `mapstructure:"smuggler"`
}

// ioConfig is the [tenable_io] section.
type ioConfig struct {
	URL        string `mapstructure:"url" validate:"required,url"`
	AccessKey  string `mapstructure:"access_key" validate:"required,excludes={{"`
	SecretKey  string `mapstructure:"secret_key" validate:"required,excludes={{"`
	HTTPSProxy string `mapstructure:"https_proxy"`
	SSLVerify  bool   `mapstructure:"ssl_verify"`
	// ScanIDsRaw is the comma separated scan_ids value; see ScanIDs.
	ScanIDsRaw string   `mapstructure:"scan_ids"`
	ScanIDs    []string `mapstructure:"-" validate:"min=1,dive,required,excludesall=/\\"`
	Age        int      `mapstructure:"age" validate:"min=0"`
}

// scConfig is the [tenable_sc] section.
type scConfig struct {
	Host          string `mapstructure:"host" validate:"required"`
	AccessKey     string `mapstructure:"access_key" validate:"required,excludes={{"`
	SecretKey     string `mapstructure:"secret_key" validate:"required,excludes={{"`
	SSLVerify     bool   `mapstructure:"ssl_verify"`
	HTTPSProxy    string `mapstructure:"https_proxy"`
	RepositoryID  int    `mapstructure:"repository_id" validate:"min=1"`
	DHCP          bool   `mapstructure:"dhcp"`
	VirtualHosts  bool   `mapstructure:"virtual_hosts"`
	DeadHostsWait int    `mapstructure:"dead_hosts_wait" validate:"min=0"`
}

// smugglerConfig is the optional [smuggler] section.
type smugglerConfig struct {
	LogLevel   string `mapstructure:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	ReportFile string `mapstructure:"report_file"`
	TempDir    string `mapstructure:"temp_dir"`
}

// configDefaults are applied beneath the file's own values.
var configDefaults = map[string]any{
	"tenable_io.url":        tio.DefaultURL,
	"tenable_io.ssl_verify": true,
	"tenable_sc.ssl_verify": true,
	"smuggler.log_level":    "warn",
}
