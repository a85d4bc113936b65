package cmd

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"scan-smuggler/internal/tio"
)

// TestConfigTemplate_RoundTrips verifies the generated template parses as INI
// into the two sections the loader consumes, with every documented key.
func TestConfigTemplate_RoundTrips(t *testing.T) {
	resetConfig()
	useMemFs(t)
	require.NoError(t, generateConfig(io.Discard, defaultConfigFileName))

	f, err := ini.Load([]byte(configTemplate))
	require.NoError(t, err)
	for section, keys := range map[string][]string{
		"tenable_io": {"access_key", "secret_key", "https_proxy", "scan_ids", "age"},
		"tenable_sc": {"host", "access_key", "secret_key", "ssl_verify", "https_proxy", "repository_id", "dhcp", "virtual_hosts", "dead_hosts_wait"},
	} {
		s, err := f.GetSection(section)
		require.NoError(t, err, section)
		for _, k := range keys {
			require.True(t, s.HasKey(k), "%s.%s", section, k)
		}
	}
	_, err = f.GetSection("smuggler")
	require.Error(t, err, "smuggler section is documented but commented out")

	cfg, err := readConfig(defaultConfigFileName)
	require.NoError(t, err)
	require.Equal(t, []string{"100", "101", "102", "103", "104"}, cfg.TenableIO.ScanIDs)
	require.Equal(t, 1, cfg.TenableIO.Age)
	require.Equal(t, f.Section("tenable_io").Key("access_key").String(), cfg.TenableIO.AccessKey)
	require.Equal(t, "127.0.0.1", cfg.TenableSC.Host)
	require.False(t, cfg.TenableSC.SSLVerify)
	require.Equal(t, 1, cfg.TenableSC.RepositoryID)
	require.True(t, cfg.TenableSC.DHCP)
	require.False(t, cfg.TenableSC.VirtualHosts)
	require.Equal(t, 0, cfg.TenableSC.DeadHostsWait)
}

func TestLoadConfig_ValidWithDefaults(t *testing.T) {
	useMemFs(t)
	p := writeTemp(t, "/etc", "tenable.ini", validINI(" 7 ,8,, 9 ", ""))

	cfg, err := loadConfig(p)
	require.NoError(t, err)
	require.Equal(t, []string{"7", "8", "9"}, cfg.TenableIO.ScanIDs)
	require.Equal(t, tio.DefaultURL, cfg.TenableIO.URL)
	require.True(t, cfg.TenableIO.SSLVerify)
	require.Empty(t, cfg.TenableIO.HTTPSProxy)
	require.True(t, cfg.TenableSC.SSLVerify)
	require.Equal(t, "warn", cfg.Smuggler.LogLevel)
	require.Empty(t, cfg.Smuggler.ReportFile)
	require.Equal(t, 4, cfg.TenableSC.RepositoryID)
	require.Equal(t, 3, cfg.TenableSC.DeadHostsWait)
}

func TestLoadConfig_SmugglerSection(t *testing.T) {
	useMemFs(t)
	p := writeTemp(t, "/etc", "tenable.ini", validINI("1", `
[smuggler]
log_level = debug
report_file = /var/log/run.yaml
temp_dir = /scratch
`))
	cfg, err := loadConfig(p)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Smuggler.LogLevel)
	require.Equal(t, "/var/log/run.yaml", cfg.Smuggler.ReportFile)
	require.Equal(t, "/scratch", cfg.Smuggler.TempDir)
}

func TestLoadConfig_MissingSection(t *testing.T) {
	useMemFs(t)
	p := writeTemp(t, "/etc", "tenable.ini", "[tenable_io]\naccess_key = a\n")
	_, err := loadConfig(p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing the [tenable_sc] section")
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	useMemFs(t)
	cases := map[string]struct {
		ini  string
		want string
	}{
		"no scan ids": {
			ini:  validINI("", ""),
			want: "tenable_io.scan_ids: min=1",
		},
		"path in scan id": {
			ini:  validINI("100, ../etc", ""),
			want: "tenable_io.scan_ids[1]: excludesall",
		},
		"bad log level": {
			ini:  validINI("1", "[smuggler]\nlog_level = loud\n"),
			want: "smuggler.log_level: oneof",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := writeTemp(t, "/etc", name+".ini", tc.ini)
			_, err := loadConfig(p)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadConfig_RepositoryAndAgeBounds(t *testing.T) {
	useMemFs(t)
	p := writeTemp(t, "/etc", "tenable.ini", `[tenable_io]
access_key = a
secret_key = b
scan_ids = 1
age = -1
[tenable_sc]
host = h
access_key = c
secret_key = d
repository_id = 0
dead_hosts_wait = -2
`)
	_, err := loadConfig(p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "tenable_io.age: min=0")
	require.Contains(t, err.Error(), "tenable_sc.repository_id: min=1")
	require.Contains(t, err.Error(), "tenable_sc.dead_hosts_wait: min=0")
}

func TestLoadConfig_BadBoolean(t *testing.T) {
	useMemFs(t)
	p := writeTemp(t, "/etc", "tenable.ini", `[tenable_io]
access_key = a
secret_key = b
scan_ids = 1
age = 1
[tenable_sc]
host = h
access_key = c
secret_key = d
repository_id = 1
dhcp = maybe
`)
	_, err := loadConfig(p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode config")
}

func TestSplitScanIDs(t *testing.T) {
	require.Nil(t, splitScanIDs(""))
	require.Equal(t, []string{"a", "b"}, splitScanIDs(" a, ,b "))
}
