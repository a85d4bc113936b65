package cmd

// configTemplate is written by --config-gen. Placeholder keys are rejected by
// validateConfig until the operator edits them.
const configTemplate = `[tenable_io]
########
# Connection info
########
access_key = {{ACCESS_KEY}}
secret_key = {{SECRET_KEY}}
# Leave blank to connect directly. host:port or a full proxy URL.
https_proxy =
########
# Scan download options
########
# Scan IDs to download
scan_ids = 100, 101, 102, 103, 104
# Only download scan data if scan completed within x day(s)
# This value should coincide with your timer/cron entry. If the timer/cron entry runs daily then set this value to 1,
# if the timer/cron entry runs weekly then set this value to 7, etc.
age = 1

[tenable_sc]
########
# Connection info
########
host = 127.0.0.1
access_key = {{ACCESS_KEY}}
secret_key = {{SECRET_KEY}}
# Set to True once the console presents a trusted certificate
ssl_verify = False
https_proxy =
########
# Scan upload settings
# See https://docs.tenable.com/sccv/Content/UploadScanResults.htm for context
########
# Repository ID to upload to
repository_id = 1
# Track hosts which have been issued new IP address, (e.g. DHCP)
dhcp = true
# Scan Virtual Hosts (e.g. Apache VirtualHosts, IIS Host Headers)
virtual_hosts = false
# Immediately remove vulnerabilities from scanned hosts that do not reply
# Number of days to wait before removing dead hosts
# 0 = Immediately remove
dead_hosts_wait = 0

########
# Optional runtime settings
########
# [smuggler]
# Diagnostic log level written to stderr: debug, info, warn, error
# log_level = warn
# Write a YAML summary of each run
# report_file = /var/log/scan-smuggler/last-run.yaml
# Directory for temporary .nessus and .zip files (default: system temp dir)
# temp_dir =
`
