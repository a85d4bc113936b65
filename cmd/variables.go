package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/afero"
)

// Version is the CLI version string injected at build time via -ldflags.
var Version = "0.2.0"

// errConfigMissing and errConfigExists are operator mistakes rather than
// failures; Execute prints them to stdout.
var (
	errConfigMissing = errors.New("does not exist. Use the --config-gen flag to create one.")
	errConfigExists  = errors.New(defaultConfigFileName + " config file already exists and will NOT be overwritten.\n" +
		"If you want to create a new config file then either rename or delete the existing " +
		defaultConfigFileName + " file.")
)

const (
	defaultConfigFileName = "tenable.ini"
	// maxUploadBytes is the ceiling applied to the archive before upload.
	maxUploadBytes int64 = 1500 * 1000000
	day                  = 24 * time.Hour
)

var (
	// Populated by flags or, for the config path, SCAN_SMUGGLER_CONFIG.
	cfgConfigFile string
	cfgConfigGen  bool
)

// Allow tests to stub the remote services, the clock, and the filesystem.
var (
	newSourceFunc      = newSource
	newDestinationFunc = newDestination
	nowFunc            = time.Now
	tempDirFunc        = os.TempDir
	appFs              = afero.NewOsFs()
)
