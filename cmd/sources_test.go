package cmd

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"scan-smuggler/internal/tio"
	"scan-smuggler/internal/tsc"
)

func TestNewSourceAndDestination(t *testing.T) {
	src, err := newSource(ioConfig{URL: tio.DefaultURL, AccessKey: "a", SecretKey: "b", SSLVerify: true}, zerolog.Nop())
	require.NoError(t, err)
	require.IsType(t, &tio.Client{}, src)

	dst, err := newDestination(scConfig{Host: "sc.local", AccessKey: "a", SecretKey: "b", HTTPSProxy: "proxy:3128"}, zerolog.Nop())
	require.NoError(t, err)
	require.IsType(t, &tsc.Client{}, dst)
}

func TestNewDestination_BadProxy(t *testing.T) {
	_, err := newDestination(scConfig{Host: "sc.local", HTTPSProxy: "http://"}, zerolog.Nop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "tenable_sc: invalid proxy")
}

func TestUploadOptions(t *testing.T) {
	require.Equal(t,
		tsc.ImportOptions{RepositoryID: 8, HostTracking: false, VirtualHosts: true, DeadHostsWait: 30},
		uploadOptions(scConfig{RepositoryID: 8, DHCP: false, VirtualHosts: true, DeadHostsWait: 30}))
}
