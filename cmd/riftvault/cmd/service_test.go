package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemdUnit(t *testing.T) {
	opts := unitOptions{
		User:       "riftvault",
		Binary:     "/usr/local/bin/riftvault",
		ConfigPath: "/etc/riftvault/config.yaml",
		DataDir:    "/var/lib/riftvault",
	}

	unit := systemdUnit(opts)
	assert.Contains(t, unit, "User=riftvault")
	assert.Contains(t, unit, "Group=riftvault")
	assert.Contains(t, unit, "ExecStart=/usr/local/bin/riftvault serve --config /etc/riftvault/config.yaml")
	assert.Contains(t, unit, "ReadWritePaths=/var/lib/riftvault")
	assert.Contains(t, unit, "ReadWritePaths=/etc/riftvault")
	assert.Contains(t, unit, "WantedBy=multi-user.target")
}

func TestWriteSystemdUnit(t *testing.T) {
	unitPath := filepath.Join(t.TempDir(), serviceName)
	opts := unitOptions{User: "svc", Binary: "/opt/riftvault", ConfigPath: "/tmp/c.yaml", DataDir: "/tmp/data"}

	require.NoError(t, writeSystemdUnit(opts, unitPath))

	content, err := os.ReadFile(unitPath)
	require.NoError(t, err)
	assert.Equal(t, systemdUnit(opts), string(content))

	info, err := os.Stat(unitPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestJournalArgs(t *testing.T) {
	tests := []struct {
		name   string
		follow bool
		lines  int
		want   []string
	}{
		{"default", false, 0, []string{"-u", serviceName}},
		{"follow", true, 0, []string{"-u", serviceName, "-f"}},
		{"lines", false, 50, []string{"-u", serviceName, "-n50"}},
		{"both", true, 10, []string{"-u", serviceName, "-f", "-n10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, journalArgs(tt.follow, tt.lines))
		})
	}
}

func TestServiceCommandTree(t *testing.T) {
	root := NewRootCmd()
	service, _, err := root.Find([]string{"service"})
	require.NoError(t, err)

	var names []string
	for _, c := range service.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"install", "uninstall", "start", "stop", "restart", "status", "logs"}, names)
}
