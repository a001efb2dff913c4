/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ssargent/riftvault/pkg/config"
)

const (
	serviceName     = "riftvault.service"
	defaultUnitPath = "/etc/systemd/system/" + serviceName
)

// unitOptions describes the systemd unit written by service install
type unitOptions struct {
	User       string
	Binary     string
	ConfigPath string
	DataDir    string
}

func newServiceCmd(a *app) *cobra.Command {
	serviceCmd := &cobra.Command{
		Use:   "service",
		Short: "Manage RiftVault as a systemd service",
		Long: `Manage RiftVault as a systemd service. This command provides
native integration with systemd for production deployments.`,
	}

	serviceCmd.AddCommand(
		newServiceInstallCmd(a),
		newServiceUninstallCmd(),
		newSystemctlCmd("start", "Start the RiftVault service"),
		newSystemctlCmd("stop", "Stop the RiftVault service"),
		newSystemctlCmd("restart", "Restart the RiftVault service"),
		newSystemctlCmd("status", "Show RiftVault service status"),
		newServiceLogsCmd(),
	)
	return serviceCmd
}

func newServiceInstallCmd(a *app) *cobra.Command {
	var (
		user     string
		binary   string
		unitPath string
		startNow bool
	)

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install RiftVault as a systemd service",
		Long: `Install RiftVault as a systemd service.

This will:
- Write the configuration file if it is missing
- Generate the systemd unit file
- Enable and optionally start the service

Examples:
  sudo riftvault service install
  sudo riftvault service install --data-dir /var/lib/riftvault --user riftvault`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Geteuid() != 0 {
				return fmt.Errorf("service install requires root privileges (run with sudo)")
			}

			if !config.ConfigExists(a.configPath) {
				if err := config.SaveConfig(a.cfg, a.configPath); err != nil {
					return err
				}
				cmd.Printf("Created configuration at %s\n", a.configPath)
			}

			opts := unitOptions{
				User:       user,
				Binary:     binary,
				ConfigPath: a.configPath,
				DataDir:    a.cfg.DataDir,
			}
			if err := writeSystemdUnit(opts, unitPath); err != nil {
				return fmt.Errorf("failed to create systemd unit: %w", err)
			}

			if err := runSystemctlCommand("daemon-reload"); err != nil {
				return fmt.Errorf("failed to reload systemd: %w", err)
			}
			if err := runSystemctlCommand("enable", serviceName); err != nil {
				return fmt.Errorf("failed to enable service: %w", err)
			}
			if startNow {
				if err := runSystemctlCommand("start", serviceName); err != nil {
					return fmt.Errorf("failed to start service: %w", err)
				}
			}

			cmd.Printf("Service: %s\n", serviceName)
			cmd.Printf("Config: %s\n", a.configPath)
			cmd.Printf("Data: %s\n", a.cfg.DataDir)
			cmd.Printf("To view logs: sudo journalctl -u %s -f\n", serviceName)
			return nil
		},
	}

	installCmd.Flags().StringVar(&user, "user", "riftvault", "User to run the service as")
	installCmd.Flags().StringVar(&binary, "binary", "/usr/local/bin/riftvault", "Path of the riftvault binary")
	installCmd.Flags().StringVar(&unitPath, "unit-path", defaultUnitPath, "Where to write the unit file")
	installCmd.Flags().BoolVar(&startNow, "start", true, "Start the service after installation")
	return installCmd
}

func newServiceUninstallCmd() *cobra.Command {
	var unitPath string

	uninstallCmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Uninstall the RiftVault service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Geteuid() != 0 {
				return fmt.Errorf("service uninstall requires root privileges (run with sudo)")
			}

			_ = runSystemctlCommand("stop", serviceName) // already stopped is fine
			if err := runSystemctlCommand("disable", serviceName); err != nil {
				cmd.Printf("Warning: could not disable service: %v\n", err)
			}

			if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove unit file: %w", err)
			}

			if err := runSystemctlCommand("daemon-reload"); err != nil {
				return fmt.Errorf("failed to reload systemd: %w", err)
			}

			cmd.Printf("RiftVault service uninstalled\n")
			cmd.Printf("Note: Configuration and data files were not removed\n")
			return nil
		},
	}

	uninstallCmd.Flags().StringVar(&unitPath, "unit-path", defaultUnitPath, "Unit file to remove")
	return uninstallCmd
}

// newSystemctlCmd wraps a single systemctl verb for the service
func newSystemctlCmd(verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSystemctlCommand(verb, serviceName)
		},
	}
}

func newServiceLogsCmd() *cobra.Command {
	var (
		follow bool
		lines  int
	)

	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Show RiftVault service logs",
		Long: `Show RiftVault service logs using journalctl.

Examples:
  riftvault service logs
  riftvault service logs -f  # Follow logs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand("journalctl", journalArgs(follow, lines)...)
		},
	}

	logsCmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow log output")
	logsCmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines to show")
	return logsCmd
}

func journalArgs(follow bool, lines int) []string {
	args := []string{"-u", serviceName}
	if follow {
		args = append(args, "-f")
	}
	if lines > 0 {
		args = append(args, fmt.Sprintf("-n%d", lines))
	}
	return args
}

// systemdUnit renders the unit file for opts
func systemdUnit(opts unitOptions) string {
	return fmt.Sprintf(`[Unit]
Description=RiftVault Replay Server
After=network-online.target
Wants=network-online.target

[Service]
User=%s
Group=%s
ExecStart=%s serve --config %s
Restart=on-failure
NoNewPrivileges=true
UMask=0077
ReadWritePaths=%s
ReadWritePaths=%s

[Install]
WantedBy=multi-user.target
`, opts.User, opts.User, opts.Binary, opts.ConfigPath, opts.DataDir, filepath.Dir(opts.ConfigPath))
}

// writeSystemdUnit writes the unit file to unitPath
func writeSystemdUnit(opts unitOptions, unitPath string) error {
	return os.WriteFile(unitPath, []byte(systemdUnit(opts)), 0600)
}

// runSystemctlCommand runs a systemctl command
func runSystemctlCommand(args ...string) error {
	return runCommand("systemctl", args...)
}

// runCommand runs a system command and returns its error
func runCommand(command string, args ...string) error {
	cmd := exec.Command(command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
