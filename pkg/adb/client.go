// Package adb provides the ADB transport used by every device collaborator.
package adb

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Client runs ADB commands against a single device.
type Client struct {
	path   string
	serial string
}

// DeviceEntry is one row of `adb devices`.
type DeviceEntry struct {
	Serial string
	State  string
}

// New creates a Client for the given serial. If adbPath is empty, the binary
// is resolved from PATH. If serial is empty, the first connected device is used.
func New(adbPath, serial string) (*Client, error) {
	path, err := resolveBinary(adbPath)
	if err != nil {
		return nil, err
	}

	if serial == "" {
		serial, err = firstDeviceSerial(path)
		if err != nil {
			return nil, fmt.Errorf("no device specified and auto-detect failed: %w", err)
		}
	}

	return &Client{path: path, serial: serial}, nil
}

// Serial returns the device serial number.
func (c *Client) Serial() string {
	return c.serial
}

// Run executes an ADB command and returns its stdout as text.
func (c *Client) Run(args ...string) (string, error) {
	out, err := c.exec(args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// RunBinary executes an ADB command and returns raw stdout bytes.
// Used for screenshot and XML transfers where text conversion would corrupt output.
func (c *Client) RunBinary(args ...string) ([]byte, error) {
	return c.exec(args...)
}

// Shell executes a shell command on the device.
func (c *Client) Shell(cmd string) (string, error) {
	return c.Run("shell", cmd)
}

// Pull copies a file from the device to the local path.
func (c *Client) Pull(remote, local string) error {
	_, err := c.exec("pull", remote, local)
	return err
}

func (c *Client) exec(args ...string) ([]byte, error) {
	cmdArgs := make([]string, 0, len(args)+2)
	if c.serial != "" {
		cmdArgs = append(cmdArgs, "-s", c.serial)
	}
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.Command(c.path, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return nil, fmt.Errorf("adb %s: %w: %s", strings.Join(args, " "), err, errMsg)
	}

	return stdout.Bytes(), nil
}

// ListDevices returns all devices reported by `adb devices`.
func ListDevices(adbPath string) ([]DeviceEntry, error) {
	path, err := resolveBinary(adbPath)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(path, "devices")
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var devices []DeviceEntry
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			devices = append(devices, DeviceEntry{Serial: parts[0], State: parts[1]})
		}
	}
	return devices, nil
}

// firstDeviceSerial finds the first connected device serial.
func firstDeviceSerial(adbPath string) (string, error) {
	devices, err := ListDevices(adbPath)
	if err != nil {
		return "", err
	}
	for _, d := range devices {
		if d.State == "device" {
			return d.Serial, nil
		}
	}
	return "", fmt.Errorf("no connected devices found")
}

// resolveBinary locates the ADB binary.
func resolveBinary(adbPath string) (string, error) {
	if adbPath != "" {
		return adbPath, nil
	}
	if path, err := exec.LookPath("adb"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("adb not found in PATH; ensure Android platform-tools are installed")
}
