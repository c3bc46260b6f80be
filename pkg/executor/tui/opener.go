package tui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// linuxFileManagers are tried in order when xdg-open is unavailable.
var linuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// RevealInFileManager shows path in the system file manager, selecting it
// where the platform supports that. A missing file reveals its folder.
func RevealInFileManager(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	_, statErr := os.Stat(absPath)
	exists := statErr == nil

	name, args, err := revealCommand(runtime.GOOS, absPath, exists)
	if err != nil {
		return err
	}
	if err := exec.Command(name, args...).Run(); err == nil || runtime.GOOS != "linux" {
		return err
	}

	dir := filepath.Dir(absPath)
	for _, fm := range linuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}
	return errors.New("no suitable file manager found")
}

// revealCommand returns the command that reveals path on goos.
func revealCommand(goos, path string, exists bool) (string, []string, error) {
	dir := filepath.Dir(path)
	switch goos {
	case "darwin":
		if exists {
			return "open", []string{"-R", path}, nil
		}
		return "open", []string{dir}, nil
	case "windows":
		if exists {
			return "explorer", []string{"/select," + path}, nil
		}
		return "explorer", []string{dir}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		// Selecting a file is not standardized, so open its folder.
		return "xdg-open", []string{dir}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
