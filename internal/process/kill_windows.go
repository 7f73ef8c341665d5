//go:build windows

// Package process terminates the headless browser and its helper processes.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills a process tree with taskkill (/F force, /T tree).
// Non-positive PIDs are ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort cleanup; launcher.Kill() is the fallback.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
