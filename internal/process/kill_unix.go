//go:build !windows

// Package process terminates the headless browser and its helper processes.
package process

import "syscall"

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID). Non-positive PIDs are ignored, since
// -0 would target the caller's own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort cleanup; launcher.Kill() is the fallback.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
