//go:build windows

package engine

import (
	"os/exec"
	"syscall"
)

// hideWindow keeps a console engine from flashing a terminal window over the GUI.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
