//go:build unix

package backend

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// configureProcess starts the command in its own process group so that
// cancelling also kills the processes yt-dlp spawns, such as ffmpeg
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
	cmd.WaitDelay = pipeDrainDelay
}
