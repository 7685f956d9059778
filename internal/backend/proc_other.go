//go:build !unix

package backend

import "os/exec"

// configureProcess only bounds Wait; child processes are not tracked here
func configureProcess(cmd *exec.Cmd) {
	cmd.WaitDelay = pipeDrainDelay
}
