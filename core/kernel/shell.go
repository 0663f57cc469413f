package kernel

import (
	"errors"
	"os"
	"os/exec"
)

// runShell hands a "!" line to the host shell.
func (k *Kernel) runShell(command string) error {
	k.log.Header("Shell command: %s", command)

	if k.disableShell {
		return Errorf("Shell commands are disabled in this session.")
	}

	cmd := exec.Command(k.shell, "-c", command)
	cmd.Stdout = k.stdout
	cmd.Stderr = k.stdout
	if fd, ok := k.rawStdin.(*os.File); ok {
		cmd.Stdin = fd
	}

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Errorf("Can't run shell command: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}

	k.events.ShellCommand(command, exitCode)
	if exitCode != 0 {
		return Errorf("Shell command returned error code %d.", exitCode)
	}
	return nil
}
