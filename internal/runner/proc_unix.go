//go:build !windows

package runner

import "syscall"

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcess kills the whole process group led by pid.
func killProcess(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}

// reapGroup kills whatever is left in the group led by pid once the leader
// has exited. An empty group is not an error.
func reapGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
