package suspend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/screenhold/screenhold/internal/logging"
)

// The suspend session must outlive the invoking process, and its argument
// vector must stay exactly [exe, "suspend", "<window id>"] so a later
// resume invocation can identify it. The launcher therefore re-executes
// itself with the same arguments in a new session, marked through the
// environment, and only reports success once the child has its destroy
// subscription in place.
const (
	foregroundEnv = "SCREENHOLD_FOREGROUND"
	readyFdEnv    = "SCREENHOLD_READY_FD"

	// childReadyFd is where the readiness pipe lands in the child:
	// the first slot after stdin/stdout/stderr.
	childReadyFd = 3
)

// Foreground reports whether this process is the detached session child.
func Foreground() bool {
	return os.Getenv(foregroundEnv) == "1"
}

// Detach starts the session child and blocks until it either reports that
// the window subscription is flushed (success) or exits (failure). The
// launcher never constructs session resources, so there is nothing for it
// to clean up on either path.
func Detach(ctx context.Context, windowArg string) error {
	log := logging.FromContext(ctx)

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve own executable: %w", err)
	}
	ready, readyWrite, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("create readiness pipe: %w", err)
	}
	defer ready.Close()

	cmd := exec.Command(exe, "suspend", windowArg)
	cmd.Env = append(os.Environ(),
		foregroundEnv+"=1",
		readyFdEnv+"="+strconv.Itoa(childReadyFd),
	)
	cmd.Stderr = os.Stderr
	cmd.ExtraFiles = []*os.File{readyWrite}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		readyWrite.Close()
		return fmt.Errorf("start suspend session: %w", err)
	}
	// Close the launcher's copy of the write end so a child death is
	// observable as EOF.
	readyWrite.Close()

	buf := make([]byte, 1)
	n, _ := ready.Read(buf)
	if n == 0 {
		waitErr := cmd.Wait()
		if waitErr != nil {
			return fmt.Errorf("suspend session failed to start: %w", waitErr)
		}
		return fmt.Errorf("suspend session exited before becoming ready")
	}

	log.Debug().Int("pid", cmd.Process.Pid).Msg("suspend session detached")
	_ = cmd.Process.Release()
	return nil
}

// NotifyReady tells the launcher the session is watching the window. A
// session started by hand, without a launcher, has no readiness pipe and
// nothing to notify.
func NotifyReady() error {
	fdStr := os.Getenv(readyFdEnv)
	if fdStr == "" {
		return nil
	}
	fd, err := strconv.Atoi(fdStr)
	if err != nil {
		return fmt.Errorf("invalid %s value %q", readyFdEnv, fdStr)
	}
	pipe := os.NewFile(uintptr(fd), "ready-pipe")
	if pipe == nil {
		return fmt.Errorf("readiness pipe fd %d is not open", fd)
	}
	defer pipe.Close()
	if _, err := pipe.Write([]byte{1}); err != nil {
		return fmt.Errorf("write readiness pipe: %w", err)
	}
	return nil
}
