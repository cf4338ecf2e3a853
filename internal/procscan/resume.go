package procscan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/screenhold/screenhold/internal/logging"
)

// Resumer terminates every suspend session for one window.
type Resumer struct {
	Matcher *Matcher
	// Kill delivers the termination signal to a matched pid. Defaults to
	// SIGTERM via unix.Kill.
	Kill func(pid int) error
}

// Run scans the whole process table and sends SIGTERM to every match.
// One unreadable or malformed process never aborts the scan of the rest;
// genuine failures are logged as they happen and reported in aggregate at
// the end. No matches is success.
func (r *Resumer) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)

	entries, err := os.ReadDir(r.Matcher.ProcRoot)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.Matcher.ProcRoot, err)
	}

	failures := 0
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		matched, err := r.Matcher.Match(pid)
		if err != nil {
			log.Error().Err(err).Int("pid", pid).Msg("failed to check process, continuing")
			failures++
			continue
		}
		if !matched {
			continue
		}
		if err := r.terminate(pid); err != nil {
			log.Error().Err(err).Int("pid", pid).Msg("failed to terminate process, continuing")
			failures++
			continue
		}
		log.Info().Int("pid", pid).Msg("terminated suspend session")
	}

	if failures > 0 {
		return fmt.Errorf("%d process(es) could not be checked or terminated", failures)
	}
	return nil
}

// terminate sends SIGTERM. A process already gone or owned by another user
// is a race, not a failure.
func (r *Resumer) terminate(pid int) error {
	kill := r.Kill
	if kill == nil {
		kill = func(pid int) error { return unix.Kill(pid, unix.SIGTERM) }
	}
	err := kill(pid)
	if err == nil || errors.Is(err, unix.ESRCH) || errors.Is(err, unix.EPERM) {
		return nil
	}
	return fmt.Errorf("terminate pid %d: %w", pid, err)
}

// SelfExe resolves this invocation's own executable path for the matcher,
// with the same " (deleted)" trimming applied to candidates.
func SelfExe() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve own executable: %w", err)
	}
	return strings.TrimSuffix(exe, deletedSuffix), nil
}
