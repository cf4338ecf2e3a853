// Package procscan locates the suspend session process for a window by
// scanning the process table, and terminates it.
package procscan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformedCmdline reports a /proc cmdline blob that is empty or not
// NUL-terminated.
var ErrMalformedCmdline = errors.New("malformed cmdline")

const deletedSuffix = " (deleted)"

// Matcher decides whether a pid is a suspend session for the target window.
//
// The identity check is deliberately weak: a candidate only needs a
// readable exe link plus an argument vector of exactly
// [anything, "suspend", "<window id>"]. SelfExe is resolved and carried so
// the policy can be tightened to an executable comparison in one place,
// but it does not participate in the decision today.
type Matcher struct {
	ProcRoot string
	SelfExe  string
	Window   uint32
}

// Match reports whether pid is a suspend session for the target window.
// A process that vanishes or is inaccessible between enumeration and read
// is an expected race and reported as no match, not as an error.
func (m *Matcher) Match(pid int) (bool, error) {
	_, readable, err := m.readExeLink(pid)
	if err != nil {
		return false, err
	}
	if !readable {
		return false, nil
	}

	argv, readable, err := m.readCmdline(pid)
	if err != nil {
		return false, err
	}
	if !readable {
		return false, nil
	}

	if len(argv) != 3 || argv[1] != "suspend" {
		return false, nil
	}
	id, err := strconv.ParseUint(argv[2], 0, 64)
	if err != nil {
		return false, nil
	}
	return id == uint64(m.Window), nil
}

// readExeLink resolves the candidate's executable link. The kernel appends
// " (deleted)" when the binary was unlinked; the suffix is stripped so an
// updated binary still resolves to its original path.
func (m *Matcher) readExeLink(pid int) (string, bool, error) {
	link, err := os.Readlink(filepath.Join(m.ProcRoot, strconv.Itoa(pid), "exe"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read exe link of pid %d: %w", pid, err)
	}
	return strings.TrimSuffix(link, deletedSuffix), true, nil
}

// readCmdline reads the candidate's argument vector as the sequence of
// NUL-terminated strings the kernel exposes.
func (m *Matcher) readCmdline(pid int) ([]string, bool, error) {
	raw, err := os.ReadFile(filepath.Join(m.ProcRoot, strconv.Itoa(pid), "cmdline"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cmdline of pid %d: %w", pid, err)
	}
	if len(raw) == 0 || raw[len(raw)-1] != 0 {
		return nil, false, fmt.Errorf("pid %d: %w", pid, ErrMalformedCmdline)
	}
	return strings.Split(string(raw[:len(raw)-1]), "\x00"), true, nil
}
