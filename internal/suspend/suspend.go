// Package suspend runs one screensaver suspension bound to the lifetime of
// an X window: it acquires an inhibition, watches the window, and blocks
// until the window is destroyed or a gated signal arrives. The inhibition
// is released exactly once on every exit path.
package suspend

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/screenhold/screenhold/internal/logging"
	"github.com/screenhold/screenhold/internal/xwatch"
)

// Inhibitor acquires and releases one screensaver inhibition.
type Inhibitor interface {
	Acquire(program, reason string) (uint32, error)
	Release(cookie uint32) error
	Close() error
}

// Watcher delivers lifecycle events for one subscribed window.
type Watcher interface {
	Events() <-chan xwatch.Event
	Close()
}

// Controller drives one suspend session.
type Controller struct {
	// Program is the application name reported to the inhibit service.
	Program string
	// Window is the X window handle the session is bound to.
	Window uint32
	// Signals is the armed gated-signal channel.
	Signals <-chan os.Signal
	// OpenInhibitor and OpenWatcher construct the session's resources.
	OpenInhibitor func() (Inhibitor, error)
	OpenWatcher   func(window uint32) (Watcher, error)
	// Ready, if set, is called once the destroy subscription is flushed,
	// before the session starts waiting.
	Ready func() error
}

// session owns every resource of one suspend run. It is constructed only in
// the detached child, so no other process ever holds a live owning handle.
type session struct {
	window    uint32
	inhibitor Inhibitor
	cookie    uint32
	inhibited bool
	watcher   Watcher
	// watcherLost marks that the server connection died on its own; the
	// cleanup step must not close it a second time.
	watcherLost bool
	finished    bool
	log         *zerolog.Logger
}

// Run executes the session state machine. Whatever the outcome of the wait,
// cleanup runs exactly once before Run returns; a cleanup failure turns a
// successful wait into a failed run but never masks the wait's own error.
func (c *Controller) Run(ctx context.Context) error {
	sess := &session{window: c.Window, log: logging.FromContext(ctx)}
	err := c.run(sess)
	if ferr := sess.finish(); err == nil {
		err = ferr
	}
	return err
}

func (c *Controller) run(sess *session) error {
	inhibitor, err := c.OpenInhibitor()
	if err != nil {
		return err
	}
	sess.inhibitor = inhibitor

	reason := fmt.Sprintf("waiting for X window %#x", c.Window)
	cookie, err := inhibitor.Acquire(c.Program, reason)
	if err != nil {
		return fmt.Errorf("inhibit screensaver: %w", err)
	}
	sess.cookie = cookie
	sess.inhibited = true
	sess.log.Debug().Uint32("cookie", cookie).Str("reason", reason).Msg("screensaver inhibited")

	watcher, err := c.OpenWatcher(c.Window)
	if err != nil {
		return err
	}
	sess.watcher = watcher

	if c.Ready != nil {
		if err := c.Ready(); err != nil {
			return fmt.Errorf("notify launcher: %w", err)
		}
	}
	return c.wait(sess)
}

// wait blocks until the window is destroyed or a gated signal arrives.
// Queued window events are always drained before blocking, and drained
// again when a signal wins the blocking wait, so a destruction that races a
// signal still decides the outcome.
func (c *Controller) wait(sess *session) error {
	for {
		if done, err := c.drain(sess); done {
			return err
		}
		select {
		case ev := <-sess.watcher.Events():
			if done, err := c.handleEvent(sess, ev); done {
				return err
			}
		case sig := <-c.Signals:
			if done, err := c.drain(sess); done {
				return err
			}
			sess.log.Info().Str("signal", sig.String()).Msg("received signal")
			if sig == syscall.SIGTERM {
				return nil
			}
			return fmt.Errorf("received signal %s", sig)
		}
	}
}

// drain handles every window event currently queued without blocking.
func (c *Controller) drain(sess *session) (bool, error) {
	for {
		select {
		case ev := <-sess.watcher.Events():
			if done, err := c.handleEvent(sess, ev); done {
				return true, err
			}
		default:
			return false, nil
		}
	}
}

func (c *Controller) handleEvent(sess *session, ev xwatch.Event) (bool, error) {
	switch ev.Kind {
	case xwatch.EventDestroyed:
		if ev.Window != c.Window {
			return false, nil
		}
		sess.log.Info().Str("window", fmt.Sprintf("%#x", c.Window)).Msg("window destroyed")
		return true, nil
	case xwatch.EventError:
		return true, fmt.Errorf("window %#x: %w", c.Window, ev.Err)
	case xwatch.EventDisconnected:
		sess.watcherLost = true
		return true, ev.Err
	}
	return false, nil
}

// finish tears the session down: release the cookie if held, then close the
// owned connections. It runs at most once; late entries (a second call
// after the error path already cleaned up) are no-ops.
func (s *session) finish() error {
	if s.finished {
		return nil
	}
	s.finished = true

	var failed bool
	if s.inhibited {
		if err := s.inhibitor.Release(s.cookie); err != nil {
			s.log.Error().Err(err).Msg("failed to release screensaver inhibition")
			failed = true
		}
		s.inhibited = false
	}
	if s.watcher != nil && !s.watcherLost {
		s.watcher.Close()
	}
	if s.inhibitor != nil {
		if err := s.inhibitor.Close(); err != nil {
			s.log.Error().Err(err).Msg("failed to close session bus connection")
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("session cleanup failed")
	}
	return nil
}
