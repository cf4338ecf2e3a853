// Package inhibit manages one screensaver inhibition over the D-Bus
// session bus using the org.freedesktop.ScreenSaver API.
package inhibit

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/screenhold/screenhold/internal/config"
)

// ErrUnexpectedReply reports a ScreenSaver method reply whose shape does not
// match the interface definition.
var ErrUnexpectedReply = errors.New("unexpected D-Bus reply")

// Session is a connection to the session-bus screensaver object. It carries
// no inhibition state itself; the cookie returned by Acquire identifies the
// outstanding request and must be passed back to Release.
type Session struct {
	conn  *dbus.Conn
	dest  string
	path  dbus.ObjectPath
	iface string
}

// Connect opens a private session-bus connection to the configured
// screensaver object.
func Connect(cfg config.ScreensaverConfig) (*Session, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &Session{
		conn:  conn,
		dest:  cfg.Destination,
		path:  dbus.ObjectPath(cfg.ObjectPath),
		iface: cfg.Interface,
	}, nil
}

// Acquire calls Inhibit(program, reason) and returns the cookie identifying
// the inhibition. The reply must carry exactly one uint32.
func (s *Session) Acquire(program, reason string) (uint32, error) {
	call := s.conn.Object(s.dest, s.path).Call(s.iface+".Inhibit", 0, program, reason)
	if call.Err != nil {
		return 0, fmt.Errorf("call %s.Inhibit: %w", s.iface, call.Err)
	}
	return cookieFromReply(call.Body)
}

// Release calls UnInhibit(cookie). The reply must be empty.
func (s *Session) Release(cookie uint32) error {
	call := s.conn.Object(s.dest, s.path).Call(s.iface+".UnInhibit", 0, cookie)
	if call.Err != nil {
		return fmt.Errorf("call %s.UnInhibit: %w", s.iface, call.Err)
	}
	return checkVoidReply(call.Body)
}

// Close closes the bus connection.
func (s *Session) Close() error {
	return s.conn.Close()
}

// cookieFromReply validates that an Inhibit reply carries exactly one
// uint32 cookie.
func cookieFromReply(body []interface{}) (uint32, error) {
	if len(body) != 1 {
		return 0, fmt.Errorf("%w: Inhibit returned %d values, want 1", ErrUnexpectedReply, len(body))
	}
	cookie, ok := body[0].(uint32)
	if !ok {
		return 0, fmt.Errorf("%w: Inhibit cookie is %T, want uint32", ErrUnexpectedReply, body[0])
	}
	return cookie, nil
}

// checkVoidReply validates that an UnInhibit reply is empty.
func checkVoidReply(body []interface{}) error {
	if len(body) != 0 {
		return fmt.Errorf("%w: UnInhibit returned %d values, want none", ErrUnexpectedReply, len(body))
	}
	return nil
}
