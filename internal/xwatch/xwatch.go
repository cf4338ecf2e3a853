// Package xwatch owns an X server connection subscribed to the lifecycle
// of a single window. Destruction of the window, asynchronous protocol
// errors and connection loss are all delivered as events on one channel so
// the caller can multiplex them against other sources.
package xwatch

import (
	"errors"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// ErrDisconnected reports that the X server connection was lost.
var ErrDisconnected = errors.New("X server connection lost")

// EventKind discriminates watcher events.
type EventKind int

const (
	// EventDestroyed reports a DestroyNotify. Window identifies the
	// window whose structure change was reported.
	EventDestroyed EventKind = iota
	// EventError reports an asynchronous protocol error. Terminal: the
	// session must clean up and exit.
	EventError
	// EventDisconnected reports loss of the server connection. Terminal,
	// and the connection must not be closed again.
	EventDisconnected
)

// Event is one watcher notification.
type Event struct {
	Kind   EventKind
	Window uint32
	Err    error
}

// Watcher is an X connection with a StructureNotify subscription on one
// window.
type Watcher struct {
	conn   *xgb.Conn
	window xproto.Window
	events chan Event
}

// Open connects to the display named by $DISPLAY and subscribes to
// structure changes of window. The subscription is issued as a checked
// request so an invalid window id fails here, synchronously, instead of
// surfacing later as an asynchronous error.
func Open(window uint32) (*Watcher, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("open X display: %w", err)
	}
	w := &Watcher{
		conn:   conn,
		window: xproto.Window(window),
		events: make(chan Event, 8),
	}
	err = xproto.ChangeWindowAttributesChecked(conn, w.window,
		xproto.CwEventMask, []uint32{xproto.EventMaskStructureNotify}).Check()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("watch window %#x: %w", window, err)
	}
	go w.pump()
	return w, nil
}

// Events returns the channel watcher notifications are delivered on.
// Receiving is non-destructive to the subscription; the channel stays open
// until the connection ends.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close closes the X connection, which also stops the event pump.
func (w *Watcher) Close() {
	w.conn.Close()
}

// pump translates the connection's event stream into watcher events until
// the connection dies.
func (w *Watcher) pump() {
	defer close(w.events)
	for {
		ev, xerr := w.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			w.events <- Event{Kind: EventDisconnected, Err: ErrDisconnected}
			return
		}
		out, ok := translate(ev, xerr)
		if !ok {
			continue
		}
		w.events <- out
	}
}

// translate maps one (event, error) pair from the X connection to a watcher
// event. Events other than DestroyNotify are dropped: the StructureNotify
// subscription also delivers configure, map and unmap traffic.
func translate(ev xgb.Event, xerr xgb.Error) (Event, bool) {
	if xerr != nil {
		return Event{
			Kind: EventError,
			Err:  fmt.Errorf("X protocol error: %s", xerr.Error()),
		}, true
	}
	if destroy, isDestroy := ev.(xproto.DestroyNotifyEvent); isDestroy {
		return Event{Kind: EventDestroyed, Window: uint32(destroy.Event)}, true
	}
	return Event{}, false
}
