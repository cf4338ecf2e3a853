// Package siggate routes the fixed set of session-ending signals through a
// channel so the suspend loop can multiplex them against window events
// instead of being interrupted asynchronously.
package siggate

import (
	"os"
	"os/signal"
	"syscall"
)

// gated is the fixed set of signals that end a suspend session. SIGTERM is
// the cooperative stop used by `screenhold resume`; the rest are failure
// stops.
var gated = []os.Signal{
	syscall.SIGHUP,
	syscall.SIGINT,
	syscall.SIGPIPE,
	syscall.SIGQUIT,
	syscall.SIGTERM,
}

// Gate delivers gated signals on a channel. While armed, none of the gated
// signals can kill the process through its default disposition.
type Gate struct {
	ch chan os.Signal
}

// Arm registers the gated signal set and returns the gate. The channel is
// buffered to hold one pending delivery per gated signal.
func Arm() *Gate {
	g := &Gate{ch: make(chan os.Signal, len(gated))}
	signal.Notify(g.ch, gated...)
	return g
}

// C returns the channel signals are delivered on.
func (g *Gate) C() <-chan os.Signal {
	return g.ch
}

// Close restores default signal dispositions. Signals already queued on the
// channel remain readable.
func (g *Gate) Close() {
	signal.Stop(g.ch)
}
