package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler turns SIGINT/SIGTERM into context cancellation and tells
// the user what state the ledger was left in.
type InterruptHandler struct {
	writer      io.Writer
	signals     chan os.Signal
	note        string
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a handler writing to writer, or stdout when nil.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stdout
	}
	return &InterruptHandler{
		writer:  writer,
		signals: make(chan os.Signal, 1),
	}
}

// Watch returns a context canceled on the first interrupt. note, when set, is
// printed after the warning, e.g. how much of an import was saved. Watching
// stops once the returned context is done.
func (h *InterruptHandler) Watch(ctx context.Context, note string) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.note = note

	signal.Notify(h.signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(h.signals)
		select {
		case <-h.signals:
			h.markInterrupted()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}

func (h *InterruptHandler) markInterrupted() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.interrupted {
		return
	}
	h.interrupted = true
	h.writeMessage()
}

func (h *InterruptHandler) writeMessage() {
	msg := "\n\n" + FormatWarning("Interrupted!")
	if h.note != "" {
		msg += "\n" + FormatInfo(h.note)
	}
	msg += "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted reports whether a signal arrived.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
