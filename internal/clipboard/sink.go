package clipboard

import (
	"time"

	"github.com/atotto/clipboard"
)

//go:generate mockgen -source=sink.go -destination=../mock/clipboard_sink_mock.go -package=mock

// Sink is the shared clipboard the guard writes to.
type Sink interface {
	WriteAll(text string) error
}

type systemSink struct{}

// SystemSink returns the clipboard of the operating system.
func SystemSink() Sink {
	return systemSink{}
}

func (systemSink) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Ticker delivers countdown ticks to an exposure.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a [Ticker] firing every d.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }
