package guarded

import (
	"errors"
	"fmt"
	"strings"
)

type Variant int

const (
	Unsynchronized Variant = iota
	Mutex
	Semaphore
	SerialQueue
	SerialQueueAsync
	RWQueue
)

var ErrUnknownVariant = errors.New("unknown variant")

var variantNames = []string{
	Unsynchronized:   "unsynchronized",
	Mutex:            "mutex",
	Semaphore:        "semaphore",
	SerialQueue:      "serial-queue",
	SerialQueueAsync: "serial-queue-async",
	RWQueue:          "rw-queue",
}

func Variants() []Variant {
	return []Variant{Unsynchronized, Mutex, Semaphore, SerialQueue, SerialQueueAsync, RWQueue}
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// Synchronized reports whether the variant promises no lost updates.
func (v Variant) Synchronized() bool {
	return v != Unsynchronized
}

func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Run hammers a new cell of kind v starting at initial and returns the
// final value.
func (v Variant) Run(initial, workers, increments int, trace Trace, observer Observer[int]) (int, error) {
	var opts []Option[int]
	if observer != nil {
		opts = append(opts, WithObserver(observer))
	}

	switch v {
	case Unsynchronized:
		return Hammer(NewUnsynchronizedCell(initial, opts...), workers, increments, trace)
	case Mutex:
		return Hammer(NewMutexCell(initial, opts...), workers, increments, trace)
	case Semaphore:
		return Hammer(NewSemaphoreCell(initial, opts...), workers, increments, trace)
	case SerialQueue:
		c := NewSerialQueueCell(initial, opts...)
		defer c.Close()
		return Hammer(c, workers, increments, trace)
	case SerialQueueAsync:
		c := NewSerialQueueCellAsync(initial, opts...)
		defer c.Close()
		return HammerAsync(c, workers, increments, trace)
	case RWQueue:
		c := NewRWQueueCell(initial, opts...)
		defer c.Close()
		return Hammer(c, workers, increments, trace)
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
}
