package input

import (
	"fmt"
	"time"
)

// Trigger selects when a matched key or button fires its bindings. It is one
// of Edge, Hold or Repeat.
type Trigger interface {
	signature() string
	validate()
}

// EdgeType selects which transition fires an Edge trigger.
type EdgeType int

const (
	EdgeUp EdgeType = iota
	EdgeDown
	EdgeBoth
)

// Edge fires once on the press, the release, or both.
type Edge struct {
	Type EdgeType
}

func (e Edge) onDown() bool { return e.Type == EdgeDown || e.Type == EdgeBoth }
func (e Edge) onUp() bool   { return e.Type == EdgeUp || e.Type == EdgeBoth }

func (e Edge) signature() string {
	switch e.Type {
	case EdgeUp:
		return "edge:up"
	case EdgeDown:
		return "edge:down"
	default:
		return "edge:both"
	}
}

func (e Edge) validate() {
	if e.Type < EdgeUp || e.Type > EdgeBoth {
		panic(fmt.Sprintf("input: unknown edge type %d", e.Type))
	}
}

// Hold fires on release when the press lasted at least Threshold.
type Hold struct {
	Threshold time.Duration
}

func (h Hold) signature() string {
	return "hold:" + h.Threshold.String()
}

func (h Hold) validate() {
	if h.Threshold < 0 {
		panic("input: negative hold threshold")
	}
}

// Repeat fires once after Delay while held, then every Interval until release.
// A zero Delay means Delay equals Interval.
type Repeat struct {
	Delay    time.Duration
	Interval time.Duration
}

func (r Repeat) delay() time.Duration {
	if r.Delay == 0 {
		return r.Interval
	}
	return r.Delay
}

func (r Repeat) signature() string {
	return "repeat:" + r.delay().String() + "/" + r.Interval.String()
}

func (r Repeat) validate() {
	if r.Interval <= 0 {
		panic("input: repeat interval must be positive")
	}
	if r.Delay < 0 {
		panic("input: negative repeat delay")
	}
}
