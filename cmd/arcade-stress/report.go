package main

import (
	"io"
	"runtime"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Duration      time.Duration
	Sessions      int
	Step          time.Duration
	EventsPerStep int

	// Results
	TotalUpdates   int64
	TotalEvents    int64
	Switches       int64
	TimersFired    int64
	TimersStopped  int64
	TotalTime      time.Duration
	UpdateTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

// Finalize computes Min, Max and Avg from Samples.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min, s.Max = s.Samples[0], s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Add folds the counters and update samples of a finished worker into r.
func (r *Report) Add(w *worker) {
	stats := w.clock.Stats()
	r.TotalUpdates += w.updates
	r.TotalEvents += w.fed
	r.Switches += w.switches
	r.TimersFired += stats.Fired
	r.TimersStopped += stats.Cancelled
	r.UpdateTime.Samples = append(r.UpdateTime.Samples, w.samples...)
}

// Generate renders the report as markdown to w.
func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Arcade Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Arcades:** {{.Sessions}}
- **Simulated Step:** {{.Step}}
- **Events per Step:** {{.EventsPerStep}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Events:** {{.TotalEvents}}
- **Game Switches:** {{.Switches}}
- **Timers:** {{.TimersFired}} fired, {{.TimersStopped}} cancelled
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Step):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
