package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/plus3/gridarcade/clock"
	"github.com/plus3/gridarcade/input"
	"github.com/plus3/gridarcade/physics"
)

// BindingRow is one line of the Input window table.
type BindingRow struct {
	ID       string
	Priority string
	Bindings string
	Linked   string
	State    string
}

// BindingRows formats dispatcher bindings, keeping only rows whose id or
// binding names contain filter (case-insensitive).
func BindingRows(infos []input.BindingInfo, linked []string, filter string) []BindingRow {
	filter = strings.ToLower(filter)
	rows := make([]BindingRow, 0, len(infos))
	for _, info := range infos {
		names := strings.Join(info.Bindings, ", ")
		if filter != "" &&
			!strings.Contains(strings.ToLower(info.ID), filter) &&
			!strings.Contains(strings.ToLower(names), filter) {
			continue
		}

		var live []string
		for _, name := range info.Bindings {
			if slices.Contains(linked, name) {
				live = append(live, name)
			}
		}

		state := "idle"
		switch {
		case info.Armed:
			state = "armed"
		case info.Holding:
			state = "holding"
		}

		rows = append(rows, BindingRow{
			ID:       info.ID,
			Priority: fmt.Sprintf("%d", info.Priority),
			Bindings: names,
			Linked:   strings.Join(live, ", "),
			State:    state,
		})
	}
	return rows
}

// ColliderRow is one line of the Colliders window table.
type ColliderRow struct {
	Name     string
	Position string
	Angle    string
	Center   string
	Cells    string
}

// ColliderRows formats a registry snapshot for the colliders table.
func ColliderRows(infos []physics.ColliderInfo) []ColliderRow {
	rows := make([]ColliderRow, len(infos))
	for i, info := range infos {
		rows[i] = ColliderRow{
			Name:     info.Name,
			Position: info.Position.String(),
			Angle:    fmt.Sprintf("%g", info.Angle),
			Center:   info.Center.String(),
			Cells:    fmt.Sprintf("%d", info.Cells),
		}
	}
	return rows
}

// ClockLines summarises clock statistics.
func ClockLines(stats clock.Stats) []string {
	return []string{
		fmt.Sprintf("Now: %s", stats.Now),
		fmt.Sprintf("Pending Timers: %d (%d repeating)", stats.Pending, stats.Repeating),
		fmt.Sprintf("Groups: %d", stats.Groups),
		fmt.Sprintf("Fired: %d", stats.Fired),
		fmt.Sprintf("Cancelled: %d", stats.Cancelled),
	}
}
