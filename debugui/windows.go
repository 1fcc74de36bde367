package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gridarcade/arcade"
)

// PerformanceWindow plots frame times and shows clock activity.
type PerformanceWindow struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// NewPerformanceWindow keeps a frame time history of historyFrames samples.
func NewPerformanceWindow(historyFrames int) *PerformanceWindow {
	if historyFrames <= 0 {
		panic("debugui: history must hold at least one frame")
	}
	return &PerformanceWindow{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Render draws the frame plot and the clock stats of s.
func (pw *PerformanceWindow) Render(s *arcade.Session, deltaTime float32) {
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	pw.frameHistory[pw.frameIndex] = deltaTime * 1000.0
	pw.frameIndex = (pw.frameIndex + 1) % pw.historyFrames

	var avgFrameTime float32
	for _, ft := range pw.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(pw.historyFrames)

	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &pw.frameHistory[0], int32(len(pw.frameHistory)))

	if s != nil && imgui.TreeNodeStr("Timers") {
		imgui.Text("Session: " + s.ID())
		for _, line := range ClockLines(s.Clock().Stats()) {
			imgui.BulletText(line)
		}
		imgui.Text(fmt.Sprintf("Session Timers: %d", s.Timers().Len()))
		imgui.TreePop()
	}

	imgui.End()
}

// InputWindow lists every registered matcher in dispatch order.
type InputWindow struct {
	filterText string
}

// Render draws the filterable bindings table of s.
func (iw *InputWindow) Render(s *arcade.Session) {
	if !imgui.BeginV("Input", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &iw.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		iw.filterText = ""
	}

	rows := BindingRows(s.Input().Bindings(), s.Input().Linked(), iw.filterText)
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("BindingTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Event")
		imgui.TableSetupColumn("Priority")
		imgui.TableSetupColumn("Bindings")
		imgui.TableSetupColumn("Linked")
		imgui.TableSetupColumn("State")
		imgui.TableHeadersRow()

		for _, row := range rows {
			imgui.TableNextRow()
			for _, cell := range []string{row.ID, row.Priority, row.Bindings, row.Linked, row.State} {
				imgui.TableNextColumn()
				imgui.Text(cell)
			}
		}
		imgui.EndTable()
	}

	imgui.End()
}

// CollidersWindow lists the colliders of the session.
type CollidersWindow struct{}

// Render draws every collider registered in s.
func (cw *CollidersWindow) Render(s *arcade.Session) {
	if !imgui.BeginV("Colliders", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	b := s.Physics().Bounds()
	imgui.Text(fmt.Sprintf("Bounds: %dx%d", b.Width+1, b.Height+1))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("ColliderTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Angle")
		imgui.TableSetupColumn("Center")
		imgui.TableSetupColumn("Cells")
		imgui.TableHeadersRow()

		for _, row := range ColliderRows(s.Physics().Snapshot()) {
			imgui.TableNextRow()
			for _, cell := range []string{row.Name, row.Position, row.Angle, row.Center, row.Cells} {
				imgui.TableNextColumn()
				imgui.Text(cell)
			}
		}
		imgui.EndTable()
	}

	imgui.End()
}
