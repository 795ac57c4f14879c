package preview

import (
	"context"
	"image"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/user/patternshow/pkg/adapters/logger"
	"github.com/user/patternshow/pkg/compose"
	"github.com/user/patternshow/pkg/mocks"
	"github.com/user/patternshow/pkg/ports"
	"github.com/user/patternshow/pkg/render"
)

func newTestEngine() (*Engine, *mocks.Renderer) {
	renderer := &mocks.Renderer{}
	e := NewEngine(renderer, mocks.NewDebugSink(false), logger.NewNoop())
	return e, renderer
}

func loadPattern(t *testing.T, e *Engine, w, h int) {
	t.Helper()
	if err := e.PatternLoaded(image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("load pattern: %v", err)
	}
}

// TestEngine_OneRedrawPerMutation verifies the core contract: every engine
// mutation triggers exactly one synchronous redraw.
func TestEngine_OneRedrawPerMutation(t *testing.T) {
	e, _ := newTestEngine()

	redraws := 0
	e.OnRedraw(func() { redraws++ })

	mutations := []func(){
		func() { e.SetScale(0.5) },
		func() { e.SetZoom(2.0) },
		func() { e.SetOffsetPercentX(0.1) },
		func() { e.SetOffsetPercentY(0.2) },
		func() { e.SetPan(10, 20) },
		func() { e.SetRepeatType(render.RepeatBrick) },
		func() { e.SetViewMode(render.ViewTileGrid) },
		func() { e.SetMockup(render.MockupMug) },
		func() { e.SetBackgroundColor("#336699") },
		func() { e.SetGridOverlaySize(2) },
		func() { e.SetSeamlessTest(true) },
		func() { e.SetMockupZoom(1.2) },
		func() { e.SetMockupRotate(45) },
		func() { e.SetMaxCanvasSize(800) },
		func() { e.SetScaleSlider(30) },
		func() { e.SetZoomSlider(70) },
		func() { e.DragBy(5, 5) },
		func() { e.Wheel(-1) },
	}

	for i, mutate := range mutations {
		before := redraws
		mutate()
		if redraws != before+1 {
			t.Errorf("mutation %d: expected exactly 1 redraw, got %d", i, redraws-before)
		}
	}
}

func TestEngine_PatternLoaded(t *testing.T) {
	e, _ := newTestEngine()

	redraws := 0
	e.OnRedraw(func() { redraws++ })

	loadPattern(t, e, 300, 200)
	if redraws != 1 {
		t.Errorf("expected 1 redraw on load, got %d", redraws)
	}
	if e.State().Pattern() == nil {
		t.Fatal("pattern not set")
	}
	if got := e.State().TileSize(); got != 300 {
		t.Errorf("tile size: expected 300, got %v", got)
	}

	// Nil clears back to idle and redraws.
	if err := e.PatternLoaded(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.State().Pattern() != nil {
		t.Error("pattern not cleared")
	}
	if redraws != 2 {
		t.Errorf("expected 2 redraws, got %d", redraws)
	}

	// A degenerate image is rejected without touching the state.
	if err := e.PatternLoaded(image.NewNRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("expected error for degenerate image")
	}
	if redraws != 2 {
		t.Errorf("failed load must not redraw, got %d", redraws)
	}
}

// TestEngine_SliderSnapOnRelease verifies the drag/release split: dragging
// applies raw mapped values, release snaps and re-projects to the slider.
func TestEngine_SliderSnapOnRelease(t *testing.T) {
	e, _ := newTestEngine()

	// Dragging never snaps.
	e.SetScaleSlider(50)
	if got := e.State().Scale(); got != 1.0 {
		t.Fatalf("slider 50: expected scale 1.0, got %v", got)
	}
	e.SetScale(2.6)
	pos := e.ReleaseScaleSlider()
	// 2.6 snaps to quarter step 2.5; slider re-projects to 50 + 1.5/4*50.
	if got := e.State().Scale(); got != 2.5 {
		t.Errorf("release: expected scale 2.5, got %v", got)
	}
	if want := 68.75; math.Abs(pos-want) > 1e-9 {
		t.Errorf("release: expected slider %v, got %v", want, pos)
	}

	e.SetZoom(0.3)
	e.ReleaseZoomSlider()
	// 30% snaps to the nearest 25-step.
	if got := e.State().Zoom(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("zoom release: expected 0.25, got %v", got)
	}

	e.SetZoom(0.23)
	e.ReleaseZoomSlider()
	// Below 25% snapping is per whole percent.
	if got := e.State().Zoom(); math.Abs(got-0.23) > 1e-9 {
		t.Errorf("zoom release: expected 0.23, got %v", got)
	}
}

func TestEngine_OffsetReleaseSnapsToTenPercent(t *testing.T) {
	e, _ := newTestEngine()

	e.SetOffsetPercentX(0.47)
	if got := e.ReleaseOffsetX(); got != 50 {
		t.Errorf("expected snapped 50%%, got %v", got)
	}
	if got := e.State().OffsetPercentX(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected offset 0.5, got %v", got)
	}

	e.SetOffsetPercentY(0.04)
	if got := e.ReleaseOffsetY(); got != 0 {
		t.Errorf("expected snapped 0%%, got %v", got)
	}
}

func TestEngine_DragAccumulates(t *testing.T) {
	e, _ := newTestEngine()

	e.DragBy(10, -5)
	e.DragBy(-3, 7)
	x, y := e.State().Pan()
	if x != 7 || y != 2 {
		t.Errorf("expected pan (7, 2), got (%v, %v)", x, y)
	}
}

func TestEngine_Wheel(t *testing.T) {
	e, _ := newTestEngine()

	e.Wheel(-1) // zoom in
	if got := e.State().Zoom(); math.Abs(got-1.1) > 1e-9 {
		t.Errorf("expected zoom 1.1, got %v", got)
	}
	e.Wheel(1) // back out
	if got := e.State().Zoom(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected zoom 1.0, got %v", got)
	}

	// Settle snaps in the percent domain: 1.0 * 1.1^2 = 1.21 -> 125%.
	e.Wheel(-1)
	e.Wheel(-1)
	e.WheelEnd()
	if got := e.State().Zoom(); math.Abs(got-1.25) > 1e-9 {
		t.Errorf("expected settled zoom 1.25, got %v", got)
	}

	// The wheel never escapes the zoom clamp.
	for i := 0; i < 100; i++ {
		e.Wheel(-1)
	}
	if got := e.State().Zoom(); got != render.MaxZoom {
		t.Errorf("expected clamped zoom %v, got %v", render.MaxZoom, got)
	}
}

func TestEngine_RenderDispatch(t *testing.T) {
	e, _ := newTestEngine()
	loadPattern(t, e, 100, 100)
	e.RegisterMockup(render.MockupFabric, image.NewNRGBA(image.Rect(0, 0, 50, 50)))
	e.RegisterMockup(render.MockupTShirt, image.NewNRGBA(image.Rect(0, 0, 60, 60)))

	// Tile views blit tiles, no rotation.
	canvas := mocks.NewCanvas(400, 400)
	if err := e.Render(canvas); err != nil {
		t.Fatalf("tile render: %v", err)
	}
	if len(canvas.Blits) == 0 || len(canvas.Rotations) != 0 {
		t.Errorf("tile view: %d blits, %d rotations", len(canvas.Blits), len(canvas.Rotations))
	}

	// Fabric view composites the fabric mockup regardless of selection.
	e.SetMockup(render.MockupTShirt)
	e.SetViewMode(render.ViewFabric)
	canvas = mocks.NewCanvas(400, 400)
	if err := e.Render(canvas); err != nil {
		t.Fatalf("fabric render: %v", err)
	}
	if len(canvas.Blits) != 1 {
		t.Errorf("fabric view: expected 1 composite blit, got %d", len(canvas.Blits))
	}

	// Mockup view composites the selected kind; unregistered kinds error.
	e.SetViewMode(render.ViewMockup)
	canvas = mocks.NewCanvas(400, 400)
	if err := e.Render(canvas); err != nil {
		t.Fatalf("mockup render: %v", err)
	}
	e.SetMockup(render.MockupPillow)
	if err := e.Render(mocks.NewCanvas(400, 400)); err == nil {
		t.Error("expected error for unregistered mockup texture")
	}
}

func TestEngine_RenderMockupWithoutPattern(t *testing.T) {
	e, _ := newTestEngine()
	e.SetViewMode(render.ViewFabric)

	// No pattern: the mockup views fall back to the idle placeholder
	// instead of erroring, even with no texture registered.
	canvas := mocks.NewCanvas(400, 400)
	if err := e.Render(canvas); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(canvas.Texts) != 1 || canvas.Texts[0] != "No pattern loaded" {
		t.Errorf("expected placeholder, got %v", canvas.Texts)
	}
}

func TestEngine_Export(t *testing.T) {
	e, _ := newTestEngine()
	loadPattern(t, e, 100, 100)

	data, err := e.Export(context.Background(), compose.ExportRequest{Size: 500, Format: ports.FormatPNG})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "encoded" {
		t.Errorf("unexpected payload: %q", data)
	}
}

// TestEngine_ExportSerialized verifies a second export is rejected with
// ErrExportInProgress while the first is still encoding.
func TestEngine_ExportSerialized(t *testing.T) {
	renderer := &mocks.Renderer{}
	release := make(chan struct{})
	started := make(chan struct{})
	var startedOnce sync.Once
	renderer.EncodeImageFunc = func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
		startedOnce.Do(func() { close(started) })
		<-release
		return []byte("slow"), nil
	}

	e := NewEngine(renderer, mocks.NewDebugSink(false), logger.NewNoop())
	loadPattern(t, e, 100, 100)

	done := make(chan error, 1)
	go func() {
		_, err := e.Export(context.Background(), compose.ExportRequest{Size: 500, Format: ports.FormatPNG})
		done <- err
	}()

	<-started
	if _, err := e.Export(context.Background(), compose.ExportRequest{Size: 500, Format: ports.FormatPNG}); err != ErrExportInProgress {
		t.Errorf("expected ErrExportInProgress, got %v", err)
	}

	close(release)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("first export failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("first export never finished")
	}

	// The guard clears once the export finishes.
	if _, err := e.Export(context.Background(), compose.ExportRequest{Size: 500, Format: ports.FormatPNG}); err != nil {
		t.Errorf("follow-up export failed: %v", err)
	}
}

func TestEngine_SettingsRoundTrip(t *testing.T) {
	e, _ := newTestEngine()

	e.SetScale(0.75)
	e.SetRepeatType(render.RepeatHalfDrop)
	e.SetBackgroundColor("#112233")
	snap := e.Snapshot()

	other, _ := newTestEngine()
	other.ApplySettings(snap)

	if other.State().Scale() != 0.75 {
		t.Errorf("scale did not survive: %v", other.State().Scale())
	}
	if other.State().RepeatType() != render.RepeatHalfDrop {
		t.Errorf("repeat did not survive: %v", other.State().RepeatType())
	}
	if got := render.FormatHexColor(other.State().BackgroundColor()); got != "#112233" {
		t.Errorf("background did not survive: %v", got)
	}
}
