package filesink

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/user/patternshow/pkg/mocks"
	"github.com/user/patternshow/pkg/ports"
)

func newTestSink() (*Sink, *mocks.FileSystem) {
	fs := mocks.NewFileSystem()
	return New("debug", fs, &mocks.Renderer{}), fs
}

func TestSink_Enabled(t *testing.T) {
	s, _ := newTestSink()
	if !s.Enabled() {
		t.Error("file sink must report enabled")
	}
}

func TestSaveTileLayoutJSON(t *testing.T) {
	s, fs := newTestSink()

	if err := s.SaveTileLayoutJSON([]byte(`{"countX":11}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, ok := fs.Files[filepath.Join("debug", "tile-layout.json")]
	if !ok {
		t.Fatalf("layout file not written, have %v", fs.Paths())
	}
	if string(data) != `{"countX":11}` {
		t.Errorf("unexpected content: %s", data)
	}
}

func TestSavePatternBuffer(t *testing.T) {
	s, fs := newTestSink()

	if err := s.SavePatternBuffer(image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := fs.Files[filepath.Join("debug", "pattern-buffer.png")]; !ok {
		t.Errorf("pattern buffer not written, have %v", fs.Paths())
	}
}

// TestSaveComposite_SequencesNames verifies composites get an increasing
// sequence number so successive frames never overwrite each other.
func TestSaveComposite_SequencesNames(t *testing.T) {
	s, fs := newTestSink()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := s.SaveComposite("tile", img); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SaveComposite("mockup", img); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		filepath.Join("debug", "composites", "0001-tile.png"),
		filepath.Join("debug", "composites", "0002-mockup.png"),
	}
	if diff := cmp.Diff(want, fs.Paths()); diff != "" {
		t.Errorf("unexpected files (-want +got):\n%s", diff)
	}
	if !fs.Dirs[filepath.Join("debug", "composites")] {
		t.Error("composites directory not created")
	}
}

func TestSaveExport_ExtensionFollowsFormat(t *testing.T) {
	s, fs := newTestSink()

	if err := s.SaveExport([]byte("png-bytes"), ports.FormatPNG); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SaveExport([]byte("jpg-bytes"), ports.FormatJPEG); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(fs.Files[filepath.Join("debug", "export.png")]) != "png-bytes" {
		t.Error("PNG export not written")
	}
	if string(fs.Files[filepath.Join("debug", "export.jpg")]) != "jpg-bytes" {
		t.Error("JPEG export not written")
	}
}
