// Package main provides the CLI entry point for patternshow.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"
	"gopkg.in/yaml.v3"

	"github.com/user/patternshow/pkg/adapters/filesink"
	"github.com/user/patternshow/pkg/adapters/ggrenderer"
	"github.com/user/patternshow/pkg/adapters/logger"
	"github.com/user/patternshow/pkg/adapters/nullsink"
	"github.com/user/patternshow/pkg/adapters/osfilesystem"
	"github.com/user/patternshow/pkg/chromakey"
	"github.com/user/patternshow/pkg/compose"
	"github.com/user/patternshow/pkg/config"
	"github.com/user/patternshow/pkg/ports"
	"github.com/user/patternshow/pkg/preview"
	"github.com/user/patternshow/pkg/render"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Render  RenderCmd  `cmd:"" help:"Render a tiled pattern preview to an image file."`
	Export  ExportCmd  `cmd:"" help:"Export the tiled pattern at arbitrary resolution."`
	Mockups MockupsCmd `cmd:"" help:"List the registered product mockups."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// PlacementFlags are the pattern placement options shared by render and export.
type PlacementFlags struct {
	Config   string   `short:"c" help:"YAML config file (flags override it)."`
	Settings string   `help:"Settings snapshot YAML to replay before other flags."`
	Scale    *float64 `short:"s" help:"Pattern scale (0.05-5.0)."`
	Zoom     *float64 `short:"z" help:"Viewport zoom (0.01-8.0)."`
	PanX     *float64 `help:"Horizontal pan in pixels."`
	PanY     *float64 `help:"Vertical pan in pixels."`
	OffsetX  *float64 `help:"Horizontal tile offset as a percentage (0-100)."`
	OffsetY  *float64 `help:"Vertical tile offset as a percentage (0-100)."`
	Repeat   *string  `short:"r" help:"Repeat topology (full, half-drop, brick)."`

	BackgroundColor *string `help:"Background color (hex, e.g. #f5f0e8)."`
	MaxCanvasSize   *int    `help:"Preview pixel budget (default: 1000)."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`

	// Debug options
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`
}

// RenderCmd renders an interactive-style preview frame to a file.
type RenderCmd struct {
	Pattern string `arg:"" help:"Pattern image file (PNG or JPEG)."`
	Output  string `short:"o" required:"" help:"Output image file path."`

	PlacementFlags `embed:""`

	View         string  `default:"tile" enum:"tile,tile-grid,fabric,mockup" help:"View mode (tile, tile-grid, fabric, mockup)."`
	Mockup       string  `default:"fabric" help:"Mockup kind for the mockup view."`
	MockupDir    string  `help:"Directory containing mockup textures."`
	MockupZoom   float64 `default:"1.0" help:"Mockup pattern zoom (1.0-1.5)."`
	MockupRotate float64 `default:"0" help:"Mockup rotation in degrees."`
	GridSize     int     `help:"Measurement grid spacing in inches (0, 1, 2, 6, 12)."`
	Seamless     bool    `help:"Enable the seamless-edge test overlay."`

	SaveSettings string `help:"Write the settings snapshot YAML to this path."`
}

// ExportCmd exports the tiled pattern at arbitrary resolution.
type ExportCmd struct {
	Pattern string `arg:"" help:"Pattern image file (PNG or JPEG)."`
	Output  string `short:"o" required:"" help:"Output image file path."`

	PlacementFlags `embed:""`

	Size    int    `default:"2000" help:"Export size in pixels."`
	Format  string `short:"f" default:"png" enum:"png,jpg" help:"Export format (png, jpg)."`
	Quality int    `short:"q" default:"90" help:"JPEG quality (0-100)."`
}

// MockupsCmd lists the registered product mockups.
type MockupsCmd struct{}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("patternshow"),
		kong.Description("Preview and export repeating patterns on fabric and product mockups."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// buildEngine assembles the adapters and engine shared by render and export.
func (f *PlacementFlags) buildEngine() (*preview.Engine, ports.Renderer, ports.FileSystem, ports.Logger, error) {
	var log ports.Logger
	if f.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(f.LogLevel))
	}

	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var sink ports.DebugSink
	if f.Debug {
		if err := fs.MkdirAll(f.DebugDir); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(f.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	engine := preview.NewEngine(renderer, sink, log)
	return engine, renderer, fs, log, nil
}

// apply layers config file, settings snapshot, and flags onto the engine,
// in that order, and loads the pattern image.
func (f *PlacementFlags) apply(engine *preview.Engine, renderer ports.Renderer, fs ports.FileSystem, patternPath string) error {
	cfg := config.Defaults()
	if f.Config != "" {
		loaded, err := config.LoadFromFile(f.Config)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.Apply(engine); err != nil {
		return err
	}

	if f.Settings != "" {
		data, err := fs.ReadFile(f.Settings)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		var set render.Settings
		if err := yaml.Unmarshal(data, &set); err != nil {
			return fmt.Errorf("parse settings: %w", err)
		}
		engine.ApplySettings(set)
	}

	if f.Scale != nil {
		engine.SetScale(*f.Scale)
	}
	if f.Zoom != nil {
		engine.SetZoom(*f.Zoom)
	}
	if f.PanX != nil || f.PanY != nil {
		x, y := engine.State().Pan()
		if f.PanX != nil {
			x = *f.PanX
		}
		if f.PanY != nil {
			y = *f.PanY
		}
		engine.SetPan(x, y)
	}
	if f.OffsetX != nil {
		engine.SetOffsetPercentX(*f.OffsetX / 100)
	}
	if f.OffsetY != nil {
		engine.SetOffsetPercentY(*f.OffsetY / 100)
	}
	if f.Repeat != nil {
		repeat, err := render.ParseRepeatType(*f.Repeat)
		if err != nil {
			return err
		}
		engine.SetRepeatType(repeat)
	}
	if f.BackgroundColor != nil {
		engine.SetBackgroundColor(*f.BackgroundColor)
	}
	if f.MaxCanvasSize != nil {
		engine.SetMaxCanvasSize(*f.MaxCanvasSize)
	}

	data, err := fs.ReadFile(patternPath)
	if err != nil {
		return fmt.Errorf("read pattern: %w", err)
	}
	img, err := renderer.DecodeImage(data)
	if err != nil {
		return fmt.Errorf("decode pattern: %w", err)
	}
	return engine.PatternLoaded(img)
}

// Run executes the render command.
func (cmd *RenderCmd) Run() error {
	engine, renderer, fs, log, err := cmd.buildEngine()
	if err != nil {
		return err
	}

	if err := cmd.apply(engine, renderer, fs, cmd.Pattern); err != nil {
		return err
	}

	view, err := render.ParseViewMode(cmd.View)
	if err != nil {
		return err
	}
	mockup, err := render.ParseMockupKind(cmd.Mockup)
	if err != nil {
		return err
	}
	engine.SetViewMode(view)
	engine.SetMockup(mockup)
	engine.SetMockupZoom(cmd.MockupZoom)
	engine.SetMockupRotate(cmd.MockupRotate)
	engine.SetGridOverlaySize(cmd.GridSize)
	engine.SetSeamlessTest(cmd.Seamless)

	if view == render.ViewFabric || view == render.ViewMockup {
		kind := mockup
		if view == render.ViewFabric {
			kind = render.MockupFabric
		}
		if err := loadMockup(engine, renderer, fs, cmd.MockupDir, kind); err != nil {
			return err
		}
	}

	size := engine.State().MaxCanvasSize()
	canvas := renderer.CreateCanvas(size, size, engine.State().BackgroundColor())
	if err := engine.Render(canvas); err != nil {
		return err
	}

	format := ports.FormatPNG
	if ext := filepath.Ext(cmd.Output); len(ext) > 1 {
		format = ports.ParseImageFormat(ext[1:])
	}
	data, err := renderer.EncodeImage(canvas.ToImage(), format, 90)
	if err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := fs.WriteFile(cmd.Output, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if cmd.SaveSettings != "" {
		snapshot, err := yaml.Marshal(engine.Snapshot())
		if err != nil {
			return fmt.Errorf("marshal settings: %w", err)
		}
		if err := fs.WriteFile(cmd.SaveSettings, snapshot); err != nil {
			return fmt.Errorf("write settings: %w", err)
		}
	}

	log.Info(l10n.F("Preview saved to %s", cmd.Output))
	return nil
}

// Run executes the export command.
func (cmd *ExportCmd) Run() error {
	engine, renderer, fs, log, err := cmd.buildEngine()
	if err != nil {
		return err
	}

	if err := cmd.apply(engine, renderer, fs, cmd.Pattern); err != nil {
		return err
	}

	// The context doubles as the export abort token.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	data, err := engine.Export(ctx, compose.ExportRequest{
		Size:    cmd.Size,
		Format:  ports.ParseImageFormat(cmd.Format),
		Quality: cmd.Quality,
	})
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("nothing to export")
	}

	if err := fs.WriteFile(cmd.Output, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	log.Info(l10n.F("Export saved to %s (%d bytes)", cmd.Output, len(data)))
	return nil
}

// Run executes the mockups command.
func (cmd *MockupsCmd) Run() error {
	for _, spec := range chromakey.All() {
		fmt.Printf("%-10s %s (%s)\n", spec.Kind, spec.Name, spec.AssetFile)
	}
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("patternshow version %s", version))
	return nil
}

// loadMockup reads and registers one mockup texture from the asset directory.
func loadMockup(engine *preview.Engine, renderer ports.Renderer, fs ports.FileSystem, dir string, kind render.MockupKind) error {
	if dir == "" {
		return fmt.Errorf("mockup view requires --mockup-dir")
	}
	spec := chromakey.Lookup(kind)
	data, err := fs.ReadFile(filepath.Join(dir, spec.AssetFile))
	if err != nil {
		return fmt.Errorf("read mockup texture: %w", err)
	}
	img, err := renderer.DecodeImage(data)
	if err != nil {
		return fmt.Errorf("decode mockup texture: %w", err)
	}
	engine.RegisterMockup(kind, img)
	return nil
}
