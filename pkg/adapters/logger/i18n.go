package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Engine messages (info)
		"Pattern loaded: %dx%d": "パターンを読み込みました: %dx%d",

		// Compositor messages (debug)
		"Placing %d tiles (%dx%d) at tile size %.2f":       "%d 枚のタイルを配置中 (%dx%d, タイルサイズ %.2f)",
		"Exported %dx%d %s (%d bytes)":                     "%dx%d %s をエクスポートしました (%d バイト)",
		"Composited %s mockup at %.0fx%.0f, rotation %.1f": "%s モックアップを合成しました (%.0fx%.0f, 回転 %.1f度)",

		// Warnings
		"Export requested with no pattern loaded": "パターン未読み込みのままエクスポートが要求されました",
	})
}
