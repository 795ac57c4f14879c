// Package main provides localization for the patternshow CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Preview and export repeating patterns on fabric and product mockups.": "リピートパターンをファブリックや製品モックアップでプレビュー・エクスポートします。",

		// Render command
		"Render a tiled pattern preview to an image file": "タイルパターンのプレビューを画像ファイルに描画",
		"Preview saved to %s":                             "プレビューを %s に保存しました",

		// Export command
		"Export the tiled pattern at arbitrary resolution": "タイルパターンを任意の解像度でエクスポート",
		"Export saved to %s (%d bytes)":                    "エクスポートを %s に保存しました (%d バイト)",
		"Interrupted, shutting down...":                    "中断されました。シャットダウン中...",

		// Mockups command
		"List the registered product mockups": "登録済みの製品モックアップを一覧表示",

		// Version command
		"Show version information": "バージョン情報を表示",
		"patternshow version %s":   "patternshow バージョン %s",
	})
}
