// Package main provides localization for the placeholder CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Size":              "サイズ",
		"Style":             "スタイル",
		"Video and Quality": "動画と品質",
		"Preview":           "プレビュー",
		"Output":            "出力先",
		"Debug":             "デバッグ",
		"Logging":           "ログ",

		// Root command
		"Generate placeholder images and videos": "プレースホルダー画像と動画を生成",
		"placeholder renders solid-color PNG images and timed WebM/MP4 videos labeled with their dimensions, for mockups and layout testing.": "placeholderはサイズを表示した単色のPNG画像と時間表示付きのWebM/MP4動画を生成します。モックアップやレイアウト検証に使えます。",
		"Error: %v": "エラー: %v",

		// Commands
		"Render a placeholder PNG image":                    "プレースホルダーPNG画像を生成",
		"Record a placeholder video":                        "プレースホルダー動画を記録",
		"Render a scaled-down preview or a data URL":        "縮小プレビューまたはデータURLを生成",
		"List size presets":                                 "サイズプリセットの一覧を表示",
		"Report the container and codec of a rendered file": "生成ファイルのコンテナとコーデックを表示",
		"Show version and encoder availability":             "バージョンとエンコーダーの利用可否を表示",
		"placeholder version %s":                            "placeholder バージョン %s",
		"ffmpeg: %s (%s)":                                   "ffmpeg: %s (%s)",
		"ffmpeg: not found":                                 "ffmpeg: 見つかりません",
		"Codecs:":                                           "コーデック:",
		"unavailable":                                       "利用不可",
		"Name":                                              "名前",
		"Slug":                                              "スラッグ",
		"Container":                                         "コンテナ",

		// Global flags
		"YAML configuration file; flags override its values": "YAML設定ファイル（フラグが優先）",
		"Log level (debug, info, warn, error)":               "ログレベル（debug, info, warn, error）",
		"Log format (text, json)":                            "ログ形式（text, json）",
		"Suppress all log output":                            "すべてのログ出力を抑制",

		// Asset flags
		"Width in pixels (1-10000, default: 1280)":                           "幅（ピクセル、1-10000、デフォルト: 1280）",
		"Height in pixels (1-10000, default: 960)":                           "高さ（ピクセル、1-10000、デフォルト: 960）",
		"Size preset, overrides width and height (see: placeholder presets)": "サイズプリセット（幅と高さを上書き、一覧: placeholder presets）",
		"Background color (hex, default: #4A90E2)":                           "背景色（16進数、デフォルト: #4A90E2）",
		"Text color (hex, default: #FFFFFF)":                                 "文字色（16進数、デフォルト: #FFFFFF）",
		"Custom label (default: dimensions)":                                 "表示テキスト（デフォルト: サイズ）",
		"TTF/OTF font file (default: bundled Go fonts)":                      "TTF/OTFフォントファイル（デフォルト: 同梱のGoフォント）",

		// Video flags
		"Duration in seconds (0.1-60, default: 5)":                               "長さ（秒、0.1-60、デフォルト: 5）",
		"Frame rate (1-60, default: 30)":                                         "フレームレート（1-60、デフォルト: 30）",
		"Codec preference, repeatable (vp9, vp8, h264, av1, mjpeg)":              "コーデックの優先順位、複数指定可（vp9, vp8, h264, av1, mjpeg）",
		"Target bitrate in kbps (default: 2500)":                                 "目標ビットレート（kbps、デフォルト: 2500）",
		"JPEG quality for MJPEG (1-100)":                                         "MJPEGのJPEG品質（1-100）",
		"Chunk interval in milliseconds (default: 100)":                          "チャンク間隔（ミリ秒、デフォルト: 100）",
		"Pace frames in real time; --realtime=false renders as fast as possible": "フレームを実時間で描画（--realtime=false で最速描画）",
		"Path to the ffmpeg binary":                                              "ffmpegバイナリのパス",

		// Preview flags
		"Longest side of the preview in pixels":                               "プレビューの長辺（ピクセル）",
		"Print the full-size image as a data URL instead of saving a preview": "プレビューを保存せず原寸画像をデータURLとして出力",

		// Output flags
		"Output file (default: placeholder-{w}x{h}.{ext})":           "出力ファイル（デフォルト: placeholder-{w}x{h}.{ext}）",
		"Directory for relative output paths":                        "相対出力パスの基準ディレクトリ",
		"Write the asset to standard output instead of a file":       "ファイルではなく標準出力に書き出す",
		"Write a Markdown render summary to this path (- prints it)": "Markdown形式の生成サマリーを書き出すパス（- で標準出力）",
		"Save intermediate frames and chunks":                        "中間フレームとチャンクを保存",
		"Directory for debug output (default: ./debug)":              "デバッグ出力ディレクトリ（デフォルト: ./debug）",

		// Summary labels
		"Render Summary": "生成サマリー",
		"Image":          "画像",
		"Video":          "動画",
		"Type":           "種類",
		"Dimensions":     "サイズ",
		"Label":          "ラベル",
		"Background":     "背景色",
		"Text Color":     "文字色",
		"Duration":       "長さ",
		"Frame Rate":     "フレームレート",
		"Frames":         "フレーム数",
		"(stdout)":       "（標準出力）",
		"File":           "ファイル",
		"MIME Type":      "MIMEタイプ",
		"File Size":      "ファイルサイズ",
		"Debug Output":   "デバッグ出力",
		"Encoding":       "エンコード",
		"Codec":          "コーデック",
		"Backend":        "バックエンド",
		"Preference":     "優先順位",
		"Fallback Used":  "フォールバック",
		"Bitrate":        "ビットレート",
		"Yes":            "はい",
		"No":             "いいえ",
		"Render ID":      "生成ID",
		"Elapsed":        "所要時間",
		"Generated by":   "生成元",
		"Item":           "項目",
		"Value":          "値",
	})
}
