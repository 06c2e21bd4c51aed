package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Rendering %dx%d image":                 "%dx%d の画像を描画中",
		"Recording %dx%d video: %ss at %d fps":  "%dx%d の動画を録画中: %s秒, %d fps",
		"Output saved to %s":                    "出力を %s に保存しました",
		"Render %s completed in %d ms":          "レンダリング %s が %d ms で完了しました",
		"Render %s failed: %v":                  "レンダリング %s に失敗しました: %v",
		"Interrupted, shutting down...":         "中断されました。シャットダウン中...",
		"Debug output in %s":                    "デバッグ出力: %s",
		"Another render is already in progress": "別のレンダリングが進行中です",
		"Encoded with %s via %s (fallback: %v)": "%s (%s) でエンコードしました (フォールバック: %v)",

		// Still stage
		"Encoded %dx%d still: %d bytes":  "静止画 %dx%d をエンコード: %d バイト",
		"Scaling preview %dx%d -> %dx%d": "プレビューを縮小 %dx%d -> %dx%d",

		// Record stage
		"Recording %d frames at %d fps as %s (%s)":  "%d フレームを %d fps で %s (%s) として録画中",
		"Recorded %d frames in %d chunks: %d bytes": "%d フレームを %d チャンクで録画: %d バイト",
		"Recording %s after %d of %d frames: %v":    "%d/%d フレーム後に録画が %s: %v",

		// Encoder
		"Found ffmpeg at %s with %d encoders": "ffmpeg を %s で検出 (エンコーダ %d 個)",
		"Started %s: %s":                      "%s を開始: %s",
		"ffmpeg finished after %d frames":     "ffmpeg が %d フレーム後に終了しました",
		"Codec %s unavailable via %s: %v":     "コーデック %s は %s で利用できません: %v",

		// Warnings
		"%s encoder not available, falling back to %s": "%s エンコーダが利用できないため %s にフォールバックします",
		"Failed to save debug still: %v":               "デバッグ用静止画の保存に失敗しました: %v",
		"Failed to save debug frame %d: %v":            "デバッグ用フレーム %d の保存に失敗しました: %v",
		"Failed to save debug chunk %d: %v":            "デバッグ用チャンク %d の保存に失敗しました: %v",
		"Failed to save session report: %v":            "セッションレポートの保存に失敗しました: %v",
		"Failed to remove temporary file %s: %v":       "一時ファイル %s の削除に失敗しました: %v",
		"Failed to write summary: %v":                  "サマリーの書き込みに失敗しました: %v",

		// Errors
		"Failed to render: %s":       "レンダリングに失敗しました: %s",
		"Failed to write output: %s": "出力の書き込みに失敗しました: %s",
	})
}
