// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay draws overlayLines on top of view with the overlay's
// top-left corner at (anchorX, anchorY). Lines of the overlay that fall
// outside the view are dropped. Truncation is ANSI-aware, so styling on
// either side of the overlay survives.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	anchorX = max(anchorX, 0)

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		lineIndex := anchorY + index
		if lineIndex < 0 || lineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[lineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		var builder strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			builder.WriteString(prefix)
			// Short lines are padded so the overlay lands at anchorX.
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				builder.WriteString(strings.Repeat(" ", gap))
			}
		}
		builder.WriteString("\x1b[0m")
		builder.WriteString(overlayLine)
		builder.WriteString("\x1b[0m")

		if suffixStart := anchorX + overlayWidth; suffixStart < viewLineWidth {
			builder.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[lineIndex] = builder.String()
	}

	return strings.Join(viewLines, "\n")
}

// Center returns the anchor that centers a block of the given size on a
// screen, clamped to the top-left corner.
func Center(screenWidth, screenHeight, blockWidth, blockHeight int) (int, int) {
	return max((screenWidth-blockWidth)/2, 0), max((screenHeight-blockHeight)/2, 0)
}
