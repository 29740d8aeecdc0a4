package ui

import (
	"fmt"
	"strings"
)

// renderLevelBar draws a level in [0,100] as a thin horizontal bar.
func renderLevelBar(level float64, width int) string {
	if width < 4 {
		width = 4
	}

	ratio := level / 100
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(width))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

func renderSensitivity(sens float64) string {
	return fmt.Sprintf("sens %.1f", sens)
}

func renderBassRange(lo, hi int, sens float64) string {
	return fmt.Sprintf("bass (%d Hz - %d Hz) x%.1f", lo, hi, sens)
}

func renderParticles(enabled bool) string {
	if enabled {
		return "particles on"
	}
	return "particles off"
}
