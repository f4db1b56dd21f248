package ui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatSeconds renders CPU seconds as mm:ss.cc, or XhYYmZZs past an hour.
func FormatSeconds(sec float64) string {
	if sec < 0 || math.IsNaN(sec) {
		sec = 0
	}
	totalCS := uint64(math.Round(sec * 100))

	h := totalCS / 360000
	m := (totalCS % 360000) / 6000
	s := (totalCS % 6000) / 100
	cs := totalCS % 100

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d.%02d", m, s, cs)
}

func FormatUptime(sec float64) string {
	total := int64(sec)
	d := total / 86400
	h := (total % 86400) / 3600
	m := (total % 3600) / 60

	if d > 0 {
		return fmt.Sprintf("%dd %02dh %02dm", d, h, m)
	}
	return fmt.Sprintf("%02dh %02dm", h, m)
}

func FormatBytes(b uint64) string {
	return humanize.IBytes(b)
}

// FormatReward keeps two decimals and groups thousands, so memory sized
// penalties stay readable.
func FormatReward(r float64) string {
	if r == 0 {
		return "0.00"
	}
	if math.Abs(r) < 1000 {
		return strconv.FormatFloat(r, 'f', 2, 64)
	}
	return humanize.CommafWithDigits(r, 2)
}
