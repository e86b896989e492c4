package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/mrdk/planekit/engine"
)

var (
	styleDefault  = tcell.StyleDefault
	styleHeader   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleGood     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleTracking = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
)

func draw(screen tcell.Screen, s *engine.Session, jitter bool) {
	screen.Clear()
	row := 0

	put(screen, 0, row, styleHeader, "planesim — plane detection sandbox")
	row += 2

	mode := string(s.Config().Mode)
	if s.IsPaused() {
		put(screen, 0, row, styleWarn, fmt.Sprintf("mode: %s  [PAUSED]", mode))
	} else {
		put(screen, 0, row, styleDefault, fmt.Sprintf("mode: %s", mode))
	}
	row++

	if jitter {
		put(screen, 0, row, styleWarn, "sensor jitter: on")
	} else {
		put(screen, 0, row, styleDefault, "sensor jitter: off")
	}
	row += 2

	if s.HasDetectedFloor() {
		put(screen, 0, row, styleGood,
			fmt.Sprintf("floor: detected  observer height %.2fm", s.EstimatedObserverHeight()))
	} else {
		put(screen, 0, row, styleDefault, "floor: searching...")
	}
	row++

	if s.Tracking() {
		frac := float64(s.Dwell()) / float64(s.Config().DwellTime)
		if frac > 1 {
			frac = 1
		}
		put(screen, 0, row, styleTracking,
			fmt.Sprintf("candidate: dwell %s %3.0f%%", dwellBar(frac), frac*100))
	} else {
		put(screen, 0, row, styleDefault, "candidate: none")
	}
	row += 2

	put(screen, 0, row, styleHeader, fmt.Sprintf("hit planes (%d)", s.HitCount()))
	row++
	for i := 1; i <= s.HitCount(); i++ {
		e := s.HitPlane(i)
		if e == nil {
			continue
		}
		pos := e.Pose().Position
		put(screen, 0, row, styleDefault,
			fmt.Sprintf("  #%d %-14s at (%.2f, %.2f, %.2f)  verts=%d",
				e.Index(), e.Kind(), pos.X, pos.Y, pos.Z, len(e.Mesh().Vertices)))
		row++
	}
	row++

	put(screen, 0, row, styleDefault,
		"[f] floor  [space] place  [c] clear  [p] pause  [j] jitter  [n] dropout  [q] quit")

	screen.Show()
}

func dwellBar(frac float64) string {
	const width = 20
	filled := int(frac * width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func put(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
