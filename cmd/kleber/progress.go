package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

const (
	defaultTerminalWidth = 80
	progressInterval     = 100 * time.Millisecond
	minBarWidth          = 10
)

// progressBar renders upload progress on a single terminal line:
//
//	1.2 MiB / 4.0 MiB ( 30%) | 2.1 MiB/s [======          ] 0:00:01
type progressBar struct {
	w         io.Writer
	width     int
	start     time.Time
	now       func() time.Time
	sometimes rate.Sometimes
	prevLen   int
}

func newProgressBar(w io.Writer, width int) *progressBar {
	return &progressBar{
		w:         w,
		width:     width,
		start:     time.Now(),
		now:       time.Now,
		sometimes: rate.Sometimes{Interval: progressInterval},
	}
}

// Update is a clientcli.ProgressFunc. Redraws are throttled; the final
// call always draws and ends the line.
func (p *progressBar) Update(sent, total int64, done bool) {
	if done {
		p.draw(sent, total)
		_, _ = fmt.Fprintln(p.w)
		return
	}
	p.sometimes.Do(func() { p.draw(sent, total) })
}

func (p *progressBar) draw(sent, total int64) {
	line := p.line(sent, total)
	padded := line
	if len(line) < p.prevLen {
		padded += strings.Repeat(" ", p.prevLen-len(line))
	}
	_, _ = fmt.Fprintf(p.w, "\r%s", padded)
	p.prevLen = len(line)
}

func (p *progressBar) line(sent, total int64) string {
	elapsed := p.now().Sub(p.start)

	fraction := 1.0
	if total > 0 {
		fraction = min(float64(sent)/float64(total), 1)
	}

	speed := "--/s"
	if secs := elapsed.Seconds(); secs > 0 {
		speed = humanize.IBytes(uint64(float64(sent)/secs)) + "/s"
	}

	stats := fmt.Sprintf("%s / %s (%3.0f%%) | %s",
		humanize.IBytes(uint64(max(sent, 0))),
		humanize.IBytes(uint64(max(total, 0))),
		fraction*100,
		speed,
	)
	timer := formatElapsed(elapsed)

	barWidth := p.width - len(stats) - len(timer) - 4 // separators and brackets
	if barWidth < minBarWidth {
		return stats + " " + timer
	}
	filled := int(fraction * float64(barWidth))
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled) + "]"

	return stats + " " + bar + " " + timer
}

// formatElapsed formats d as H:MM:SS.
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// stderrWidth returns the width of stderr if it is a terminal.
func stderrWidth() (int, bool) {
	fd := int(os.Stderr.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = defaultTerminalWidth
	}
	return width, true
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
