package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the sceneflow banner to w, with the version underneath.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Dusk gradient: the overlay fading from black to clear.
	lines := []struct{ text, color string }{
		{"  ___  ___ ___ _ __   ___  / _| | _____      __", "#334155"},
		{" / __|/ __/ _ \\ '_ \\ / _ \\| |_| |/ _ \\ \\ /\\ / /", "#475569"},
		{" \\__ \\ (_|  __/ | | |  __/|  _| | (_) \\ V  V / ", "#64748b"},
		{" |___/\\___\\___|_| |_|\\___||_| |_|\\___/ \\_/\\_/  ", "#94a3b8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
