package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Defacto2/extr"
	"github.com/charmbracelet/lipgloss"
)

var (
	header    = lipgloss.NewStyle().Bold(true)
	ext       = lipgloss.NewStyle().Width(10)
	available = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	missing   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Faint(true)
)

// health writes a table of the formats and the state of their programs.
// The available programs are listed first, both groups keep the order of preference.
func health(w io.Writer, formats []extr.Format) error {
	var b strings.Builder
	fmt.Fprintln(&b, header.Render(ext.Render("FORMAT")+"PROGRAMS"))
	usable := 0
	for _, f := range formats {
		if f.Usable() {
			usable++
		}
		fmt.Fprintln(&b, ext.Render(f.Ext)+strings.Join(tools(f), "  "))
	}
	fmt.Fprintf(&b, "\n%d of %d formats can be extracted\n", usable, len(formats))
	_, err := io.WriteString(w, b.String())
	return err
}

func tools(f extr.Format) []string {
	s := make([]string, 0, len(f.Tools))
	for _, t := range f.Tools {
		if t.Available {
			s = append(s, available.Render("✓ "+t.Name))
		}
	}
	for _, t := range f.Tools {
		if !t.Available {
			s = append(s, missing.Render("✘ "+t.Name))
		}
	}
	return s
}
