package tui

import (
	"fmt"
	"strings"

	"arffview/internal/tui/styles"
)

// viewChrome is the number of lines taken by header, banner and footer
// around the scrollable results window.
const viewChrome = 8

// View renders the full screen for the current phase.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render("arffview · dataset split viewer"))
	b.WriteString("\n")

	if m.alert != "" {
		b.WriteString(m.viewAlert())
		b.WriteString("\n")
		b.WriteString(styles.HelpBar.Render(styles.HelpKey.Render("[enter]") + " dismiss"))
		return b.String()
	}

	switch m.phase {
	case phasePicking:
		b.WriteString(m.viewPicking())
	case phaseReady:
		b.WriteString(m.viewReady())
	case phaseUploading:
		b.WriteString(m.viewUploading())
	case phaseResults:
		b.WriteString(m.viewResults())
	}

	b.WriteString("\n")
	b.WriteString(m.viewHelp())
	return b.String()
}

// viewAlert renders the blocking alert overlay.
func (m Model) viewAlert() string {
	body := styles.AlertTitle.Render("Error") + "\n\n" + m.alert
	return styles.AlertBox.Render(body)
}

func (m Model) viewPicking() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Select a dataset"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("Only %s files are accepted", m.cfg.Upload.Extension)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	if m.watcher != nil {
		b.WriteString("\n\n")
		b.WriteString(styles.Muted.Render(fmt.Sprintf("…or drop a %s file into %s", m.cfg.Upload.Extension, m.watcher.Dir())))
	}
	return styles.ContentBox.Render(b.String())
}

func (m Model) viewReady() string {
	var b strings.Builder
	b.WriteString(m.viewFileBanner())
	b.WriteString("\n\n")
	b.WriteString("Ready to upload to " + styles.Secondary.Render(m.cfg.Service.Endpoint))
	return styles.ContentBox.Render(b.String())
}

func (m Model) viewUploading() string {
	var b strings.Builder
	b.WriteString(m.viewFileBanner())
	b.WriteString("\n\n")
	b.WriteString(m.spin.View())
	if m.total > 0 && m.sent < m.total {
		b.WriteString(fmt.Sprintf("Uploading… %s / %s", formatBytes(m.sent), formatBytes(m.total)))
	} else {
		b.WriteString("Processing dataset… this can take a while for large files")
	}
	return styles.ContentBox.Render(b.String())
}

func (m Model) viewResults() string {
	var b strings.Builder
	b.WriteString(m.viewFileBanner())
	b.WriteString("\n")

	lines := strings.Split(strings.TrimRight(m.results, "\n"), "\n")
	window := m.resultWindow()
	top := m.scroll
	if top > len(lines) {
		top = len(lines)
	}
	bottom := top + window
	if bottom > len(lines) {
		bottom = len(lines)
	}

	b.WriteString(strings.Join(lines[top:bottom], "\n"))

	if len(lines) > window {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(fmt.Sprintf("… %d/%d", bottom, len(lines))))
	}
	return b.String()
}

func (m Model) viewFileBanner() string {
	if m.selected == nil {
		return ""
	}
	return styles.FileBanner.Render(fmt.Sprintf("%s %s",
		styles.Secondary.Render(m.selected.Name),
		styles.Muted.Render("("+formatBytes(m.selected.Size)+")")))
}

func (m Model) viewHelp() string {
	var hints []string
	switch m.phase {
	case phasePicking:
		hints = []string{
			styles.HelpKey.Render("[enter]") + " select",
			styles.HelpKey.Render("[esc]") + " quit",
		}
	case phaseReady:
		hints = []string{
			styles.HelpKey.Render("[enter]") + " upload",
			styles.HelpKey.Render("[n]") + " new file",
			styles.HelpKey.Render("[q]") + " quit",
		}
	case phaseUploading:
		hints = []string{styles.Muted.Render("waiting for the processing service…")}
	case phaseResults:
		hints = []string{
			styles.HelpKey.Render("[↑/↓]") + " scroll",
			styles.HelpKey.Render("[s]") + " resubmit",
			styles.HelpKey.Render("[n]") + " new file",
			styles.HelpKey.Render("[q]") + " quit",
		}
	}
	return styles.HelpBar.Render(strings.Join(hints, "  "))
}

// resultWindow returns how many result lines fit on screen.
func (m Model) resultWindow() int {
	window := m.height - viewChrome
	if window < 5 {
		window = 5
	}
	return window
}

// maxScroll is the furthest the results window may scroll down.
func (m Model) maxScroll() int {
	lines := strings.Count(m.results, "\n") + 1
	max := lines - m.resultWindow()
	if max < 0 {
		return 0
	}
	return max
}

// formatBytes renders a byte count with a human unit.
func formatBytes(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/1024/1024)
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
