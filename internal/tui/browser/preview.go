package browser

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/daggerforge/internal/cache"
)

func (m Model) preview() string {
	e, ok := m.list.SelectedItem().(entry)
	if !ok {
		return "No card selected"
	}

	width := m.previewWidth
	render := func() (string, error) {
		md, err := m.opts.Render(e.Value)
		if err != nil {
			return "", err
		}
		return renderMarkdown(md, width)
	}

	var (
		out string
		err error
	)
	if m.opts.Cache != nil {
		key := cache.Key(string(e.Kind), e.Identity(), width)
		out, err = m.opts.Cache.GetOrRender(key, render)
	} else {
		out, err = render()
	}
	if err != nil {
		return errorStyle.Render("Error rendering card: " + err.Error())
	}
	return out
}

func renderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 60
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
