// Package browser is the interactive card browser: a query box, facet
// toggles, a result list and a rendered preview of the selected card.
package browser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/daggerforge/internal/cache"
	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/content"
	"github.com/Paintersrp/daggerforge/internal/search"
	"github.com/Paintersrp/daggerforge/internal/state"
)

// Options wire the browser to the rest of the application.
type Options struct {
	Kind    card.Kind
	Library *content.Library

	// Defaults are applied to the filters when the browser opens.
	Defaults []search.FilterUpdate

	// Render turns a card into markdown. Required.
	Render func(c any) (string, error)
	// Insert places a card into the chosen target and returns a status
	// message. Nil disables insertion.
	Insert func(c any) (string, error)
	// Reload rebuilds the library after an ItemsChangedMsg.
	Reload func() (*content.Library, error)
	// Watch waits for the next change to the card sources.
	Watch func() tea.Cmd
	// Status summarises the library in the footer.
	Status func(*content.Library) string

	Cache *cache.PreviewCache
}

type insertedMsg struct {
	status string
	err    error
}

type Model struct {
	opts         Options
	kind         card.Kind
	library      *content.Library
	engine       *search.Engine[entry]
	facets       map[search.Facet][]string
	input        textinput.Model
	list         list.Model
	keys         *keyMap
	width        int
	height       int
	previewWidth int
	footer       string
	err          error
}

func New(opts Options) Model {
	kind := opts.Kind
	if kind == "" {
		kind = card.KindAdversary
	}

	keys := newKeyMap()

	ti := textinput.New()
	ti.Placeholder = "Search by name, type or description"
	ti.Prompt = "› "
	ti.CharLimit = 120

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedItemStyle
	delegate.Styles.SelectedDesc = selectedItemStyle

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding { return shortHelp(keys) }
	l.AdditionalFullHelpKeys = func() []key.Binding { return fullHelp(keys) }

	m := Model{
		opts:         opts,
		kind:         kind,
		library:      opts.Library,
		engine:       search.New[entry](),
		input:        ti,
		list:         l,
		keys:         keys,
		previewWidth: 60,
	}

	m.engine.SetItems(entriesFor(m.library, m.kind))
	m.engine.SetFilters(opts.Defaults...)
	m.refreshFacets()
	m.refreshResults()
	m.refreshFooter()

	return m
}

func (m Model) Init() tea.Cmd {
	if m.opts.Watch == nil {
		return nil
	}
	return m.opts.Watch()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case state.ItemsChangedMsg:
		m.reload()
		if m.opts.Watch != nil {
			cmds = append(cmds, m.opts.Watch())
		}
		return m, tea.Batch(cmds...)

	case state.WatcherErrMsg:
		m.err = msg.Err
		if m.opts.Watch != nil {
			cmds = append(cmds, m.opts.Watch())
		}
		return m, tea.Batch(cmds...)

	case insertedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		return m, m.list.NewStatusMessage(statusMessageStyle(msg.status))

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}

		if m.input.Focused() {
			if key.Matches(msg, m.keys.blurQuery) {
				m.input.Blur()
				return m, nil
			}

			var cmd tea.Cmd
			before := m.input.Value()
			m.input, cmd = m.input.Update(msg)
			if m.input.Value() != before {
				m.engine.SetFilters(search.WithQuery(m.input.Value()))
				m.refreshResults()
			}
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.focusQuery):
			cmd := m.input.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.cycleTier):
			m.cycleFacet(search.FacetTiers)
			return m, nil
		case key.Matches(msg, m.keys.cycleSource):
			m.cycleFacet(search.FacetSources)
			return m, nil
		case key.Matches(msg, m.keys.cycleType):
			m.cycleFacet(search.FacetTypes)
			return m, nil
		case key.Matches(msg, m.keys.clear):
			m.engine.ClearFilters()
			m.input.SetValue("")
			m.refreshResults()
			return m, nil
		case key.Matches(msg, m.keys.switchKind):
			m.switchKind()
			return m, nil
		case key.Matches(msg, m.keys.insert):
			return m, m.insertSelected()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	plural := m.kind.Plural()
	title := titleStyle.Render("DaggerForge · " + strings.ToUpper(plural[:1]) + plural[1:])

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.list.View(),
		previewStyle.Width(m.previewWidth).Render(m.preview()),
	)

	parts := []string{
		title,
		inputStyle.Render(m.input.View()),
		filterStyle.Render(m.filterSummary()),
		body,
	}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	if m.footer != "" {
		parts = append(parts, footerStyle.Render(m.footer))
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Filters exposes the current filter state.
func (m Model) Filters() search.Filters {
	return m.engine.Filters()
}

// Results returns the cards currently listed.
func (m Model) Results() []any {
	items := m.list.Items()
	out := make([]any, 0, len(items))
	for _, it := range items {
		if e, ok := it.(entry); ok {
			out = append(out, e.Value)
		}
	}
	return out
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	h, v := appStyle.GetFrameSize()
	inner := width - h
	m.previewWidth = max(inner/2, 20)
	listWidth := max(inner-m.previewWidth-2, 20)
	m.input.Width = max(inner-6, 10)
	m.list.SetSize(listWidth, max(height-v-7, 5))
}

func (m *Model) refreshResults() {
	results := m.engine.Search()
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = r
	}
	m.list.SetItems(items)
	if m.list.Index() >= len(items) {
		m.list.Select(max(len(items)-1, 0))
	}
}

func (m *Model) refreshFacets() {
	m.facets = map[search.Facet][]string{
		search.FacetTiers:   m.engine.AvailableOptions(search.FacetTiers),
		search.FacetSources: m.engine.AvailableOptions(search.FacetSources),
		search.FacetTypes:   m.engine.AvailableOptions(search.FacetTypes),
	}
}

func (m *Model) refreshFooter() {
	if m.opts.Status != nil {
		m.footer = m.opts.Status(m.library)
	}
}

// cycleFacet steps the single selected value of facet through the values
// present in the collection, wrapping back to "all".
func (m *Model) cycleFacet(facet search.Facet) {
	f := m.engine.Filters()
	options := m.facets[facet]

	switch facet {
	case search.FacetTiers:
		m.engine.SetFilters(search.WithTiers(cycle(f.Tiers, options)...))
	case search.FacetSources:
		m.engine.SetFilters(search.WithSources(cycle(f.Sources, options)...))
	case search.FacetTypes:
		m.engine.SetFilters(search.WithTypes(cycle(f.Types, options)...))
	}
	m.refreshResults()
}

func cycle(current, options []string) []string {
	if len(options) == 0 {
		return nil
	}
	if len(current) == 0 {
		return []string{options[0]}
	}
	i := slices.IndexFunc(options, func(o string) bool { return strings.EqualFold(o, current[0]) })
	if i < 0 || i == len(options)-1 {
		return nil
	}
	return []string{options[i+1]}
}

func (m *Model) switchKind() {
	if m.kind == card.KindAdversary {
		m.kind = card.KindEnvironment
	} else {
		m.kind = card.KindAdversary
	}

	query := m.engine.Filters().Query
	m.engine.SetItems(entriesFor(m.library, m.kind))
	m.engine.ClearFilters()
	m.engine.SetFilters(search.WithQuery(query))
	m.refreshFacets()
	m.refreshResults()
	m.list.Select(0)
}

// reload swaps in a fresh library while keeping the user's filters.
func (m *Model) reload() {
	if m.opts.Reload == nil {
		return
	}

	lib, err := m.opts.Reload()
	if lib == nil {
		m.err = err
		return
	}
	m.err = err

	filters := m.engine.Filters()
	m.library = lib
	m.engine.SetItems(entriesFor(lib, m.kind))
	m.engine.ReplaceFilters(filters)

	if m.opts.Cache != nil {
		m.opts.Cache.Purge()
	}
	m.refreshFacets()
	m.refreshResults()
	m.refreshFooter()
}

func (m Model) insertSelected() tea.Cmd {
	if m.opts.Insert == nil {
		return nil
	}
	e, ok := m.list.SelectedItem().(entry)
	if !ok {
		return nil
	}

	insert := m.opts.Insert
	return func() tea.Msg {
		status, err := insert(e.Value)
		return insertedMsg{status: status, err: err}
	}
}

func (m Model) filterSummary() string {
	f := m.engine.Filters()
	label := func(name string, values []string) string {
		if len(values) == 0 {
			return name + ": all"
		}
		return name + ": " + strings.Join(values, ", ")
	}
	count := fmt.Sprintf("%d results", len(m.list.Items()))
	if !f.IsEmpty() {
		count = fmt.Sprintf("%d of %d results", len(m.list.Items()), len(m.engine.Items()))
	}
	return fmt.Sprintf(
		"%s · %s · %s · %s",
		label("Tier", f.Tiers),
		label("Source", f.Sources),
		label("Type", f.Types),
		count,
	)
}
