package browser

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/daggerforge/internal/cache"
	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/content"
	"github.com/Paintersrp/daggerforge/internal/search"
	"github.com/Paintersrp/daggerforge/internal/state"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func coreLibrary(t *testing.T) *content.Library {
	t.Helper()
	lib, err := content.NewLibrary(nil, nil)
	require.NoError(t, err)
	return lib
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Library == nil {
		opts.Library = coreLibrary(t)
	}
	if opts.Render == nil {
		opts.Render = func(c any) (string, error) { return "# card", nil }
	}
	return New(opts)
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func names(m Model) []string {
	var out []string
	for _, c := range m.Results() {
		switch v := c.(type) {
		case *card.Adversary:
			out = append(out, v.Name)
		case *card.Environment:
			out = append(out, v.Name)
		}
	}
	return out
}

func TestNewListsCollectionInOrder(t *testing.T) {
	m := newTestModel(t, Options{})

	got := names(m)
	require.Len(t, got, 12)
	assert.Equal(t, "Acid Burrower", got[0])
	assert.Equal(t, "Ancient Wyrm", got[len(got)-1])
	assert.Equal(t, []string{"1", "2", "3", "4"}, m.facets[search.FacetTiers])
}

func TestNewAppliesDefaults(t *testing.T) {
	m := newTestModel(t, Options{Defaults: []search.FilterUpdate{search.WithTiers("2")}})

	assert.Equal(t, []string{"Ice Golem", "Courtier", "Archer Squadron"}, names(m))
}

func TestQueryRanksResults(t *testing.T) {
	m := newTestModel(t, Options{})

	m = send(m, runes("/"))
	require.True(t, m.input.Focused())

	for _, r := range "golem" {
		m = send(m, runes(string(r)))
	}

	assert.Equal(t, "golem", m.Filters().Query)
	got := names(m)
	require.NotEmpty(t, got)
	assert.Equal(t, "Ice Golem", got[0])
}

func TestFocusedInputSwallowsFacetKeys(t *testing.T) {
	m := newTestModel(t, Options{})

	m = send(m, runes("/"), runes("t"))

	assert.Equal(t, "t", m.Filters().Query)
	assert.Empty(t, m.Filters().Tiers)

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc}, runes("t"))
	assert.False(t, m.input.Focused())
	assert.Equal(t, []string{"1"}, m.Filters().Tiers)
}

func TestCycleTierWrapsToAll(t *testing.T) {
	m := newTestModel(t, Options{})

	m = send(m, runes("t"))
	assert.Equal(t, []string{"1"}, m.Filters().Tiers)
	assert.Len(t, m.Results(), 6)

	m = send(m, runes("t"), runes("t"), runes("t"))
	assert.Equal(t, []string{"4"}, m.Filters().Tiers)
	assert.Equal(t, []string{"Ancient Wyrm"}, names(m))

	m = send(m, runes("t"))
	assert.Empty(t, m.Filters().Tiers)
	assert.Len(t, m.Results(), 12)
}

func TestCycleTypeAndSource(t *testing.T) {
	m := newTestModel(t, Options{})

	m = send(m, runes("y"))
	assert.Equal(t, []string{"Bruiser"}, m.Filters().Types)
	assert.Equal(t, []string{"Bear", "Ice Golem"}, names(m))

	m = send(m, runes("s"))
	assert.Equal(t, []string{card.SourceCore}, m.Filters().Sources)
	assert.Len(t, m.Results(), 2)

	m = send(m, runes("c"))
	assert.True(t, m.Filters().IsEmpty())
	assert.Len(t, m.Results(), 12)
}

func TestCycle(t *testing.T) {
	opts := []string{"a", "b"}

	assert.Equal(t, []string{"a"}, cycle(nil, opts))
	assert.Equal(t, []string{"b"}, cycle([]string{"a"}, opts))
	assert.Nil(t, cycle([]string{"b"}, opts))
	assert.Nil(t, cycle([]string{"gone"}, opts))
	assert.Nil(t, cycle(nil, nil))

	sources := []string{"bestiary", "core", "custom"}
	assert.Equal(t, []string{"custom"}, cycle([]string{"Core"}, sources))
}

func TestSwitchKindKeepsQuery(t *testing.T) {
	m := newTestModel(t, Options{})

	m = send(m, runes("t"))
	m.engine.SetFilters(search.WithQuery("river"))
	m = send(m, runes("K"))

	assert.Equal(t, card.KindEnvironment, m.kind)
	assert.Equal(t, "river", m.Filters().Query)
	assert.Empty(t, m.Filters().Tiers)
	assert.Equal(t, "Raging River", names(m)[0])

	m = send(m, runes("K"))
	assert.Equal(t, card.KindAdversary, m.kind)
}

func TestItemsChangedReloadsAndKeepsFilters(t *testing.T) {
	custom := &card.Adversary{Name: "Mud Hound", Tier: 1, Type: "Bruiser", Source: card.SourceCustom}
	watched := 0

	m := newTestModel(t, Options{
		Reload: func() (*content.Library, error) {
			lib, err := content.NewLibrary(nil, nil)
			if err != nil {
				return nil, err
			}
			lib.Adversaries = append(lib.Adversaries, custom)
			return lib, nil
		},
		Watch: func() tea.Cmd {
			watched++
			return nil
		},
	})

	m = send(m, runes("t"), runes("y"))
	require.Equal(t, []string{"Bear"}, names(m))

	m = send(m, state.ItemsChangedMsg{Path: "data.json"})

	assert.Equal(t, []string{"1"}, m.Filters().Tiers)
	assert.Equal(t, []string{"Bruiser"}, m.Filters().Types)
	assert.Equal(t, []string{"Bear", "Mud Hound"}, names(m))
	assert.Contains(t, m.facets[search.FacetSources], card.SourceCustom)
	assert.Equal(t, 1, watched)
}

func TestReloadFailureKeepsLibrary(t *testing.T) {
	m := newTestModel(t, Options{
		Reload: func() (*content.Library, error) { return nil, errors.New("broken") },
	})

	m = send(m, state.ItemsChangedMsg{})

	assert.EqualError(t, m.err, "broken")
	assert.Len(t, m.Results(), 12)
}

func TestEnterInsertsSelectedCard(t *testing.T) {
	var inserted any
	m := newTestModel(t, Options{
		Insert: func(c any) (string, error) {
			inserted = c
			return "inserted", nil
		},
	})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, insertedMsg{}, msg)
	assert.Equal(t, "inserted", msg.(insertedMsg).status)

	a, ok := inserted.(*card.Adversary)
	require.True(t, ok)
	assert.Equal(t, "Acid Burrower", a.Name)
}

func TestInsertErrorIsShown(t *testing.T) {
	m := newTestModel(t, Options{})

	m = send(m, insertedMsg{err: errors.New("no target")})

	assert.EqualError(t, m.err, "no target")
}

func TestViewShowsFilterSummary(t *testing.T) {
	m := newTestModel(t, Options{
		Status: func(lib *content.Library) string { return state.StatusLine("main", lib) },
	})
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Adversaries")
	assert.Contains(t, view, "Tier: all")
	assert.Contains(t, view, "12 adversaries")
	assert.Contains(t, view, "12 results")

	m = send(m, runes("t"))
	assert.Contains(t, m.filterSummary(), "Tier: 1")
	assert.Contains(t, m.filterSummary(), "of 12 results")
}

func TestPreviewDistinguishesSameNamedCards(t *testing.T) {
	first := &card.Adversary{ID: "first", Name: "Bear", Tier: 1, Type: "Bruiser", Source: card.SourceCustom, Desc: "FIRSTBEAR"}
	second := &card.Adversary{ID: "second", Name: "Bear", Tier: 1, Type: "Bruiser", Source: card.SourceCustom, Desc: "SECONDBEAR"}

	lib := coreLibrary(t)
	lib.Adversaries = append(lib.Adversaries, first, second)

	previews, err := cache.New(16)
	require.NoError(t, err)

	m := newTestModel(t, Options{
		Library: lib,
		Cache:   previews,
		Render: func(c any) (string, error) {
			return c.(*card.Adversary).Desc, nil
		},
	})

	selectCard := func(want *card.Adversary) {
		for i, item := range m.list.Items() {
			if e, ok := item.(entry); ok && e.Value == want {
				m.list.Select(i)
				return
			}
		}
		t.Fatalf("card %q not listed", want.ID)
	}

	selectCard(first)
	assert.Contains(t, m.preview(), "FIRSTBEAR")

	selectCard(second)
	got := m.preview()
	assert.Contains(t, got, "SECONDBEAR")
	assert.NotContains(t, got, "FIRSTBEAR")
	assert.Equal(t, 2, previews.Len())
}
