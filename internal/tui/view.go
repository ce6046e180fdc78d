package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ponydex/internal/catalog"
	"ponydex/internal/guesser"
)

func (m model) View() string {
	var sections []string
	sections = append(sections, m.renderHeader(), m.viewport.View())
	if m.router.Current() != m.profile {
		sections = append(sections, m.textInput.View())
	}

	status := m.status
	if m.err != nil {
		status = errorStyle.Render("Error: " + m.err.Error())
	}
	sections = append(sections, status, helpStyle.Render(m.help()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) renderHeader() string {
	switch m.router.Current() {
	case m.profile:
		return titleStyle.Render("Ponydex · Profile")
	case m.guesser:
		guessed, total := m.guesser.Game().Progress()
		return titleStyle.Render(fmt.Sprintf("Ponydex · Guess the pony  %d/%d  %s",
			guessed, total, guesser.FormatElapsed(m.guesser.Game().Elapsed())))
	}

	list := m.list()
	title := "Search"
	if m.owned != nil && list == m.owned.ListPage {
		title = "Inventory"
	}
	var tabs []string
	for _, key := range list.Categories() {
		style := tabStyle
		if key == list.Category() {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(m.catalog.CategoryName(key)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Ponydex · "+title),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

func (m model) help() string {
	switch m.router.Current() {
	case m.profile:
		if m.inventory != nil {
			return "esc back · ctrl+o toggle owned · ctrl+c quit"
		}
		return "esc back · ctrl+c quit"
	case m.guesser:
		return "enter guess · ctrl+k skip · esc leave"
	}
	help := "tab category · enter open · ctrl+s sort · ctrl+r reverse · ctrl+g guess"
	if m.owned != nil {
		help += " · ctrl+n inventory · ctrl+f search"
	}
	return help + " · esc quit"
}

// syncViewport renders the body of the current page into the viewport and
// keeps the list cursor visible.
func (m *model) syncViewport() {
	switch m.router.Current() {
	case m.profile:
		m.viewport.SetContent(m.renderProfile())
		m.viewport.GotoTop()
	case m.guesser:
		m.viewport.SetContent(m.renderGuesser())
		m.viewport.GotoTop()
	default:
		m.viewport.SetContent(m.renderList())
		if m.cursor < m.viewport.YOffset {
			m.viewport.SetYOffset(m.cursor)
		} else if m.viewport.Height > 0 && m.cursor >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
		}
	}
}

func (m *model) renderList() string {
	list := m.list()
	if list == nil {
		return ""
	}
	results := list.Results()
	if len(results) == 0 {
		return helpStyle.Render("Nothing to show.")
	}

	lines := make([]string, 0, len(results))
	for i, id := range results {
		e := m.catalog.Get(id, "")
		mark := "  "
		if m.inventory != nil && m.inventory.IsOwned(id) {
			mark = ownedStyle.Render("★ ")
		}
		line := fmt.Sprintf("%s%4d  %s", mark, e.Index, m.catalog.DisplayName(e))
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderProfile() string {
	if m.profile.NotFound() {
		return errorStyle.Render("No such entity.")
	}
	e := m.profile.Entity()
	lang := m.catalog.Language()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.catalog.DisplayName(e)) + "\n\n")
	field := func(label, value string) {
		if value != "" {
			b.WriteString(labelStyle.Render(label) + value + "\n")
		}
	}
	field("Category", m.catalog.CategoryName(e.Category))
	field("Index", fmt.Sprint(e.Index))
	if alts := e.AltNamesFor(lang); len(alts) > 0 {
		field("Also", strings.Join(alts, ", "))
	}
	if e.Location != "" {
		field("Location", m.catalog.LocationName(e.Location))
	}

	if pony, ok := e.Pony(); ok {
		if pony.Pro != "" {
			field("Pro", m.questLabel(pony.Pro))
		}
		field("Max level", yesNo(pony.MaxLevel))
	}

	var related []string
	for _, r := range m.profile.Related() {
		related = append(related, m.catalog.DisplayName(r))
	}
	if len(related) > 0 {
		label := "Residents"
		if e.Category == catalog.CategoryPonies {
			label = "House"
		}
		field(label, strings.Join(related, ", "))
	}

	if rec, ok := m.profile.Record(); ok && rec.Owned {
		owned := "owned"
		if rec.Leveled {
			owned = fmt.Sprintf("owned, %d stars", rec.Level)
		}
		field("Inventory", ownedStyle.Render(owned))
	}
	field("Note", m.profile.Note())

	if desc := e.DescriptionFor(lang); desc != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(max(m.width-2, 20)).Render(desc) + "\n")
	}
	return b.String()
}

func (m *model) renderGuesser() string {
	game := m.guesser.Game()
	if game.Done() {
		return titleStyle.Render("Every pony guessed!")
	}
	hint := game.Hint()
	if hint == "" {
		hint = "No description for this one."
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(max(m.width-2, 20)).Render(hint) + "\n\n")
	if guessed := game.Guessed(); len(guessed) > 0 {
		var names []string
		for _, id := range guessed {
			if e := m.catalog.Get(id, ""); e != nil {
				names = append(names, m.catalog.DisplayName(e))
			}
		}
		b.WriteString(helpStyle.Render("Guessed: " + strings.Join(names, ", ")))
	}
	return b.String()
}

func (m *model) questLabel(pro string) string {
	if name := m.catalog.QuestName(pro); name != "" {
		return name
	}
	return pro
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
