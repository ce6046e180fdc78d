// Package tui is the terminal front end: a search list, an inventory list,
// entity profiles and the guessing game, all driven by a page router.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"ponydex/internal/catalog"
	"ponydex/internal/guesser"
	"ponydex/internal/inventory"
	"ponydex/internal/page"
	"ponydex/internal/search"
)

const (
	routeSearch    = "search"
	routeInventory = "inventory"
	routeGuesser   = "guesser"
)

type model struct {
	ctx       context.Context
	catalog   *catalog.Catalog
	inventory *inventory.Manager

	router    *page.Router
	search    *page.ListPage
	owned     *page.InventoryPage
	profile   *page.ProfilePage
	guesser   *page.GuesserPage
	returnTo  []string
	textInput textinput.Model
	viewport  viewport.Model
	cursor    int
	status    string
	err       error
	width     int
	height    int
}

// NewModel builds the model and navigates to start. inv may be nil, in
// which case the inventory screen and ownership toggles are unavailable.
func NewModel(ctx context.Context, cat *catalog.Catalog, inv *inventory.Manager, start []string, opts ...guesser.Option) (model, error) {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	var searchInv search.Inventory
	if inv != nil {
		searchInv = inv
	}
	m := model{
		ctx:       ctx,
		catalog:   cat,
		inventory: inv,
		router:    &page.Router{},
		search:    page.NewSearchPage(cat, search.NewEngine(cat, searchInv)),
		profile:   page.NewProfilePage(cat, inv),
		guesser:   page.NewGuesserPage(cat, opts...),
		textInput: ti,
		viewport:  viewport.New(80, 20),
	}

	m.router.Handle(page.Prefix(routeSearch), m.search)
	if inv != nil {
		m.owned = page.NewInventoryPage(cat, inv)
		m.router.Handle(page.Prefix(routeInventory), m.owned)
	}
	m.router.Handle(page.Prefix(routeGuesser), m.guesser)
	var categories []string
	for _, c := range cat.Categories() {
		categories = append(categories, c.Key)
	}
	m.router.Handle(page.Prefix(categories...), m.profile)

	if len(start) == 0 {
		start = []string{routeSearch, catalog.CategoryPonies}
	}
	if err := m.navigate(start); err != nil {
		return model{}, err
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-7, 3)
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			switch m.router.Current() {
			case m.profile:
				back := m.returnTo
				if len(back) == 0 {
					back = []string{routeSearch, m.currentCategory()}
				}
				m.setErr(m.navigate(back))
			case m.guesser:
				m.setErr(m.navigate([]string{routeSearch, catalog.CategoryPonies}))
			default:
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyTab:
			if list := m.list(); list != nil {
				m.setErr(m.navigate(list.NextCategory(m.router.Path()[0])))
			}
			return m, nil
		case tea.KeyUp:
			m.moveCursor(-1)
			return m, nil
		case tea.KeyDown:
			m.moveCursor(1)
			return m, nil
		case tea.KeyPgUp:
			m.moveCursor(-m.viewport.Height)
			return m, nil
		case tea.KeyPgDown:
			m.moveCursor(m.viewport.Height)
			return m, nil
		case tea.KeyEnter:
			m.enter()
			return m, nil
		case tea.KeyCtrlS:
			m.toggleSort(false)
			return m, nil
		case tea.KeyCtrlR:
			m.toggleSort(true)
			return m, nil
		case tea.KeyCtrlO:
			m.toggleOwned()
			return m, nil
		case tea.KeyCtrlF:
			m.setErr(m.navigate([]string{routeSearch, m.currentCategory()}))
			return m, nil
		case tea.KeyCtrlN:
			if m.owned != nil {
				m.setErr(m.navigate([]string{routeInventory, m.currentCategory()}))
			}
			return m, nil
		case tea.KeyCtrlG:
			m.setErr(m.navigate([]string{routeGuesser}))
			return m, nil
		case tea.KeyCtrlK:
			if m.router.Current() == m.guesser {
				if skipped := m.guesser.Game().Skip(); skipped != nil {
					m.status = "It was " + m.catalog.DisplayName(skipped)
				}
				m.syncViewport()
			}
			return m, nil
		}
	}

	if m.list() == nil && m.router.Current() != m.guesser {
		return m, nil
	}
	m.textInput, cmd = m.textInput.Update(msg)
	if list := m.list(); list != nil && m.textInput.Value() != list.Query() {
		m.setErr(list.SetQuery(m.textInput.Value()))
		m.cursor = 0
		m.syncViewport()
	}
	return m, cmd
}

func (m *model) navigate(path []string) error {
	if err := m.router.Navigate(m.ctx, path); err != nil {
		return err
	}
	switch m.router.Current() {
	case m.guesser:
		m.guesser.Game().Start()
		m.textInput.Reset()
		m.textInput.Placeholder = "Who is this pony?"
		m.status = ""
	case m.profile:
		m.textInput.Blur()
	default:
		list := m.list()
		m.cursor = list.Scroll
		m.textInput.SetValue(list.Query())
		m.textInput.Placeholder = "Type to search..."
		m.textInput.Focus()
	}
	m.syncViewport()
	return nil
}

// list returns the list page on screen, nil for any other page.
func (m *model) list() *page.ListPage {
	switch m.router.Current() {
	case m.search:
		return m.search
	case m.owned:
		if m.owned != nil {
			return m.owned.ListPage
		}
	}
	return nil
}

func (m *model) currentCategory() string {
	if list := m.list(); list != nil {
		return list.Category()
	}
	if e := m.profile.Entity(); e != nil && m.router.Current() == m.profile {
		return e.Category
	}
	return catalog.CategoryPonies
}

func (m *model) moveCursor(delta int) {
	list := m.list()
	if list == nil {
		m.viewport.SetYOffset(m.viewport.YOffset + delta)
		return
	}
	n := len(list.Results())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.syncViewport()
}

func (m *model) enter() {
	if m.router.Current() == m.guesser {
		m.guess()
		return
	}
	list := m.list()
	if list == nil {
		return
	}
	results := list.Results()
	if m.cursor >= len(results) {
		return
	}
	list.Scroll = m.cursor
	m.returnTo = m.router.Path()
	m.setErr(m.navigate([]string{list.Category(), results[m.cursor]}))
}

func (m *model) guess() {
	game := m.guesser.Game()
	text := m.textInput.Value()
	if text == "" || !game.Running() {
		return
	}
	m.textInput.Reset()
	if game.Guess(text) {
		m.status = "Correct!"
		if game.Done() {
			m.status = "All guessed in " + guesser.FormatElapsed(game.Elapsed())
		}
	} else {
		m.status = fmt.Sprintf("%q is not it", text)
	}
	m.syncViewport()
}

func (m *model) toggleSort(reverse bool) {
	list := m.list()
	if list == nil {
		return
	}
	key, rev := list.Sort()
	if reverse {
		rev = !rev
	} else if key == search.SortIndex {
		key = search.SortName
	} else {
		key = search.SortIndex
	}
	m.setErr(list.SetSort(key, rev))
	m.syncViewport()
}

func (m *model) toggleOwned() {
	e := m.profile.Entity()
	if m.inventory == nil || m.router.Current() != m.profile || e == nil {
		return
	}
	if e.Category != catalog.CategoryPonies && e.Category != catalog.CategoryShops {
		m.status = "only ponies and shops can be owned"
		return
	}
	owned := !m.inventory.IsOwned(e.ID)
	m.setErr(m.inventory.SetOwned(m.ctx, e.ID, owned, nil))
	m.syncViewport()
}

func (m *model) setErr(err error) {
	if err != nil {
		m.err = err
	}
}

// Run starts the program on the alternate screen and blocks until it quits
// or ctx is canceled.
func Run(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
