// Package tui is the interactive terminal front end: type to search the
// catalog, press enter to toggle a favourite.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrlokans/bookfinder/internal/covers"
	"github.com/mrlokans/bookfinder/internal/entities"
	"github.com/mrlokans/bookfinder/internal/favorites"
	"github.com/mrlokans/bookfinder/internal/search"
)

// View is the active list.
type View int

const (
	ViewSearch View = iota
	ViewFavourites
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Session    *search.Session
	Favourites *favorites.Service
	Resolver   *covers.Resolver
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	session    *search.Session
	favourites *favorites.Service
	resolver   *covers.Resolver

	keys   keyMap
	styles styles
	input  textinput.Model

	view     View
	width    int
	height   int
	selected int

	snapshot search.Snapshot
	stored   []entities.Book
	starred  map[string]bool

	notice   string
	noticeOK bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = covers.NewResolver(covers.Unconstrained)
	}

	input := textinput.New()
	input.Placeholder = "Search books"
	input.Prompt = "🔍 "
	input.CharLimit = 200
	input.Focus()

	return Model{
		ctx:        ctx,
		session:    opts.Session,
		favourites: opts.Favourites,
		resolver:   resolver,
		keys:       defaultKeyMap(),
		styles:     defaultStyles(),
		input:      input,
		snapshot:   search.Snapshot{Results: []entities.Book{}},
		stored:     []entities.Book{},
		starred:    map[string]bool{},
	}
}

// Messages

// searchChangedMsg signals a new search state; the handler reads the session
// snapshot instead of carrying one.
type searchChangedMsg struct{}

type favouritesLoadedMsg struct {
	books []entities.Book
}

type toggledMsg struct {
	book      entities.Book
	favourite bool
	err       error
}

// Commands

func loadFavouritesCmd(ctx context.Context, svc *favorites.Service) tea.Cmd {
	return func() tea.Msg {
		return favouritesLoadedMsg{books: svc.List(ctx)}
	}
}

func toggleCmd(ctx context.Context, svc *favorites.Service, book entities.Book) tea.Cmd {
	return func() tea.Msg {
		favourite, err := svc.Toggle(ctx, book)
		return toggledMsg{book: book, favourite: favourite, err: err}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadFavouritesCmd(m.ctx, m.favourites))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case searchChangedMsg:
		m.snapshot = m.session.Snapshot()
		m.clampSelection()
		return m, nil

	case favouritesLoadedMsg:
		m.stored = msg.books
		m.starred = make(map[string]bool, len(msg.books))
		for _, b := range msg.books {
			m.starred[b.ID] = true
		}
		m.clampSelection()
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.setNotice(noticeForError(msg.err), false)
			return m, nil
		}
		if msg.favourite {
			m.setNotice(fmt.Sprintf("Added %q to favourites", msg.book.Title), true)
		} else {
			m.setNotice(fmt.Sprintf("Removed %q from favourites", msg.book.Title), true)
		}
		return m, loadFavouritesCmd(m.ctx, m.favourites)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchView):
		if m.view == ViewSearch {
			m.view = ViewFavourites
			m.input.Blur()
		} else {
			m.view = ViewSearch
			m.input.Focus()
		}
		m.selected = 0
		return m, loadFavouritesCmd(m.ctx, m.favourites)

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.items())-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		book, ok := m.selectedBook()
		if !ok {
			return m, nil
		}
		return m, toggleCmd(m.ctx, m.favourites, book)

	case key.Matches(msg, m.keys.Refresh):
		return m, loadFavouritesCmd(m.ctx, m.favourites)
	}

	if m.view != ViewSearch {
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.selected = 0
		m.session.Input(after)
		m.snapshot = m.session.Snapshot()
		return m, cmd
	}
	return m, cmd
}

func (m *Model) setNotice(text string, ok bool) {
	m.notice = text
	m.noticeOK = ok
}

func (m *Model) clampSelection() {
	if n := len(m.items()); m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

func (m Model) items() []entities.Book {
	if m.view == ViewFavourites {
		return m.stored
	}
	return m.snapshot.Results
}

func (m Model) selectedBook() (entities.Book, bool) {
	items := m.items()
	if m.selected < 0 || m.selected >= len(items) {
		return entities.Book{}, false
	}
	return items[m.selected], true
}

func noticeForError(err error) string {
	var writeErr *favorites.StorageWriteError
	switch {
	case errors.Is(err, favorites.ErrStorageUnavailable):
		return "Favourites are unavailable on this platform"
	case errors.Is(err, favorites.ErrInvalidBook):
		return "This book has no identifier and cannot be saved"
	case errors.As(err, &writeErr):
		return "Could not update favourites: " + writeErr.Error()
	default:
		return "Could not update favourites: " + err.Error()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.view == ViewSearch {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.renderSearchStatus())
		b.WriteString("\n")
	}

	b.WriteString(m.renderList())

	if book, ok := m.selectedBook(); ok {
		b.WriteString("\n")
		b.WriteString(m.renderDetail(book))
	}

	b.WriteString("\n")
	if m.notice != "" {
		if m.noticeOK {
			b.WriteString(m.styles.Notice.Render(m.notice))
		} else {
			b.WriteString(m.styles.Error.Render(m.notice))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	searchTab, favTab := m.styles.ActiveTab, m.styles.Tab
	if m.view == ViewFavourites {
		searchTab, favTab = m.styles.Tab, m.styles.ActiveTab
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Title.Render("Book Finder "),
		searchTab.Render("Search"),
		favTab.Render(fmt.Sprintf("Favourites (%d)", len(m.stored))),
	)
}

func (m Model) renderSearchStatus() string {
	switch {
	case m.snapshot.Loading:
		return m.styles.Loading.Render("Searching…")
	case m.snapshot.ErrMessage != "":
		return m.styles.Error.Render(m.snapshot.ErrMessage)
	case strings.TrimSpace(m.snapshot.Query) != "" && len(m.snapshot.Results) == 0:
		return m.styles.Muted.Render("No books found")
	default:
		return ""
	}
}

func (m Model) renderList() string {
	items := m.items()
	if len(items) == 0 {
		if m.view == ViewFavourites {
			return m.styles.Muted.Render("No favourites yet") + "\n"
		}
		return ""
	}

	limit := len(items)
	if m.height > 0 {
		limit = min(limit, max(m.height-14, 3))
	}
	start := 0
	if m.selected >= limit {
		start = m.selected - limit + 1
	}

	var b strings.Builder
	for i := start; i < start+limit && i < len(items); i++ {
		book := items[i]
		star := "  "
		if m.starred[book.ID] {
			star = m.styles.Star.Render("★ ")
		}
		line := book.Title
		if authors := book.AuthorsLine(); authors != "" {
			line += m.styles.Muted.Render(" · " + authors)
		}
		if i == m.selected {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(star + line + "\n")
	}
	return b.String()
}

func (m Model) renderDetail(book entities.Book) string {
	cover := covers.PlaceholderGlyph
	if cleaned := m.resolver.Clean(entities.FromPtr(book.ImageURL)); cleaned != nil {
		cover = *cleaned
	}

	lines := []string{
		m.styles.Title.Render(book.Title),
		m.styles.Text.Render(book.AuthorsLine()),
		m.styles.Muted.Render("Cover: " + cover),
	}
	if desc := entities.FromPtr(book.Description); desc != "" {
		lines = append(lines, truncate(desc, 280))
	}

	style := m.styles.Detail
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, len(m.keys.bindings()))
	for _, binding := range m.keys.bindings() {
		h := binding.Help()
		parts = append(parts, m.styles.HelpKey.Render(h.Key)+" "+m.styles.Muted.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Session == nil || opts.Favourites == nil {
		return errors.New("tui requires a search session and a favourites service")
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))

	// Input runs on the update loop, so publishing must not block on it.
	opts.Session.OnChange(func(search.Snapshot) {
		go p.Send(searchChangedMsg{})
	})
	defer opts.Session.OnChange(nil)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
