package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/importer"
	"github.com/MrJamesThe3rd/haggle/internal/product"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateSeller importState = iota
	importStateFilePick
	importStateParsing
	importStatePreview
	importStateResult
)

// ImportModel loads a listings CSV on behalf of a seller: pick the seller,
// pick the file, review what was parsed, then create every listing at once.
type ImportModel struct {
	CommonModel
	productService *product.Service
	importService  *importer.Service
	currency       string

	state      importState
	form       *huh.Form
	filePicker filepicker.Model
	preview    list.Model

	seller auth.Identity
	params     []product.CreateParams

	status string
	err    error
}

func NewImportModel(prodSvc *product.Service, impSvc *importer.Service, currency string) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	m := ImportModel{
		productService: prodSvc,
		importService:  impSvc,
		currency:       currency,
		filePicker:     fp,
	}
	m.form = sellerForm()

	return m
}

func (m ImportModel) Title() string { return "Import Listings" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePreview {
		return "Enter: import all | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func sellerForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("seller").
				Title("Seller ID").
				Validate(func(s string) error {
					if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("not a valid user id")
					}

					return nil
				}),

			huh.NewInput().
				Key("email").
				Title("Seller email (used for a new profile)"),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case parseResultMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}

		if len(msg.params) == 0 {
			m.state = importStateResult
			m.status = "The file has no listings."

			return m, nil
		}

		m.params = msg.params
		m.state = importStatePreview
		m.preview = m.newPreview(msg.params)

		return m, nil

	case importResultMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}

		m.state = importStateResult
		m.status = fmt.Sprintf("Imported %d listings for %s.", msg.count, m.seller.UserID)

		return m, nil
	}

	switch m.state {
	case importStateSeller:
		return m.updateSeller(msg)
	case importStateFilePick:
		return m.updateFilePick(msg)
	}

	return m, nil
}

func (m ImportModel) fail(err error) (tea.Model, tea.Cmd) {
	m.state = importStateResult
	m.err = err
	m.status = fmt.Sprintf("Error: %v", err)

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult, importStatePreview:
		m.state = importStateFilePick
		m.params = nil
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) updateSeller(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.seller = auth.Identity{
		UserID: uuid.MustParse(strings.TrimSpace(m.form.GetString("seller"))),
		Email:  strings.TrimSpace(m.form.GetString("email")),
	}
	m.state = importStateFilePick

	return m, m.filePicker.Init()
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Importing %d listings...", len(m.params))

		return m, m.importCmd()
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	return m, cmd
}

func (m ImportModel) newPreview(params []product.CreateParams) list.Model {
	items := make([]list.Item, len(params))
	for i, p := range params {
		items[i] = listingItem{params: p, currency: m.currency}
	}

	l := list.New(items, listingDelegate{}, 80, 20)
	l.Title = fmt.Sprintf("%d listings for %s", len(params), m.seller.UserID)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateSeller:
		return lipgloss.NewStyle().Padding(1).Render("Import listings for:\n\n" + m.form.View())
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a listings CSV for %s:\n\n%s", m.seller.UserID, m.filePicker.View()),
		)
	case importStateParsing:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(m.preview.View() + "\n" + m.ShortHelp())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	color := lipgloss.Color("46")
	if m.err != nil {
		color = lipgloss.Color("196")
	}

	return lipgloss.NewStyle().Padding(2).Render(
		lipgloss.NewStyle().Foreground(color).Render(m.status) + "\n\n(Esc to pick another file)",
	)
}

// Messages

type parseResultMsg struct {
	params []product.CreateParams
	err    error
}

type importResultMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		params, err := m.importService.Import(importer.FormatListings, f)

		return parseResultMsg{params: params, err: err}
	}
}

func (m ImportModel) importCmd() tea.Cmd {
	seller := m.seller
	params := m.params

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		ps, err := m.productService.ImportBatch(ctx, seller, params)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{count: len(ps)}
	}
}

type listingItem struct {
	params   product.CreateParams
	currency string
}

func (i listingItem) Title() string       { return i.params.Title }
func (i listingItem) Description() string { return i.params.Location }
func (i listingItem) FilterValue() string { return i.params.Title }

type listingDelegate struct{}

func (d listingDelegate) Height() int                             { return 2 }
func (d listingDelegate) Spacing() int                            { return 0 }
func (d listingDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d listingDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(listingItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	negotiable := "fixed"
	if item.params.IsNegotiable {
		negotiable = "negotiable"
	}

	fmt.Fprintf(w, "%s%s  %s  [%s]\n", cursor, FormatAmount(item.params.Price, item.currency), item.params.Title, negotiable)
	fmt.Fprintf(w, "    %s  %d images\n", lipgloss.NewStyle().Faint(true).Render(item.params.Location), len(item.params.Images))
}
