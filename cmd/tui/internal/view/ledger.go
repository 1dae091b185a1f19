package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/transaction"
)

type ledgerState int

const (
	ledgerStateTimeframe ledgerState = iota
	ledgerStateList
	ledgerStateUserFilter
)

type ledgerItem struct {
	tx       *transaction.Transaction
	currency string
}

func (i ledgerItem) Title() string {
	status := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.tx.Status))

	return fmt.Sprintf("%s  %s  %s  %s", FormatDate(i.tx.CreatedAt), FormatAmount(i.tx.Amount, i.currency), status, i.tx.OrderID)
}

func (i ledgerItem) Description() string {
	return fmt.Sprintf("buyer %s  seller %s  negotiation %s", i.tx.BuyerID, i.tx.SellerID, i.tx.NegotiationID)
}

func (i ledgerItem) FilterValue() string {
	return i.tx.OrderID
}

// LedgerModel browses captured payments for a timeframe, optionally narrowed
// to one user's purchases and sales.
type LedgerModel struct {
	CommonModel
	txService *transaction.Service
	currency  string

	state           ledgerState
	timeframePicker TimeframePicker
	list            list.Model
	form            *huh.Form
	txs             []*transaction.Transaction

	startDate time.Time
	endDate   time.Time
	allTime   bool
	userID    *uuid.UUID
	loading   bool
	status    string
}

func NewLedgerModel(txSvc *transaction.Service, currency string) LedgerModel {
	l := list.New([]list.Item{}, ledgerDelegate{}, 0, 0)
	l.Title = "Ledger"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return LedgerModel{
		txService:       txSvc,
		currency:        currency,
		timeframePicker: NewTimeframePicker(),
		list:            l,
	}
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	switch m.state {
	case ledgerStateTimeframe:
		return "Esc: back | Enter: select"
	case ledgerStateList:
		return "Esc: back | u: filter by user | /: filter by order"
	case ledgerStateUserFilter:
		return "Esc: cancel | Enter: apply"
	}

	return ""
}

func (m LedgerModel) Init() tea.Cmd {
	return nil
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.startDate = msg.Start
		m.endDate = msg.End
		m.allTime = msg.All
		m.loading = true
		m.state = ledgerStateList

		return m, m.loadCmd()

	case loadLedgerMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.refreshItems()
		m.status = m.summary()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)

		return m, nil
	}

	switch m.state {
	case ledgerStateTimeframe:
		return m.updateTimeframe(msg)
	case ledgerStateList:
		return m.updateList(msg)
	case ledgerStateUserFilter:
		return m.updateUserFilter(msg)
	}

	return m, nil
}

func (m LedgerModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m LedgerModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			m.state = ledgerStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		case "u":
			return m.startUserFilter()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m LedgerModel) startUserFilter() (tea.Model, tea.Cmd) {
	current := ""
	if m.userID != nil {
		current = m.userID.String()
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("user").
				Title("User ID (empty for everyone)").
				Value(&current).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("not a valid user id")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = ledgerStateUserFilter

	return m, m.form.Init()
}

func (m LedgerModel) updateUserFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = ledgerStateList
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.userID = nil
	if id, err := uuid.Parse(strings.TrimSpace(m.form.GetString("user"))); err == nil {
		m.userID = &id
	}

	m.form = nil
	m.state = ledgerStateList
	m.loading = true

	return m, m.loadCmd()
}

func (m LedgerModel) View() string {
	switch m.state {
	case ledgerStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case ledgerStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case ledgerStateUserFilter:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	return ""
}

func (m LedgerModel) summary() string {
	if len(m.txs) == 0 {
		return "No captured payments found."
	}

	total := decimal.Zero
	for _, tx := range m.txs {
		total = total.Add(tx.Amount)
	}

	s := fmt.Sprintf("%d payments, %s total", len(m.txs), FormatAmount(total, m.currency))
	if m.userID != nil {
		s += fmt.Sprintf(" for user %s", m.userID)
	}

	return s
}

func (m *LedgerModel) refreshItems() {
	items := make([]list.Item, len(m.txs))
	for i, tx := range m.txs {
		items[i] = ledgerItem{tx: tx, currency: m.currency}
	}

	m.list.SetItems(items)
}

// Messages

type loadLedgerMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m LedgerModel) loadCmd() tea.Cmd {
	filter := transaction.ListFilter{UserID: m.userID}

	if !m.allTime {
		start, end := m.startDate, m.endDate
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, filter)

		return loadLedgerMsg{txs: txs, err: err}
	}
}

type ledgerDelegate struct{}

func (d ledgerDelegate) Height() int                             { return 2 }
func (d ledgerDelegate) Spacing() int                            { return 0 }
func (d ledgerDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d ledgerDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(ledgerItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
