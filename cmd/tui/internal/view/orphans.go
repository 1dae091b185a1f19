package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/haggle/internal/payment"
)

// OrphansModel walks open orphaned captures one at a time: payments the
// gateway took but that never reached the ledger.
type OrphansModel struct {
	CommonModel
	paymentService *payment.Service
	currency       string

	queue   []*payment.Orphan
	current *payment.Orphan

	noteInput textinput.Model
	noting    bool

	loading    bool
	status     string
	totalCount int
}

func NewOrphansModel(paySvc *payment.Service, currency string) OrphansModel {
	ti := textinput.New()
	ti.Placeholder = "refunded in the PayPal dashboard"
	ti.Width = 60

	return OrphansModel{
		paymentService: paySvc,
		currency:       currency,
		noteInput:      ti,
		loading:        true,
	}
}

func (m OrphansModel) Title() string { return "Orphaned Captures" }

func (m OrphansModel) ShortHelp() string {
	if m.noting {
		return "Enter: dismiss with note | Esc: cancel"
	}

	return "r: reconcile | d: dismiss | s: skip | Esc: back"
}

func (m OrphansModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m OrphansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.noting {
			return m.updateNote(msg)
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			if m.current != nil {
				return m, m.reconcileCmd(m.current)
			}
		case "d":
			if m.current != nil {
				m.noting = true
				m.noteInput.SetValue("")

				return m, m.noteInput.Focus()
			}
		case "s":
			m.next()
		}

		return m, nil

	case loadOrphansMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.queue = msg.orphans
		m.totalCount = len(m.queue)
		m.next()

	case orphanActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			break
		}

		m.status = msg.result
		m.next()
	}

	return m, nil
}

func (m OrphansModel) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.noting = false
		m.noteInput.Blur()

		return m, nil
	case tea.KeyEnter:
		note := strings.TrimSpace(m.noteInput.Value())
		if note == "" {
			m.status = "A note is required to dismiss."
			return m, nil
		}

		m.noting = false
		m.noteInput.Blur()

		return m, m.dismissCmd(m.current, note)
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)

	return m, cmd
}

func (m OrphansModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading orphaned captures...")
	}

	if m.current == nil {
		if m.totalCount == 0 && m.status == "" {
			return lipgloss.NewStyle().Padding(2).Render("No open orphaned captures.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	o := m.current

	negotiation := "unknown"
	if o.NegotiationID != nil {
		negotiation = o.NegotiationID.String()
	}

	amount := "unknown"
	if o.Amount.Valid {
		amount = FormatAmount(o.Amount.Decimal, m.currency)
	}

	info := fmt.Sprintf(
		"Order:       %s\nNegotiation: %s\nAmount:      %s\nReason:      %s\nDetail:      %s\nRecorded:    %s\n",
		o.OrderID, negotiation, amount, o.Reason, o.Detail, FormatAge(o.CreatedAt),
	)

	body := fmt.Sprintf("Orphaned capture (%d remaining)\n\n%s", len(m.queue)+1, info)

	if o.Reason != payment.ReasonCommitFailed {
		body += lipgloss.NewStyle().Faint(true).Render("\nOnly commit failures can be reconciled; refund and dismiss the rest.\n")
	}

	if m.noting {
		body += "\nDismissal note:\n" + m.noteInput.View()
	}

	if m.status != "" {
		body = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + body
	}

	return lipgloss.NewStyle().Padding(2).Render(body + "\n\n" + m.ShortHelp())
}

func (m *OrphansModel) next() {
	if len(m.queue) == 0 {
		m.current = nil
		if m.totalCount > 0 {
			m.status = "All done!"
		}

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
}

type loadOrphansMsg struct {
	orphans []*payment.Orphan
	err     error
}

func (m OrphansModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		orphans, err := m.paymentService.ListOrphans(ctx, true)

		return loadOrphansMsg{orphans: orphans, err: err}
	}
}

type orphanActionMsg struct {
	result string
	err    error
}

func (m OrphansModel) reconcileCmd(o *payment.Orphan) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := m.paymentService.Reconcile(ctx, o.ID)
		if err != nil {
			return orphanActionMsg{err: err}
		}

		return orphanActionMsg{result: fmt.Sprintf("Order %s recorded as transaction %s.", o.OrderID, tx.ID)}
	}
}

func (m OrphansModel) dismissCmd(o *payment.Orphan, note string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.paymentService.Dismiss(ctx, o.ID, note); err != nil {
			return orphanActionMsg{err: err}
		}

		return orphanActionMsg{result: fmt.Sprintf("Order %s dismissed.", o.OrderID)}
	}
}
