package main

import (
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/haggle/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/haggle/internal/config"
	"github.com/MrJamesThe3rd/haggle/internal/database"
	"github.com/MrJamesThe3rd/haggle/internal/importer"
	"github.com/MrJamesThe3rd/haggle/internal/negotiation"
	negotiationStore "github.com/MrJamesThe3rd/haggle/internal/negotiation/store"
	"github.com/MrJamesThe3rd/haggle/internal/payment"
	"github.com/MrJamesThe3rd/haggle/internal/payment/paypal"
	paymentStore "github.com/MrJamesThe3rd/haggle/internal/payment/store"
	"github.com/MrJamesThe3rd/haggle/internal/product"
	productStore "github.com/MrJamesThe3rd/haggle/internal/product/store"
	"github.com/MrJamesThe3rd/haggle/internal/profile"
	profileStore "github.com/MrJamesThe3rd/haggle/internal/profile/store"
	"github.com/MrJamesThe3rd/haggle/internal/recentview"
	recentStore "github.com/MrJamesThe3rd/haggle/internal/recentview/store"
	"github.com/MrJamesThe3rd/haggle/internal/transaction"
	txStore "github.com/MrJamesThe3rd/haggle/internal/transaction/store"
)

const logFile = "haggle-tui.log"

var logLevel slog.LevelVar

type model struct {
	productService *product.Service
	importService  *importer.Service
	txService      *transaction.Service
	paymentService *payment.Service
	currency       string

	currentView View

	importView  view.ImportModel
	ledgerView  view.LedgerModel
	orphansView view.OrphansModel
}

type View int

const (
	ViewMenu    View = 0
	ViewImport  View = 1
	ViewLedger  View = 2
	ViewOrphans View = 3
)

func initialModel() model {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logLevel.Set(cfg.LogLevel())

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var (
		profileSvc = profile.NewService(profileStore.New(db))
		recentSvc  = recentview.NewService(recentStore.New(db))
		productSvc = product.NewService(productStore.New(db), profileSvc, recentSvc)
		negSvc     = negotiation.NewService(negotiationStore.New(db), productSvc)
		txSvc      = transaction.NewService(txStore.New(db))
		gateway    = paypal.NewClient(paypal.Config{
			BaseURL:  cfg.PayPal.BaseURL,
			ClientID: cfg.PayPal.ClientID,
			Secret:   cfg.PayPal.Secret,
			Currency: cfg.PayPal.Currency,
			Timeout:  cfg.PayPal.Timeout,
		})
		paySvc = payment.NewService(paymentStore.New(db), gateway, negSvc, txSvc)
		impSvc = importer.NewService()
	)

	return model{
		productService: productSvc,
		importService:  impSvc,
		txService:      txSvc,
		paymentService: paySvc,
		currency:       cfg.PayPal.Currency,
		currentView:    ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.productService, m.importService, m.currency)

				return m, m.importView.Init()
			case "2":
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.txService, m.currency)

				return m, m.ledgerView.Init()
			case "3":
				m.currentView = ViewOrphans
				m.orphansView = view.NewOrphansModel(m.paymentService, m.currency)

				return m, m.orphansView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewOrphans:
		var newModel tea.Model
		newModel, cmd = m.orphansView.Update(msg)
		m.orphansView = newModel.(view.OrphansModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Haggle Console\n\n" +
				"1. Import Listings\n" +
				"2. Ledger\n" +
				"3. Orphaned Captures\n\n" +
				"q. Quit",
		)
	case ViewImport:
		return m.importView.View()
	case ViewLedger:
		return m.ledgerView.View()
	case ViewOrphans:
		return m.orphansView.View()
	}

	return "Unknown View"
}

func main() {
	f, err := tea.LogToFile(logFile, "")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	slog.SetDefault(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: &logLevel})))

	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
