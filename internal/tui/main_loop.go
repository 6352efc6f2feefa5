package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-mess-manager/internal/service"
	"github.com/MKhiriev/go-mess-manager/models"
)

type screen int

const (
	screenMenu screen = iota
	screenSuggestions
	screenFeedback
	screenRecords
)

func (s screen) title() string {
	switch s {
	case screenSuggestions:
		return "Suggestions"
	case screenFeedback:
		return "Feedback"
	case screenRecords:
		return "Records"
	default:
		return "Menu"
	}
}

type mainLoopModel struct {
	ctx        context.Context
	services   *service.ClientServices
	credential models.Credential

	screens   []screen
	screenIdx int

	// menu screen
	days    []models.Menu
	loading bool

	// suggestion screen
	suggestions []models.MenuSuggestion
	sgIdx       int
	confirming  bool
	confirmDrop bool
	deciding    bool

	// feedback screen
	feedbackInputs []textinput.Model
	feedbackFocus  int
	feedbackMeal   int
	saving         bool

	// records screen
	recordInputs []textinput.Model
	recordFocus  int
	recordMeal   int
	recordWaste  bool

	status string
	errMsg string

	logout      bool
	sessionLost bool
}

var mealTypes = []string{models.MealBreakfast, models.MealLunch, models.MealDinner}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, credential models.Credential) mainLoopModel {
	screens := []screen{screenMenu}
	switch credential.User.Role {
	case models.RoleAdmin:
		screens = append(screens, screenSuggestions, screenRecords)
	case models.RoleMessStaff:
		screens = append(screens, screenRecords)
	case models.RoleStudent:
		screens = append(screens, screenFeedback)
	}

	feedbackInputs := make([]textinput.Model, 2)
	feedbackInputs[0] = textinput.New()
	feedbackInputs[0].Placeholder = "rating 1-5"
	feedbackInputs[0].CharLimit = 1
	feedbackInputs[0].Width = 10
	feedbackInputs[0].Focus()
	feedbackInputs[1] = textinput.New()
	feedbackInputs[1].Placeholder = "comment (optional)"
	feedbackInputs[1].Width = 40

	recordInputs := make([]textinput.Model, 2)
	recordInputs[0] = textinput.New()
	recordInputs[0].Placeholder = "food item id"
	recordInputs[0].Width = 15
	recordInputs[0].Focus()
	recordInputs[1] = textinput.New()
	recordInputs[1].Placeholder = "quantity"
	recordInputs[1].Width = 15

	return mainLoopModel{
		ctx:            ctx,
		services:       services,
		credential:     credential,
		screens:        screens,
		loading:        true,
		feedbackInputs: feedbackInputs,
		recordInputs:   recordInputs,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.cmdCheckSession(), m.cmdLoadMenu())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case menuLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleServiceError(msg.err)
		}
		m.days = msg.days
		return m, nil

	case suggestionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.handleServiceError(msg.err)
		}
		m.suggestions = msg.items
		if m.sgIdx >= len(m.suggestions) {
			m.sgIdx = 0
		}
		return m, nil

	case decisionDoneMsg:
		m.deciding = false
		m.confirming = false
		if msg.err != nil {
			return m.handleServiceError(msg.err)
		}
		if msg.accepted {
			m.status = fmt.Sprintf("Suggestion accepted: menu set for %s to %s", msg.dates.StartDate, msg.dates.EndDate)
		} else {
			m.status = "Suggestion rejected"
		}
		m.errMsg = ""
		return m, tea.Batch(m.cmdLoadSuggestions(), clearStatusLater())

	case feedbackSavedMsg:
		m.saving = false
		if msg.err != nil {
			return m.handleServiceError(msg.err)
		}
		m.status = "Feedback saved, thank you"
		m.errMsg = ""
		m.feedbackInputs[0].SetValue("")
		m.feedbackInputs[1].SetValue("")
		return m, clearStatusLater()

	case recordSavedMsg:
		m.saving = false
		if msg.err != nil {
			return m.handleServiceError(msg.err)
		}
		if msg.waste {
			m.status = "Waste record saved"
		} else {
			m.status = "Consumption record saved"
		}
		m.errMsg = ""
		m.recordInputs[0].SetValue("")
		m.recordInputs[1].SetValue("")
		return m, clearStatusLater()

	case sessionCheckedMsg:
		if msg.state == models.SessionAbsent {
			m.sessionLost = true
			return m, tea.Quit
		}
		m.credential = msg.credential
		return m, nil

	case copiedMsg:
		m.status = "Menu copied to clipboard"
		return m, clearStatusLater()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveInput(msg)
}

func (m mainLoopModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Confirmation overlay swallows everything except yes/no.
	if m.confirming {
		switch {
		case key.Matches(msg, keys.yes):
			if m.deciding {
				return m, nil
			}
			m.deciding = true
			if m.confirmDrop {
				return m, m.cmdReject(m.selectedSuggestion().SuggestionID)
			}
			return m, m.cmdAccept(m.selectedSuggestion().SuggestionID)
		case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
			m.confirming = false
			return m, nil
		}
		return m, nil
	}

	// "q" and "L" stay screen-local on the form screens so they can be
	// typed into text inputs.
	switch {
	case key.Matches(msg, keys.forceQuit):
		return m, tea.Quit
	case key.Matches(msg, keys.quit):
		if !m.activeScreenHasInputs() {
			return m, tea.Quit
		}
	case key.Matches(msg, keys.logout):
		if !m.activeScreenHasInputs() {
			m.logout = true
			clearSessionUserID()
			return m, tea.Quit
		}
	case key.Matches(msg, keys.tab):
		m.screenIdx = (m.screenIdx + 1) % len(m.screens)
		m.errMsg = ""
		return m, m.cmdEnterScreen()
	case key.Matches(msg, keys.backtab):
		m.screenIdx = (m.screenIdx - 1 + len(m.screens)) % len(m.screens)
		m.errMsg = ""
		return m, m.cmdEnterScreen()
	}

	switch m.activeScreen() {
	case screenMenu:
		return m.handleMenuKey(msg)
	case screenSuggestions:
		return m.handleSuggestionKey(msg)
	case screenFeedback:
		return m.handleFeedbackKey(msg)
	case screenRecords:
		return m.handleRecordKey(msg)
	}
	return m, nil
}

func (m mainLoopModel) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, m.cmdLoadMenu()
	case key.Matches(msg, keys.copyMenu):
		return m, m.cmdCopyMenu()
	}
	return m, nil
}

func (m mainLoopModel) handleSuggestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.sgIdx > 0 {
			m.sgIdx--
		}
	case key.Matches(msg, keys.down):
		if m.sgIdx < len(m.suggestions)-1 {
			m.sgIdx++
		}
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, m.cmdLoadSuggestions()
	case key.Matches(msg, keys.accept):
		if m.selectedSuggestion() != nil {
			m.confirming = true
			m.confirmDrop = false
		}
	case key.Matches(msg, keys.reject):
		if m.selectedSuggestion() != nil {
			m.confirming = true
			m.confirmDrop = true
		}
	}
	return m, nil
}

func (m mainLoopModel) handleFeedbackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left":
		m.feedbackMeal = (m.feedbackMeal - 1 + len(mealTypes)) % len(mealTypes)
		return m, nil
	case "right":
		m.feedbackMeal = (m.feedbackMeal + 1) % len(mealTypes)
		return m, nil
	case "up", "down":
		m.feedbackInputs[m.feedbackFocus].Blur()
		m.feedbackFocus = (m.feedbackFocus + 1) % len(m.feedbackInputs)
		m.feedbackInputs[m.feedbackFocus].Focus()
		return m, nil
	case "enter":
		if m.saving {
			return m, nil
		}
		rating, err := strconv.Atoi(strings.TrimSpace(m.feedbackInputs[0].Value()))
		if err != nil || rating < 1 || rating > 5 {
			m.errMsg = "Rating must be a number between 1 and 5"
			return m, nil
		}
		m.errMsg = ""
		m.saving = true
		return m, m.cmdSubmitFeedback(rating, m.feedbackInputs[1].Value())
	}

	var cmd tea.Cmd
	m.feedbackInputs[m.feedbackFocus], cmd = m.feedbackInputs[m.feedbackFocus].Update(msg)
	return m, cmd
}

func (m mainLoopModel) handleRecordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left":
		m.recordMeal = (m.recordMeal - 1 + len(mealTypes)) % len(mealTypes)
		return m, nil
	case "right":
		m.recordMeal = (m.recordMeal + 1) % len(mealTypes)
		return m, nil
	case "w":
		m.recordWaste = !m.recordWaste
		return m, nil
	case "up", "down":
		m.recordInputs[m.recordFocus].Blur()
		m.recordFocus = (m.recordFocus + 1) % len(m.recordInputs)
		m.recordInputs[m.recordFocus].Focus()
		return m, nil
	case "enter":
		if m.saving {
			return m, nil
		}
		foodItemID, err := strconv.ParseInt(strings.TrimSpace(m.recordInputs[0].Value()), 10, 64)
		if err != nil || foodItemID <= 0 {
			m.errMsg = "Food item id must be a positive number"
			return m, nil
		}
		quantity, err := strconv.ParseFloat(strings.TrimSpace(m.recordInputs[1].Value()), 64)
		if err != nil || quantity <= 0 {
			m.errMsg = "Quantity must be a positive number"
			return m, nil
		}
		m.errMsg = ""
		m.saving = true
		return m, m.cmdSaveRecord(foodItemID, quantity)
	}

	var cmd tea.Cmd
	m.recordInputs[m.recordFocus], cmd = m.recordInputs[m.recordFocus].Update(msg)
	return m, cmd
}

func (m mainLoopModel) updateActiveInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeScreen() {
	case screenFeedback:
		m.feedbackInputs[m.feedbackFocus], cmd = m.feedbackInputs[m.feedbackFocus].Update(msg)
	case screenRecords:
		m.recordInputs[m.recordFocus], cmd = m.recordInputs[m.recordFocus].Update(msg)
	}
	return m, cmd
}

// ─────────────────────────────────────────────
// Commands
// ─────────────────────────────────────────────

func (m mainLoopModel) cmdEnterScreen() tea.Cmd {
	switch m.activeScreen() {
	case screenMenu:
		return m.cmdLoadMenu()
	case screenSuggestions:
		return m.cmdLoadSuggestions()
	}
	return nil
}

func (m mainLoopModel) cmdLoadMenu() tea.Cmd {
	ctx := m.ctx
	menus := m.services.MenuService

	return func() tea.Msg {
		today, err := menus.TodayMenu(ctx)
		if err != nil {
			return menuLoadedMsg{err: err}
		}
		return menuLoadedMsg{days: []models.Menu{today}}
	}
}

func (m mainLoopModel) cmdLoadSuggestions() tea.Cmd {
	ctx := m.ctx
	suggestions := m.services.SuggestionService

	return func() tea.Msg {
		items, err := suggestions.GetSuggestions(ctx, models.SuggestionPending)
		return suggestionsLoadedMsg{items: items, err: err}
	}
}

func (m mainLoopModel) cmdAccept(suggestionID int64) tea.Cmd {
	ctx := m.ctx
	suggestions := m.services.SuggestionService
	actingUserID := m.credential.User.UserID

	return func() tea.Msg {
		dates, err := suggestions.AcceptSuggestion(ctx, suggestionID, actingUserID)
		return decisionDoneMsg{accepted: true, dates: dates, err: err}
	}
}

func (m mainLoopModel) cmdReject(suggestionID int64) tea.Cmd {
	ctx := m.ctx
	suggestions := m.services.SuggestionService

	return func() tea.Msg {
		err := suggestions.RejectSuggestion(ctx, suggestionID)
		return decisionDoneMsg{accepted: false, err: err}
	}
}

func (m mainLoopModel) cmdSubmitFeedback(rating int, comment string) tea.Cmd {
	ctx := m.ctx
	records := m.services.RecordsService
	mealType := mealTypes[m.feedbackMeal]

	return func() tea.Msg {
		_, err := records.SubmitFeedback(ctx, models.Feedback{
			MealDate: time.Now(),
			MealType: mealType,
			Rating:   rating,
			Comment:  strings.TrimSpace(comment),
		})
		return feedbackSavedMsg{err: err}
	}
}

func (m mainLoopModel) cmdSaveRecord(foodItemID int64, quantity float64) tea.Cmd {
	ctx := m.ctx
	records := m.services.RecordsService
	mealType := mealTypes[m.recordMeal]
	waste := m.recordWaste

	return func() tea.Msg {
		var err error
		if waste {
			_, err = records.RecordWaste(ctx, models.WasteRecord{
				FoodItemID: foodItemID,
				Quantity:   quantity,
				Date:       time.Now(),
				MealType:   mealType,
			})
		} else {
			_, err = records.RecordConsumption(ctx, models.ConsumptionRecord{
				FoodItemID: foodItemID,
				Quantity:   quantity,
				Date:       time.Now(),
				MealType:   mealType,
			})
		}
		return recordSavedMsg{waste: waste, err: err}
	}
}

// cmdCheckSession refreshes the credential snapshot through the session
// controller; a stale snapshot triggers at most one server round trip.
func (m mainLoopModel) cmdCheckSession() tea.Cmd {
	ctx := m.ctx
	sessions := m.services.SessionService

	return func() tea.Msg {
		credential, state, err := sessions.Session(ctx)
		return sessionCheckedMsg{credential: credential, state: state, err: err}
	}
}

func (m mainLoopModel) cmdCopyMenu() tea.Cmd {
	text := renderMenuPlain(m.days)

	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return menuLoadedMsg{days: m.days, err: err}
		}
		return copiedMsg{}
	}
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// handleServiceError routes business errors to the right reaction: a lost
// session quits back to the login flow, a permission denial stays on screen
// as an overlay message, anything else is shown inline.
func (m mainLoopModel) handleServiceError(err error) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrTokenIsExpired),
		errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		m.sessionLost = true
		return m, tea.Quit
	case errors.Is(err, service.ErrAccessDenied):
		// A 403 does not cost the user their session.
		m.errMsg = "Access denied: your role does not allow this action"
		return m, nil
	default:
		m.errMsg = humanizeServerUnavailableError(err)
		return m, nil
	}
}

func (m mainLoopModel) activeScreen() screen {
	return m.screens[m.screenIdx]
}

func (m mainLoopModel) activeScreenHasInputs() bool {
	s := m.activeScreen()
	return s == screenFeedback || s == screenRecords
}

func (m mainLoopModel) selectedSuggestion() *models.MenuSuggestion {
	if m.sgIdx < 0 || m.sgIdx >= len(m.suggestions) {
		return nil
	}
	return &m.suggestions[m.sgIdx]
}
