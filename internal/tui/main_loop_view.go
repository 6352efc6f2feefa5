package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-mess-manager/models"
)

func (m mainLoopModel) View() string {
	if m.confirming {
		return m.viewConfirm()
	}

	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	switch m.activeScreen() {
	case screenMenu:
		b.WriteString(m.viewMenu())
	case screenSuggestions:
		b.WriteString(m.viewSuggestions())
	case screenFeedback:
		b.WriteString(m.viewFeedback())
	case screenRecords:
		b.WriteString(m.viewRecords())
	}

	if m.status != "" {
		b.WriteString("\n\nOK: ")
		b.WriteString(fitText(m.status, 72))
	}
	if m.errMsg != "" {
		b.WriteString("\n\nError: ")
		b.WriteString(fitText(m.errMsg, 72))
	}

	title := fmt.Sprintf("MESS MANAGER — %s (%s)", m.credential.User.Name, m.credential.User.Role)
	return renderPage(title, b.String(), m.hotkeys())
}

func (m mainLoopModel) viewTabs() string {
	parts := make([]string, 0, len(m.screens))
	for i, s := range m.screens {
		if i == m.screenIdx {
			parts = append(parts, "["+s.title()+"]")
		} else {
			parts = append(parts, " "+s.title()+" ")
		}
	}
	return strings.Join(parts, " │ ")
}

func (m mainLoopModel) viewMenu() string {
	if m.loading {
		return "Loading menu..."
	}
	if len(m.days) == 0 {
		return "No menu published for today."
	}
	return renderMenuPlain(m.days)
}

func (m mainLoopModel) viewSuggestions() string {
	if m.loading {
		return "Loading suggestions..."
	}
	if len(m.suggestions) == 0 {
		return "No pending suggestions."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-4s │ %-12s │ %-12s │ %-6s\n", "ID", "From", "To", "Items"))
	b.WriteString("─────┼──────────────┼──────────────┼───────\n")
	for i, s := range m.suggestions {
		cursor := " "
		if i == m.sgIdx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s%-3d │ %-12s │ %-12s │ %-6d\n",
			cursor, s.SuggestionID,
			s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02"),
			len(s.Items)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m mainLoopModel) viewFeedback() string {
	var b strings.Builder
	b.WriteString("Rate today's ")
	b.WriteString(mealTypes[m.feedbackMeal])
	b.WriteString(" (←/→ to change meal)\n\n")
	b.WriteString("Rating  │ [")
	b.WriteString(m.feedbackInputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Comment │ [")
	b.WriteString(m.feedbackInputs[1].View())
	b.WriteString("]")
	if m.saving {
		b.WriteString("\n\n[Saving...]")
	}
	return b.String()
}

func (m mainLoopModel) viewRecords() string {
	kind := "consumption"
	if m.recordWaste {
		kind = "waste"
	}

	var b strings.Builder
	b.WriteString("Record ")
	b.WriteString(kind)
	b.WriteString(" for ")
	b.WriteString(mealTypes[m.recordMeal])
	b.WriteString(" (w: toggle kind, ←/→: meal)\n\n")
	b.WriteString("Food item │ [")
	b.WriteString(m.recordInputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Quantity  │ [")
	b.WriteString(m.recordInputs[1].View())
	b.WriteString("]")
	if m.saving {
		b.WriteString("\n\n[Saving...]")
	}
	return b.String()
}

func (m mainLoopModel) viewConfirm() string {
	s := m.selectedSuggestion()
	if s == nil {
		return renderPage("CONFIRM", "Nothing selected.", "esc: back")
	}

	action := "ACCEPT"
	if m.confirmDrop {
		action = "REJECT"
	}

	body := fmt.Sprintf("%s suggestion #%d (%s to %s, %d items)?",
		action, s.SuggestionID,
		s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02"),
		len(s.Items))
	if m.deciding {
		body += "\n\nWorking..."
	}

	return renderPage("CONFIRM", overlayBoxStyle.Render(body), "y: confirm │ n/esc: cancel")
}

func (m mainLoopModel) hotkeys() string {
	switch m.activeScreen() {
	case screenSuggestions:
		return "a: accept │ x: reject │ r: refresh │ ↑/↓: move │ tab: next screen │ L: log out │ q: quit"
	case screenFeedback, screenRecords:
		return "enter: save │ ↑/↓: field │ tab: next screen"
	default:
		return "r: refresh │ c: copy │ tab: next screen │ L: log out │ q: quit"
	}
}

// renderMenuPlain renders one or more menu days as plain text, also used for
// the clipboard copy.
func renderMenuPlain(days []models.Menu) string {
	var b strings.Builder
	for i, day := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(day.Date)
		b.WriteString("\n")
		writeMealLine(&b, "breakfast", day.Breakfast)
		writeMealLine(&b, "lunch", day.Lunch)
		writeMealLine(&b, "dinner", day.Dinner)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeMealLine(b *strings.Builder, meal string, items []models.MenuItem) {
	b.WriteString("  ")
	b.WriteString(fmt.Sprintf("%-9s", meal))
	b.WriteString(" │ ")
	if len(items) == 0 {
		b.WriteString("-")
		b.WriteString("\n")
		return
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n")
}
