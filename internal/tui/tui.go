package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/service"
	"github.com/MKhiriev/go-mess-manager/models"
)

var ErrUserQuit = errors.New("user quit the program")

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services, buildInfo: buildInfo}, nil
}

// LoginFlow runs the authentication pages and returns the credential issued
// by a successful login or registration.
func (t *TUI) LoginFlow(ctx context.Context) (models.Credential, error) {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.SessionService),
		"register": NewRegisterModel(ctx, t.services.SessionService),
	}

	root := NewRootModel(pages, "menu", t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return models.Credential{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.Credential{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.Credential{}, ErrUserQuit
	}

	return result.resultCredential, nil
}

// MainLoop runs the authenticated screens. It returns logout=true when the
// user explicitly logged out and sessionLost=true when the server stopped
// honouring the credential; either way the caller decides whether to restart
// the login flow.
func (t *TUI) MainLoop(ctx context.Context, credential models.Credential) (logout, sessionLost bool, err error) {
	model := newMainLoopModel(ctx, t.services, credential)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, false, tea.ErrProgramKilled
	}
	return result.logout, result.sessionLost, nil
}
