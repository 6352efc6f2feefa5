package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-mess-manager/internal/config"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/service"
	"github.com/MKhiriev/go-mess-manager/internal/tui"
	"github.com/MKhiriev/go-mess-manager/internal/workers"
	"github.com/MKhiriev/go-mess-manager/models"
)

type App struct {
	services *service.ClientServices
	tui      *tui.TUI
	workers  config.ClientWorkers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, workers config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app requires services and ui")
	}

	return &App{
		services: services,
		tui:      ui,
		workers:  workers,
		logger:   logger,
	}, nil
}

// Run drives the client lifecycle: restore or establish a session, start the
// background refresh job, then hand control to the main loop. Logout and a
// server-side session loss both land back at the login flow.
func (a *App) Run() error {
	ctx := context.Background()

	credential, state, err := a.services.SessionService.Session(ctx)
	if err != nil && state == models.SessionStale {
		// Revalidation failed but the credential survived; carry on with
		// the local snapshot.
		a.logger.Warn().Err(err).Msg("session revalidation failed, using local snapshot")
		err = nil
	}
	if err != nil {
		return err
	}

	if state == models.SessionAbsent {
		credential, err = a.tui.LoginFlow(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	jobs := workers.NewWorkers(workers.WorkerFunc(func() {
		a.services.SessionJob.Start(ctx, a.workers.RefreshInterval)
	}))
	jobs.Run()
	defer a.services.SessionJob.Stop()

	logout, sessionLost, err := a.tui.MainLoop(ctx, credential)
	if err != nil {
		return err
	}

	if logout {
		if logoutErr := a.services.SessionService.Logout(ctx); logoutErr != nil {
			a.logger.Warn().Err(logoutErr).Msg("clearing credential slot failed")
		}
		return a.Run()
	}
	if sessionLost {
		return a.Run()
	}

	return nil
}
