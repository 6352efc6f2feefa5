package service

import (
	"github.com/MKhiriev/go-mess-manager/internal/adapter"
	"github.com/MKhiriev/go-mess-manager/internal/config"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/store"
)

// ClientServices aggregates every client-side service behind one wiring point.
type ClientServices struct {
	SessionService    ClientSessionService
	MenuService       ClientMenuService
	SuggestionService ClientSuggestionService
	RecordsService    ClientRecordsService
	SessionJob        ClientSessionJob
}

// NewClientServices wires the client service layer on top of the local
// credential store and the server adapter.
func NewClientServices(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.ClientApp, logger *logger.Logger) *ClientServices {
	sessionSvc := NewClientSessionService(localStore.CredentialRepository, serverAdapter, cfg.StalenessWindow, logger)

	return &ClientServices{
		SessionService:    sessionSvc,
		MenuService:       NewClientMenuService(serverAdapter, logger),
		SuggestionService: NewClientSuggestionService(sessionSvc, serverAdapter, logger),
		RecordsService:    NewClientRecordsService(sessionSvc, serverAdapter, logger),
		SessionJob:        NewClientSessionJob(sessionSvc),
	}
}
