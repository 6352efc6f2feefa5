package service

import (
	"github.com/MKhiriev/go-mess-manager/internal/config"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/store"
)

type Services struct {
	AuthService       AuthService
	UserService       UserService
	SuggestionService SuggestionService
	MenuService       MenuService
	RecordsService    RecordsService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, cfg.App, logger),
		UserService:       NewUserService(storages.UserRepository, logger),
		SuggestionService: NewSuggestionService(storages.SuggestionRepository, logger),
		MenuService:       NewMenuService(storages.MenuRepository, logger),
		RecordsService:    NewRecordsService(storages.RecordsRepository, logger),
		AppInfoService:    appInfoService,
	}, nil
}
