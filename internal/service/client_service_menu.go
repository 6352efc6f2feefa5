package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/adapter"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/models"
)

// clientMenuService reads the committed menu plan through the server adapter.
// Menu reads are public on the server, so no session is required; a stored
// token is attached when present but never demanded.
type clientMenuService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

// NewClientMenuService constructs a ClientMenuService.
func NewClientMenuService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientMenuService {
	return &clientMenuService{adapter: serverAdapter, logger: logger}
}

// TodayMenu implements ClientMenuService.
func (c *clientMenuService) TodayMenu(ctx context.Context) (models.Menu, error) {
	menu, err := c.adapter.GetTodayMenu(ctx)
	if err != nil {
		return models.Menu{}, mapAdapterError(err)
	}
	return menu, nil
}

// Menu implements ClientMenuService.
func (c *clientMenuService) Menu(ctx context.Context, from, to time.Time) ([]models.Menu, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	menus, err := c.adapter.GetMenu(ctx, from, to)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return menus, nil
}
