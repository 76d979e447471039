package menu

import (
	"context"
	"strings"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/adapter/logger"
	"github.com/YelzhanWeb/restaurant/internal/domain"
	"github.com/YelzhanWeb/restaurant/internal/interfaces"
)

type Service struct {
	repo   interfaces.MenuRepository
	logger logger.Logger
}

func NewService(repo interfaces.MenuRepository, logger logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateItem(ctx context.Context, cmd interfaces.CreateMenuItemCommand) (*domain.MenuItem, error) {
	available := true
	if cmd.IsAvailable != nil {
		available = *cmd.IsAvailable
	}

	item, err := domain.NewMenuItem(cmd.Name, cmd.Description, domain.Category(cmd.Category), cmd.Price, available)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("db_query_failed", "Failed to create menu item", logger.RequestID(ctx), nil, err)
		return nil, err
	}

	s.logger.Info("menu_item_created", "Menu item created", logger.RequestID(ctx), map[string]interface{}{
		"menu_item_id": item.ID,
		"name":         item.Name,
	})
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, filter interfaces.MenuFilter) ([]*domain.MenuItem, error) {
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, domain.NewValidationError("category", "category must be one of: appetizer, main_course, dessert, beverage")
	}
	return s.repo.List(ctx, filter)
}

// ItemsByCategory groups the whole menu, available or not. Every category is
// present in the result, possibly with an empty list.
func (s *Service) ItemsByCategory(ctx context.Context) (map[domain.Category][]*domain.MenuItem, error) {
	items, err := s.repo.List(ctx, interfaces.MenuFilter{})
	if err != nil {
		return nil, err
	}

	grouped := make(map[domain.Category][]*domain.MenuItem, len(domain.Categories))
	for _, c := range domain.Categories {
		grouped[c] = []*domain.MenuItem{}
	}
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped, nil
}

// UpdateItem applies the non-nil fields of cmd and revalidates the result.
func (s *Service) UpdateItem(ctx context.Context, id int64, cmd interfaces.UpdateMenuItemCommand) (*domain.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		item.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Description != nil {
		item.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Category != nil {
		item.Category = domain.Category(*cmd.Category)
	}
	if cmd.Price != nil {
		item.Price = *cmd.Price
	}
	if cmd.IsAvailable != nil {
		item.IsAvailable = *cmd.IsAvailable
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("menu_item_updated", "Menu item updated", logger.RequestID(ctx), map[string]interface{}{"menu_item_id": item.ID})
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("menu_item_deleted", "Menu item deleted", logger.RequestID(ctx), map[string]interface{}{"menu_item_id": id})
	return nil
}
