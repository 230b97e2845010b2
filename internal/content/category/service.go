package category

import (
	"context"
	"log/slog"

	"github.com/lithopress/litho/internal/platform/validate"
	"github.com/lithopress/litho/pkg/slug"
	"github.com/lithopress/litho/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, identifier string) (*Category, error) {
	if len(identifier) == 36 {
		return service.repo.GetByID(context, identifier)
	}
	return service.repo.GetBySlug(context, identifier)
}

func (service *Service) Create(context context.Context, name string) (*Category, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	category := &Category{
		ID:   uuid.New(),
		Name: name,
		Slug: slug.From(name),
	}

	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created",
		slog.String("category_id", category.ID),
		slog.String("name", category.Name),
	)

	return category, nil
}

func (service *Service) Update(context context.Context, id, name string) (*Category, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	category, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Slug = slug.From(name)

	if err := service.repo.Update(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_updated", slog.String("category_id", id))

	return category, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.String("category_id", id))

	return nil
}
