package category

import "context"

type Repository interface {
	List(context context.Context) ([]*Category, error)
	GetByID(context context.Context, id string) (*Category, error)
	GetBySlug(context context.Context, slug string) (*Category, error)
	Create(context context.Context, category *Category) error
	Update(context context.Context, category *Category) error
	Delete(context context.Context, id string) error
}
