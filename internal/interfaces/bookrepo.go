package interfaces

import (
	"context"

	"github.com/haguru/bookstore/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// BookRepository issues exactly one database call per method against the books collection.
// Find and aggregate methods return raw documents so results print in their stored shape.
type BookRepository interface {
	FindByGenre(ctx context.Context, genre string) ([]bson.D, error)
	FindPublishedAfter(ctx context.Context, year float64) ([]bson.D, error)
	FindByAuthor(ctx context.Context, author string) ([]bson.D, error)
	UpdatePrice(ctx context.Context, title string, price float64) (matched int64, modified int64, err error)
	DeleteByTitle(ctx context.Context, title string) (int64, error)
	FindInStockPublishedAfter(ctx context.Context, year int) ([]bson.D, error)
	FindProjected(ctx context.Context) ([]bson.D, error)
	FindSortedByPrice(ctx context.Context, order models.SortOrder) ([]bson.D, error)
	FindPage(ctx context.Context, page int64) ([]bson.D, error)
	AveragePriceByGenre(ctx context.Context) ([]bson.D, error)
	TopAuthor(ctx context.Context) ([]bson.D, error)
	CountByDecade(ctx context.Context) ([]bson.D, error)
	CreateTitleIndex(ctx context.Context) (string, error)
	CreateAuthorYearIndex(ctx context.Context) (string, error)
	ExplainTitleLookup(ctx context.Context, title string) (bson.Raw, error)
}
