package interfaces

import "context"

// BookService runs one bookstore operation and prints its outcome.
type BookService interface {
	BooksByGenre(ctx context.Context, genre string) error
	BooksPublishedAfter(ctx context.Context, year float64) error
	BooksByAuthor(ctx context.Context, author string) error
	UpdatePrice(ctx context.Context, title string, price float64) error
	DeleteBook(ctx context.Context, title string) error
	InStockAfter2010(ctx context.Context) error
	ProjectedBooks(ctx context.Context) error
	BooksSortedByPrice(ctx context.Context, ascending bool) error
	BooksPage(ctx context.Context, page int64) error
	AveragePriceByGenre(ctx context.Context) error
	TopAuthor(ctx context.Context) error
	BooksByDecade(ctx context.Context) error
	CreateTitleIndex(ctx context.Context) error
	CreateAuthorYearIndex(ctx context.Context) error
	ExplainTitleSearch(ctx context.Context, title string) error
}
