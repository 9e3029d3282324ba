// bookservice.go
package bookservice

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/haguru/bookstore/internal/interfaces"
	"github.com/haguru/bookstore/internal/models"
	"github.com/haguru/bookstore/pkg/helper"

	"go.mongodb.org/mongo-driver/bson"
)

// BookService runs one repository call per operation and prints the outcome to Out.
type BookService struct {
	BookRepo interfaces.BookRepository
	Logger   interfaces.Logger
	Out      io.Writer
}

// NewBookService creates a new BookService instance.
func NewBookService(repo interfaces.BookRepository, logger interfaces.Logger, out io.Writer) *BookService {
	return &BookService{
		BookRepo: repo,
		Logger:   logger,
		Out:      out,
	}
}

// BooksByGenre prints every book of genre.
func (s *BookService) BooksByGenre(ctx context.Context, genre string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "genre", genre)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	books, err := s.BookRepo.FindByGenre(ctx, genre)
	if err != nil {
		return s.fail(funcName, ErrFindingBooks, err)
	}
	return writeDocuments(s.Out, LabelGenreBooks, books)
}

// BooksPublishedAfter prints every book published after year.
func (s *BookService) BooksPublishedAfter(ctx context.Context, year float64) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "year", year)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	books, err := s.BookRepo.FindPublishedAfter(ctx, year)
	if err != nil {
		return s.fail(funcName, ErrFindingBooks, err)
	}
	return writeDocuments(s.Out, fmt.Sprintf(LabelBooksAfterFormat, formatNumber(year)), books)
}

// BooksByAuthor prints every book written by author.
func (s *BookService) BooksByAuthor(ctx context.Context, author string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "author", author)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	books, err := s.BookRepo.FindByAuthor(ctx, author)
	if err != nil {
		return s.fail(funcName, ErrFindingBooks, err)
	}
	return writeDocuments(s.Out, fmt.Sprintf(LabelBooksByFormat, author), books)
}

// UpdatePrice sets the price of the book titled title.
// The confirmation is printed even when nothing matched.
func (s *BookService) UpdatePrice(ctx context.Context, title string, price float64) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "title", title, "price", price)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	matched, modified, err := s.BookRepo.UpdatePrice(ctx, title, price)
	if err != nil {
		return s.fail(funcName, ErrUpdatingPrice, err)
	}
	s.Logger.Debug("Price updated", "func", funcName, "title", title, "matched", matched, "modified", modified)

	_, err = fmt.Fprintf(s.Out, LabelUpdatedFormat+"\n", title, formatNumber(price))
	return err
}

// DeleteBook removes the book titled title.
// The confirmation is printed even when nothing matched.
func (s *BookService) DeleteBook(ctx context.Context, title string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "title", title)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	deleted, err := s.BookRepo.DeleteByTitle(ctx, title)
	if err != nil {
		return s.fail(funcName, ErrDeletingBook, err)
	}
	s.Logger.Debug("Book deleted", "func", funcName, "title", title, "deleted", deleted)

	_, err = fmt.Fprintf(s.Out, LabelDeletedFormat+"\n", title)
	return err
}

// InStockAfter2010 prints books that are in stock and published after 2010.
func (s *BookService) InStockAfter2010(ctx context.Context) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	books, err := s.BookRepo.FindInStockPublishedAfter(ctx, InStockAfterYear)
	if err != nil {
		return s.fail(funcName, ErrFindingBooks, err)
	}
	return writeDocuments(s.Out, LabelInStockAfter2010, books)
}

// ProjectedBooks prints every book restricted to title, author and price.
func (s *BookService) ProjectedBooks(ctx context.Context) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	books, err := s.BookRepo.FindProjected(ctx)
	if err != nil {
		return s.fail(funcName, ErrFindingBooks, err)
	}
	return writeDocuments(s.Out, LabelProjection, books)
}

// BooksSortedByPrice prints every book ordered by price.
func (s *BookService) BooksSortedByPrice(ctx context.Context, ascending bool) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "ascending", ascending)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	order, label := models.Ascending, LabelSortedAscending
	if !ascending {
		order, label = models.Descending, LabelSortedDescending
	}

	books, err := s.BookRepo.FindSortedByPrice(ctx, order)
	if err != nil {
		return s.fail(funcName, ErrFindingBooks, err)
	}
	return writeDocuments(s.Out, label, books)
}

// BooksPage prints one page of books.
func (s *BookService) BooksPage(ctx context.Context, page int64) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "page", page)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	books, err := s.BookRepo.FindPage(ctx, page)
	if err != nil {
		return s.fail(funcName, ErrFindingBooks, err)
	}
	return writeDocuments(s.Out, fmt.Sprintf(LabelPageFormat, page), books)
}

// AveragePriceByGenre prints the mean price of each genre.
func (s *BookService) AveragePriceByGenre(ctx context.Context) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	rows, err := s.BookRepo.AveragePriceByGenre(ctx)
	if err != nil {
		return s.fail(funcName, ErrAggregatingBooks, err)
	}
	return writeDocuments(s.Out, LabelAveragePrice, rows)
}

// TopAuthor prints the author with the most books.
func (s *BookService) TopAuthor(ctx context.Context) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	rows, err := s.BookRepo.TopAuthor(ctx)
	if err != nil {
		return s.fail(funcName, ErrAggregatingBooks, err)
	}
	return writeDocuments(s.Out, LabelTopAuthor, rows)
}

// BooksByDecade prints book counts per decade.
func (s *BookService) BooksByDecade(ctx context.Context) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	rows, err := s.BookRepo.CountByDecade(ctx)
	if err != nil {
		return s.fail(funcName, ErrAggregatingBooks, err)
	}
	return writeDocuments(s.Out, LabelGroupedByDecade, rows)
}

// CreateTitleIndex creates the title index and prints its name.
func (s *BookService) CreateTitleIndex(ctx context.Context) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	name, err := s.BookRepo.CreateTitleIndex(ctx)
	if err != nil {
		return s.fail(funcName, ErrCreatingIndex, err)
	}
	s.Logger.Info("Index created", "func", funcName, "index", name)

	_, err = fmt.Fprintf(s.Out, LabelIndexFormat+"\n", name)
	return err
}

// CreateAuthorYearIndex creates the author/published_year index and prints its name.
func (s *BookService) CreateAuthorYearIndex(ctx context.Context) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	name, err := s.BookRepo.CreateAuthorYearIndex(ctx)
	if err != nil {
		return s.fail(funcName, ErrCreatingIndex, err)
	}
	s.Logger.Info("Index created", "func", funcName, "index", name)

	_, err = fmt.Fprintf(s.Out, LabelCompoundIndexFormat+"\n", name)
	return err
}

// ExplainTitleSearch prints the query plan of a title lookup as indented JSON.
func (s *BookService) ExplainTitleSearch(ctx context.Context, title string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "title", title)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	plan, err := s.BookRepo.ExplainTitleLookup(ctx, title)
	if err != nil {
		return s.fail(funcName, ErrExplainingQuery, err)
	}

	out, err := bson.MarshalExtJSONIndent(plan, false, false, "", jsonIndent)
	if err != nil {
		return s.fail(funcName, ErrFormattingDocument, err)
	}
	_, err = fmt.Fprintln(s.Out, string(out))
	return err
}

// fail wraps err for the caller, which owns reporting it.
func (s *BookService) fail(funcName, msg string, err error) error {
	s.Logger.Debug("Operation failed", "func", funcName, "error", err)
	return fmt.Errorf("%s: %w", msg, err)
}

// formatNumber renders v for console labels: integers without a fraction,
// exponents from 1e21 and Infinity spelled out.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if abs := math.Abs(v); abs >= 1e-7 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	out := strconv.FormatFloat(v, 'e', -1, 64)
	return strings.NewReplacer("e+0", "e+", "e-0", "e-").Replace(out)
}

// writeDocuments prints label followed by docs as an indented relaxed extended JSON array.
func writeDocuments(w io.Writer, label string, docs []bson.D) error {
	if len(docs) == 0 {
		_, err := fmt.Fprintf(w, "%s []\n", label)
		return err
	}

	items := make([]string, 0, len(docs))
	for _, doc := range docs {
		out, err := bson.MarshalExtJSONIndent(doc, false, false, jsonIndent, jsonIndent)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrFormattingDocument, err)
		}
		items = append(items, jsonIndent+string(out))
	}

	_, err := fmt.Fprintf(w, "%s [\n%s\n]\n", label, strings.Join(items, ",\n"))
	return err
}
