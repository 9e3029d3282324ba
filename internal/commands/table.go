package commands

import (
	"context"

	"github.com/haguru/bookstore/internal/interfaces"
)

// Table returns the bookstore commands in help order.
func Table() []Command {
	return []Command{
		{Name: CmdGenre, Args: []string{"genre"}, Run: func(ctx context.Context, svc interfaces.BookService, args []string) error {
			return svc.BooksByGenre(ctx, args[0])
		}},
		{Name: CmdAfterYear, Args: []string{"year"}, Run: func(ctx context.Context, svc interfaces.BookService, args []string) error {
			return svc.BooksPublishedAfter(ctx, ParseIntArg(args[0]))
		}},
		{Name: CmdAuthor, Args: []string{"author"}, Run: func(ctx context.Context, svc interfaces.BookService, args []string) error {
			return svc.BooksByAuthor(ctx, args[0])
		}},
		{Name: CmdUpdatePrice, Args: []string{"title", "price"}, Run: func(ctx context.Context, svc interfaces.BookService, args []string) error {
			return svc.UpdatePrice(ctx, args[0], ParseFloatArg(args[1]))
		}},
		{Name: CmdDeleteBook, Args: []string{"title"}, Run: func(ctx context.Context, svc interfaces.BookService, args []string) error {
			return svc.DeleteBook(ctx, args[0])
		}},
		{Name: CmdBooksAfter2010, Run: func(ctx context.Context, svc interfaces.BookService, _ []string) error {
			return svc.InStockAfter2010(ctx)
		}},
		{Name: CmdProjection, Run: func(ctx context.Context, svc interfaces.BookService, _ []string) error {
			return svc.ProjectedBooks(ctx)
		}},
		{Name: CmdSortAsc, Run: func(ctx context.Context, svc interfaces.BookService, _ []string) error {
			return svc.BooksSortedByPrice(ctx, true)
		}},
		{Name: CmdSortDesc, Run: func(ctx context.Context, svc interfaces.BookService, _ []string) error {
			return svc.BooksSortedByPrice(ctx, false)
		}},
		{Name: CmdPage, Args: []string{"pageNumber"}, Run: func(ctx context.Context, svc interfaces.BookService, args []string) error {
			page, err := ParsePageArg(args[0])
			if err != nil {
				return err
			}
			return svc.BooksPage(ctx, page)
		}},
		{Name: CmdAvgPrice, Run: func(ctx context.Context, svc interfaces.BookService, _ []string) error {
			return svc.AveragePriceByGenre(ctx)
		}},
		{Name: CmdTopAuthor, Run: func(ctx context.Context, svc interfaces.BookService, _ []string) error {
			return svc.TopAuthor(ctx)
		}},
		{Name: CmdGroupDecade, Run: func(ctx context.Context, svc interfaces.BookService, _ []string) error {
			return svc.BooksByDecade(ctx)
		}},
		{Name: CmdIndex, Run: func(ctx context.Context, svc interfaces.BookService, _ []string) error {
			return svc.CreateTitleIndex(ctx)
		}},
		{Name: CmdCompoundIndex, Run: func(ctx context.Context, svc interfaces.BookService, _ []string) error {
			return svc.CreateAuthorYearIndex(ctx)
		}},
		{Name: CmdExplain, Args: []string{"title"}, Run: func(ctx context.Context, svc interfaces.BookService, args []string) error {
			return svc.ExplainTitleSearch(ctx, args[0])
		}},
	}
}
