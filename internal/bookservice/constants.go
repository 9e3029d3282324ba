package bookservice

const (
	// Error messages for book service operations
	ErrFindingBooks       = "failed to find books"
	ErrUpdatingPrice      = "failed to update price"
	ErrDeletingBook       = "failed to delete book"
	ErrAggregatingBooks   = "failed to aggregate books"
	ErrCreatingIndex      = "failed to create index"
	ErrExplainingQuery    = "failed to explain query"
	ErrFormattingDocument = "failed to format document"
)

const (
	// Console labels
	LabelGenreBooks          = "Genre Books:"
	LabelBooksAfterFormat    = "Books published after %s:"
	LabelBooksByFormat       = "Books by %s:"
	LabelUpdatedFormat       = "updated \"%s\" with new price:%s"
	LabelDeletedFormat       = "Deleted:\"%s\""
	LabelInStockAfter2010    = "Books in stock and published after 2010:"
	LabelProjection          = "Books with projection:"
	LabelSortedAscending     = "Books sorted by price (ascending):"
	LabelSortedDescending    = "Books sorted by price (descending):"
	LabelPageFormat          = "Page %d:"
	LabelAveragePrice        = "Average price by genre:"
	LabelTopAuthor           = "Author with most books:"
	LabelGroupedByDecade     = "Books grouped by decade:"
	LabelIndexFormat         = "Index created: %s"
	LabelCompoundIndexFormat = "Compound Index created: %s"
)

const (
	InStockAfterYear = 2010
	jsonIndent       = "  "
)
