package mongo

import "github.com/haguru/bookstore/internal/models"

const (
	// PageSize is the number of books returned per page.
	PageSize = models.PageSize

	// ExplainVerbosity matches what a bare cursor explain() reports.
	ExplainVerbosity = "allPlansExecution"

	// Aggregation output fields.
	averagePriceField = "averagePrice"
	bookCountField    = "bookCount"
	countField        = "count"
	decadeField       = "decade"
)
