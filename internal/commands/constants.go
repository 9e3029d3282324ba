package commands

const (
	HelpHeader = "Invalid command. Available commands are:"

	ErrInvalidPageNumber = "invalid page number"

	// Command names
	CmdGenre          = "genre"
	CmdAfterYear      = "afterYear"
	CmdAuthor         = "author"
	CmdUpdatePrice    = "updatePrice"
	CmdDeleteBook     = "deleteBook"
	CmdBooksAfter2010 = "booksAfter2010"
	CmdProjection     = "projection"
	CmdSortAsc        = "sortAsc"
	CmdSortDesc       = "sortDesc"
	CmdPage           = "page"
	CmdAvgPrice       = "avgPrice"
	CmdTopAuthor      = "topAuthor"
	CmdGroupDecade    = "groupDecade"
	CmdIndex          = "index"
	CmdCompoundIndex  = "compoundIndex"
	CmdExplain        = "explain"
)
