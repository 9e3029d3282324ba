package models

// BSON field names of a book document.
const (
	FieldID            = "_id"
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldGenre         = "genre"
	FieldPublishedYear = "published_year"
	FieldPrice         = "price"
	FieldInStock       = "in_stock"
)

// Book represents a document of the books collection.
// The tool never creates books; the type is used to seed and decode them.
type Book struct {
	Title         string  `bson:"title" json:"title"`
	Author        string  `bson:"author" json:"author"`
	Genre         string  `bson:"genre" json:"genre"`
	PublishedYear int     `bson:"published_year" json:"published_year"`
	Price         float64 `bson:"price" json:"price"`
	InStock       bool    `bson:"in_stock" json:"in_stock"`
}

// NewBook creates a new Book instance.
// Note: No validation is performed here.
func NewBook(title, author, genre string, publishedYear int, price float64, inStock bool) *Book {
	return &Book{
		Title:         title,
		Author:        author,
		Genre:         genre,
		PublishedYear: publishedYear,
		Price:         price,
		InStock:       inStock,
	}
}

// PageSize is the number of books on one page.
const PageSize = 5

// SortOrder is a MongoDB sort direction.
type SortOrder int

const (
	Ascending  SortOrder = 1
	Descending SortOrder = -1
)
