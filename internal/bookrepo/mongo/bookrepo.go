package mongo

import (
	"context"
	"fmt"

	"github.com/haguru/bookstore/internal/interfaces"
	"github.com/haguru/bookstore/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookRepository implements BookRepository on a single collection handle.
// Each method performs exactly one driver call.
type MongoBookRepository struct {
	collection *mongosdk.Collection
}

// NewMongoBookRepository creates a new MongoDB repository instance.
func NewMongoBookRepository(collection *mongosdk.Collection) (interfaces.BookRepository, error) {
	if collection == nil {
		return nil, fmt.Errorf("collection cannot be nil")
	}
	return &MongoBookRepository{collection: collection}, nil
}

// FindByGenre returns every book whose genre equals genre.
func (r *MongoBookRepository) FindByGenre(ctx context.Context, genre string) ([]bson.D, error) {
	return r.find(ctx, bson.D{{Key: models.FieldGenre, Value: genre}})
}

// FindPublishedAfter returns every book with published_year > year.
// year is a float so an unparseable argument can be passed through as NaN, which matches nothing.
func (r *MongoBookRepository) FindPublishedAfter(ctx context.Context, year float64) ([]bson.D, error) {
	return r.find(ctx, bson.D{{Key: models.FieldPublishedYear, Value: bson.D{{Key: "$gt", Value: year}}}})
}

// FindByAuthor returns every book whose author equals author.
func (r *MongoBookRepository) FindByAuthor(ctx context.Context, author string) ([]bson.D, error) {
	return r.find(ctx, bson.D{{Key: models.FieldAuthor, Value: author}})
}

// UpdatePrice sets the price of the first book titled title.
// Zero matches is not an error.
func (r *MongoBookRepository) UpdatePrice(ctx context.Context, title string, price float64) (int64, int64, error) {
	filter := bson.D{{Key: models.FieldTitle, Value: title}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: models.FieldPrice, Value: price}}}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, 0, fmt.Errorf("failed updating price of %q: %w", title, err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// DeleteByTitle removes the first book titled title.
// Zero matches is not an error.
func (r *MongoBookRepository) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.D{{Key: models.FieldTitle, Value: title}})
	if err != nil {
		return 0, fmt.Errorf("failed deleting %q: %w", title, err)
	}
	return res.DeletedCount, nil
}

// FindInStockPublishedAfter returns books that are in stock and published after year.
func (r *MongoBookRepository) FindInStockPublishedAfter(ctx context.Context, year int) ([]bson.D, error) {
	return r.find(ctx, bson.D{
		{Key: models.FieldInStock, Value: true},
		{Key: models.FieldPublishedYear, Value: bson.D{{Key: "$gt", Value: year}}},
	})
}

// FindProjected returns every book restricted to title, author and price.
func (r *MongoBookRepository) FindProjected(ctx context.Context) ([]bson.D, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: models.FieldTitle, Value: 1},
		{Key: models.FieldAuthor, Value: 1},
		{Key: models.FieldPrice, Value: 1},
	})
	return r.find(ctx, bson.D{}, opts)
}

// FindSortedByPrice returns every book ordered by price.
func (r *MongoBookRepository) FindSortedByPrice(ctx context.Context, order models.SortOrder) ([]bson.D, error) {
	opts := options.Find().SetSort(bson.D{{Key: models.FieldPrice, Value: int(order)}})
	return r.find(ctx, bson.D{}, opts)
}

// FindPage returns the 1-based page of PageSize books in natural order.
// Pages below 1 yield a negative skip which the server rejects.
func (r *MongoBookRepository) FindPage(ctx context.Context, page int64) ([]bson.D, error) {
	opts := options.Find().
		SetSkip((page - 1) * PageSize).
		SetLimit(PageSize)
	return r.find(ctx, bson.D{}, opts)
}

// AveragePriceByGenre returns the mean price of each genre.
func (r *MongoBookRepository) AveragePriceByGenre(ctx context.Context) ([]bson.D, error) {
	pipeline := mongosdk.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: models.FieldID, Value: "$" + models.FieldGenre},
			{Key: averagePriceField, Value: bson.D{{Key: "$avg", Value: "$" + models.FieldPrice}}},
		}}},
	}

	return r.aggregate(ctx, pipeline)
}

// TopAuthor returns the author with the most books, or nothing on an empty collection.
func (r *MongoBookRepository) TopAuthor(ctx context.Context) ([]bson.D, error) {
	pipeline := mongosdk.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: models.FieldID, Value: "$" + models.FieldAuthor},
			{Key: bookCountField, Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: bookCountField, Value: -1}}}},
		{{Key: "$limit", Value: 1}},
	}

	return r.aggregate(ctx, pipeline)
}

// CountByDecade returns book counts per decade in ascending decade order.
func (r *MongoBookRepository) CountByDecade(ctx context.Context) ([]bson.D, error) {
	year := "$" + models.FieldPublishedYear
	pipeline := mongosdk.Pipeline{
		{{Key: "$project", Value: bson.D{
			{Key: decadeField, Value: bson.D{{Key: "$subtract", Value: bson.A{
				year,
				bson.D{{Key: "$mod", Value: bson.A{year, 10}}},
			}}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: models.FieldID, Value: "$" + decadeField},
			{Key: countField, Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: models.FieldID, Value: 1}}}},
	}

	return r.aggregate(ctx, pipeline)
}

// CreateTitleIndex creates an ascending index on title and returns its name.
func (r *MongoBookRepository) CreateTitleIndex(ctx context.Context) (string, error) {
	return r.createIndex(ctx, bson.D{{Key: models.FieldTitle, Value: 1}})
}

// CreateAuthorYearIndex creates the compound index author ascending, published_year descending.
func (r *MongoBookRepository) CreateAuthorYearIndex(ctx context.Context) (string, error) {
	return r.createIndex(ctx, bson.D{
		{Key: models.FieldAuthor, Value: 1},
		{Key: models.FieldPublishedYear, Value: -1},
	})
}

// ExplainTitleLookup returns the query plan of an exact title lookup.
// The v1 driver has no cursor explain, so the explain command is run directly.
func (r *MongoBookRepository) ExplainTitleLookup(ctx context.Context, title string) (bson.Raw, error) {
	cmd := bson.D{
		{Key: "explain", Value: bson.D{
			{Key: "find", Value: r.collection.Name()},
			{Key: "filter", Value: bson.D{{Key: models.FieldTitle, Value: title}}},
		}},
		{Key: "verbosity", Value: ExplainVerbosity},
	}

	plan, err := r.collection.Database().RunCommand(ctx, cmd).Raw()
	if err != nil {
		return nil, fmt.Errorf("failed explaining lookup of %q: %w", title, err)
	}
	return plan, nil
}

func (r *MongoBookRepository) find(ctx context.Context, filter bson.D, opts ...*options.FindOptions) ([]bson.D, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed finding books in %s with filter %v: %w", r.collection.Name(), filter, err)
	}

	books := []bson.D{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}
	return books, nil
}

// aggregate keeps the rows as the server returned them. Group keys may be
// null or of any BSON type, and averages may be decimals.
func (r *MongoBookRepository) aggregate(ctx context.Context, pipeline mongosdk.Pipeline) ([]bson.D, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed aggregating %s: %w", r.collection.Name(), err)
	}

	rows := []bson.D{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation results: %w", err)
	}
	return rows, nil
}

func (r *MongoBookRepository) createIndex(ctx context.Context, keys bson.D) (string, error) {
	name, err := r.collection.Indexes().CreateOne(ctx, mongosdk.IndexModel{Keys: keys})
	if err != nil {
		return "", fmt.Errorf("failed creating index %v on %s: %w", keys, r.collection.Name(), err)
	}
	return name, nil
}
