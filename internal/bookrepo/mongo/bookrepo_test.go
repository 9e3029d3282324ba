package mongo

import (
	"context"
	"math"
	"testing"

	"github.com/haguru/bookstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func newRepo(mt *mtest.T) *MongoBookRepository {
	mt.Helper()
	repo, err := NewMongoBookRepository(mt.Coll)
	require.NoError(mt, err)
	return repo.(*MongoBookRepository)
}

func bookDoc(title, author, genre string, year int32, price float64, inStock bool) bson.D {
	return bson.D{
		{Key: "title", Value: title},
		{Key: "author", Value: author},
		{Key: "genre", Value: genre},
		{Key: "published_year", Value: year},
		{Key: "price", Value: price},
		{Key: "in_stock", Value: inStock},
	}
}

// int64OrZero reads a numeric field that the driver may omit when it equals zero.
func int64OrZero(raw bson.Raw, key string) int64 {
	v, err := raw.LookupErr(key)
	if err != nil {
		return 0
	}
	return v.AsInt64()
}

func stageNames(t *testing.T, cmd bson.Raw) []string {
	t.Helper()
	values, err := cmd.Lookup("pipeline").Array().Values()
	require.NoError(t, err)

	names := make([]string, 0, len(values))
	for _, v := range values {
		elems, err := v.Document().Elements()
		require.NoError(t, err)
		require.Len(t, elems, 1)
		names = append(names, elems[0].Key())
	}
	return names
}

func TestNewMongoBookRepository(t *testing.T) {
	_, err := NewMongoBookRepository(nil)
	assert.Error(t, err)
}

func TestMongoBookRepository_Lookups(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("by genre", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bookDoc("A", "Ann", "Fantasy", 1999, 10, true),
			bookDoc("B", "Bob", "Fantasy", 2012, 20, false),
		))

		books, err := newRepo(mt).FindByGenre(context.Background(), "Fantasy")
		require.NoError(mt, err)
		assert.Len(mt, books, 2)
		assert.Equal(mt, "A", books[0].Map()["title"])

		evt := mt.GetStartedEvent()
		assert.Equal(mt, "find", evt.CommandName)
		assert.Equal(mt, "Fantasy", evt.Command.Lookup("filter", "genre").StringValue())
	})

	mt.Run("published after year", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bookDoc("B", "Bob", "Fantasy", 2012, 20, false),
		))

		books, err := newRepo(mt).FindPublishedAfter(context.Background(), 2000)
		require.NoError(mt, err)
		assert.Len(mt, books, 1)

		evt := mt.GetStartedEvent()
		assert.Equal(mt, "find", evt.CommandName)
		assert.Equal(mt, float64(2000), evt.Command.Lookup("filter", "published_year", "$gt").Double())
	})

	mt.Run("unparseable year is sent as NaN", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		books, err := newRepo(mt).FindPublishedAfter(context.Background(), math.NaN())
		require.NoError(mt, err)
		assert.Empty(mt, books)

		evt := mt.GetStartedEvent()
		assert.True(mt, math.IsNaN(evt.Command.Lookup("filter", "published_year", "$gt").Double()))
	})

	mt.Run("by author", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bookDoc("C", "Cara", "Mystery", 1987, 12.5, true),
		))

		books, err := newRepo(mt).FindByAuthor(context.Background(), "Cara")
		require.NoError(mt, err)
		assert.Len(mt, books, 1)

		evt := mt.GetStartedEvent()
		assert.Equal(mt, "Cara", evt.Command.Lookup("filter", "author").StringValue())
	})

	mt.Run("in stock after 2010", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := newRepo(mt).FindInStockPublishedAfter(context.Background(), 2010)
		require.NoError(mt, err)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.True(mt, filter.Lookup("in_stock").Boolean())
		assert.Equal(mt, int64(2010), filter.Lookup("published_year", "$gt").AsInt64())
	})

	mt.Run("driver errors are returned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad filter",
		}))

		books, err := newRepo(mt).FindByGenre(context.Background(), "Fantasy")
		assert.Error(mt, err)
		assert.Nil(mt, books)
	})
}

func TestMongoBookRepository_ShapedFinds(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("projection keeps title author and price", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "title", Value: "A"}, {Key: "author", Value: "Ann"}, {Key: "price", Value: 10.0}},
		))

		books, err := newRepo(mt).FindProjected(context.Background())
		require.NoError(mt, err)
		assert.Len(mt, books, 1)

		cmd := mt.GetStartedEvent().Command
		filter, err := cmd.Lookup("filter").Document().Elements()
		require.NoError(mt, err)
		assert.Empty(mt, filter)
		projection := cmd.Lookup("projection").Document()
		for _, field := range []string{"title", "author", "price"} {
			assert.Equal(mt, int64(1), projection.Lookup(field).AsInt64(), field)
		}
		_, err = projection.LookupErr("genre")
		assert.Error(mt, err)
	})

	tests := []struct {
		name  string
		order models.SortOrder
		want  int64
	}{
		{name: "sort ascending", order: models.Ascending, want: 1},
		{name: "sort descending", order: models.Descending, want: -1},
	}
	for _, tt := range tests {
		mt.Run(tt.name, func(mt *mtest.T) {
			mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

			_, err := newRepo(mt).FindSortedByPrice(context.Background(), tt.order)
			require.NoError(mt, err)

			cmd := mt.GetStartedEvent().Command
			assert.Equal(mt, tt.want, cmd.Lookup("sort", "price").AsInt64())
		})
	}

	pages := []struct {
		name     string
		page     int64
		wantSkip int64
	}{
		{name: "first page", page: 1, wantSkip: 0},
		{name: "second page", page: 2, wantSkip: 5},
		{name: "fourth page", page: 4, wantSkip: 15},
	}
	for _, tt := range pages {
		mt.Run(tt.name, func(mt *mtest.T) {
			mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

			_, err := newRepo(mt).FindPage(context.Background(), tt.page)
			require.NoError(mt, err)

			cmd := mt.GetStartedEvent().Command
			assert.Equal(mt, tt.wantSkip, int64OrZero(cmd, "skip"))
			assert.Equal(mt, int64(PageSize), cmd.Lookup("limit").AsInt64())
			_, err = cmd.LookupErr("sort")
			assert.Error(mt, err, "pages use natural order")
		})
	}
}

func TestMongoBookRepository_Mutations(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update price", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		matched, modified, err := newRepo(mt).UpdatePrice(context.Background(), "Dune", 12.5)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), matched)
		assert.Equal(mt, int64(1), modified)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "Dune", cmd.Lookup("updates", "0", "q", "title").StringValue())
		assert.Equal(mt, 12.5, cmd.Lookup("updates", "0", "u", "$set", "price").Double())
	})

	mt.Run("update with no match is a no-op", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		matched, modified, err := newRepo(mt).UpdatePrice(context.Background(), "missing", 1)
		require.NoError(mt, err)
		assert.Zero(mt, matched)
		assert.Zero(mt, modified)
	})

	mt.Run("delete by title", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		deleted, err := newRepo(mt).DeleteByTitle(context.Background(), "Dune")
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), deleted)

		evt := mt.GetStartedEvent()
		assert.Equal(mt, "delete", evt.CommandName)
		assert.Equal(mt, "Dune", evt.Command.Lookup("deletes", "0", "q", "title").StringValue())
		assert.Equal(mt, int64(1), evt.Command.Lookup("deletes", "0", "limit").AsInt64())
	})

	mt.Run("delete with no match is a no-op", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		deleted, err := newRepo(mt).DeleteByTitle(context.Background(), "missing")
		require.NoError(mt, err)
		assert.Zero(mt, deleted)
	})
}

func TestMongoBookRepository_Aggregations(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("average price by genre", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "F"}, {Key: "averagePrice", Value: 15.0}},
		))

		rows, err := newRepo(mt).AveragePriceByGenre(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []bson.D{{{Key: "_id", Value: "F"}, {Key: "averagePrice", Value: 15.0}}}, rows)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, []string{"$group"}, stageNames(mt.T, cmd))
		assert.Equal(mt, "$genre", cmd.Lookup("pipeline", "0", "$group", "_id").StringValue())
		assert.Equal(mt, "$price", cmd.Lookup("pipeline", "0", "$group", "averagePrice", "$avg").StringValue())
	})

	mt.Run("top author", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Ann"}, {Key: "bookCount", Value: int32(3)}},
		))

		rows, err := newRepo(mt).TopAuthor(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []bson.D{{{Key: "_id", Value: "Ann"}, {Key: "bookCount", Value: int32(3)}}}, rows)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, []string{"$group", "$sort", "$limit"}, stageNames(mt.T, cmd))
		assert.Equal(mt, "$author", cmd.Lookup("pipeline", "0", "$group", "_id").StringValue())
		assert.Equal(mt, int64(-1), cmd.Lookup("pipeline", "1", "$sort", "bookCount").AsInt64())
		assert.Equal(mt, int64(1), cmd.Lookup("pipeline", "2", "$limit").AsInt64())
	})

	mt.Run("count by decade", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int32(1980)}, {Key: "count", Value: int32(2)}},
			bson.D{{Key: "_id", Value: 2010.0}, {Key: "count", Value: int32(1)}},
		))

		rows, err := newRepo(mt).CountByDecade(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []bson.D{
			{{Key: "_id", Value: int32(1980)}, {Key: "count", Value: int32(2)}},
			{{Key: "_id", Value: 2010.0}, {Key: "count", Value: int32(1)}},
		}, rows)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, []string{"$project", "$group", "$sort"}, stageNames(mt.T, cmd))
		assert.Equal(mt, "$decade", cmd.Lookup("pipeline", "1", "$group", "_id").StringValue())
		assert.Equal(mt, int64(1), cmd.Lookup("pipeline", "2", "$sort", "_id").AsInt64())
		assert.Equal(mt, int64(10), cmd.Lookup("pipeline", "0", "$project", "decade", "$subtract", "1", "$mod", "1").AsInt64())
	})

	mt.Run("null and empty genres stay distinct", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "averagePrice", Value: 5.0}},
			bson.D{{Key: "_id", Value: ""}, {Key: "averagePrice", Value: 9.0}},
		))

		rows, err := newRepo(mt).AveragePriceByGenre(context.Background())
		require.NoError(mt, err)
		require.Len(mt, rows, 2)
		assert.Nil(mt, rows[0].Map()["_id"])
		assert.Equal(mt, "", rows[1].Map()["_id"])
	})

	mt.Run("decimal average", func(mt *mtest.T) {
		avg, err := primitive.ParseDecimal128("12.345")
		require.NoError(mt, err)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "F"}, {Key: "averagePrice", Value: avg}},
		))

		rows, err := newRepo(mt).AveragePriceByGenre(context.Background())
		require.NoError(mt, err)
		require.Len(mt, rows, 1)
		assert.Equal(mt, avg, rows[0].Map()["averagePrice"])
	})

	mt.Run("null and fractional decades", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "count", Value: int32(2)}},
			bson.D{{Key: "_id", Value: 1980.5}, {Key: "count", Value: int32(1)}},
		))

		rows, err := newRepo(mt).CountByDecade(context.Background())
		require.NoError(mt, err)
		require.Len(mt, rows, 2)
		assert.Nil(mt, rows[0].Map()["_id"])
		assert.Equal(mt, 1980.5, rows[1].Map()["_id"])
	})
}

func TestMongoBookRepository_Indexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("title index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		name, err := newRepo(mt).CreateTitleIndex(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, "title_1", name)

		evt := mt.GetStartedEvent()
		assert.Equal(mt, "createIndexes", evt.CommandName)
		assert.Equal(mt, int64(1), evt.Command.Lookup("indexes", "0", "key", "title").AsInt64())
	})

	mt.Run("compound index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		name, err := newRepo(mt).CreateAuthorYearIndex(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, "author_1_published_year_-1", name)

		key := mt.GetStartedEvent().Command.Lookup("indexes", "0", "key").Document()
		elems, err := key.Elements()
		require.NoError(mt, err)
		require.Len(mt, elems, 2)
		assert.Equal(mt, "author", elems[0].Key())
		assert.Equal(mt, "published_year", elems[1].Key())
		assert.Equal(mt, int64(-1), elems[1].Value().AsInt64())
	})

	mt.Run("explain title lookup", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "queryPlanner", Value: bson.D{{Key: "winningPlan", Value: bson.D{{Key: "stage", Value: "COLLSCAN"}}}}},
		))

		plan, err := newRepo(mt).ExplainTitleLookup(context.Background(), "Dune")
		require.NoError(mt, err)
		assert.Equal(mt, "COLLSCAN", plan.Lookup("queryPlanner", "winningPlan", "stage").StringValue())

		evt := mt.GetStartedEvent()
		assert.Equal(mt, "explain", evt.CommandName)
		assert.Equal(mt, mt.Coll.Name(), evt.Command.Lookup("explain", "find").StringValue())
		assert.Equal(mt, "Dune", evt.Command.Lookup("explain", "filter", "title").StringValue())
		assert.Equal(mt, ExplainVerbosity, evt.Command.Lookup("verbosity").StringValue())
	})
}
