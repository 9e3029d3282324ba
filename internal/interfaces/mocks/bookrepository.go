package mocks

import (
	"context"

	"github.com/haguru/bookstore/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// MockBookRepository is a testify mock of interfaces.BookRepository.
type MockBookRepository struct {
	mock.Mock
}

// NewMockBookRepository creates a mock whose expectations are asserted on cleanup.
func NewMockBookRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookRepository {
	m := &MockBookRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func docs(ret mock.Arguments) ([]bson.D, error) {
	var r0 []bson.D
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]bson.D)
	}
	return r0, ret.Error(1)
}

func (m *MockBookRepository) FindByGenre(ctx context.Context, genre string) ([]bson.D, error) {
	return docs(m.Called(ctx, genre))
}

func (m *MockBookRepository) FindPublishedAfter(ctx context.Context, year float64) ([]bson.D, error) {
	return docs(m.Called(ctx, year))
}

func (m *MockBookRepository) FindByAuthor(ctx context.Context, author string) ([]bson.D, error) {
	return docs(m.Called(ctx, author))
}

func (m *MockBookRepository) UpdatePrice(ctx context.Context, title string, price float64) (int64, int64, error) {
	ret := m.Called(ctx, title, price)
	return ret.Get(0).(int64), ret.Get(1).(int64), ret.Error(2)
}

func (m *MockBookRepository) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	ret := m.Called(ctx, title)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *MockBookRepository) FindInStockPublishedAfter(ctx context.Context, year int) ([]bson.D, error) {
	return docs(m.Called(ctx, year))
}

func (m *MockBookRepository) FindProjected(ctx context.Context) ([]bson.D, error) {
	return docs(m.Called(ctx))
}

func (m *MockBookRepository) FindSortedByPrice(ctx context.Context, order models.SortOrder) ([]bson.D, error) {
	return docs(m.Called(ctx, order))
}

func (m *MockBookRepository) FindPage(ctx context.Context, page int64) ([]bson.D, error) {
	return docs(m.Called(ctx, page))
}

func (m *MockBookRepository) AveragePriceByGenre(ctx context.Context) ([]bson.D, error) {
	ret := m.Called(ctx)
	var r0 []bson.D
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]bson.D)
	}
	return r0, ret.Error(1)
}

func (m *MockBookRepository) TopAuthor(ctx context.Context) ([]bson.D, error) {
	ret := m.Called(ctx)
	var r0 []bson.D
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]bson.D)
	}
	return r0, ret.Error(1)
}

func (m *MockBookRepository) CountByDecade(ctx context.Context) ([]bson.D, error) {
	ret := m.Called(ctx)
	var r0 []bson.D
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]bson.D)
	}
	return r0, ret.Error(1)
}

func (m *MockBookRepository) CreateTitleIndex(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

func (m *MockBookRepository) CreateAuthorYearIndex(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

func (m *MockBookRepository) ExplainTitleLookup(ctx context.Context, title string) (bson.Raw, error) {
	ret := m.Called(ctx, title)
	var r0 bson.Raw
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(bson.Raw)
	}
	return r0, ret.Error(1)
}
