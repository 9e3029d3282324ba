package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockBookService is a testify mock of interfaces.BookService.
type MockBookService struct {
	mock.Mock
}

// NewMockBookService creates a mock whose expectations are asserted on cleanup.
func NewMockBookService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookService {
	m := &MockBookService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookService) BooksByGenre(ctx context.Context, genre string) error {
	return m.Called(ctx, genre).Error(0)
}

func (m *MockBookService) BooksPublishedAfter(ctx context.Context, year float64) error {
	return m.Called(ctx, year).Error(0)
}

func (m *MockBookService) BooksByAuthor(ctx context.Context, author string) error {
	return m.Called(ctx, author).Error(0)
}

func (m *MockBookService) UpdatePrice(ctx context.Context, title string, price float64) error {
	return m.Called(ctx, title, price).Error(0)
}

func (m *MockBookService) DeleteBook(ctx context.Context, title string) error {
	return m.Called(ctx, title).Error(0)
}

func (m *MockBookService) InStockAfter2010(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBookService) ProjectedBooks(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBookService) BooksSortedByPrice(ctx context.Context, ascending bool) error {
	return m.Called(ctx, ascending).Error(0)
}

func (m *MockBookService) BooksPage(ctx context.Context, page int64) error {
	return m.Called(ctx, page).Error(0)
}

func (m *MockBookService) AveragePriceByGenre(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBookService) TopAuthor(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBookService) BooksByDecade(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBookService) CreateTitleIndex(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBookService) CreateAuthorYearIndex(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBookService) ExplainTitleSearch(ctx context.Context, title string) error {
	return m.Called(ctx, title).Error(0)
}
