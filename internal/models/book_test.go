package models

import (
	"reflect"
	"testing"
)

func TestNewBook(t *testing.T) {
	type args struct {
		title         string
		author        string
		genre         string
		publishedYear int
		price         float64
		inStock       bool
	}
	tests := []struct {
		name string
		args args
		want *Book
	}{
		{
			name: "Create new book with all fields",
			args: args{
				title:         "Dune",
				author:        "Frank Herbert",
				genre:         "Science Fiction",
				publishedYear: 1965,
				price:         9.99,
				inStock:       true,
			},
			want: &Book{
				Title:         "Dune",
				Author:        "Frank Herbert",
				Genre:         "Science Fiction",
				PublishedYear: 1965,
				Price:         9.99,
				InStock:       true,
			},
		},
		{
			name: "Create new book with zero values",
			args: args{},
			want: &Book{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.args
			if got := NewBook(a.title, a.author, a.genre, a.publishedYear, a.price, a.inStock); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewBook() = %v, want %v", got, tt.want)
			}
		})
	}
}
