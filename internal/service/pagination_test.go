package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name       string
		page, size int
		want       []int
	}{
		{"first page", 1, 5, []int{1, 2, 3, 4, 5}},
		{"last partial page", 2, 5, []int{6, 7}},
		{"past the end", 3, 5, []int{}},
		{"page below one", 0, 3, []int{1, 2, 3}},
		{"size below one", 2, 0, []int{2}},
		{"huge page", math.MaxInt, 2, []int{}},
		{"huge size", 1, math.MaxInt, []int{1, 2, 3, 4, 5, 6, 7}},
		{"huge page and size", math.MaxInt, math.MaxInt, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := Paginate(items, tt.page, tt.size)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 7, total)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got, total := Paginate([]int{}, 1, 5)
	assert.Equal(t, []int{}, got)
	assert.Equal(t, 0, total)
}
