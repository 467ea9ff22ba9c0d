package dto

import "testing"

func TestPaginationQueryNormalize(t *testing.T) {
	tests := []struct {
		in         PaginationQuery
		wantLimit  int
		wantOffset int
	}{
		{PaginationQuery{}, 20, 0},
		{PaginationQuery{Page: 3, Limit: 10}, 10, 20},
		{PaginationQuery{Page: -1, Limit: 5}, 5, 0},
	}
	for _, tt := range tests {
		limit, offset := tt.in.Normalize()
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Errorf("%+v.Normalize() = (%d, %d), want (%d, %d)", tt.in, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
