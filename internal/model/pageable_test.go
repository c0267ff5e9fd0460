package model_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/libraryman/libraryman-api/internal/errs"
	"github.com/libraryman/libraryman-api/internal/model"
)

func TestResolvePageable(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name        string
		fields      model.SortFields
		defaultSort string
		page, size  int
		sortBy      string
		sortDir     string
		want        model.Pageable
		wantErr     error
	}{
		{
			name:        "defaults",
			fields:      model.BookSortFields,
			defaultSort: "title",
			page:        -1,
			size:        0,
			want: model.Pageable{
				Page: 0, Size: model.DefaultPageSize,
				OrderBy: []model.Order{{Column: "title"}},
			},
		},
		{
			name:        "override field and direction",
			fields:      model.BookSortFields,
			defaultSort: "title",
			page:        2,
			size:        10,
			sortBy:      "availableCopies",
			sortDir:     "DESC",
			want: model.Pageable{
				Page: 2, Size: 10,
				OrderBy: []model.Order{{Column: "available_copies", Desc: true}},
			},
		},
		{
			name:        "unrecognized direction falls back to asc",
			fields:      model.BorrowingSortFields,
			defaultSort: "borrowDate",
			sortDir:     "sideways",
			want: model.Pageable{
				Page: 0, Size: model.DefaultPageSize,
				OrderBy: []model.Order{{Column: "borrow_date"}},
			},
		},
		{
			name:        "unknown sort field",
			fields:      model.BookSortFields,
			defaultSort: "title",
			sortBy:      "publishedYear",
			wantErr:     errs.ErrInvalidSortField,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := model.ResolvePageable(tt.fields, tt.defaultSort, tt.page, tt.size, tt.sortBy, tt.sortDir)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPageableOffset(t *testing.T) {
	t.Parallel()
	p := model.Pageable{Page: 3, Size: 5}
	require.Equal(t, uint64(5), p.Limit())
	require.Equal(t, uint64(15), p.Offset())
}
