package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/libraryman/libraryman-api/internal/model"
)

func TestComputeFine(t *testing.T) {
	t.Parallel()
	due := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	var tests = []struct {
		name       string
		returnDate time.Time
		perDay     int
		want       int
	}{
		{
			name:       "returned before due date",
			returnDate: due.AddDate(0, 0, -3),
			perDay:     10,
			want:       0,
		},
		{
			name:       "returned exactly on due date",
			returnDate: due,
			perDay:     10,
			want:       0,
		},
		{
			name:       "less than a full day late",
			returnDate: due.Add(23 * time.Hour),
			perDay:     10,
			want:       0,
		},
		{
			name:       "a day and a half late",
			returnDate: due.Add(36 * time.Hour),
			perDay:     10,
			want:       10,
		},
		{
			name:       "three days late",
			returnDate: due.AddDate(0, 0, 3),
			perDay:     25,
			want:       75,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, model.ComputeFine(tt.returnDate, due, tt.perDay))
		})
	}
}
