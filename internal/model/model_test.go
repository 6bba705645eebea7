package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bookhaven/library-service/internal/model"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want model.Number
	}{
		{name: "number", in: `{"quantity": 7}`, want: 7},
		{name: "float", in: `{"quantity": 4.5}`, want: 4.5},
		{name: "numeric string", in: `{"quantity": "12"}`, want: 12},
		{name: "non-numeric string", in: `{"quantity": "a dozen"}`, want: 0},
		{name: "null", in: `{"quantity": null}`, want: 0},
		{name: "absent", in: `{}`, want: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var req model.CreateBookRequest
			require.NoError(t, json.Unmarshal([]byte(tt.in), &req))
			require.Equal(t, tt.want, req.Quantity)
		})
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var req model.BorrowRequest
	require.NoError(t, json.Unmarshal([]byte(`{"returnDate":"2026-09-15"}`), &req))
	require.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), req.ReturnDate.Time)

	require.NoError(t, json.Unmarshal([]byte(`{"returnDate":"2026-09-15T10:30:00Z"}`), &req))
	require.Equal(t, time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC), req.ReturnDate.Time)

	err := json.Unmarshal([]byte(`{"returnDate":"next tuesday"}`), &req)
	require.Error(t, err)
}
