package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortDirection(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"budget_low defaults ascending", "budget_low", "", "ASC"},
		{"budget_high defaults descending", "budget_high", "", "DESC"},
		{"date defaults descending", "date", "", "DESC"},
		{"explicit asc overrides budget_high", "budget_high", "asc", "ASC"},
		{"explicit desc overrides budget_low", "budget_low", "desc", "DESC"},
		{"explicit asc on date", "date", "asc", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sortDirection(tt.sortBy, tt.sortOrder))
		})
	}
}
