package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agenda/shared"
	"agenda/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 25, limit: 0, expected: 1},
		{name: "exact pages", total: 20, limit: 10, expected: 2},
		{name: "partial last page", total: 21, limit: 10, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("abc", "id", "bookings")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, "abc", args["id"])
}

func TestFilterByBusinessID(t *testing.T) {
	filter := shared.FilterByBusinessID("svc-1", "biz-1", "id", "business_id", "services")

	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "services.id = :id")
	assert.Contains(t, where, "services.business_id = :business_id")
	assert.Contains(t, where, dto.FilterGroupOperatorAnd)
	assert.Equal(t, "svc-1", args["id"])
	assert.Equal(t, "biz-1", args["business_id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "slots:biz-1:2024-06-10", shared.BuildCacheKey("slots", "biz-1", "2024-06-10"))
}
