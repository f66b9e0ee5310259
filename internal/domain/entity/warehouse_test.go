package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
)

func TestClassifyWarehouse(t *testing.T) {
	cases := []struct {
		total int
		want  entity.WarehouseStatus
	}{
		{250, entity.StatusLow},
		{1500, entity.StatusHigh},
		{600, entity.StatusNormal},
		{0, entity.StatusLow},
		{299, entity.StatusLow},
		{300, entity.StatusNormal}, // boundary: low only strictly below 300
		{1000, entity.StatusNormal},
		{1001, entity.StatusHigh}, // boundary: high only strictly above 1000
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, entity.ClassifyWarehouse(tc.total), "total=%d", tc.total)
	}
}
