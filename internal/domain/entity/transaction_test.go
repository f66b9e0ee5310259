package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makhzan/school-warehouse-api/internal/domain"
	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
)

func TestNormalizeKind_MappingTable(t *testing.T) {
	cases := []struct {
		kind string
		want string
	}{
		{entity.KindIssue, entity.TypeOut},
		{entity.KindReturn, entity.TypeIn},
		{entity.KindExchangeOut, entity.TypeOut},
		{entity.KindExchangeIn, entity.TypeIn},
		{entity.KindAuditAdjustment, entity.TypeAudit},
		{entity.KindDailyAudit, entity.TypeAudit},
	}
	for _, tc := range cases {
		got, err := entity.NormalizeKind(tc.kind)
		require.NoError(t, err, "kind %q", tc.kind)
		assert.Equal(t, tc.want, got, "kind %q", tc.kind)
	}
}

func TestNormalizeKind_PersistedKindsPassThrough(t *testing.T) {
	for _, kind := range []string{
		entity.TypeIn, entity.TypeOut, entity.TypeAudit,
		entity.TypeAdjustment, entity.TypeTransfer,
	} {
		got, err := entity.NormalizeKind(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, got, "persisted kind %q must pass unchanged", kind)
	}
}

func TestNormalizeKind_UnknownKind(t *testing.T) {
	_, err := entity.NormalizeKind("teleport")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateDirection(t *testing.T) {
	cases := []struct {
		name  string
		kind  string
		delta int
		ok    bool
	}{
		{"issue negative ok", entity.KindIssue, -3, true},
		{"issue positive rejected", entity.KindIssue, 3, false},
		{"issue zero rejected", entity.KindIssue, 0, false},
		{"exchange_out negative ok", entity.KindExchangeOut, -1, true},
		{"exchange_out positive rejected", entity.KindExchangeOut, 1, false},
		{"return positive ok", entity.KindReturn, 5, true},
		{"return negative rejected", entity.KindReturn, -5, false},
		{"exchange_in positive ok", entity.KindExchangeIn, 4, true},
		{"exchange_in zero rejected", entity.KindExchangeIn, 0, false},
		{"audit unconstrained", entity.KindAuditAdjustment, -7, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := entity.ValidateDirection(tc.kind, tc.delta)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestComputeDiscrepancy(t *testing.T) {
	expected, actual := 50, 47
	d := entity.ComputeDiscrepancy(&expected, &actual)
	require.NotNil(t, d)
	assert.Equal(t, -3, *d)

	assert.Nil(t, entity.ComputeDiscrepancy(nil, &actual))
	assert.Nil(t, entity.ComputeDiscrepancy(&expected, nil))
}

func TestFormatEgyptianTimestamp(t *testing.T) {
	cairo, err := time.LoadLocation("Africa/Cairo")
	require.NoError(t, err)

	// 10:30 UTC is 12:30 in Cairo (EET, UTC+2) in January.
	ts := time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "15/01/2025 12:30 PM", entity.FormatEgyptianTimestamp(ts, cairo))

	// nil location falls back to UTC.
	assert.Equal(t, "15/01/2025 10:30 AM", entity.FormatEgyptianTimestamp(ts, nil))
}
