package tpdanalysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func distributionFixture() *Result {
	return &Result{
		Encounters: []EncounterRow{
			{EncounterID: "e1", PendingLabCount: 2},
			{EncounterID: "e2", PendingLabCount: 0},
			{EncounterID: "e3", PendingLabCount: 1},
		},
		Distribution: []BucketCount{
			{Bucket: Bucket0to1, Category: CategoryCultures, Count: 1},
			{Bucket: Bucket0to1, Category: CategoryOther, Count: 4},
			{Bucket: Bucket1to2, Category: CategoryOther, Count: 2},
			{Bucket: Bucket10Plus, Category: CategoryCultures, Count: 3},
		},
		Categories: []string{CategoryCultures, CategoryOther},
	}
}

func TestResult_BucketTotal(t *testing.T) {
	r := distributionFixture()

	tests := []struct {
		bucket Bucket
		want   int
	}{
		{Bucket0to1, 5},
		{Bucket1to2, 2},
		{Bucket2to3, 0},
		{Bucket10Plus, 3},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, r.BucketTotal(tt.bucket), "BucketTotal(%s)", tt.bucket)
	}
}

func TestResult_CategoryCount(t *testing.T) {
	r := distributionFixture()

	assert.Equal(t, 1, r.CategoryCount(Bucket0to1, CategoryCultures))
	assert.Equal(t, 4, r.CategoryCount(Bucket0to1, CategoryOther))
	assert.Equal(t, 0, r.CategoryCount(Bucket1to2, CategoryCultures))
	assert.Equal(t, 0, r.CategoryCount(Bucket4to6, CategoryOther))
}

func TestResult_PendingEncounters(t *testing.T) {
	r := distributionFixture()

	pending := r.PendingEncounters()
	assert.Len(t, pending, 2)
	assert.Equal(t, "e1", pending[0].EncounterID)
	assert.Equal(t, "e3", pending[1].EncounterID)

	empty := &Result{}
	assert.Empty(t, empty.PendingEncounters())
}
