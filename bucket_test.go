package tpdanalysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		days float64
		want Bucket
	}{
		{-5, Bucket0to1},
		{-0.2, Bucket0to1},
		{0, Bucket0to1},
		{0.5, Bucket0to1},
		{1, Bucket0to1},
		{1.0001, Bucket1to2},
		{1.5, Bucket1to2},
		{2, Bucket1to2},
		{2.5, Bucket2to3},
		{3, Bucket2to3},
		{3.5, Bucket3to4},
		{4, Bucket3to4},
		{5, Bucket4to6},
		{6, Bucket4to6},
		{7, Bucket6to10},
		{10, Bucket6to10},
		{10.0001, Bucket10Plus},
		{365, Bucket10Plus},
		{math.Inf(-1), Bucket0to1},
		{math.Inf(1), Bucket10Plus},
	}

	for _, tt := range tests {
		got := BucketFor(tt.days)
		assert.Equalf(t, tt.want, got, "BucketFor(%v)", tt.days)
	}
}

// The partition must be total and mutually exclusive: every finite delay
// maps to exactly one bucket, and adjacent buckets share no points.
func TestBucketPartition(t *testing.T) {
	for days := -20.0; days <= 20.0; days += 0.01 {
		b := BucketFor(days)
		assert.GreaterOrEqual(t, int(b), 0)
		assert.Less(t, int(b), int(bucketCount))
	}

	// Edges belong to the lower bucket, the next representable value to
	// the upper one.
	for i, upper := range bucketUpper {
		assert.Equal(t, Bucket(i), BucketFor(upper))
		assert.Equal(t, Bucket(i+1), BucketFor(math.Nextafter(upper, math.Inf(1))))
	}
}

func TestBucketString(t *testing.T) {
	tests := []struct {
		bucket Bucket
		want   string
	}{
		{Bucket0to1, "0-1"},
		{Bucket1to2, "1-2"},
		{Bucket2to3, "2-3"},
		{Bucket3to4, "3-4"},
		{Bucket4to6, "4-6"},
		{Bucket6to10, "6-10"},
		{Bucket10Plus, "10+"},
		{Bucket(-1), ""},
		{Bucket(99), ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.bucket.String())
	}
}

func TestBucketsOrder(t *testing.T) {
	buckets := Buckets()
	assert.Len(t, buckets, 7)
	for i := 1; i < len(buckets); i++ {
		assert.Less(t, buckets[i-1], buckets[i])
	}
	assert.Equal(t, []string{"0-1", "1-2", "2-3", "3-4", "4-6", "6-10", "10+"}, BucketLabels())
}
