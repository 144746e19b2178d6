package tpdanalysis

// Bucket is one of the seven ordered day bins delays are assigned to.
// The partition is total over the real line: every finite delay maps to
// exactly one bucket.
type Bucket int

// Day buckets in display order.
const (
	Bucket0to1 Bucket = iota
	Bucket1to2
	Bucket2to3
	Bucket3to4
	Bucket4to6
	Bucket6to10
	Bucket10Plus

	bucketCount
)

// bucketUpper holds the inclusive upper edge of each bucket except the
// last, which is unbounded.
var bucketUpper = [bucketCount - 1]float64{1, 2, 3, 4, 6, 10}

var bucketLabels = [bucketCount]string{"0-1", "1-2", "2-3", "3-4", "4-6", "6-10", "10+"}

// String returns the display label of the bucket.
func (b Bucket) String() string {
	if b < 0 || b >= bucketCount {
		return ""
	}
	return bucketLabels[b]
}

// BucketFor assigns a delay in days to its bucket. Each bucket covers
// (lower, upper] with the first extending to negative infinity and the
// last to positive infinity.
func BucketFor(days float64) Bucket {
	for i, upper := range bucketUpper {
		if days <= upper {
			return Bucket(i)
		}
	}
	return Bucket10Plus
}

// Buckets returns all buckets in display order.
func Buckets() []Bucket {
	out := make([]Bucket, bucketCount)
	for i := range out {
		out[i] = Bucket(i)
	}
	return out
}

// BucketLabels returns all bucket labels in display order.
func BucketLabels() []string {
	out := make([]string, bucketCount)
	copy(out, bucketLabels[:])
	return out
}
