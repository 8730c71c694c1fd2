package store

import (
	"fmt"
	"math"
	"strings"
)

// Metric names a vector similarity or distance function.
type Metric string

const (
	MetricCosine     Metric = "cosine"
	MetricEuclidean  Metric = "euclidean"
	MetricManhattan  Metric = "manhattan"
	MetricDotProduct Metric = "dot_product"
)

// SupportedMetrics lists the metric names accepted by Search.
func SupportedMetrics() []string {
	return []string{
		string(MetricCosine),
		string(MetricEuclidean),
		string(MetricManhattan),
		string(MetricDotProduct),
	}
}

type metricFunc func(a, b []float32) float64

// metricFor resolves a metric name to its scoring function and sort
// direction. higherIsBetter holds for similarity metrics (cosine, dot
// product); distance metrics (euclidean, manhattan) sort ascending.
func metricFor(m Metric) (fn metricFunc, higherIsBetter bool, err error) {
	switch m {
	case MetricCosine:
		return CosineSimilarity, true, nil
	case MetricDotProduct:
		return DotProduct, true, nil
	case MetricEuclidean:
		return EuclideanDistance, false, nil
	case MetricManhattan:
		return ManhattanDistance, false, nil
	default:
		return nil, false, fmt.Errorf("unknown distance metric: %q (available: %s)",
			m, strings.Join(SupportedMetrics(), ", "))
	}
}

// CosineSimilarity returns the cosine of the angle between a and b.
// Zero-magnitude or mismatched-length inputs score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// EuclideanDistance returns the magnitude of the elementwise difference.
// Vectors must have equal length; extra elements are ignored.
func EuclideanDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := float64(a[i]) - float64(b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// ManhattanDistance returns the sum of absolute elementwise differences.
// Vectors must have equal length; extra elements are ignored.
func ManhattanDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum
}

// DotProduct returns the raw inner product, not normalized.
// Vectors must have equal length; extra elements are ignored.
func DotProduct(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
