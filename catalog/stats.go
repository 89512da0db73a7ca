package catalog

import (
	"math"
	"sort"
)

// DefaultHistogramBins splits the 0-10 rating scale into half points.
const DefaultHistogramBins = 20

// Bucket is one bar of the rating histogram, covering [Low, High).
// The last bucket also includes High.
type Bucket struct {
	Low, High float64
	Count     int
}

// RatingHistogram counts ratings into equal-width buckets over [0, 10].
func RatingHistogram(movies []Movie, bins int) []Bucket {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	width := 10.0 / float64(bins)
	buckets := make([]Bucket, bins)
	for i := range buckets {
		buckets[i].Low = float64(i) * width
		buckets[i].High = float64(i+1) * width
	}
	for _, m := range movies {
		// Round away float noise so 8.5 / 0.5 lands in bucket 17, not 16.
		i := int(math.Floor(math.Round(m.Rating/width*1e9) / 1e9))
		if i < 0 {
			i = 0
		}
		if i >= bins {
			i = bins - 1
		}
		buckets[i].Count++
	}
	return buckets
}

// TopBoxOffice returns up to n movies with a known box office, highest first.
// Ties keep id order.
func TopBoxOffice(movies []Movie, n int) []Movie {
	if n <= 0 {
		n = DefaultTopLimit
	}
	known := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if m.BoxOffice != nil {
			known = append(known, m)
		}
	}
	sort.SliceStable(known, func(i, j int) bool {
		if *known[i].BoxOffice != *known[j].BoxOffice {
			return *known[i].BoxOffice > *known[j].BoxOffice
		}
		return known[i].ID < known[j].ID
	})
	if len(known) > n {
		known = known[:n]
	}
	return known
}

// LanguageCount is one slice of the language pie.
type LanguageCount struct {
	Language string
	Count    int
	Share    float64
}

// LanguageShare counts movies per language, most common first.
func LanguageShare(movies []Movie) []LanguageCount {
	counts := make(map[string]int)
	for _, m := range movies {
		counts[m.Language]++
	}
	out := make([]LanguageCount, 0, len(counts))
	for lang, c := range counts {
		out = append(out, LanguageCount{
			Language: lang,
			Count:    c,
			Share:    float64(c) / float64(len(movies)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Language < out[j].Language
	})
	return out
}

// Charts bundles the three aggregations shown by the analytics view.
type Charts struct {
	Ratings   []Bucket
	BoxOffice []Movie
	Languages []LanguageCount
}

// BuildCharts computes every chart from one snapshot.
func BuildCharts(movies []Movie) Charts {
	return Charts{
		Ratings:   RatingHistogram(movies, DefaultHistogramBins),
		BoxOffice: TopBoxOffice(movies, DefaultTopLimit),
		Languages: LanguageShare(movies),
	}
}
