package crawl

import (
	"math/rand/v2"

	"github.com/fwojciec/newsbrowse"
)

// Sample draws min(k, len(records)) records uniformly without replacement.
// The order of the sample is random. A zero k yields an empty sample and a
// negative k returns every record in its original order. The input slice
// is not modified.
// A nil r uses the global random source.
func Sample(records []newsbrowse.ArticleRecord, k int, r *rand.Rand) []newsbrowse.ArticleRecord {
	if k == 0 {
		return []newsbrowse.ArticleRecord{}
	}
	if k < 0 || len(records) == 0 {
		return append([]newsbrowse.ArticleRecord(nil), records...)
	}
	k = min(k, len(records))

	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}

	// Partial Fisher-Yates over a copy: the first k slots become the sample.
	pool := append([]newsbrowse.ArticleRecord(nil), records...)
	for i := 0; i < k; i++ {
		j := i + intN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}
