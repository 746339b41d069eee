package core

import (
	"sort"

	"github.com/gitsignals/gitsignals/schema"
)

// RankRepos sorts repositories by score in descending order, breaking ties
// by full name ascending so the output order is reproducible, and returns
// the top 'limit' entries. If limit is greater than the number of
// repositories, all repositories are returned in sorted order.
func RankRepos(repos []schema.ScoredRepo, limit int) []schema.ScoredRepo {
	sort.Slice(repos, func(i, j int) bool {
		if repos[i].Score != repos[j].Score {
			return repos[i].Score > repos[j].Score
		}
		return repos[i].FullName < repos[j].FullName
	})
	if limit > 0 && len(repos) > limit {
		return repos[:limit]
	}
	return repos
}

// FilterQualified returns only the repositories at or above the threshold,
// preserving order.
func FilterQualified(repos []schema.ScoredRepo) []schema.ScoredRepo {
	var qualified []schema.ScoredRepo
	for _, r := range repos {
		if r.Qualifies {
			qualified = append(qualified, r)
		}
	}
	return qualified
}
