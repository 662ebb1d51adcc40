package directory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/monteroai/smiledental/internal/models"
)

// Filter returns the jobs matching both predicates: a case-folded substring
// match over title/city/state and an exact job-type match. Either predicate
// may be empty, which matches everything. The result preserves the source
// order; nothing is sorted or deduplicated.
func Filter(jobs []models.Job, search string, category models.JobType) []models.Job {
	folder := cases.Fold()
	query := folder.String(strings.TrimSpace(search))

	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if category != "" && job.JobType != category {
			continue
		}
		if query != "" && !matchesQuery(folder, job, query) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func matchesQuery(folder cases.Caser, job models.Job, query string) bool {
	haystacks := []string{job.Title, job.LocationCity, job.LocationState}
	for _, h := range haystacks {
		if strings.Contains(folder.String(h), query) {
			return true
		}
	}
	return false
}
