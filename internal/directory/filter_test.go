package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monteroai/smiledental/internal/models"
)

func sampleJobs() []models.Job {
	return []models.Job{
		{ID: "1", Title: "Hygienist AM", JobType: models.JobTypeHygienist, LocationCity: "Austin", LocationState: "TX"},
		{ID: "2", Title: "Front Desk PM", JobType: models.JobTypeFrontDesk, LocationCity: "Dallas", LocationState: "TX"},
		{ID: "3", Title: "Weekend Dentist", JobType: models.JobTypeDentist, LocationCity: "Houston", LocationState: "TX"},
		{ID: "4", Title: "Dentist Cover", JobType: models.JobTypeDentist, LocationCity: "Tulsa", LocationState: "OK"},
	}
}

func TestFilter(t *testing.T) {
	jobs := sampleJobs()

	tests := []struct {
		name     string
		search   string
		category models.JobType
		wantIDs  []string
	}{
		{
			name:    "empty filters are the identity",
			wantIDs: []string{"1", "2", "3", "4"},
		},
		{
			name:    "substring match on title",
			search:  "desk",
			wantIDs: []string{"2"},
		},
		{
			name:     "category only",
			category: models.JobTypeDentist,
			wantIDs:  []string{"3", "4"},
		},
		{
			name:    "case-insensitive city match",
			search:  "AUSTIN",
			wantIDs: []string{"1"},
		},
		{
			name:    "state match",
			search:  "ok",
			wantIDs: []string{"4"},
		},
		{
			name:     "both predicates must hold",
			search:   "dentist",
			category: models.JobTypeDentist,
			wantIDs:  []string{"3", "4"},
		},
		{
			name:     "no matches yields empty, not nil panic",
			search:   "orthodontist",
			category: models.JobTypeFrontDesk,
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(jobs, tt.search, tt.category)
			gotIDs := make([]string, 0, len(got))
			for _, job := range got {
				gotIDs = append(gotIDs, job.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	jobs := sampleJobs()
	got := Filter(jobs, "", models.JobTypeDentist)

	assert.Len(t, got, 2)
	// stable filter: relative order of the source list survives
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "4", got[1].ID)
}

func TestFilterEmptySource(t *testing.T) {
	assert.Empty(t, Filter(nil, "desk", ""))
	assert.Empty(t, Filter([]models.Job{}, "", ""))
}
