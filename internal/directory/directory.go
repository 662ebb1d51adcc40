package directory

import (
	"context"

	"github.com/monteroai/smiledental/internal/models"
)

// DefaultApplyMessage is sent when the professional applies straight from
// the job list without writing their own note.
const DefaultApplyMessage = "I am interested in this position."

// JobService is the slice of the backend client the directory uses.
type JobService interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
	Apply(ctx context.Context, jobID, message string) (*models.Application, error)
}

// Directory holds the full fetched job set plus the two filter inputs and
// keeps a filtered view in sync with them. Single-threaded by design: every
// mutation recomputes the view before returning.
type Directory struct {
	api JobService

	jobs     []models.Job
	search   string
	category models.JobType
	visible  []models.Job
}

func New(api JobService) *Directory {
	d := &Directory{api: api}
	d.refresh()
	return d
}

// Load replaces the job set wholesale from the backend. On failure the
// previous snapshot stays visible.
func (d *Directory) Load(ctx context.Context) error {
	jobs, err := d.api.ListJobs(ctx)
	if err != nil {
		return err
	}
	d.jobs = jobs
	d.refresh()
	return nil
}

func (d *Directory) SetSearch(text string) {
	d.search = text
	d.refresh()
}

func (d *Directory) SetCategory(category models.JobType) {
	d.category = category
	d.refresh()
}

func (d *Directory) Search() string { return d.search }

func (d *Directory) Category() models.JobType { return d.category }

// Visible is the current filtered view. Callers get their own copy; the
// cached view only changes through Load/SetSearch/SetCategory.
func (d *Directory) Visible() []models.Job {
	out := make([]models.Job, len(d.visible))
	copy(out, d.visible)
	return out
}

// NoResults distinguishes "filters matched nothing" from an error: an empty
// view is a defined state and renders as such.
func (d *Directory) NoResults() bool {
	return len(d.visible) == 0
}

func (d *Directory) refresh() {
	d.visible = Filter(d.jobs, d.search, d.category)
}

// Apply submits an application with the default message, then re-fetches
// the whole list so applications_count reflects what the server says;
// no optimistic local increment. A failed submission leaves the list as it
// was before the attempt.
func (d *Directory) Apply(ctx context.Context, jobID string) error {
	if _, err := d.api.Apply(ctx, jobID, DefaultApplyMessage); err != nil {
		return err
	}
	return d.Load(ctx)
}
