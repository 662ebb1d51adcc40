package registry

import (
	"context"
	"fmt"

	"github.com/monteroai/smiledental/internal/models"
)

// Fetcher is the slice of the backend client the registry uses.
type Fetcher interface {
	MyApplications(ctx context.Context) ([]models.Application, error)
	ReceivedApplications(ctx context.Context) ([]models.Application, error)
}

// Color is a status badge color for the UI layer.
type Color string

const (
	ColorAmber   Color = "#F59E0B"
	ColorGreen   Color = "#10B981"
	ColorRed     Color = "#EF4444"
	ColorNeutral Color = "#6B7280"
)

// StatusColor maps an application status to its badge color. Anything the
// client does not recognize renders neutral rather than erroring.
func StatusColor(status models.ApplicationStatus) Color {
	switch status {
	case models.StatusPending:
		return ColorAmber
	case models.StatusAccepted:
		return ColorGreen
	case models.StatusRejected:
		return ColorRed
	}
	return ColorNeutral
}

// Card is one rendered application row. Professionals see job-centric
// cards, dental offices see applicant-centric ones.
type Card struct {
	ApplicationID string
	Headline      string
	Detail        string
	Message       string
	Status        models.ApplicationStatus
	StatusColor   Color
}

// Registry fetches and renders applications for one viewer. The role is
// fixed when the registry is built and never changes afterwards.
type Registry struct {
	api  Fetcher
	role models.Role
	apps []models.Application
}

func New(api Fetcher, viewer *models.User) *Registry {
	return &Registry{api: api, role: viewer.Role}
}

func (r *Registry) Role() models.Role {
	return r.role
}

// Load replaces the application set from the role's endpoint. On failure
// the previous snapshot stays visible.
func (r *Registry) Load(ctx context.Context) error {
	var (
		apps []models.Application
		err  error
	)
	switch r.role {
	case models.RoleClient:
		apps, err = r.api.ReceivedApplications(ctx)
	default:
		apps, err = r.api.MyApplications(ctx)
	}
	if err != nil {
		return err
	}
	r.apps = apps
	return nil
}

func (r *Registry) Applications() []models.Application {
	return r.apps
}

// Cards renders the loaded applications in the shape the viewer's role
// expects, preserving server order.
func (r *Registry) Cards() []Card {
	cards := make([]Card, 0, len(r.apps))
	for _, app := range r.apps {
		card := Card{
			ApplicationID: app.ID,
			Message:       app.Message,
			Status:        app.Status,
			StatusColor:   StatusColor(app.Status),
		}
		if r.role == models.RoleClient {
			fillApplicantCard(&card, app)
		} else {
			fillJobCard(&card, app)
		}
		cards = append(cards, card)
	}
	return cards
}

func fillJobCard(card *Card, app models.Application) {
	job := app.JobDetails
	if job == nil {
		card.Headline = "Job no longer available"
		return
	}
	card.Headline = job.Title
	card.Detail = fmt.Sprintf("%s, %s · $%.2f/hr", job.LocationCity, job.LocationState, job.HourlyRate)
}

func fillApplicantCard(card *Card, app models.Application) {
	prof := app.ProfessionalDetails
	if prof == nil {
		card.Headline = "Applicant unavailable"
		return
	}
	card.Headline = prof.FirstName + " " + prof.LastName
	card.Detail = string(prof.ProfessionType)
	if prof.ExperienceYears > 0 {
		card.Detail = fmt.Sprintf("%s · %d yrs experience", prof.ProfessionType, prof.ExperienceYears)
	}
}
