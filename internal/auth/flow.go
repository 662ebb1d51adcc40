package auth

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/monteroai/smiledental/internal/models"
	"github.com/monteroai/smiledental/internal/session"
)

// API is the slice of the backend client the auth flow drives.
type API interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Token, error)
	Register(ctx context.Context, reg models.Registration) (*models.Token, error)
	Me(ctx context.Context) (*models.User, error)
	SetToken(token string)
}

// Fields holds everything the auth forms collect. Which block is required
// depends on mode and portal; validation decides, not the struct.
type Fields struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           string

	// Professional portal (optional even in register mode)
	ProfessionType  models.JobType
	LicenseNumber   string
	ExperienceYears string

	// Client portal (required when registering a dental office)
	OfficeName    string
	OfficeAddress string
	OfficeCity    string
	OfficeState   string
	OfficeZip     string
}

// ValidationError carries per-field messages for inline display. It never
// corresponds to a network round trip.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// Flow is the login/register state machine. Two axes: mode (login vs
// register) and portal (professional vs client). Starts at login on the
// professional portal.
type Flow struct {
	api      API
	sessions *session.Manager

	registering bool
	portal      models.Role

	Fields Fields

	user          *models.User
	authenticated bool
}

func NewFlow(api API, sessions *session.Manager) *Flow {
	return &Flow{
		api:      api,
		sessions: sessions,
		portal:   models.RoleProfessional,
	}
}

func (f *Flow) Registering() bool { return f.registering }

func (f *Flow) Portal() models.Role { return f.portal }

// ToggleMode flips between login and register and resets the whole form,
// confirm password included.
func (f *Flow) ToggleMode() {
	f.registering = !f.registering
	f.Fields = Fields{}
}

// SwitchPortal changes which field block registration requires. Shared
// fields already entered are kept.
func (f *Flow) SwitchPortal(portal models.Role) {
	f.portal = portal
}

// Validate applies the mode- and portal-specific rule set.
func (f *Flow) Validate() *ValidationError {
	problems := make(map[string]string)

	if f.Fields.Email == "" {
		problems["email"] = "Email is required"
	} else if !strings.Contains(f.Fields.Email, "@") {
		problems["email"] = "Enter a valid email address"
	}

	if f.Fields.Password == "" {
		problems["password"] = "Password is required"
	} else if f.registering && len(f.Fields.Password) < 6 {
		problems["password"] = "Password must be at least 6 characters"
	}

	if f.registering {
		if !f.portal.Valid() {
			problems["role"] = "Unknown portal: " + string(f.portal)
		}
		if f.Fields.ConfirmPassword != f.Fields.Password {
			problems["confirm_password"] = "Passwords do not match"
		}
		if f.Fields.FirstName == "" {
			problems["first_name"] = "First name is required"
		}
		if f.Fields.LastName == "" {
			problems["last_name"] = "Last name is required"
		}

		if f.Fields.ProfessionType != "" && !f.Fields.ProfessionType.Valid() {
			problems["profession_type"] = "Unknown profession"
		}
		if f.Fields.ExperienceYears != "" {
			if years, err := strconv.Atoi(f.Fields.ExperienceYears); err != nil || years < 0 {
				problems["experience_years"] = "Enter years of experience as a number"
			}
		}

		if f.portal == models.RoleClient {
			required := map[string]string{
				"office_name":    f.Fields.OfficeName,
				"office_address": f.Fields.OfficeAddress,
				"office_city":    f.Fields.OfficeCity,
				"office_state":   f.Fields.OfficeState,
				"office_zip":     f.Fields.OfficeZip,
			}
			for name, value := range required {
				if value == "" {
					problems[name] = "This field is required"
				}
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Fields: problems}
}

// Submit runs the two-step establish sequence: obtain a token, then resolve
// the canonical profile with that token. The session only exists once both
// steps succeed; a /auth/me failure leaves the flow unauthenticated.
func (f *Flow) Submit(ctx context.Context) error {
	if verr := f.Validate(); verr != nil {
		return verr
	}

	var (
		tok *models.Token
		err error
	)
	if f.registering {
		tok, err = f.api.Register(ctx, f.registration())
	} else {
		tok, err = f.api.Login(ctx, models.Credentials{
			Email:    f.Fields.Email,
			Password: f.Fields.Password,
		})
	}
	if err != nil {
		return err
	}

	f.api.SetToken(tok.AccessToken)
	user, err := f.api.Me(ctx)
	if err != nil {
		f.api.SetToken("")
		return fmt.Errorf("failed to resolve profile: %w", err)
	}

	if err := f.sessions.Save(tok.AccessToken, user); err != nil {
		return err
	}
	f.user = user
	f.authenticated = true
	return nil
}

func (f *Flow) registration() models.Registration {
	reg := models.Registration{
		Email:     f.Fields.Email,
		Password:  f.Fields.Password,
		FirstName: f.Fields.FirstName,
		LastName:  f.Fields.LastName,
		Role:      f.portal,
		Phone:     f.Fields.Phone,
	}

	switch f.portal {
	case models.RoleProfessional:
		reg.ProfessionType = f.Fields.ProfessionType
		reg.LicenseNumber = f.Fields.LicenseNumber
		if f.Fields.ExperienceYears != "" {
			reg.ExperienceYears, _ = strconv.Atoi(f.Fields.ExperienceYears)
		}
	case models.RoleClient:
		reg.DentalOfficeName = f.Fields.OfficeName
		reg.OfficeAddress = f.Fields.OfficeAddress
		reg.OfficeCity = f.Fields.OfficeCity
		reg.OfficeState = f.Fields.OfficeState
		reg.OfficeZip = f.Fields.OfficeZip
	}
	return reg
}

func (f *Flow) IsAuthenticated() bool {
	return f.authenticated
}

func (f *Flow) User() *models.User {
	return f.user
}
