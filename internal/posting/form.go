package posting

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/monteroai/smiledental/internal/models"
)

var timeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Poster is the slice of the backend client the posting form uses.
type Poster interface {
	CreateJob(ctx context.Context, draft models.JobCreate) (*models.Job, error)
}

// ValidationError carries per-field messages for inline display.
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

// Form collects a job draft. Text inputs stay text until submission: the
// hourly rate is parsed on submit and a bad literal is a validation error,
// never a silent zero.
type Form struct {
	Title       string
	JobType     models.JobType
	Description string
	HourlyRate  string

	Address string
	City    string
	State   string
	Zip     string

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM

	Recurring bool
	Pattern   models.RecurrencePattern
	Weekdays  []string
	EndDate   string // YYYY-MM-DD

	owner *models.User
}

// NewForm pre-populates the location from the posting office's on-file
// address; every field stays editable.
func NewForm(owner *models.User) *Form {
	f := &Form{owner: owner}
	f.Reset()
	return f
}

// Reset returns the form to its defaults, recurrence block included.
func (f *Form) Reset() {
	owner := f.owner
	*f = Form{owner: owner}
	if owner != nil {
		f.Address = owner.OfficeAddress
		f.City = owner.OfficeCity
		f.State = owner.OfficeState
		f.Zip = owner.OfficeZip
	}
}

// Build validates the draft and transforms it into the request body.
func (f *Form) Build() (models.JobCreate, error) {
	problems := make(map[string]string)

	if strings.TrimSpace(f.Title) == "" {
		problems["title"] = "Title is required"
	}
	if !f.JobType.Valid() {
		problems["job_type"] = "Select a job type"
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(f.HourlyRate), 64)
	if err != nil {
		problems["hourly_rate"] = "Enter the hourly rate as a number"
	} else if rate <= 0 {
		problems["hourly_rate"] = "Hourly rate must be greater than zero"
	}

	location := map[string]string{
		"location_address": f.Address,
		"location_city":    f.City,
		"location_state":   f.State,
		"location_zip":     f.Zip,
	}
	for name, value := range location {
		if strings.TrimSpace(value) == "" {
			problems[name] = "This field is required"
		}
	}

	jobDate, err := parseDate(f.Date)
	if err != nil {
		problems["job_date"] = "Enter the date as YYYY-MM-DD"
	}
	if !timeRegex.MatchString(f.StartTime) {
		problems["start_time"] = "Enter the start time as HH:MM"
	}
	if !timeRegex.MatchString(f.EndTime) {
		problems["end_time"] = "Enter the end time as HH:MM"
	}

	var (
		endDate *models.Time
		days    []string
	)
	if f.Recurring {
		switch f.Pattern {
		case models.RecurWeekly:
			for _, day := range f.Weekdays {
				name := strings.ToLower(strings.TrimSpace(day))
				if !models.ValidWeekday(name) {
					problems["recurring_days"] = "Unknown weekday: " + day
					continue
				}
				days = append(days, name)
			}
			if len(days) == 0 && problems["recurring_days"] == "" {
				problems["recurring_days"] = "Pick at least one weekday"
			}
		case models.RecurMonthly:
			// weekday flags are meaningless for monthly recurrence
		default:
			problems["recurring_pattern"] = "Select weekly or monthly"
		}

		if f.EndDate != "" {
			parsed, err := parseDate(f.EndDate)
			if err != nil {
				problems["recurring_end_date"] = "Enter the end date as YYYY-MM-DD"
			} else {
				end := models.NewTime(parsed)
				endDate = &end
			}
		}
	}

	if len(problems) > 0 {
		return models.JobCreate{}, &ValidationError{Fields: problems}
	}

	draft := models.JobCreate{
		Title:           strings.TrimSpace(f.Title),
		JobType:         f.JobType,
		Description:     strings.TrimSpace(f.Description),
		HourlyRate:      rate,
		LocationAddress: strings.TrimSpace(f.Address),
		LocationCity:    strings.TrimSpace(f.City),
		LocationState:   strings.TrimSpace(f.State),
		LocationZip:     strings.TrimSpace(f.Zip),
		JobDate:         models.NewTime(jobDate),
		StartTime:       f.StartTime,
		EndTime:         f.EndTime,
	}
	if f.owner != nil {
		draft.LocationLatitude = f.owner.OfficeLatitude
		draft.LocationLongitude = f.owner.OfficeLongitude
	}
	if f.Recurring {
		draft.IsRecurring = true
		draft.RecurringPattern = f.Pattern
		draft.RecurringDays = days
		draft.RecurringEndDate = endDate
	}
	return draft, nil
}

// Submit builds the draft and posts it. Success clears the form back to
// its defaults; failure keeps everything the user entered.
func (f *Form) Submit(ctx context.Context, api Poster) (*models.Job, error) {
	draft, err := f.Build()
	if err != nil {
		return nil, err
	}
	job, err := api.CreateJob(ctx, draft)
	if err != nil {
		return nil, err
	}
	f.Reset()
	return job, nil
}

// parseDate normalizes a YYYY-MM-DD literal to UTC midnight.
func parseDate(literal string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(literal))
}
