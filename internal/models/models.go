package models

import (
	mapset "github.com/deckarep/golang-set/v2"
)

type Role string

const (
	RoleClient       Role = "client"
	RoleProfessional Role = "professional"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleProfessional
}

type JobType string

const (
	JobTypeHygienist JobType = "dental_hygienist"
	JobTypeDentist   JobType = "dentist"
	JobTypeAssistant JobType = "dental_assistant"
	JobTypeFrontDesk JobType = "front_desk"
)

// JobTypes lists every profession category a posting can target.
func JobTypes() []JobType {
	return []JobType{JobTypeHygienist, JobTypeDentist, JobTypeAssistant, JobTypeFrontDesk}
}

func (t JobType) Valid() bool {
	switch t {
	case JobTypeHygienist, JobTypeDentist, JobTypeAssistant, JobTypeFrontDesk:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

type RecurrencePattern string

const (
	RecurWeekly  RecurrencePattern = "weekly"
	RecurMonthly RecurrencePattern = "monthly"
)

var weekdayNames = mapset.NewSet(
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
)

// ValidWeekday reports whether name is one of the lowercase weekday
// literals the backend accepts in recurring_days.
func ValidWeekday(name string) bool {
	return weekdayNames.Contains(name)
}

// User is the profile returned by /api/auth/me. Role-specific fields are
// only populated for the matching role; the backend leaves the rest null.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt Time   `json:"created_at"`
	IsActive  bool   `json:"is_active"`

	// Professional profile
	ProfessionType  JobType `json:"profession_type,omitempty"`
	LicenseNumber   string  `json:"license_number,omitempty"`
	ExperienceYears int     `json:"experience_years,omitempty"`

	// Dental office profile
	DentalOfficeName string  `json:"dental_office_name,omitempty"`
	OfficeAddress    string  `json:"office_address,omitempty"`
	OfficeCity       string  `json:"office_city,omitempty"`
	OfficeState      string  `json:"office_state,omitempty"`
	OfficeZip        string  `json:"office_zip,omitempty"`
	OfficeLatitude   float64 `json:"office_latitude,omitempty"`
	OfficeLongitude  float64 `json:"office_longitude,omitempty"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Job struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"client_id"`
	Title       string  `json:"title"`
	JobType     JobType `json:"job_type"`
	Description string  `json:"description,omitempty"`
	HourlyRate  float64 `json:"hourly_rate"`

	LocationAddress   string  `json:"location_address"`
	LocationCity      string  `json:"location_city"`
	LocationState     string  `json:"location_state"`
	LocationZip       string  `json:"location_zip"`
	LocationLatitude  float64 `json:"location_latitude"`
	LocationLongitude float64 `json:"location_longitude"`

	JobDate   Time   `json:"job_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	IsRecurring      bool              `json:"is_recurring"`
	RecurringPattern RecurrencePattern `json:"recurring_pattern,omitempty"`
	RecurringDays    []string          `json:"recurring_days,omitempty"`
	RecurringEndDate *Time             `json:"recurring_end_date,omitempty"`

	Status            string `json:"status"`
	CreatedAt         Time   `json:"created_at"`
	ApplicationsCount int    `json:"applications_count"`
}

// JobCreate is the body for POST /api/jobs. The recurring block is only
// set when the posting repeats; recurring_days only under the weekly pattern.
type JobCreate struct {
	Title       string  `json:"title"`
	JobType     JobType `json:"job_type"`
	Description string  `json:"description,omitempty"`
	HourlyRate  float64 `json:"hourly_rate"`

	LocationAddress   string  `json:"location_address"`
	LocationCity      string  `json:"location_city"`
	LocationState     string  `json:"location_state"`
	LocationZip       string  `json:"location_zip"`
	LocationLatitude  float64 `json:"location_latitude"`
	LocationLongitude float64 `json:"location_longitude"`

	JobDate   Time   `json:"job_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	IsRecurring      bool              `json:"is_recurring"`
	RecurringPattern RecurrencePattern `json:"recurring_pattern,omitempty"`
	RecurringDays    []string          `json:"recurring_days,omitempty"`
	RecurringEndDate *Time             `json:"recurring_end_date,omitempty"`
}

// ApplicantDetails is the trimmed professional profile attached to
// applications a dental office receives.
type ApplicantDetails struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone,omitempty"`
	ProfessionType  JobType `json:"profession_type,omitempty"`
	ExperienceYears int     `json:"experience_years,omitempty"`
}

// Application status is set exclusively by the backend; the client only
// ever creates applications and reads them back.
type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id"`
	ProfessionalID string            `json:"professional_id"`
	ClientID       string            `json:"client_id"`
	Message        string            `json:"message,omitempty"`
	Status         ApplicationStatus `json:"status"`
	AppliedAt      Time              `json:"applied_at"`

	// Denormalized by the list endpoints: job_details for the
	// professional's own applications, both for received ones.
	JobDetails          *Job              `json:"job_details,omitempty"`
	ProfessionalDetails *ApplicantDetails `json:"professional_details,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration carries the role-conditional signup body. Only the block
// matching Role should be populated.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
	Phone     string `json:"phone,omitempty"`

	ProfessionType  JobType `json:"profession_type,omitempty"`
	LicenseNumber   string  `json:"license_number,omitempty"`
	ExperienceYears int     `json:"experience_years,omitempty"`

	DentalOfficeName string  `json:"dental_office_name,omitempty"`
	OfficeAddress    string  `json:"office_address,omitempty"`
	OfficeCity       string  `json:"office_city,omitempty"`
	OfficeState      string  `json:"office_state,omitempty"`
	OfficeZip        string  `json:"office_zip,omitempty"`
	OfficeLatitude   float64 `json:"office_latitude,omitempty"`
	OfficeLongitude  float64 `json:"office_longitude,omitempty"`
}

// Token is the auth response from /api/auth/login and /api/auth/register.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserRole    Role   `json:"user_role"`
	UserID      string `json:"user_id"`
}
