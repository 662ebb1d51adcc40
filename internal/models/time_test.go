package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The backend serializes naive UTC datetimes without an offset; the client
// must decode those as well as proper RFC 3339.
func TestTimeDecodesBackendTimestamps(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    time.Time
	}{
		{
			name:    "offset-less date",
			literal: "2026-09-15T00:00:00",
			want:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "offset-less with microseconds",
			literal: "2026-08-29T12:34:56.789000",
			want:    time.Date(2026, 8, 29, 12, 34, 56, 789000000, time.UTC),
		},
		{
			name:    "rfc3339",
			literal: "2026-09-15T00:00:00Z",
			want:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "rfc3339 with offset",
			literal: "2026-09-15T02:00:00+02:00",
			want:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var parsed Time
			require.NoError(t, json.Unmarshal([]byte(`"`+tt.literal+`"`), &parsed))
			assert.True(t, parsed.Equal(tt.want), "got %v, want %v", parsed.Time, tt.want)
		})
	}
}

func TestTimeRejectsGarbage(t *testing.T) {
	var parsed Time
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &parsed))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &parsed))
	assert.True(t, parsed.IsZero())
}

func TestTimeMarshalsAsRFC3339UTC(t *testing.T) {
	data, err := json.Marshal(NewTime(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2026-09-15T00:00:00Z"`, string(data))
}

// Decoding a whole job exactly as server.py ships it: job_date and
// created_at carry no offset.
func TestJobDecodesServerPayload(t *testing.T) {
	payload := `{
		"id": "job-1",
		"client_id": "c-1",
		"title": "Hygienist AM",
		"job_type": "dental_hygienist",
		"hourly_rate": 55.5,
		"location_address": "123 Main Street",
		"location_city": "Austin",
		"location_state": "TX",
		"location_zip": "78701",
		"location_latitude": 30.2672,
		"location_longitude": -97.7431,
		"job_date": "2026-09-15T00:00:00",
		"start_time": "09:00",
		"end_time": "17:00",
		"is_recurring": false,
		"status": "active",
		"created_at": "2026-08-29T12:34:56.789000",
		"applications_count": 2
	}`

	var job Job
	require.NoError(t, json.Unmarshal([]byte(payload), &job))
	assert.True(t, job.JobDate.Equal(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, job.CreatedAt.Equal(time.Date(2026, 8, 29, 12, 34, 56, 789000000, time.UTC)))
	assert.Equal(t, 2, job.ApplicationsCount)
}

func TestUserAndApplicationDecodeServerTimestamps(t *testing.T) {
	var user User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u-1","email":"pro@example.com","role":"professional","created_at":"2026-08-01T08:00:00"}`), &user))
	assert.Equal(t, time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC), user.CreatedAt.Time)

	var app Application
	require.NoError(t, json.Unmarshal([]byte(`{"id":"app-1","job_id":"job-1","status":"pending","applied_at":"2026-08-29T09:30:00"}`), &app))
	assert.Equal(t, time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC), app.AppliedAt.Time)
}
