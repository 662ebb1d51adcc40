package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monteroai/smiledental/internal/models"
	"github.com/monteroai/smiledental/internal/session"
)

// spyAPI records every call so tests can prove nothing hit the network.
type spyAPI struct {
	loginCalls    int
	registerCalls int
	meCalls       int

	lastRegistration models.Registration
	token            string

	loginErr error
	meErr    error
	user     *models.User
}

func (s *spyAPI) Login(ctx context.Context, creds models.Credentials) (*models.Token, error) {
	s.loginCalls++
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &models.Token{AccessToken: "tok-123", TokenType: "bearer", UserRole: models.RoleProfessional, UserID: "u-1"}, nil
}

func (s *spyAPI) Register(ctx context.Context, reg models.Registration) (*models.Token, error) {
	s.registerCalls++
	s.lastRegistration = reg
	return &models.Token{AccessToken: "tok-456", TokenType: "bearer", UserRole: reg.Role, UserID: "u-2"}, nil
}

func (s *spyAPI) Me(ctx context.Context) (*models.User, error) {
	s.meCalls++
	if s.meErr != nil {
		return nil, s.meErr
	}
	if s.user != nil {
		return s.user, nil
	}
	return &models.User{ID: "u-1", Email: "pro@example.com", Role: models.RoleProfessional}, nil
}

func (s *spyAPI) SetToken(token string) {
	s.token = token
}

func newTestFlow(api API) (*Flow, session.Store) {
	store := session.NewMemStore()
	return NewFlow(api, session.NewManager(store)), store
}

func TestFlowInitialState(t *testing.T) {
	flow, _ := newTestFlow(&spyAPI{})

	assert.False(t, flow.Registering())
	assert.Equal(t, models.RoleProfessional, flow.Portal())
	assert.False(t, flow.IsAuthenticated())
}

func TestToggleModeClearsAllFields(t *testing.T) {
	flow, _ := newTestFlow(&spyAPI{})
	flow.ToggleMode()
	flow.Fields.Email = "a@b.com"
	flow.Fields.Password = "abc123"
	flow.Fields.ConfirmPassword = "abc123"
	flow.Fields.OfficeName = "Smile Dental Care"

	flow.ToggleMode()

	assert.False(t, flow.Registering())
	assert.Equal(t, Fields{}, flow.Fields)
}

func TestSwitchPortalKeepsSharedFields(t *testing.T) {
	flow, _ := newTestFlow(&spyAPI{})
	flow.ToggleMode()
	flow.Fields.Email = "a@b.com"
	flow.Fields.Password = "abc123"
	flow.Fields.FirstName = "Ada"

	flow.SwitchPortal(models.RoleClient)

	assert.Equal(t, "a@b.com", flow.Fields.Email)
	assert.Equal(t, "abc123", flow.Fields.Password)
	assert.Equal(t, "Ada", flow.Fields.FirstName)

	// but client office fields are now required
	verr := flow.Validate()
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "office_name")
	assert.Contains(t, verr.Fields, "office_zip")
}

func TestPasswordMismatchNeverReachesNetwork(t *testing.T) {
	api := &spyAPI{}
	flow, _ := newTestFlow(api)
	flow.ToggleMode()
	flow.Fields.Email = "a@b.com"
	flow.Fields.Password = "abc123"
	flow.Fields.ConfirmPassword = "abc124"
	flow.Fields.FirstName = "Ada"
	flow.Fields.LastName = "Lovelace"

	err := flow.Submit(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "confirm_password")
	assert.Zero(t, api.loginCalls)
	assert.Zero(t, api.registerCalls)
	assert.Zero(t, api.meCalls)
	assert.False(t, flow.IsAuthenticated())
}

func TestLoginEstablishesSessionInTwoSteps(t *testing.T) {
	api := &spyAPI{}
	flow, store := newTestFlow(api)
	flow.Fields.Email = "pro@example.com"
	flow.Fields.Password = "abc123"

	require.NoError(t, flow.Submit(context.Background()))

	assert.Equal(t, 1, api.loginCalls)
	assert.Equal(t, 1, api.meCalls)
	// /auth/me was called with the exact token login returned
	assert.Equal(t, "tok-123", api.token)
	assert.True(t, flow.IsAuthenticated())
	assert.Equal(t, "pro@example.com", flow.User().Email)

	// session was persisted
	tok, _ := store.Get("auth_token")
	assert.Equal(t, "tok-123", tok)
}

func TestMeFailureLeavesSessionUnestablished(t *testing.T) {
	api := &spyAPI{meErr: errors.New("token rejected")}
	flow, store := newTestFlow(api)
	flow.Fields.Email = "pro@example.com"
	flow.Fields.Password = "abc123"

	err := flow.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1, api.loginCalls, "step 1 did succeed")
	assert.False(t, flow.IsAuthenticated(), "step 2 failed, so no session")
	assert.Empty(t, api.token, "half-established token must be dropped")
	_, storeErr := store.Get("auth_token")
	assert.ErrorIs(t, storeErr, session.ErrNotFound)
}

func TestRegisterSendsRoleConditionalBody(t *testing.T) {
	api := &spyAPI{user: &models.User{ID: "u-2", Email: "office@example.com", Role: models.RoleClient}}
	flow, _ := newTestFlow(api)
	flow.ToggleMode()
	flow.SwitchPortal(models.RoleClient)
	flow.Fields = Fields{
		Email:           "office@example.com",
		Password:        "abc123",
		ConfirmPassword: "abc123",
		FirstName:       "Dr. John",
		LastName:        "Smith",
		// professional block filled in by mistake; must not be sent for a client
		LicenseNumber: "DH-99",
		OfficeName:    "Smile Dental Care",
		OfficeAddress: "123 Main Street",
		OfficeCity:    "San Francisco",
		OfficeState:   "CA",
		OfficeZip:     "94102",
	}

	require.NoError(t, flow.Submit(context.Background()))

	reg := api.lastRegistration
	assert.Equal(t, models.RoleClient, reg.Role)
	assert.Equal(t, "Smile Dental Care", reg.DentalOfficeName)
	assert.Empty(t, reg.LicenseNumber)
	assert.Empty(t, reg.ProfessionType)
}

func TestRegisterRejectsUnknownPortal(t *testing.T) {
	api := &spyAPI{}
	flow, _ := newTestFlow(api)
	flow.ToggleMode()
	flow.SwitchPortal("admin")
	flow.Fields.Email = "a@b.com"
	flow.Fields.Password = "abc123"
	flow.Fields.ConfirmPassword = "abc123"
	flow.Fields.FirstName = "Ada"
	flow.Fields.LastName = "Lovelace"

	err := flow.Submit(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "role")
	assert.Zero(t, api.registerCalls)
}

func TestValidateLoginNeedsCredentialsOnly(t *testing.T) {
	flow, _ := newTestFlow(&spyAPI{})
	flow.Fields.Email = "pro@example.com"
	flow.Fields.Password = "abc123"

	assert.Nil(t, flow.Validate())

	flow.Fields.Email = "not-an-email"
	verr := flow.Validate()
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "email")
}
