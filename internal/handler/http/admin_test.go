// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/metrics"
	"github.com/MKhiriev/dashboard-api/internal/mock"
	"github.com/MKhiriev/dashboard-api/internal/service"
	"github.com/MKhiriev/dashboard-api/internal/validators"
	"github.com/MKhiriev/dashboard-api/models"
)

func TestAdminIndex(t *testing.T) {
	tests := []struct {
		name          string
		user          models.User
		wantStatus    int
		wantCanChange bool
	}{
		{"regular user", alice, http.StatusForbidden, false},
		{"staff", staff, http.StatusOK, false},
		{"superuser", root, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := newTestRouter(t)
			deps.loginAs("tok", tt.user)

			rr := doRequest(router, http.MethodGet, "/admin/", "tok", "")

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var index models.AdminIndex
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &index))
			assert.Equal(t, "Django administration", index.SiteHeader)
			require.Len(t, index.Models, 1)
			assert.Equal(t, "/admin/users/", index.Models[0].URL)
			assert.Equal(t, tt.wantCanChange, index.Models[0].CanChange)
		})
	}
}

func TestAdmin_RequiresAuthentication(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doRequest(router, http.MethodGet, "/admin/", "", "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListUsers(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.loginAs("tok", staff)

	isStaff := true
	deps.users.EXPECT().ListUsers(gomock.Any(), models.UserFilter{
		Search:  "ali",
		IsStaff: &isStaff,
		Limit:   10,
		Offset:  20,
	}).Return(models.UserList{Count: 1, Results: []models.User{alice}}, nil)

	rr := doRequest(router, http.MethodGet, "/admin/users/?search=ali&is_staff=true&limit=10&offset=20", "tok", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var list struct {
		Count   uint64           `json:"count"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, uint64(1), list.Count)
	require.Len(t, list.Results, 1)
	assert.Equal(t, "alice", list.Results[0]["username"])
	assert.NotContains(t, list.Results[0], "password_hash")
}

func TestListUsers_EmptyResultsIsArray(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.loginAs("tok", staff)
	deps.users.EXPECT().ListUsers(gomock.Any(), models.UserFilter{}).Return(models.UserList{}, nil)

	rr := doRequest(router, http.MethodGet, "/admin/users/", "tok", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count":0,"results":[]}`, rr.Body.String())
}

func TestListUsers_BadQuery(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.loginAs("tok", staff)

	rr := doRequest(router, http.MethodGet, "/admin/users/?is_staff=maybe&limit=-1", "tok", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"is_staff":["Must be a valid boolean."],"limit":["A valid integer is required."]}`, rr.Body.String())
}

func TestGetUser(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.loginAs("tok", staff)

	lastLogin := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	found := alice
	found.LastLogin = &lastLogin
	deps.users.EXPECT().GetUser(gomock.Any(), int64(1)).Return(found, nil)
	deps.users.EXPECT().GetUser(gomock.Any(), int64(99)).Return(models.User{}, service.ErrUserNotFound)

	rr := doRequest(router, http.MethodGet, "/admin/users/1/", "tok", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"last_login":"2026-03-01T10:00:00Z"`)

	rr = doRequest(router, http.MethodGet, "/admin/users/99/", "tok", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, rr.Body.String())

	for _, path := range []string{"/admin/users/abc/", "/admin/users/0/"} {
		rr = doRequest(router, http.MethodGet, path, "tok", "")
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestCreateUser(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.loginAs("tok", root)

	request := models.CreateUserRequest{Username: "bob", Email: "b@x.com", Password: "long password", IsStaff: true}
	deps.users.EXPECT().CreateUser(gomock.Any(), request).
		Return(models.User{UserID: 7, Username: "bob", Email: "b@x.com", IsStaff: true, IsActive: true}, nil)

	rr := doRequest(router, http.MethodPost, "/admin/users/", "tok",
		`{"username":"bob","email":"b@x.com","password":"long password","is_staff":true}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":7`)
}

func TestCreateUser_UsernameTaken(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.loginAs("tok", root)

	taken := &validators.ValidationError{}
	taken.Add("username", "A user with that username already exists.")
	deps.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, taken)

	rr := doRequest(router, http.MethodPost, "/admin/users/", "tok", `{"username":"alice","password":"long password"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"username":["A user with that username already exists."]}`, rr.Body.String())
}

// newValidatingRouter serves the admin routes through the real validation
// and user services over a repository that must never be reached.
func newValidatingRouter(t *testing.T) http.Handler {
	t.Helper()
	ctrl := gomock.NewController(t)

	auth := mock.NewMockAuthService(ctrl)
	auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(root, nil).AnyTimes()
	users := service.NewUserValidationService(validators.NewRequestValidator()).
		Wrap(service.NewUserService(mock.NewMockUserRepository(ctrl), logger.Nop()))

	h := NewHandler(&service.Services{AuthService: auth, UserService: users}, testServerConfig(), metrics.New(), logger.Nop())
	router, err := h.Init()
	require.NoError(t, err)
	return router
}

func TestAdminWrites_MultibytePasswordOverByteLimit(t *testing.T) {
	router := newValidatingRouter(t)
	password := strings.Repeat("é", 40)
	want := `{"password":["Ensure this field has no more than 72 bytes."]}`

	rr := doRequest(router, http.MethodPost, "/admin/users/", "tok", `{"username":"bob","password":"`+password+`"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, want, rr.Body.String())

	rr = doRequest(router, http.MethodPatch, "/admin/users/1/", "tok", `{"password":"`+password+`"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, want, rr.Body.String())
}

func TestAdminWrites_ForbiddenForStaff(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.loginAs("tok", staff)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/admin/users/", `{"username":"x","password":"long password"}`},
		{http.MethodPatch, "/admin/users/1/", `{"is_active":false}`},
		{http.MethodDelete, "/admin/users/1/", ""},
	}

	for _, tt := range tests {
		rr := doRequest(router, tt.method, tt.path, "tok", tt.body)
		assert.Equal(t, http.StatusForbidden, rr.Code, tt.method+" "+tt.path)
	}
}

func TestUpdateUser(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.loginAs("tok", root)

	inactive := false
	updated := alice
	updated.IsActive = false
	deps.users.EXPECT().UpdateUser(gomock.Any(), int64(1), models.UpdateUserRequest{IsActive: &inactive}).Return(updated, nil)
	deps.users.EXPECT().UpdateUser(gomock.Any(), int64(1), models.UpdateUserRequest{}).Return(models.User{}, service.ErrNothingToUpdate)

	rr := doRequest(router, http.MethodPatch, "/admin/users/1/", "tok", `{"is_active":false}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"is_active":false`)

	rr = doRequest(router, http.MethodPatch, "/admin/users/1/", "tok", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid", decodeErrorResponse(t, rr).Code)
}

func TestDeleteUser(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.loginAs("tok", root)

	deps.users.EXPECT().DeleteUser(gomock.Any(), int64(1)).Return(nil)
	deps.users.EXPECT().DeleteUser(gomock.Any(), int64(2)).Return(service.ErrUserNotFound)

	rr := doRequest(router, http.MethodDelete, "/admin/users/1/", "tok", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = doRequest(router, http.MethodDelete, "/admin/users/2/", "tok", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestParseUserFilter_Defaults(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/admin/users/", nil)
	require.NoError(t, err)

	filter, err := parseUserFilter(req)

	require.NoError(t, err)
	assert.Equal(t, models.UserFilter{}, filter)
}
