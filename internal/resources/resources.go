package resources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/jobportal/jobportal-client/internal/platform/httpx"
	"github.com/jobportal/jobportal-client/internal/rbac"
	"github.com/jobportal/jobportal-client/internal/slice"
)

// Slice names, also used as metric labels.
const (
	NameProfile           = "profile"
	NameEmployers         = "employers"
	NameEmployerDetails   = "employer_details"
	NameEmployerNames     = "employer_names"
	NameSavedCompanies    = "saved_companies"
	NameConsultants       = "consultants"
	NameConsultantDetails = "consultant_details"
	NameJobReports        = "job_reports"
	NameDeleteAccount     = "delete_account"
)

var (
	// ErrUnknownRole is stored when an account of an unknown type is deleted.
	ErrUnknownRole = errors.New("unable to determine your account type")
	// ErrMissingID is stored when a detail fetch is dispatched without an id.
	ErrMissingID = errors.New("resources: id parameter required")
)

// deletePaths maps an account type to the endpoint removing it.
var deletePaths = map[int64]string{
	rbac.RoleAdmin.ID:      "api/admins/%d",
	rbac.RoleCandidate.ID:  "api/candidates/%d",
	rbac.RoleEmployer.ID:   "api/employers/%d",
	rbac.RoleConsultant.ID: "api/consultants/%d",
	rbac.RoleInstitute.ID:  "api/institutes/%d",
	rbac.RoleGram.ID:       "api/grams/%d",
}

// Set bundles every resource slice of the client.
type Set struct {
	Profile           *slice.Slice[Profile]
	Employers         *slice.Slice[[]Employer]
	EmployerDetails   *slice.Slice[Employer]
	EmployerNames     *slice.Slice[[]EmployerName]
	SavedCompanies    *slice.Slice[[]Employer]
	Consultants       *slice.Slice[[]Consultant]
	ConsultantDetails *slice.Slice[Consultant]
	JobReports        *slice.Slice[[]JobReport]
	DeleteAccount     *slice.Slice[DeleteOutcome]
}

// NewSet wires all slices to api.
func NewSet(api httpx.Doer, opts ...slice.Option) *Set {
	return &Set{
		Profile:           slice.New(NameProfile, getByID[Profile](api, "api/profile/%d", "data"), opts...),
		Employers:         slice.New(NameEmployers, get[[]Employer](api, "api/employers", "user"), opts...),
		EmployerDetails:   slice.New(NameEmployerDetails, getByID[Employer](api, "api/employers/%d", "data"), opts...),
		EmployerNames:     slice.New(NameEmployerNames, get[[]EmployerName](api, "api/get-employers-list", "data"), opts...),
		SavedCompanies:    slice.New[[]Employer](NameSavedCompanies, nil, opts...),
		Consultants:       slice.New(NameConsultants, get[[]Consultant](api, "api/consultants", "data"), opts...),
		ConsultantDetails: slice.New(NameConsultantDetails, getByID[Consultant](api, "api/consultants/%d", "consultant"), opts...),
		JobReports:        slice.New(NameJobReports, get[[]JobReport](api, "api/job-reports", "data", "report"), opts...),
		DeleteAccount:     slice.New(NameDeleteAccount, deleteAccount(api), opts...),
	}
}

// FetchProfile loads the profile of userID.
func (s *Set) FetchProfile(ctx context.Context, userID int64) slice.State[Profile] {
	return s.Profile.Dispatch(ctx, slice.Params{"id": userID})
}

// FetchEmployers loads the employer list.
func (s *Set) FetchEmployers(ctx context.Context) slice.State[[]Employer] {
	return s.Employers.Dispatch(ctx, nil)
}

// FetchEmployerDetails loads a single employer.
func (s *Set) FetchEmployerDetails(ctx context.Context, id int64) slice.State[Employer] {
	return s.EmployerDetails.Dispatch(ctx, slice.Params{"id": id})
}

// FetchEmployerNames loads the employer picker list.
func (s *Set) FetchEmployerNames(ctx context.Context) slice.State[[]EmployerName] {
	return s.EmployerNames.Dispatch(ctx, nil)
}

// FetchConsultants loads the consultant list.
func (s *Set) FetchConsultants(ctx context.Context) slice.State[[]Consultant] {
	return s.Consultants.Dispatch(ctx, nil)
}

// FetchConsultantDetails loads a single consultant.
func (s *Set) FetchConsultantDetails(ctx context.Context, id int64) slice.State[Consultant] {
	return s.ConsultantDetails.Dispatch(ctx, slice.Params{"id": id})
}

// FetchJobReports loads the jobs report.
func (s *Set) FetchJobReports(ctx context.Context) slice.State[[]JobReport] {
	return s.JobReports.Dispatch(ctx, nil)
}

// DeleteAccountOf deletes the account userID of the given account type.
func (s *Set) DeleteAccountOf(ctx context.Context, roleID, userID int64) slice.State[DeleteOutcome] {
	return s.DeleteAccount.Dispatch(ctx, slice.Params{"role_id": roleID, "id": userID})
}

// SaveCompany bookmarks an employer. Saving twice keeps one entry.
func (s *Set) SaveCompany(e Employer) {
	s.SavedCompanies.Set(func(list *[]Employer) {
		if slices.ContainsFunc(*list, func(x Employer) bool { return x.ID == e.ID }) {
			return
		}
		*list = append(slices.Clone(*list), e)
	})
}

// UnsaveCompany removes a bookmarked employer.
func (s *Set) UnsaveCompany(id int64) {
	s.SavedCompanies.Set(func(list *[]Employer) {
		*list = slices.DeleteFunc(slices.Clone(*list), func(x Employer) bool { return x.ID == id })
	})
}

func get[T any](api httpx.Doer, path string, field ...string) slice.Fetcher[T] {
	return func(ctx context.Context, _ slice.Params) (T, error) {
		return request[T](ctx, api, http.MethodGet, path, field...)
	}
}

func getByID[T any](api httpx.Doer, pattern string, field ...string) slice.Fetcher[T] {
	return func(ctx context.Context, params slice.Params) (T, error) {
		id, err := int64Param(params, "id")
		if err != nil {
			var zero T
			return zero, err
		}
		return request[T](ctx, api, http.MethodGet, fmt.Sprintf(pattern, id), field...)
	}
}

func deleteAccount(api httpx.Doer) slice.Fetcher[DeleteOutcome] {
	return func(ctx context.Context, params slice.Params) (DeleteOutcome, error) {
		roleID, err := int64Param(params, "role_id")
		if err != nil {
			return DeleteOutcome{}, err
		}
		role, known := rbac.RoleByID(roleID)
		pattern, routed := deletePaths[roleID]
		if !known || !routed {
			return DeleteOutcome{}, ErrUnknownRole
		}
		id, err := int64Param(params, "id")
		if err != nil {
			return DeleteOutcome{}, err
		}
		raw, err := api.Do(ctx, http.MethodDelete, fmt.Sprintf(pattern, id), nil)
		if err != nil {
			return DeleteOutcome{}, err
		}
		out := DeleteOutcome{Role: role.Name}
		var message string
		if err := httpx.Extract(raw, &message, "message"); err == nil {
			out.Message = message
		}
		return out, nil
	}
}

func request[T any](ctx context.Context, api httpx.Doer, method, path string, field ...string) (T, error) {
	var out T
	raw, err := api.Do(ctx, method, path, nil)
	if err != nil {
		return out, err
	}
	if err := httpx.Extract(raw, &out, field...); err != nil {
		return out, err
	}
	return out, nil
}

func int64Param(params slice.Params, key string) (int64, error) {
	switch v := params[key].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	}
	if key == "id" {
		return 0, ErrMissingID
	}
	return 0, fmt.Errorf("resources: %s parameter required", key)
}
