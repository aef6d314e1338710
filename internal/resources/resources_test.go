package resources_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobportal/jobportal-client/internal/platform/httpx"
	"github.com/jobportal/jobportal-client/internal/resources"
	"github.com/jobportal/jobportal-client/internal/slice"
	_ "github.com/jobportal/jobportal-client/testing"
)

type backend struct {
	deletes    atomic.Int32
	failReport atomic.Bool
}

func (b *backend) router() http.Handler {
	r := chi.NewRouter()
	write := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
	r.Get("/api/profile/{id}", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"data":{"id":`+chi.URLParam(r, "id")+`,"company_name":"Acme","contact_number":"","contact_number_1":"98765","user":{"id":4,"role_id":3}}}`)
	})
	r.Get("/api/employers", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"user":[{"id":1,"company_name":"Acme"},{"id":2,"company_name":"Globex"}]}`)
	})
	r.Get("/api/employers/{id}", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"data":{"id":2,"company_name":"Globex"}}`)
	})
	r.Get("/api/get-employers-list", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"data":[{"id":1,"company_name":"Acme"}]}`)
	})
	r.Get("/api/consultants", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"data":[{"id":5,"name":"Ravi"}]}`)
	})
	r.Get("/api/consultants/{id}", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `{"consultant":{"id":5,"name":"Ravi","location":"Pune"}}`)
	})
	r.Get("/api/job-reports", func(w http.ResponseWriter, r *http.Request) {
		if b.failReport.Load() {
			write(w, http.StatusInternalServerError, `{"message":"report service unavailable"}`)
			return
		}
		write(w, http.StatusOK, `{"data":{"report":[{"sub_name":"JobName 1","charge_per_month":"Rs 2000.00","sub_status":"Active"}]}}`)
	})
	r.Delete("/api/employers/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.deletes.Add(1)
		write(w, http.StatusOK, `{"message":"Employer deleted"}`)
	})
	r.Delete("/api/candidates/{id}", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusForbidden, `{"message":"candidate has active applications"}`)
	})
	return r
}

func newSet(t *testing.T) (*resources.Set, *backend) {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(b.router())
	t.Cleanup(srv.Close)
	client, err := httpx.NewClient(srv.URL, time.Second)
	require.NoError(t, err)
	return resources.NewSet(client), b
}

func TestFetchProfileExtractsData(t *testing.T) {
	set, _ := newSet(t)

	st := set.FetchProfile(context.Background(), 11)
	require.Equal(t, slice.Fulfilled, st.Status)
	profile := st.Value()
	assert.Equal(t, int64(11), profile.ID)
	assert.Equal(t, "Acme", profile.DisplayName())
	assert.Equal(t, "98765", profile.Contact())
	assert.Equal(t, int64(3), profile.User.RoleID)
}

func TestFetchListsExtractTheirField(t *testing.T) {
	set, _ := newSet(t)
	ctx := context.Background()

	employers := set.FetchEmployers(ctx)
	require.Equal(t, slice.Fulfilled, employers.Status)
	assert.Len(t, employers.Value(), 2)

	names := set.FetchEmployerNames(ctx)
	require.Equal(t, slice.Fulfilled, names.Status)
	assert.Equal(t, "Acme", names.Value()[0].CompanyName)

	details := set.FetchEmployerDetails(ctx, 2)
	assert.Equal(t, "Globex", details.Value().CompanyName)

	consultants := set.FetchConsultants(ctx)
	assert.Equal(t, "Ravi", consultants.Value()[0].Name)

	consultant := set.FetchConsultantDetails(ctx, 5)
	assert.Equal(t, "Pune", consultant.Value().Location)

	reports := set.FetchJobReports(ctx)
	require.Equal(t, slice.Fulfilled, reports.Status)
	assert.Equal(t, "JobName 1", reports.Value()[0].SubName)
}

func TestJobReportsRejectionKeepsData(t *testing.T) {
	set, b := newSet(t)
	ctx := context.Background()

	require.Equal(t, slice.Fulfilled, set.FetchJobReports(ctx).Status)
	b.failReport.Store(true)
	st := set.FetchJobReports(ctx)

	require.Equal(t, slice.Rejected, st.Status)
	assert.Len(t, st.Value(), 1)
	assert.Equal(t, "report service unavailable", st.Error.Message)
	assert.True(t, st.Error.Transient())
}

func TestDetailFetchWithoutIDIsRejected(t *testing.T) {
	set, _ := newSet(t)
	st := set.EmployerDetails.Dispatch(context.Background(), nil)
	require.Equal(t, slice.Rejected, st.Status)
	assert.Equal(t, resources.ErrMissingID.Error(), st.Error.Message)
}

func TestDeleteAccountRoutesByRole(t *testing.T) {
	set, b := newSet(t)

	st := set.DeleteAccountOf(context.Background(), 3, 4)
	require.Equal(t, slice.Fulfilled, st.Status)
	assert.Equal(t, "employer", st.Value().Role)
	assert.Equal(t, "Employer deleted", st.Value().Message)
	assert.Equal(t, int32(1), b.deletes.Load())

	set.DeleteAccount.Clear()
	assert.Equal(t, slice.Idle, set.DeleteAccount.Snapshot().Status)
}

func TestDeleteAccountServerRefusal(t *testing.T) {
	set, _ := newSet(t)
	st := set.DeleteAccountOf(context.Background(), 2, 4)
	require.Equal(t, slice.Rejected, st.Status)
	assert.Equal(t, "candidate has active applications", st.Error.Message)
	assert.Equal(t, http.StatusForbidden, st.Error.Status)
}

func TestDeleteAccountUnknownRole(t *testing.T) {
	set, b := newSet(t)
	st := set.DeleteAccountOf(context.Background(), 99, 4)
	require.Equal(t, slice.Rejected, st.Status)
	assert.Equal(t, resources.ErrUnknownRole.Error(), st.Error.Message)
	assert.Zero(t, b.deletes.Load())
}

func TestSavedCompanies(t *testing.T) {
	set, _ := newSet(t)
	acme := resources.Employer{ID: 1, CompanyName: "Acme"}
	globex := resources.Employer{ID: 2, CompanyName: "Globex"}

	set.SaveCompany(acme)
	set.SaveCompany(globex)
	set.SaveCompany(acme)
	assert.Equal(t, []resources.Employer{acme, globex}, set.SavedCompanies.Snapshot().Value())

	set.UnsaveCompany(1)
	assert.Equal(t, []resources.Employer{globex}, set.SavedCompanies.Snapshot().Value())
}
