package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobportal/jobportal-client/internal/rbac"
)

func defaultResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(DefaultTable())
	require.NoError(t, err)
	return r
}

func TestEmptyPermissionsResolveToUserHome(t *testing.T) {
	reach := defaultResolver(t).Resolve(rbac.Set{})

	require.Len(t, reach.Tabs, 1)
	assert.Equal(t, Route{Name: RouteHome, Screen: ScreenUserHome}, reach.Tabs[0])
	assert.False(t, reach.Has(RouteBottomNavigation))
	assert.Equal(t, []string{RouteHome, "UserProfile"}, reach.DrawerRoutes())
}

func TestUnpopulatedStoreResolvesLeastPrivileged(t *testing.T) {
	reach := defaultResolver(t).Resolve(rbac.NewStore().Snapshot())
	screen, ok := reach.Screen(RouteHome)
	require.True(t, ok)
	assert.Equal(t, ScreenUserHome, screen)
}

func TestHomePriorityTieBreak(t *testing.T) {
	r := defaultResolver(t)
	cases := []struct {
		name  string
		perms []string
		want  Screen
	}{
		{"admin and employer", []string{rbac.PermEmployerHome, rbac.PermAdminHome}, ScreenAdminHome},
		{"employer and institute", []string{rbac.PermInstituteHome, rbac.PermEmployerHome}, ScreenEmployerHome},
		{"institute", []string{rbac.PermInstituteHome}, ScreenInstituteHome},
		{"unrelated", []string{rbac.PermJobReports}, ScreenUserHome},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			screen, ok := r.Resolve(rbac.NewSet(tc.perms...)).Screen(RouteHome)
			require.True(t, ok)
			assert.Equal(t, tc.want, screen)
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	r := defaultResolver(t)
	set := rbac.NewSet(rbac.PermAdminHome, rbac.PermCandidatesList, rbac.PermJobReports, rbac.PermJobTypeView)
	first := r.Resolve(set)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Resolve(set))
	}
}

func TestCandidatesTabForCandidatesListOnly(t *testing.T) {
	reach := defaultResolver(t).Resolve(rbac.NewSet(rbac.PermCandidatesList))

	home, ok := reach.Screen(RouteHome)
	require.True(t, ok)
	assert.Equal(t, ScreenUserHome, home)
	tab, ok := reach.Screen(RouteBottomNavigation)
	require.True(t, ok)
	assert.Equal(t, ScreenCandidates, tab)
}

func TestSharedTabRoutePrefersCandidates(t *testing.T) {
	r := defaultResolver(t)
	tab, _ := r.Resolve(rbac.NewSet(rbac.PermConsultantsList)).Screen(RouteBottomNavigation)
	assert.Equal(t, ScreenConsultants, tab)

	tab, _ = r.Resolve(rbac.NewSet(rbac.PermConsultantsList, rbac.PermCandidatesList)).Screen(RouteBottomNavigation)
	assert.Equal(t, ScreenCandidates, tab)
}

func TestDrawerGroupsFollowChildren(t *testing.T) {
	reach := defaultResolver(t).Resolve(rbac.NewSet(rbac.PermJobTypeView, rbac.PermJobReports))

	var labels []string
	for _, e := range reach.Drawer {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{"home", "Jobs Management", "Reports", "User Profile", "Log Out"}, labels)

	jobs := reach.Drawer[1]
	require.Len(t, jobs.Children, 1)
	assert.Equal(t, "JobType", jobs.Children[0].Route)
	reports := reach.Drawer[2]
	require.Len(t, reports.Children, 1)
	assert.Equal(t, ScreenJobsReport, reports.Children[0].Screen)
	assert.Equal(t, ActionLogout, reach.Drawer[4].Action)
}

func TestNewResolverRejectsMissingDefault(t *testing.T) {
	_, err := NewResolver(Table{Tabs: []Slot{{Route: RouteHome, Mandatory: true}}})
	require.ErrorIs(t, err, ErrNoDefault)
}

func TestNewResolverRejectsDuplicateRoutes(t *testing.T) {
	_, err := NewResolver(Table{Tabs: []Slot{{Route: "x"}, {Route: "x"}}})
	require.ErrorIs(t, err, ErrDuplicateRoute)
}

func TestNewResolverRejectsEmptyGroup(t *testing.T) {
	_, err := NewResolver(Table{Drawer: []MenuItem{{Label: "Reports", Action: ActionExpand}}})
	require.ErrorIs(t, err, ErrEmptyGroup)
}

func TestResolverIsolatedFromTableMutation(t *testing.T) {
	table := DefaultTable()
	r := MustResolver(table)
	table.Tabs[0].Candidates[0].Screen = "Hijacked"

	screen, _ := r.Resolve(rbac.NewSet(rbac.PermAdminHome)).Screen(RouteHome)
	assert.Equal(t, ScreenAdminHome, screen)
}

func TestWatchFollowsStore(t *testing.T) {
	store := rbac.NewStore()
	var homes []Screen
	defaultResolver(t).Watch(store, func(r Reachable) {
		s, _ := r.Screen(RouteHome)
		homes = append(homes, s)
	})
	store.SetPermissions(1, []string{rbac.PermEmployerHome})
	store.Reset()

	assert.Equal(t, []Screen{ScreenUserHome, ScreenEmployerHome, ScreenUserHome}, homes)
}

func TestTopLevel(t *testing.T) {
	assert.Equal(t, NavigatorAuth, TopLevel(false))
	assert.Equal(t, NavigatorMain, TopLevel(true))
	assert.Equal(t, []Screen{ScreenLogin}, AuthScreens())
}
