// Package navigation decides which screens a signed-in user can reach and
// which role specific screen backs a shared route name.
package navigation

import "github.com/jobportal/jobportal-client/internal/rbac"

// Screen identifies a concrete screen implementation.
type Screen string

// Screens mounted by the client.
const (
	ScreenLogin         Screen = "Login"
	ScreenAdminHome     Screen = "AdminHome"
	ScreenEmployerHome  Screen = "EmployerHome"
	ScreenInstituteHome Screen = "InstituteHome"
	ScreenUserHome      Screen = "UserHome"
	ScreenCandidates    Screen = "Candidates"
	ScreenConsultants   Screen = "Consultants"
	ScreenManagement    Screen = "JobsCategoryMnt"
	ScreenJobsReport    Screen = "JobsReport"
	ScreenProfile       Screen = "ProfileDetails"
)

// Route names shared by several screens.
const (
	RouteHome             = "Home"
	RouteBottomNavigation = "bottomnavigation"
)

// Navigator is a top-level navigation stack.
type Navigator string

const (
	NavigatorAuth Navigator = "Auth"
	NavigatorMain Navigator = "Main"
)

// TopLevel picks the navigator to mount for the session state.
func TopLevel(authenticated bool) Navigator {
	if authenticated {
		return NavigatorMain
	}
	return NavigatorAuth
}

// AuthScreens lists the screens of the unauthenticated stack.
func AuthScreens() []Screen {
	return []Screen{ScreenLogin}
}

// Candidate is one row of a slot dispatch table.
type Candidate struct {
	Permission string
	Screen     Screen
}

// Slot is a route that may be backed by several role specific screens.
// Candidates are ordered from most to least privileged. A mandatory slot
// falls back to Default; an optional slot without a match is omitted.
type Slot struct {
	Route      string
	Mandatory  bool
	Candidates []Candidate
	Default    Screen
}

// Action is what a drawer entry does when tapped.
type Action string

const (
	ActionNavigate Action = "navigate"
	ActionExpand   Action = "expand"
	ActionLogout   Action = "logout"
)

// MenuItem describes a drawer entry. Permissions are alternatives: the item is
// shown when any of them is held, always when the list is empty. Items with
// children are groups, shown only when at least one child is shown.
type MenuItem struct {
	Label       string
	Route       string
	Screen      Screen
	Action      Action
	Permissions []string
	Children    []MenuItem
}

// Table is the full navigation configuration.
type Table struct {
	Tabs   []Slot
	Drawer []MenuItem
}

// DefaultTable returns the navigation of the job portal.
func DefaultTable() Table {
	return Table{
		Tabs: []Slot{
			{
				Route:     RouteHome,
				Mandatory: true,
				Candidates: []Candidate{
					{Permission: rbac.PermAdminHome, Screen: ScreenAdminHome},
					{Permission: rbac.PermEmployerHome, Screen: ScreenEmployerHome},
					{Permission: rbac.PermInstituteHome, Screen: ScreenInstituteHome},
				},
				Default: ScreenUserHome,
			},
			{
				Route: RouteBottomNavigation,
				Candidates: []Candidate{
					{Permission: rbac.PermCandidatesList, Screen: ScreenCandidates},
					{Permission: rbac.PermConsultantsList, Screen: ScreenConsultants},
				},
			},
		},
		Drawer: []MenuItem{
			{Label: "home", Route: RouteHome, Action: ActionNavigate},
			{
				Label:  "Jobs Management",
				Action: ActionExpand,
				Children: []MenuItem{
					{Label: "Job List", Route: "JobList", Screen: ScreenManagement, Action: ActionNavigate, Permissions: []string{rbac.PermCreatedJobsView}},
					{Label: "Job Category", Route: "JobCategory", Screen: ScreenManagement, Action: ActionNavigate, Permissions: []string{rbac.PermJobCategoryView}},
					{Label: "Job Type", Route: "JobType", Screen: ScreenManagement, Action: ActionNavigate, Permissions: []string{rbac.PermJobTypeView}},
					{Label: "Job Skills", Route: "JobSkills", Screen: ScreenManagement, Action: ActionNavigate, Permissions: []string{rbac.PermJobSkillView}},
					{Label: "Job Education", Route: "JobEducation", Screen: ScreenManagement, Action: ActionNavigate, Permissions: []string{rbac.PermJobEducationView}},
				},
			},
			{Label: "Candidate Management", Route: "CandidateManagement", Screen: ScreenManagement, Action: ActionNavigate, Permissions: []string{rbac.PermCreatedCandidates}},
			{Label: "Subscription Management", Route: "SubscriptionManagement", Screen: ScreenManagement, Action: ActionNavigate, Permissions: []string{rbac.PermSubscriptionManage}},
			{
				Label:  "Reports",
				Action: ActionExpand,
				Children: []MenuItem{
					{Label: "Subscription Reports", Route: "SubscriptionReports", Screen: ScreenManagement, Action: ActionNavigate, Permissions: []string{rbac.PermSubscriptionReports}},
					{Label: "Jobs Report", Route: "JobsReport", Screen: ScreenJobsReport, Action: ActionNavigate, Permissions: []string{rbac.PermJobReports}},
				},
			},
			{Label: "User Profile", Route: "UserProfile", Screen: ScreenProfile, Action: ActionNavigate},
			{Label: "Log Out", Action: ActionLogout},
		},
	}
}
