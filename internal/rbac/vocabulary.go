package rbac

// Permission names granted by the portal. They are compared verbatim.
const (
	PermAdminHome     = "Admin Home"
	PermEmployerHome  = "Employer Home"
	PermInstituteHome = "Institute Home"

	PermCandidatesList  = "Candidates List"
	PermConsultantsList = "Consultants List"

	PermCreatedJobsView    = "Created Jobs View"
	PermJobCategoryView    = "Job Category View Mobile"
	PermJobTypeView        = "Job Type View Mobile"
	PermJobSkillView       = "Job skill View Mobile"
	PermJobEducationView   = "Job Education View Mobile"
	PermCreatedCandidates  = "Created Candidates View"
	PermSubscriptionManage = "Subscription Management"

	PermSubscriptionReports = "subscription reports"
	PermJobReports          = "job reports"
)

// HomeScopes lists the permissions selecting a role specific home screen,
// most privileged first.
func HomeScopes() []string {
	return []string{PermAdminHome, PermEmployerHome, PermInstituteHome}
}

// JobScopes lists the permissions of the jobs management menu.
func JobScopes() []string {
	return []string{
		PermCreatedJobsView,
		PermJobCategoryView,
		PermJobTypeView,
		PermJobSkillView,
		PermJobEducationView,
	}
}

// ReportScopes lists the permissions of the reports menu.
func ReportScopes() []string {
	return []string{PermSubscriptionReports, PermJobReports}
}
