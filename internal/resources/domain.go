// Package resources declares the portal resources the client fetches and the
// slices holding them.
package resources

import "strings"

// ProfileUser is the account block nested in a profile.
type ProfileUser struct {
	ID       int64  `json:"id"`
	RoleID   int64  `json:"role_id"`
	Email    string `json:"email"`
	RoleName string `json:"role_name,omitempty"`
}

// Profile is the signed-in user's profile.
type Profile struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	CompanyName    string      `json:"company_name"`
	Email          string      `json:"email"`
	ContactNumber  string      `json:"contact_number"`
	ContactNumber1 string      `json:"contact_number_1"`
	ContactNumber2 string      `json:"contact_number_2"`
	GSTNo          string      `json:"gst_no"`
	WebsiteURL     string      `json:"website_url"`
	ProfileImage   string      `json:"profile_image"`
	User           ProfileUser `json:"user"`
}

// Contact returns the first non-empty contact number.
func (p Profile) Contact() string {
	for _, c := range []string{p.ContactNumber, p.ContactNumber1, p.ContactNumber2} {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

// DisplayName prefers the company name for organisation accounts.
func (p Profile) DisplayName() string {
	if p.CompanyName != "" {
		return p.CompanyName
	}
	return p.Name
}

// Employer is a company registered on the portal.
type Employer struct {
	ID            int64  `json:"id"`
	CompanyName   string `json:"company_name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contact_number"`
	Location      string `json:"location"`
	WebsiteURL    string `json:"website_url"`
}

// EmployerName is an entry of the lightweight employer picker list.
type EmployerName struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"company_name"`
}

// Consultant is a placement consultant.
type Consultant struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contact_number"`
	Location      string `json:"location"`
}

// JobReport is one row of the jobs report.
type JobReport struct {
	SubName        string `json:"sub_name"`
	ChargePerMonth string `json:"charge_per_month"`
	RequestStatus  string `json:"request_status"`
	RequestDate    string `json:"request_date"`
	SubStatus      string `json:"sub_status"`
}

// DeleteOutcome confirms a deleted account.
type DeleteOutcome struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}
