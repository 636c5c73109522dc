package model

import "time"

// RequestStatus is the lifecycle of a service request. Only admins move a
// request out of PENDING.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// ValidRequestStatus reports whether s is a member of the status set.
func ValidRequestStatus(s string) bool {
	switch RequestStatus(s) {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// Request types. Anonymous submissions are always NEW_CLIENT; authenticated
// clients default to NEW_PROJECT.
const (
	RequestTypeNewClient     = "NEW_CLIENT"
	RequestTypeNewProject    = "NEW_PROJECT"
	RequestTypeProjectUpdate = "PROJECT_UPDATE"
)

type ServiceRequest struct {
	ID             string        `json:"id"`
	FullName       string        `json:"fullName"`
	Email          string        `json:"email"`
	CompanyName    string        `json:"companyName"`
	PhoneNumber    string        `json:"phoneNumber"`
	ServiceType    string        `json:"serviceType"`
	Description    string        `json:"description"`
	ProjectName    string        `json:"projectName"`
	Priority       string        `json:"priority"`
	BudgetRange    string        `json:"budgetRange"`
	Timeline       string        `json:"timeline"`
	ReferenceLinks string        `json:"referenceLinks"`
	RequestType    string        `json:"requestType"`
	Status         RequestStatus `json:"status"`
	ClientID       string        `json:"clientId,omitempty"`
	ProjectID      string        `json:"projectId,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}
