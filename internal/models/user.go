package models

// User is the persisted form of an application user.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Currency     string `json:"currency"`
	CompanyCode  string `json:"companyCode"`
	IsStaff      bool   `json:"isStaff"`
	AuditFields
}
