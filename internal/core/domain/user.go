package domain

// User is an employee who owns expense reports. Currency is the user's default
// reporting currency, used to prefill new reports.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Currency     string `json:"currency"`
	CompanyCode  string `json:"companyCode,omitempty"`
	IsStaff      bool   `json:"isStaff"`
	AuditFields
}
