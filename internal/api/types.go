package api

import "strings"

// Invoice status values. The server is inconsistent about casing ("Paid" vs
// "paid"), so statuses are lowercased at the decode boundary and these
// constants are the only forms the rest of the code sees.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Invoice is a property-rate or TV-licence invoice as returned by the server.
type Invoice struct {
	ID             int     `json:"id"`
	Amount         float64 `json:"amount"`
	DueDate        string  `json:"due_date"`
	Period         string  `json:"period,omitempty"`
	Plan           string  `json:"plan,omitempty"`
	Status         string  `json:"status"`
	RateableValue  float64 `json:"rateable_value"`
	RateImpost     float64 `json:"rate_impost"`
	Arrears        float64 `json:"arrears"`
	Payment        float64 `json:"payment"`
	UserName       string  `json:"user_name,omitempty"`
	DigitalAddress string  `json:"digital_address,omitempty"`
	Region         string  `json:"region,omitempty"`
	District       string  `json:"district,omitempty"`
}

func (i *Invoice) normalize() {
	i.Status = strings.ToLower(strings.TrimSpace(i.Status))
}

// TotalDue is the amount outstanding on the invoice including arrears.
func (i Invoice) TotalDue() float64 {
	return i.Amount + i.Arrears - i.Payment
}

// Profile is the server-side user profile record.
type Profile struct {
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	BusinessName          string `json:"business_name"`
	RegistrationNo        string `json:"registration_no"`
	Email                 string `json:"email"`
	DigitalAddress        string `json:"digital_address"`
	GhanaCardID           string `json:"ghana_card_id"`
	Region                string `json:"region"`
	District              string `json:"district"`
	TypeOfPremise         string `json:"type_of_premise"`
	NoOfTV                int    `json:"no_of_tv"`
	ECGMeterNumber        string `json:"ecg_meter_number"`
	PropertyUserType      string `json:"property_user_type"`
	BusinessType          string `json:"business_type"`
	IndividualType        string `json:"individual_type"`
	Exemption             string `json:"exemption"`
	MeterImage            string `json:"meter_image"`
	Location              string `json:"location"`
	PropertyAccountNumber string `json:"property_account_number"`
	PlatformAccount       string `json:"platform_account"`
	PaymentPlan           string `json:"payment_plan"`
	IsUpdated             int    `json:"is_updated"`
}

// User is the account record paired with a Profile in user-details responses.
type User struct {
	ID    int    `json:"id"`
	Phone string `json:"phone"`
}

// UserDetails is the GET /user-details envelope.
type UserDetails struct {
	User    User    `json:"user"`
	Profile Profile `json:"profile"`
}

// District is read-only reference data for a municipal assembly.
type District struct {
	ID           int    `json:"id,omitempty"`
	DistrictName string `json:"district_name"`
	Location     string `json:"location"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// Region is a picker entry for the profile wizard.
type Region struct {
	Name string `json:"name"`
}

// Payment is an append-only record of a settled or attempted payment.
type Payment struct {
	InvoiceID     int     `json:"invoice_id"`
	AmountPaid    float64 `json:"amount_paid"`
	PaymentDate   string  `json:"payment_date"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status"`
}

// Transaction is an entry in the account-wide transaction feed.
type Transaction struct {
	ID     int     `json:"id"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
	Status string  `json:"status"`
	Date   string  `json:"date"`
}

// VerifyResult is the verify-otp success payload.
type VerifyResult struct {
	NewUser bool    `json:"new_user"`
	Profile Profile `json:"profile"`
}

// PaymentRequest is the pay-invoice request body.
type PaymentRequest struct {
	PhoneNumber   string  `json:"phone_number"`
	InvoiceID     int     `json:"invoice_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

// PaymentResult is the pay-invoice response. Arrears is the balance left
// after the payment was applied; authoritative invoice status still comes
// from a re-fetch.
type PaymentResult struct {
	Arrears float64 `json:"arrears"`
	Status  string  `json:"status"`
	Message string  `json:"message"`
}

// GenerateResult is the generate-invoice response.
type GenerateResult struct {
	Message  string    `json:"message"`
	Invoices []Invoice `json:"invoices"`
}

// NextInvoice is the upcoming-invoice banner payload.
type NextInvoice struct {
	InvoiceID int     `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	DueDate   string  `json:"due_date"`
}

// ArrearsSummary is the GET /arrears/check payload.
type ArrearsSummary struct {
	Total float64 `json:"total"`
}

// DistrictArrears is the GET /district-arrears-check payload.
type DistrictArrears struct {
	Arrears       float64  `json:"arrears"`
	OverdueMonths []string `json:"overdue_months"`
}
