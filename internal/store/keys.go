package store

// Canonical keys persisted by the client. The legacy "userPhone" key written
// by older builds is folded into KeyPhoneNumber when the store is opened.
const (
	KeyPhoneNumber    = "phone_number"
	KeyIsUpdated      = "is_updated"
	KeyCachedDistrict = "cachedDistrict"
	KeyProfileDraft   = "profile_draft"
	KeyDistrictID     = "districtId"
	KeyPaymentPlan    = "payment_plan"
	KeyPaymentMethod  = "payment_method"

	legacyPhoneKey = "userPhone"
)
