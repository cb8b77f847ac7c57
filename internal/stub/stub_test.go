package stub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/pup/internal/api"
)

func seededServer(t *testing.T) *Server {
	t.Helper()
	s := New()
	s.SeedAccount(Account{
		Phone: "0241234567",
		Profile: api.Profile{
			FirstName: "Ama",
			LastName:  "Mensah",
			IsUpdated: 1,
		},
		District: api.District{ID: 1, DistrictName: "Ayawaso West"},
		Invoices: []api.Invoice{
			{ID: 101, Amount: 120, Arrears: 30, Status: api.StatusPending, Plan: "monthly"},
		},
	})
	s.SeedReference(
		[]api.District{{ID: 1, DistrictName: "Ayawaso West"}},
		[]api.Region{{Name: "Greater Accra"}},
		api.District{ID: 1, DistrictName: "Ayawaso West", Email: "awm@example.com"},
	)
	return s
}

func postJSON(t *testing.T, s *Server, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func getJSON(t *testing.T, s *Server, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestSendAndVerifyOTP(t *testing.T) {
	s := seededServer(t)

	resp := postJSON(t, s, "/send-otp", map[string]string{"phone_number": "0241234567"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send-otp status = %d", resp.StatusCode)
	}

	code := s.LastOTP("0241234567")
	if len(code) != 4 {
		t.Fatalf("LastOTP() = %q, want a 4-digit code", code)
	}

	// A wrong code is rejected and the right one still works afterwards.
	resp = postJSON(t, s, "/verify-otp", map[string]string{"phone_number": "0241234567", "otp": "0000"})
	if code == "0000" {
		t.Skip("generated code collides with the wrong-code fixture")
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("verify-otp with wrong code status = %d, want 401", resp.StatusCode)
	}

	resp = postJSON(t, s, "/verify-otp", map[string]string{"phone_number": "0241234567", "otp": code})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify-otp status = %d", resp.StatusCode)
	}
	var verified struct {
		Success bool        `json:"success"`
		NewUser bool        `json:"new_user"`
		Profile api.Profile `json:"profile"`
	}
	decodeBody(t, resp, &verified)
	if !verified.Success || verified.NewUser {
		t.Errorf("verify-otp = %+v, want success for an existing account", verified)
	}
	if verified.Profile.IsUpdated != 1 {
		t.Errorf("profile.is_updated = %d, want 1", verified.Profile.IsUpdated)
	}

	// Codes are single use.
	resp = postJSON(t, s, "/verify-otp", map[string]string{"phone_number": "0241234567", "otp": code})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("reused code status = %d, want 401", resp.StatusCode)
	}
}

func TestSendOTPCreatesNewAccount(t *testing.T) {
	s := seededServer(t)

	resp := postJSON(t, s, "/send-otp", map[string]string{"phone_number": "0209999999"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send-otp status = %d", resp.StatusCode)
	}

	code := s.LastOTP("0209999999")
	resp = postJSON(t, s, "/verify-otp", map[string]string{"phone_number": "0209999999", "otp": code})
	var verified struct {
		NewUser bool `json:"new_user"`
	}
	decodeBody(t, resp, &verified)
	if !verified.NewUser {
		t.Error("unseeded phone number verified as an existing user")
	}
}

func TestPayInvoiceFullSettlement(t *testing.T) {
	s := seededServer(t)

	resp := postJSON(t, s, "/pay-invoice", api.PaymentRequest{
		PhoneNumber:   "0241234567",
		InvoiceID:     101,
		Amount:        150,
		PaymentMethod: "mobile_money",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pay-invoice status = %d", resp.StatusCode)
	}
	var result api.PaymentResult
	decodeBody(t, resp, &result)
	if result.Arrears != 0 || result.Status != api.StatusPaid {
		t.Errorf("pay-invoice result = %+v, want settled", result)
	}

	resp = getJSON(t, s, "/invoices/101")
	var inv api.Invoice
	decodeBody(t, resp, &inv)
	if inv.Status != api.StatusPaid {
		t.Errorf("invoice status after settlement = %q, want %q", inv.Status, api.StatusPaid)
	}

	resp = getJSON(t, s, "/payment-history?phone_number=0241234567")
	var history struct {
		Payments []api.Payment `json:"payments"`
	}
	decodeBody(t, resp, &history)
	if len(history.Payments) != 1 || history.Payments[0].AmountPaid != 150 {
		t.Errorf("payment history = %+v", history.Payments)
	}
}

func TestPayInvoicePartialLeavesPending(t *testing.T) {
	s := seededServer(t)

	resp := postJSON(t, s, "/pay-invoice", api.PaymentRequest{
		PhoneNumber:   "0241234567",
		InvoiceID:     101,
		Amount:        50,
		PaymentMethod: "mobile_money",
	})
	var result api.PaymentResult
	decodeBody(t, resp, &result)
	if result.Status != api.StatusPending {
		t.Errorf("partial payment status = %q, want %q", result.Status, api.StatusPending)
	}
	if result.Arrears != 100 {
		t.Errorf("remaining balance = %v, want 100", result.Arrears)
	}
}

func TestPayInvoiceWrongOwner(t *testing.T) {
	s := seededServer(t)
	s.SeedAccount(Account{Phone: "0200000000"})

	resp := postJSON(t, s, "/pay-invoice", api.PaymentRequest{
		PhoneNumber:   "0200000000",
		InvoiceID:     101,
		Amount:        50,
		PaymentMethod: "mobile_money",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("paying someone else's invoice status = %d, want 404", resp.StatusCode)
	}
}

func TestGenerateInvoiceUsesPlanAmount(t *testing.T) {
	s := seededServer(t)

	resp := postJSON(t, s, "/generate-invoice", map[string]string{
		"phone_number":   "0241234567",
		"payment_plan":   "quarterly",
		"payment_method": "mobile_money",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate-invoice status = %d", resp.StatusCode)
	}
	var gen api.GenerateResult
	decodeBody(t, resp, &gen)
	if len(gen.Invoices) != 1 {
		t.Fatalf("generated %d invoices, want 1", len(gen.Invoices))
	}
	inv := gen.Invoices[0]
	if inv.Amount != 90 || inv.Status != api.StatusPending || inv.Plan != "quarterly" {
		t.Errorf("generated invoice = %+v", inv)
	}

	resp = getJSON(t, s, "/tv-license-invoices?phone=0241234567&payment_plan=quarterly")
	var matched struct {
		Invoices []api.Invoice `json:"invoices"`
	}
	decodeBody(t, resp, &matched)
	if len(matched.Invoices) != 1 || matched.Invoices[0].ID != inv.ID {
		t.Errorf("tv-license-invoices = %+v", matched.Invoices)
	}
}

func TestSubmitComplaint(t *testing.T) {
	s := seededServer(t)

	resp := postJSON(t, s, "/submit-complaint", map[string]string{
		"phone_number": "0241234567",
		"type":         "billing",
		"message":      "invoice amount looks wrong",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit-complaint status = %d", resp.StatusCode)
	}
	filed := s.Complaints()
	if len(filed) != 1 || filed[0].Type != "billing" {
		t.Errorf("Complaints() = %+v", filed)
	}

	resp = postJSON(t, s, "/submit-complaint", map[string]string{"phone_number": "0241234567"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty complaint status = %d, want 400", resp.StatusCode)
	}
}

func TestReferenceEndpoints(t *testing.T) {
	s := seededServer(t)

	resp := getJSON(t, s, "/districts")
	var districts struct {
		Districts []api.District `json:"districts"`
	}
	decodeBody(t, resp, &districts)
	if len(districts.Districts) != 1 || districts.Districts[0].DistrictName != "Ayawaso West" {
		t.Errorf("districts = %+v", districts.Districts)
	}

	resp = getJSON(t, s, "/regions")
	var regions struct {
		Regions []api.Region `json:"regions"`
	}
	decodeBody(t, resp, &regions)
	if len(regions.Regions) != 1 {
		t.Errorf("regions = %+v", regions.Regions)
	}

	resp = getJSON(t, s, "/district/info")
	var info struct {
		District api.District `json:"district"`
	}
	decodeBody(t, resp, &info)
	if info.District.Email != "awm@example.com" {
		t.Errorf("district info = %+v", info.District)
	}
}
