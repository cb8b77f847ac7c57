package stub

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/pup/internal/api"
)

func (s *Server) register(app *fiber.App) {
	app.Post("/send-otp", s.sendOTP)
	app.Post("/verify-otp", s.verifyOTP)
	app.Post("/logout", s.logout)

	app.Get("/user-details", s.userDetails)
	app.Post("/complete-profile", s.completeProfile)
	app.Post("/user/update-profile", s.updateProfile)

	app.Get("/districts", s.listDistricts)
	app.Get("/districts/:id", s.getDistrict)
	app.Get("/district/info", s.districtInfo)
	app.Get("/user-district", s.userDistrict)
	app.Get("/regions", s.listRegions)

	app.Get("/invoices", s.listInvoices)
	app.Get("/invoices/:id", s.getInvoice)
	app.Post("/generate-invoice", s.generateInvoice)
	app.Post("/pay-invoice", s.payInvoice)
	app.Get("/next-invoice", s.nextInvoice)
	app.Get("/incoming-invoice", s.incomingInvoice)

	app.Get("/payment-history", s.paymentHistory)
	app.Get("/transactions", s.transactions)
	app.Get("/tv-license-invoices", s.tvLicenseInvoices)
	app.Get("/tv-license/payments", s.tvPaymentHistory)

	app.Get("/arrears/check", s.checkArrears)
	app.Get("/district-arrears-check", s.districtArrears)
	app.Get("/user-arrears", s.userArrears)

	app.Post("/submit-complaint", s.submitComplaint)
}

type phoneRequest struct {
	PhoneNumber string `json:"phone_number"`
}

func (s *Server) sendOTP(c *fiber.Ctx) error {
	var req phoneRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone_number is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(req.PhoneNumber)
	if !ok {
		acc = &Account{Phone: req.PhoneNumber, NewUser: true}
		s.accounts[req.PhoneNumber] = acc
	}

	code, err := generateOTP()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate code")
	}
	acc.OTP = code

	return c.JSON(fiber.Map{"success": true, "message": "OTP sent"})
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	OTP         string `json:"otp"`
}

func (s *Server) verifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(req.PhoneNumber)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown phone number")
	}
	if acc.OTP == "" || req.OTP != acc.OTP {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid OTP")
	}
	acc.OTP = ""

	return c.JSON(fiber.Map{
		"success":  true,
		"new_user": acc.NewUser,
		"profile":  acc.Profile,
	})
}

func (s *Server) logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) userDetails(c *fiber.Ctx) error {
	phone := c.Query("phone")

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(phone)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return c.JSON(fiber.Map{
		"user":    api.User{ID: 1, Phone: acc.Phone},
		"profile": acc.Profile,
	})
}

func (s *Server) completeProfile(c *fiber.Ctx) error {
	var req api.CompleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.PhoneNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone_number is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(req.PhoneNumber)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown phone number")
	}

	tvs, _ := strconv.Atoi(req.NoOfTV)
	acc.Profile = api.Profile{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		BusinessName:          req.BusinessName,
		RegistrationNo:        req.RegistrationNo,
		Email:                 req.Email,
		DigitalAddress:        req.DigitalAddress,
		GhanaCardID:           req.GhanaCardID,
		Region:                req.Region,
		District:              req.District,
		TypeOfPremise:         req.TypeOfPremise,
		NoOfTV:                tvs,
		ECGMeterNumber:        req.ECGMeterNumber,
		PropertyUserType:      req.PropertyUserType,
		BusinessType:          req.BusinessType,
		IndividualType:        req.IndividualType,
		Exemption:             req.Exemption,
		MeterImage:            req.MeterImage,
		Location:              req.Location,
		PropertyAccountNumber: req.PropertyAccountNumber,
		PlatformAccount:       acc.Profile.PlatformAccount,
		PaymentPlan:           acc.Profile.PaymentPlan,
		IsUpdated:             1,
	}
	acc.NewUser = false

	return c.JSON(fiber.Map{"success": true, "message": "profile completed"})
}

func (s *Server) updateProfile(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber string `json:"phone_number"`
		api.Profile
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(req.PhoneNumber)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown phone number")
	}

	was := acc.Profile.IsUpdated
	acc.Profile = req.Profile
	acc.Profile.IsUpdated = was

	return c.JSON(fiber.Map{"success": true, "message": "profile updated"})
}

func (s *Server) listDistricts(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(fiber.Map{"districts": s.districts})
}

func (s *Server) getDistrict(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid district id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.districts {
		if d.ID == id {
			return c.JSON(d)
		}
	}
	return fiber.NewError(fiber.StatusNotFound, "district not found")
}

func (s *Server) districtInfo(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(fiber.Map{"district": s.info})
}

func (s *Server) userDistrict(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(c.Query("phone"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	return c.JSON(acc.District)
}

func (s *Server) listRegions(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(fiber.Map{"regions": s.regions})
}

func (s *Server) listInvoices(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(c.Query("phone"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	return c.JSON(fiber.Map{"invoices": acc.Invoices})
}

func (s *Server) getInvoice(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if inv, _, ok := s.findInvoice(id); ok {
		return c.JSON(*inv)
	}
	return fiber.NewError(fiber.StatusNotFound, "invoice not found")
}

var planAmounts = map[string]float64{
	"monthly":   30,
	"quarterly": 90,
	"yearly":    360,
}

func (s *Server) generateInvoice(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber   string `json:"phone_number"`
		PaymentPlan   string `json:"payment_plan"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	amount, ok := planAmounts[req.PaymentPlan]
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "unknown payment plan")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, found := s.account(req.PhoneNumber)
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "unknown phone number")
	}

	invoice := api.Invoice{
		ID:       s.nextInvoiceID,
		Amount:   amount,
		Plan:     req.PaymentPlan,
		Status:   api.StatusPending,
		DueDate:  time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		Period:   time.Now().Format("Jan 2006"),
		UserName: strings.TrimSpace(acc.Profile.FirstName + " " + acc.Profile.LastName),
		District: acc.District.DistrictName,
	}
	s.nextInvoiceID++
	acc.Invoices = append(acc.Invoices, invoice)

	return c.JSON(fiber.Map{
		"message":  "invoice generated",
		"invoices": []api.Invoice{invoice},
	})
}

func (s *Server) payInvoice(c *fiber.Ctx) error {
	var req api.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(req.PhoneNumber)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown phone number")
	}

	inv, owner, ok := s.findInvoice(req.InvoiceID)
	if !ok || owner != acc {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}

	inv.Payment += req.Amount
	remaining := inv.Amount + inv.Arrears - inv.Payment
	if remaining <= 0 {
		remaining = 0
		inv.Status = api.StatusPaid
	}

	receipt := uuid.NewString()
	acc.Payments = append(acc.Payments, api.Payment{
		InvoiceID:     inv.ID,
		AmountPaid:    req.Amount,
		PaymentDate:   time.Now().Format("2006-01-02 15:04:05"),
		PaymentMethod: req.PaymentMethod,
		Status:        "success",
	})
	acc.Transactions = append(acc.Transactions, api.Transaction{
		ID:     len(acc.Transactions) + 1,
		Amount: req.Amount,
		Type:   "payment",
		Status: "success",
		Date:   time.Now().Format("2006-01-02"),
	})

	return c.JSON(fiber.Map{
		"arrears": remaining,
		"status":  inv.Status,
		"message": fmt.Sprintf("payment %s recorded", receipt),
	})
}

func (s *Server) nextInvoice(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(c.Query("phone"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	return c.JSON(acc.NextInvoice)
}

func (s *Server) incomingInvoice(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(c.Query("phone"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	for i := range acc.Invoices {
		if acc.Invoices[i].Status != api.StatusPaid {
			return c.JSON(acc.Invoices[i])
		}
	}
	return fiber.NewError(fiber.StatusNotFound, "no incoming invoice")
}

func (s *Server) paymentHistory(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(c.Query("phone_number"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no payment history found")
	}
	return c.JSON(fiber.Map{"payments": acc.Payments})
}

func (s *Server) transactions(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(c.Query("phone"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	return c.JSON(fiber.Map{"transactions": acc.Transactions})
}

func (s *Server) tvLicenseInvoices(c *fiber.Ctx) error {
	plan := c.Query("payment_plan")

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(c.Query("phone"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	matched := []api.Invoice{}
	for _, inv := range acc.Invoices {
		if inv.Plan == plan {
			matched = append(matched, inv)
		}
	}
	return c.JSON(fiber.Map{"invoices": matched})
}

func (s *Server) tvPaymentHistory(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := []api.Payment{}
	for _, acc := range s.accounts {
		history = append(history, acc.TVPayments...)
	}
	return c.JSON(fiber.Map{"history": history})
}

func (s *Server) checkArrears(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, acc := range s.accounts {
		for _, inv := range acc.Invoices {
			if inv.Status != api.StatusPaid {
				total += inv.TotalDue()
			}
		}
	}
	return c.JSON(fiber.Map{"total": total})
}

func (s *Server) districtArrears(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(c.Query("phone"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	var total float64
	for _, inv := range acc.Invoices {
		if inv.Status != api.StatusPaid {
			total += inv.Arrears
		}
	}
	return c.JSON(fiber.Map{
		"arrears":        total,
		"overdue_months": acc.OverdueMonths,
	})
}

func (s *Server) userArrears(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.account(c.Query("phone_number"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	var total float64
	for _, inv := range acc.Invoices {
		if inv.Status != api.StatusPaid {
			total += inv.Arrears
		}
	}
	return c.JSON(fiber.Map{"arrears": total})
}

func (s *Server) submitComplaint(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber string `json:"phone_number"`
		Type        string `json:"type"`
		Message     string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Type == "" || req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "type and message are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.complaints = append(s.complaints, Complaint{
		Phone:   req.PhoneNumber,
		Type:    req.Type,
		Message: req.Message,
	})
	return c.JSON(fiber.Map{"success": true, "message": "request received"})
}

// findInvoice locates an invoice by id across accounts. Caller holds s.mu.
func (s *Server) findInvoice(id int) (*api.Invoice, *Account, bool) {
	for _, acc := range s.accounts {
		for i := range acc.Invoices {
			if acc.Invoices[i].ID == id {
				return &acc.Invoices[i], acc, true
			}
		}
	}
	return nil, nil, false
}
