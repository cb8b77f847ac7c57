// Package stub is an in-memory stand-in for the Public Utility Platform API,
// used by cmd/stubserver for local development and by integration tests.
package stub

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/pup/internal/api"
)

// Account is the server-side state for one phone number.
type Account struct {
	Phone         string
	OTP           string
	NewUser       bool
	Profile       api.Profile
	District      api.District
	Invoices      []api.Invoice
	Payments      []api.Payment
	TVPayments    []api.Payment
	Transactions  []api.Transaction
	NextInvoice   api.NextInvoice
	OverdueMonths []string
}

// Complaint is a filed help-centre request.
type Complaint struct {
	Phone   string
	Type    string
	Message string
}

// Server holds the fixture state and the Fiber app serving it.
type Server struct {
	mu            sync.Mutex
	app           *fiber.App
	accounts      map[string]*Account
	districts     []api.District
	regions       []api.Region
	info          api.District
	complaints    []Complaint
	nextInvoiceID int
}

// New builds a stub with empty state; seed it before use.
func New() *Server {
	s := &Server{
		accounts:      map[string]*Account{},
		nextInvoiceID: 1000,
	}

	app := fiber.New(fiber.Config{AppName: "PUP Stub"})
	app.Use(recover.New())
	app.Use(logger.New())
	s.app = app
	s.register(app)
	return s
}

// App exposes the Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve accepts connections on the listener until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Listen binds the given port and serves until Shutdown.
func (s *Server) Listen(port string) error {
	return s.app.Listen(":" + port)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// SeedAccount registers or replaces an account fixture.
func (s *Server) SeedAccount(acc Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := acc
	s.accounts[acc.Phone] = &copied
	for _, inv := range acc.Invoices {
		if inv.ID >= s.nextInvoiceID {
			s.nextInvoiceID = inv.ID + 1
		}
	}
}

// SeedReference installs the district and region reference data.
func (s *Server) SeedReference(districts []api.District, regions []api.Region, info api.District) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.districts = districts
	s.regions = regions
	s.info = info
}

// LastOTP returns the most recently issued code for a phone number, for
// development and tests.
func (s *Server) LastOTP(phone string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.accounts[phone]; ok {
		return acc.OTP
	}
	return ""
}

// Complaints returns the filed help-centre requests.
func (s *Server) Complaints() []Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Complaint(nil), s.complaints...)
}

func (s *Server) account(phone string) (*Account, bool) {
	acc, ok := s.accounts[phone]
	return acc, ok
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
