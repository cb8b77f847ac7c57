package main

import (
	"log"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/config"
	"github.com/example/pup/internal/stub"
)

func main() {
	cfg := config.Load()

	server := stub.New()
	seedDemo(server)

	log.Printf("Starting PUP stub on :%s", cfg.StubPort)
	if err := server.Listen(cfg.StubPort); err != nil {
		log.Fatalf("stub.Listen error: %v", err)
	}
}

// seedDemo installs a demo account so the terminal client works out of the
// box against the stub.
func seedDemo(server *stub.Server) {
	ayawaso := api.District{
		ID:           1,
		DistrictName: "Ayawaso West Municipal Assembly",
		Location:     "Dzorwulu, Accra",
		Email:        "info@awma.gov.gh",
		Phone:        "0302961448",
	}

	server.SeedReference(
		[]api.District{
			ayawaso,
			{ID: 2, DistrictName: "Accra Metropolitan Assembly", Location: "Accra Central", Email: "info@ama.gov.gh", Phone: "0302665893"},
		},
		[]api.Region{{Name: "Greater Accra"}, {Name: "Ashanti"}, {Name: "Western"}},
		ayawaso,
	)

	server.SeedAccount(stub.Account{
		Phone: "0241234567",
		Profile: api.Profile{
			FirstName:      "Ama",
			LastName:       "Mensah",
			Region:         "Greater Accra",
			District:       ayawaso.DistrictName,
			DigitalAddress: "GA-160-8880",
			NoOfTV:         2,
			IsUpdated:      1,
		},
		District: ayawaso,
		Invoices: []api.Invoice{
			{
				ID:            101,
				Amount:        120,
				Arrears:       30,
				DueDate:       "2026-09-30",
				Period:        "Q3 2026",
				Status:        api.StatusPending,
				RateableValue: 15000,
				RateImpost:    0.008,
				UserName:      "Ama Mensah",
				District:      ayawaso.DistrictName,
			},
		},
		NextInvoice:   api.NextInvoice{InvoiceID: 101, Amount: 150, DueDate: "2026-09-30"},
		OverdueMonths: []string{"June", "July"},
	})
}
