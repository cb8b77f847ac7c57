package flow

import (
	"context"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/session"
	"github.com/example/pup/internal/store"
)

// TVAPI is the slice of the API client the TV licence flow needs.
type TVAPI interface {
	UserDetails(ctx context.Context, phone string) (api.UserDetails, error)
	TVLicenseInvoices(ctx context.Context, phone, plan string) ([]api.Invoice, error)
	GenerateInvoice(ctx context.Context, phone, plan, method string) (api.GenerateResult, error)
}

// TVData is the licence overview shown at the top of the TV screen.
type TVData struct {
	NoOfTV          int
	PlatformAccount string
	PaymentPlan     string
}

var tvPlans = map[string]bool{
	"monthly":   true,
	"quarterly": true,
	"yearly":    true,
}

// TVLicense covers the TV licence portal: overview, plan selection, and
// plan-scoped invoices.
type TVLicense struct {
	session *session.Manager
	client  TVAPI
	store   *store.Store
}

// NewTVLicense constructs the TV licence flow.
func NewTVLicense(sess *session.Manager, client TVAPI, st *store.Store) *TVLicense {
	return &TVLicense{session: sess, client: client, store: st}
}

// Overview loads the licence summary from the profile.
func (f *TVLicense) Overview(ctx context.Context) (TVData, error) {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return TVData{}, err
	}

	details, err := f.client.UserDetails(ctx, phone)
	if err != nil {
		return TVData{}, err
	}

	data := TVData{
		NoOfTV:          details.Profile.NoOfTV,
		PlatformAccount: details.Profile.PlatformAccount,
		PaymentPlan:     details.Profile.PaymentPlan,
	}
	if data.PlatformAccount == "" {
		data.PlatformAccount = "N/A"
	}
	if data.PaymentPlan == "" {
		data.PaymentPlan = "Not Set"
	}
	return data, nil
}

// ChoosePlan persists the plan and method together, then asks the server to
// raise the matching invoices.
func (f *TVLicense) ChoosePlan(ctx context.Context, plan, method string) (api.GenerateResult, error) {
	if !tvPlans[plan] {
		return api.GenerateResult{}, api.ValidationError("payment plan must be monthly, quarterly or yearly")
	}
	if method == "" {
		return api.GenerateResult{}, api.ValidationError("select a payment method")
	}

	phone, err := f.session.Phone(ctx)
	if err != nil {
		return api.GenerateResult{}, err
	}

	err = f.store.Commit(ctx, func(b *store.Batch) {
		b.Set(store.KeyPaymentPlan, plan)
		b.Set(store.KeyPaymentMethod, method)
	})
	if err != nil {
		return api.GenerateResult{}, err
	}

	return f.client.GenerateInvoice(ctx, phone, plan, method)
}

// Invoices lists TV licence invoices for a plan, defaulting to the persisted
// plan when none is given.
func (f *TVLicense) Invoices(ctx context.Context, plan string) ([]api.Invoice, error) {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return nil, err
	}

	if plan == "" {
		saved, ok, err := f.store.Get(ctx, store.KeyPaymentPlan)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, api.ValidationError("choose a payment plan first")
		}
		plan = saved
	}

	return f.client.TVLicenseInvoices(ctx, phone, plan)
}
