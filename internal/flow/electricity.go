package flow

import (
	"context"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/session"
)

// ArrearsAPI is the slice of the API client the electricity screen needs.
type ArrearsAPI interface {
	DistrictArrears(ctx context.Context, phone string) (api.DistrictArrears, error)
}

// Electricity gates ECG portal access on district-invoice arrears.
type Electricity struct {
	session *session.Manager
	client  ArrearsAPI
}

// NewElectricity constructs the electricity flow.
func NewElectricity(sess *session.Manager, client ArrearsAPI) *Electricity {
	return &Electricity{session: sess, client: client}
}

// Check fetches the arrears balance and overdue months. Failures propagate;
// a zero balance is only ever a real server answer.
func (f *Electricity) Check(ctx context.Context) (api.DistrictArrears, error) {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return api.DistrictArrears{}, err
	}
	return f.client.DistrictArrears(ctx, phone)
}
