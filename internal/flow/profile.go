package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/nav"
	"github.com/example/pup/internal/session"
	"github.com/example/pup/internal/store"
)

// Draft is the incrementally-completed profile form. All fields are entered
// as text; the server parses them on submission.
type Draft struct {
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
	NoOfTV                string `json:"no_of_tv"`
	ECGMeterNumber        string `json:"ecg_meter_number"`
	PropertyUserType      string `json:"property_user_type"`
	BusinessType          string `json:"business_type"`
	IndividualType        string `json:"individual_type"`
	Exemption             string `json:"exemption"`
	MeterImage            string `json:"meter_image"`
	Location              string `json:"location"`
	PropertyAccountNumber string `json:"property_account_number"`
}

// WizardAPI is the slice of the API client the completion wizard needs.
type WizardAPI interface {
	Districts(ctx context.Context) ([]api.District, error)
	Regions(ctx context.Context) ([]api.Region, error)
	CompleteProfile(ctx context.Context, req api.CompleteProfileRequest) error
}

const (
	wizardSteps   = 3
	draftDebounce = 500 * time.Millisecond
)

// Wizard is the three-step profile completion flow. Field edits persist the
// draft to the secure store, debounced so a burst of keystrokes costs one
// write; persistence failures are returned to the caller, never dropped.
type Wizard struct {
	session *session.Manager
	client  WizardAPI
	store   *store.Store

	step      int
	draft     Draft
	dirty     bool
	now       func() time.Time
	lastWrite time.Time
}

// NewWizard builds the wizard, restoring any draft saved by an earlier run.
func NewWizard(ctx context.Context, sess *session.Manager, client WizardAPI, st *store.Store) (*Wizard, error) {
	w := &Wizard{
		session: sess,
		client:  client,
		store:   st,
		step:    1,
		now:     time.Now,
	}

	raw, ok, err := st.Get(ctx, store.KeyProfileDraft)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &w.draft); err != nil {
			// A corrupt draft is discarded rather than blocking the wizard.
			w.draft = Draft{}
		}
	}
	return w, nil
}

// Step reports the current wizard step, 1-based.
func (w *Wizard) Step() int {
	return w.step
}

// Draft returns a copy of the current form values.
func (w *Wizard) Draft() Draft {
	return w.draft
}

// Options fetches the region and district picker data.
func (w *Wizard) Options(ctx context.Context) ([]api.Region, []api.District, error) {
	regions, err := w.client.Regions(ctx)
	if err != nil {
		return nil, nil, err
	}
	districts, err := w.client.Districts(ctx)
	if err != nil {
		return nil, nil, err
	}
	return regions, districts, nil
}

// SetField updates one form value and persists the draft once the debounce
// window has elapsed. An edit inside the window stays in memory until the
// next SetField, Next, or Submit; callers stopping mid-step must Flush, or
// the last edits are lost.
func (w *Wizard) SetField(ctx context.Context, apply func(*Draft)) error {
	apply(&w.draft)
	w.dirty = true

	if w.now().Sub(w.lastWrite) < draftDebounce {
		return nil
	}
	return w.Flush(ctx)
}

// Flush writes the draft to the store immediately.
func (w *Wizard) Flush(ctx context.Context) error {
	if !w.dirty {
		return nil
	}
	raw, err := json.Marshal(w.draft)
	if err != nil {
		return fmt.Errorf("encode profile draft: %w", err)
	}
	if err := w.store.Set(ctx, store.KeyProfileDraft, string(raw)); err != nil {
		return err
	}
	w.dirty = false
	w.lastWrite = w.now()
	return nil
}

// Next validates the current step, persists the draft, and advances.
func (w *Wizard) Next(ctx context.Context) error {
	if err := w.validateStep(); err != nil {
		return err
	}
	if err := w.Flush(ctx); err != nil {
		return err
	}
	if w.step < wizardSteps {
		w.step++
	}
	return nil
}

// Back returns to the previous step. Step transitions are purely local.
func (w *Wizard) Back() {
	if w.step > 1 {
		w.step--
	}
}

// Submit sends the whole draft plus the session phone number. On success the
// draft is deleted and the completion flag cached in the same commit; on
// failure the draft is retained for the next attempt.
func (w *Wizard) Submit(ctx context.Context) (nav.Route, nav.Params, error) {
	if err := w.Flush(ctx); err != nil {
		return "", nav.Params{}, err
	}

	phone, err := w.session.Phone(ctx)
	if err != nil {
		return "", nav.Params{}, err
	}

	if err := w.client.CompleteProfile(ctx, w.submission(phone)); err != nil {
		return "", nav.Params{}, err
	}

	err = w.store.Commit(ctx, func(b *store.Batch) {
		b.Delete(store.KeyProfileDraft)
		b.Set(store.KeyIsUpdated, "1")
	})
	if err != nil {
		return "", nav.Params{}, err
	}

	return nav.RouteMainTabs, nav.Params{Tab: nav.TabHome}, nil
}

func (w *Wizard) submission(phone string) api.CompleteProfileRequest {
	d := w.draft
	return api.CompleteProfileRequest{
		PhoneNumber:           phone,
		FirstName:             d.FirstName,
		LastName:              d.LastName,
		BusinessName:          d.BusinessName,
		RegistrationNo:        d.RegistrationNo,
		Email:                 d.Email,
		DigitalAddress:        d.DigitalAddress,
		GhanaCardID:           d.GhanaCardID,
		Region:                d.Region,
		District:              d.District,
		TypeOfPremise:         d.TypeOfPremise,
		NoOfTV:                d.NoOfTV,
		ECGMeterNumber:        d.ECGMeterNumber,
		PropertyUserType:      d.PropertyUserType,
		BusinessType:          d.BusinessType,
		IndividualType:        d.IndividualType,
		Exemption:             d.Exemption,
		MeterImage:            d.MeterImage,
		Location:              d.Location,
		PropertyAccountNumber: d.PropertyAccountNumber,
	}
}

func (w *Wizard) validateStep() error {
	switch w.step {
	case 1:
		if w.draft.FirstName == "" || w.draft.LastName == "" {
			return api.ValidationError("first and last name are required")
		}
		switch w.draft.PropertyUserType {
		case "business":
			if w.draft.BusinessName == "" {
				return api.ValidationError("business name is required for business accounts")
			}
		case "individual":
			if w.draft.IndividualType == "" {
				return api.ValidationError("select an individual type")
			}
		}
	case 2:
		if w.draft.Region == "" || w.draft.District == "" {
			return api.ValidationError("region and district are required")
		}
	}
	return nil
}
