package flow

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/example/pup/internal/api"
	"github.com/example/pup/internal/format"
	"github.com/example/pup/internal/session"
)

// HomeAPI is the slice of the API client the home screen needs.
type HomeAPI interface {
	UserDetails(ctx context.Context, phone string) (api.UserDetails, error)
	NextInvoice(ctx context.Context, phone string) (api.NextInvoice, error)
}

// HomeData is what the home screen renders.
type HomeData struct {
	Greeting    string
	Name        string
	NextInvoice api.NextInvoice
	HasNext     bool
}

// Home assembles the landing screen: greeting, profile name, upcoming
// invoice banner.
type Home struct {
	session *session.Manager
	client  HomeAPI
	now     func() time.Time
}

// NewHome constructs the home flow.
func NewHome(sess *session.Manager, client HomeAPI) *Home {
	return &Home{session: sess, client: client, now: time.Now}
}

// Overview loads the home screen. A failed profile fetch degrades to the
// generic greeting rather than blocking the screen; a missing next invoice is
// not an error.
func (f *Home) Overview(ctx context.Context) (HomeData, error) {
	phone, err := f.session.Phone(ctx)
	if err != nil {
		return HomeData{}, err
	}

	data := HomeData{
		Greeting: format.Greeting(f.now().Hour()),
		Name:     "User",
	}

	details, err := f.client.UserDetails(ctx, phone)
	if err != nil {
		log.Printf("[Home] profile load failed: %v", err)
	} else if name := strings.TrimSpace(details.Profile.FirstName); name != "" {
		data.Name = name
	}

	next, err := f.client.NextInvoice(ctx, phone)
	if err != nil {
		log.Printf("[Home] next-invoice load failed: %v", err)
		return data, nil
	}
	if next.InvoiceID != 0 {
		data.NextInvoice = next
		data.HasNext = true
	}
	return data, nil
}
