package api

import (
	"context"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/sirupsen/logrus"

	"appliance-service-backend/internal/auth"
	"appliance-service-backend/internal/billing"
	"appliance-service-backend/internal/invoice"
	"appliance-service-backend/internal/mw"
	"appliance-service-backend/internal/store"
)

// Dispatcher queues technician notices for an appointment.
type Dispatcher interface {
	Dispatch(appointmentID string) bool
}

// IdentityProvider is the subset of the auth client used by the handlers.
type IdentityProvider interface {
	SignIn(ctx context.Context, cred auth.Credentials) (*auth.TokenResponse, error)
	SignUp(ctx context.Context, cred auth.Credentials) (*auth.TokenResponse, error)
	SignOut(ctx context.Context, token string) error
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	calc     *billing.Calculator
	issuer   invoice.Issuer
	webpush  *webpush.Options
	notifier Dispatcher
	identity IdentityProvider
	cache    *mw.ResponseCache
	log      logrus.FieldLogger
	now      func() time.Time
}

// Options carries the optional collaborators of a Handler. Nil fields
// disable the matching feature.
type Options struct {
	Calculator *billing.Calculator
	Issuer     invoice.Issuer
	WebPush    *webpush.Options
	Notifier   Dispatcher
	Identity   IdentityProvider
	Cache      *mw.ResponseCache
	Logger     logrus.FieldLogger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, opts Options) *Handler {
	h := &Handler{
		store:    s,
		calc:     opts.Calculator,
		issuer:   opts.Issuer,
		webpush:  opts.WebPush,
		notifier: opts.Notifier,
		identity: opts.Identity,
		cache:    opts.Cache,
		log:      opts.Logger,
		now:      time.Now,
	}
	if h.calc == nil {
		h.calc = billing.NewCalculator(billing.DefaultTaxRate)
	}
	if h.log == nil {
		h.log = logrus.StandardLogger()
	}
	h.log = h.log.WithField("component", "api")
	return h
}
