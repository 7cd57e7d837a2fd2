package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/sirupsen/logrus"

	"appliance-service-backend/config"
	"appliance-service-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Source is the part of the store the workers read from.
type Source interface {
	AppointmentNotice(ctx context.Context, appointmentID string) (*model.AppointmentNotice, error)
	SubscriptionsForTechnician(ctx context.Context, technicianID string) ([]model.TechnicianSubscription, error)
	DeleteSubscription(ctx context.Context, technicianID, endpoint string) error
}

// Payload is the JSON body delivered to the technician's browser.
type Payload struct {
	Title         string `json:"title"`
	Body          string `json:"body"`
	AppointmentID string `json:"appointment_id"`
	OrderNumber   string `json:"order_number"`
}

// WorkerPool tells technicians about the visits they were assigned.
type WorkerPool struct {
	size    int
	jobs    chan string
	src     Source
	webpush *webpush.Options
	sender  NotificationSender
	log     logrus.FieldLogger
	wg      sync.WaitGroup
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(cfg config.WorkerPoolConfig, src Source, webpushOptions *webpush.Options, log logrus.FieldLogger) *WorkerPool {
	if log == nil {
		log = logrus.StandardLogger()
	}
	size := cfg.Size
	if size <= 0 {
		size = 1
	}
	queue := cfg.QueueSize
	if queue <= 0 {
		queue = size
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, queue),
		src:     src,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		log:     log.WithField("component", "notification"),
	}
}

// WebPushOptions builds the sender options from the push configuration.
func WebPushOptions(cfg config.PushConfig) *webpush.Options {
	return &webpush.Options{
		Subscriber:      cfg.Subject,
		VAPIDPublicKey:  cfg.PublicKey,
		VAPIDPrivateKey: cfg.PrivateKey,
		TTL:             cfg.TTL,
	}
}

// Start launches the worker goroutines. They exit when ctx is done.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Wait blocks until every worker has exited.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	log := wp.log.WithField("worker", id)
	log.Debug("worker started")
	for {
		select {
		case appointmentID := <-wp.jobs:
			log.WithField("appointment_id", appointmentID).Debug("processing appointment")
			wp.notifyTechnician(ctx, appointmentID)
		case <-ctx.Done():
			log.Debug("worker shutting down")
			return
		}
	}
}

// Dispatch queues a notice for the appointment. It never blocks the request
// path: when the queue is full the notice is dropped and false is returned.
func (wp *WorkerPool) Dispatch(appointmentID string) bool {
	select {
	case wp.jobs <- appointmentID:
		return true
	default:
		wp.log.WithField("appointment_id", appointmentID).Warn("notification queue full, dropping notice")
		return false
	}
}

func (wp *WorkerPool) notifyTechnician(ctx context.Context, appointmentID string) {
	log := wp.log.WithField("appointment_id", appointmentID)

	notice, err := wp.src.AppointmentNotice(ctx, appointmentID)
	if err != nil {
		log.WithError(err).Warn("cannot build appointment notice")
		return
	}
	subs, err := wp.src.SubscriptionsForTechnician(ctx, notice.TechnicianID)
	if err != nil {
		log.WithError(err).Error("error fetching subscriptions")
		return
	}
	if len(subs) == 0 {
		return
	}

	payload, err := json.Marshal(NewPayload(notice))
	if err != nil {
		log.WithError(err).Error("cannot encode payload")
		return
	}
	log.Infof("sending %d notifications", len(subs))
	for _, sub := range subs {
		wp.sendNotification(ctx, sub, payload)
	}
}

// NewPayload formats the notice shown on the technician's device.
func NewPayload(n *model.AppointmentNotice) Payload {
	body := fmt.Sprintf("Orden %s el %s, %s", n.OrderNumber, n.Date, n.TimeSlot)
	if n.ClientName != "" {
		body = fmt.Sprintf("Orden %s para %s el %s, %s", n.OrderNumber, n.ClientName, n.Date, n.TimeSlot)
	}
	return Payload{
		Title:         "Nueva visita asignada",
		Body:          body,
		AppointmentID: n.AppointmentID,
		OrderNumber:   n.OrderNumber,
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.TechnicianSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	log := wp.log.WithField("endpoint", sub.Endpoint)
	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.WithError(err).Warn("error sending notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		log.Info("subscription expired, deleting")
		if err := wp.src.DeleteSubscription(ctx, sub.TechnicianID, sub.Endpoint); err != nil {
			log.WithError(err).Warn("failed to delete expired subscription")
		}
	}
}
