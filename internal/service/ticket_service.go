package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	apperrors "ridereg/internal/errors"
	"ridereg/internal/model"
)

// Ticket is the read-only projection of an approved registration into the
// digital ticket shown at check-in.
type Ticket struct {
	RegistrationID   uuid.UUID         `json:"registration_id"`
	RiderName        string            `json:"rider_name"`
	RegistrationType model.VehicleType `json:"registration_type"`
	EventName        string            `json:"event_name"`
	EventStartsAt    string            `json:"event_starts_at,omitempty"`
	Venue            string            `json:"venue,omitempty"`
	CheckedIn        bool              `json:"checked_in"`
	QRImageURL       string            `json:"qr_image_url"`
	ShareLink        string            `json:"share_link,omitempty"`
}

// Certificate is the projection used by the finisher certificate, gated on
// the certificate grant.
type Certificate struct {
	RegistrationID  uuid.UUID         `json:"registration_id"`
	RiderName       string            `json:"rider_name"`
	VehicleType     model.VehicleType `json:"vehicle_type"`
	EventName       string            `json:"event_name"`
	EventStartsAt   string            `json:"event_starts_at,omitempty"`
	VerificationURL string            `json:"verification_url"`
	QRImageURL      string            `json:"qr_image_url"`
}

// TicketService projects registrations into tickets and certificates. QR
// images come from an external image service by URL; nothing is generated or
// cached locally.
type TicketService interface {
	BuildTicket(ctx context.Context, registrationID uuid.UUID) (*Ticket, error)
	BuildCertificate(ctx context.Context, registrationID uuid.UUID) (*Certificate, error)
}

type ticketService struct {
	regService      RegistrationService
	settingsService SettingsService
	qrServiceURL    string
	publicBaseURL   string
}

// NewTicketService creates a new ticket projection service.
func NewTicketService(regService RegistrationService, settingsService SettingsService, qrServiceURL, publicBaseURL string) TicketService {
	return &ticketService{
		regService:      regService,
		settingsService: settingsService,
		qrServiceURL:    qrServiceURL,
		publicBaseURL:   strings.TrimRight(publicBaseURL, "/"),
	}
}

// qrPayload is the JSON embedded in the ticket QR code.
type qrPayload struct {
	RegistrationID string `json:"registrationId"`
	Rider          int    `json:"rider"`
}

// BuildTicket projects an approved registration into its ticket.
func (s *ticketService) BuildTicket(ctx context.Context, registrationID uuid.UUID) (*Ticket, error) {
	reg, err := s.regService.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Status != model.StatusApproved {
		return nil, apperrors.ErrTicketUnavailable
	}

	settings, err := s.settingsService.GetEvent(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(qrPayload{RegistrationID: reg.ID.String(), Rider: 1})
	if err != nil {
		return nil, fmt.Errorf("marshal qr payload: %w", err)
	}

	ticket := &Ticket{
		RegistrationID:   reg.ID,
		RiderName:        reg.RiderName,
		RegistrationType: reg.RegistrationType,
		EventName:        settings.EventName,
		Venue:            settings.Venue,
		CheckedIn:        reg.Rider1CheckedIn,
		QRImageURL:       s.qrImageURL(string(payload)),
	}
	if !settings.StartsAt.IsZero() {
		ticket.EventStartsAt = settings.StartsAt.Format("Mon, 2 Jan 2006 15:04")
	}
	if reg.WhatsApp != "" {
		ticket.ShareLink = WhatsAppLink(reg.WhatsApp, fmt.Sprintf("Here is my %s ticket: %s/ticket/%s", settings.EventName, s.publicBaseURL, reg.ID))
	}
	return ticket, nil
}

// BuildCertificate projects a registration into its finisher certificate.
// The QR payload is the public verification URL, not the registration JSON.
func (s *ticketService) BuildCertificate(ctx context.Context, registrationID uuid.UUID) (*Certificate, error) {
	reg, err := s.regService.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if !reg.CertificateGranted {
		return nil, apperrors.ErrCertificateUnavailable
	}

	settings, err := s.settingsService.GetEvent(ctx)
	if err != nil {
		return nil, err
	}

	verificationURL := fmt.Sprintf("%s/ticket/%s", s.publicBaseURL, reg.ID)
	cert := &Certificate{
		RegistrationID:  reg.ID,
		RiderName:       reg.RiderName,
		VehicleType:     reg.RegistrationType,
		EventName:       settings.EventName,
		VerificationURL: verificationURL,
		QRImageURL:      s.qrImageURL(verificationURL),
	}
	if !settings.StartsAt.IsZero() {
		cert.EventStartsAt = settings.StartsAt.Format("2 Jan 2006")
	}
	return cert, nil
}

func (s *ticketService) qrImageURL(data string) string {
	q := url.Values{}
	q.Set("size", "300x300")
	q.Set("data", data)
	return s.qrServiceURL + "?" + q.Encode()
}

// WhatsAppLink builds a wa.me deep link with pre-filled text. It is URL
// construction only; no message is sent.
func WhatsAppLink(phone, text string) string {
	phone = strings.TrimPrefix(strings.ReplaceAll(phone, " ", ""), "+")
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(text)
}
