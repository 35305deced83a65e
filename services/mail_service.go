package services

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	mail "gopkg.in/gomail.v2"

	"marketing-mailer/config"
	"marketing-mailer/database"
)

var (
	// ErrMissingFields is returned when subject, body or target are absent.
	// Nothing is resolved or sent in that case.
	ErrMissingFields = errors.New("missing required fields")

	// ErrNoRecipients is returned when a well-formed target resolves to an
	// empty recipient list. The transport is never called.
	ErrNoRecipients = errors.New("no valid recipients found for criteria")

	// ErrNotConfigured is returned when the outbound mail settings are unset.
	ErrNotConfigured = errors.New("mail transport is not configured")
)

// OutboundMessage is one physical email: the visible 'To' is the sender
// itself and every recipient rides in the blind-copy field.
type OutboundMessage struct {
	From     string
	FromName string
	To       string
	BCC      []string
	Subject  string
	HTML     string
}

// Sender delivers an outbound message and returns its message identifier.
type Sender interface {
	Send(m *OutboundMessage) (messageID string, err error)
}

// CampaignRecorder persists campaign records after a successful send.
type CampaignRecorder interface {
	Create(ctx context.Context, c *database.EmailCampaign) error
}

// SMTPSender sends mail through the configured SMTP relay. A dialer is
// constructed fresh for each send; there is no connection reuse.
type SMTPSender struct{ cfg *config.Config }

// NewSMTPSender creates a sender using the relay settings in cfg.
func NewSMTPSender(cfg *config.Config) *SMTPSender { return &SMTPSender{cfg: cfg} }

// Send assembles and delivers one message with all recipients in BCC.
func (s *SMTPSender) Send(m *OutboundMessage) (string, error) {
	parts := strings.Split(s.cfg.MailHub, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid MAILHUB format: %s. Expected host:port", s.cfg.MailHub)
	}
	host := parts[0]
	port, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("invalid port in MAILHUB: %w", err)
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), host)

	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.From, m.FromName)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Bcc", m.BCC...)
	msg.SetHeader("Subject", m.Subject)
	msg.SetHeader("Message-ID", messageID)
	msg.SetBody("text/html", m.HTML)

	d := mail.NewDialer(host, port, s.cfg.AuthUser, s.cfg.AuthPass)
	d.TLSConfig = &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: s.cfg.SkipTLSVerify,
	}
	if s.cfg.SkipTLSVerify {
		log.Println("WARNING: TLS certificate verification is DISABLED.")
	}

	if err := d.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("could not send email: %w", err)
	}
	return messageID, nil
}

// MailService orchestrates a campaign dispatch: validate, resolve, wrap,
// send, record. The pipeline is strictly sequential with no retries.
type MailService struct {
	cfg       *config.Config
	resolver  *Resolver
	template  *BrandTemplate
	sender    Sender
	campaigns CampaignRecorder
}

// NewMailService creates a dispatcher over the given collaborators.
func NewMailService(cfg *config.Config, resolver *Resolver, template *BrandTemplate, sender Sender, campaigns CampaignRecorder) *MailService {
	return &MailService{
		cfg:       cfg,
		resolver:  resolver,
		template:  template,
		sender:    sender,
		campaigns: campaigns,
	}
}

// DispatchRequest carries one campaign send.
type DispatchRequest struct {
	Subject string
	HTML    string // unwrapped body; this is what gets recorded
	Target  *Target
}

// DispatchResult reports a completed dispatch.
type DispatchResult struct {
	RecipientCount int
	MessageID      string
}

// Dispatch runs the send pipeline. A campaign row is written only after the
// transport accepts the message, so a failed send leaves no record. The
// inverse gap is accepted: if recording fails after a successful send, the
// campaign was delivered but has no row.
func (s *MailService) Dispatch(ctx context.Context, req *DispatchRequest) (*DispatchResult, error) {
	if req.Subject == "" || req.HTML == "" || req.Target == nil {
		return nil, ErrMissingFields
	}
	if !s.cfg.MailConfigured() {
		return nil, ErrNotConfigured
	}

	recipients, err := s.resolver.Resolve(ctx, req.Target)
	if err != nil {
		return nil, fmt.Errorf("resolve recipients: %w", err)
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	html, err := s.template.Wrap(req.HTML, req.Subject)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	messageID, err := s.sender.Send(&OutboundMessage{
		From:     s.cfg.FromEmail,
		FromName: s.cfg.FromName,
		To:       s.cfg.FromEmail, // send to self, recipients in BCC
		BCC:      recipients,
		Subject:  req.Subject,
		HTML:     html,
	})
	if err != nil {
		return nil, err
	}

	record := &database.EmailCampaign{
		Subject:          req.Subject,
		Body:             req.HTML,
		RecipientsCount:  len(recipients),
		FilterProfession: req.Target.Criterion(),
	}
	if err := s.campaigns.Create(ctx, record); err != nil {
		// The message is already out; surface the failure but note the gap.
		log.Printf("CRITICAL: campaign sent but not recorded: %v", err)
		return nil, fmt.Errorf("record campaign: %w", err)
	}

	return &DispatchResult{
		RecipientCount: len(recipients),
		MessageID:      messageID,
	}, nil
}
