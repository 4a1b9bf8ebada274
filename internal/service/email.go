package service

import (
	"context"
	"fmt"

	"churchshare-backend/internal/config"
	"churchshare-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendGridEmailService delivers transactional mail through SendGrid.
type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &sendGridEmailService{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *sendGridEmailService) send(ctx context.Context, to, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil)
	return nil
}

func (s *sendGridEmailService) SendChurchInvitation(ctx context.Context, email, churchName, token string) error {
	subject := fmt.Sprintf("Invitation for %s to join ChurchShare", churchName)
	plainText := fmt.Sprintf("Your church %s has been invited to ChurchShare. Use invitation token %s to register.", churchName, token)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>You're invited</h2>
				<p><strong>%s</strong> has been invited to join ChurchShare.</p>
				<p>Register with invitation token <strong>%s</strong>. The invitation is valid for 7 days.</p>
			</body>
		</html>
	`, churchName, token)
	return s.send(ctx, email, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendMembershipApproved(ctx context.Context, email, name, churchName string) error {
	subject := fmt.Sprintf("Welcome to %s", churchName)
	plainText := fmt.Sprintf("Hi %s, your membership at %s has been verified.", name, churchName)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Membership approved</h2>
				<p>Hi %s, your membership at <strong>%s</strong> has been verified by fellow members.</p>
			</body>
		</html>
	`, name, churchName)
	return s.send(ctx, email, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendAccountReactivated(ctx context.Context, email, name string) error {
	subject := "Your account has been reactivated"
	plainText := fmt.Sprintf("Hi %s, your account is active again now that your membership is verified.", name)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Account reactivated</h2>
				<p>Hi %s, your account is active again now that your membership is verified.</p>
			</body>
		</html>
	`, name)
	return s.send(ctx, email, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendItemClaimed(ctx context.Context, email, itemTitle, claimerName string) error {
	subject := fmt.Sprintf("Item claimed: %s", itemTitle)
	plainText := fmt.Sprintf("%s claimed %s.", claimerName, itemTitle)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Item claimed</h2>
				<p><strong>%s</strong> claimed <strong>%s</strong>.</p>
			</body>
		</html>
	`, claimerName, itemTitle)
	return s.send(ctx, email, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendItemCompleted(ctx context.Context, email, itemTitle string) error {
	subject := fmt.Sprintf("Handover complete: %s", itemTitle)
	plainText := fmt.Sprintf("The handover of %s has been marked complete.", itemTitle)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Handover complete</h2>
				<p>The handover of <strong>%s</strong> has been marked complete.</p>
			</body>
		</html>
	`, itemTitle)
	return s.send(ctx, email, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendApplicationDecision(ctx context.Context, email, churchName, status, reason string) error {
	subject := fmt.Sprintf("Application update for %s", churchName)
	plainText := fmt.Sprintf("The application for %s is now %s. %s", churchName, status, reason)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Application %s</h2>
				<p>The application for <strong>%s</strong> is now %s.</p>
				<p>%s</p>
			</body>
		</html>
	`, status, churchName, status, reason)
	return s.send(ctx, email, subject, plainText, htmlContent)
}
