// Package email sends transactional mail through SMTP. When credentials are
// absent the sender degrades to logging the message content so flows that
// depend on mail keep working in development.
package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Service defines the mail port
type Service interface {
	SendPasswordResetEmail(toEmail, toName, resetURL string) error
	SendWelcomeEmail(toEmail, toName string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

type smtpService struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewService creates a new mail service
func NewService(config SMTPConfig, logger zerolog.Logger) Service {
	return &smtpService{
		config: config,
		logger: logger,
	}
}

func (s *smtpService) configured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

// SendPasswordResetEmail sends a password reset link
func (s *smtpService) SendPasswordResetEmail(toEmail, toName, resetURL string) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("resetURL", resetURL).
			Msg("SMTP credentials not configured - password reset email not sent. Use the URL above for testing.")
		return nil
	}

	subject := "Reset your EduVerse password"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h1>Password Reset Request</h1>
			<p>Hello %s,</p>
			<p>Click the link below to reset your password:</p>
			<a href="%s">Reset Password</a>
			<p>This link will expire in 1 hour. If you did not request a reset, you can ignore this email.</p>
		</body>
		</html>`, toName, resetURL)

	return s.send(toEmail, subject, body)
}

// SendWelcomeEmail sends a welcome message after registration
func (s *smtpService) SendWelcomeEmail(toEmail, toName string) error {
	if !s.configured() {
		s.logger.Debug().
			Str("toEmail", toEmail).
			Msg("SMTP credentials not configured - welcome email skipped")
		return nil
	}

	subject := "Welcome to EduVerse"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h1>Welcome to EduVerse!</h1>
			<p>Hello %s,</p>
			<p>Your account is ready. Browse the catalog and enroll in your first course.</p>
		</body>
		</html>`, toName)

	return s.send(toEmail, subject, body)
}

func (s *smtpService) send(toEmail, subject, htmlBody string) error {
	from := s.config.FromEmail
	if from == "" {
		from = s.config.Username
	}

	msg := "From: " + s.config.FromName + " <" + from + ">\r\n" +
		"To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" + htmlBody

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, from, []string{toEmail}, []byte(msg)); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
