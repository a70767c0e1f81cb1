package service

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/jotterhq/jotter/internal/config"
)

// IEmailSender delivers notification mail. Implementations must be safe for
// concurrent use.
type IEmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpSender struct {
	cfg config.MailConfig
}

func NewSMTPSender(cfg config.MailConfig) IEmailSender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	msg := buildMessage(s.cfg.From, to, subject, body)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg)
}

func buildMessage(from, to, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}

// noopSender is used when no mail host is configured; notifications are
// logged and dropped.
type noopSender struct{}

func NewNoopSender() IEmailSender {
	return noopSender{}
}

func (noopSender) Send(ctx context.Context, to, subject, body string) error {
	logutil.GetLogger(ctx).Debug("mail disabled, dropping notification",
		zap.String("to", to), zap.String("subject", subject))
	return nil
}

func buildShareMail(docTitle, shareURL string) (string, string) {
	subject := fmt.Sprintf("A document was shared with you: %s", docTitle)
	body := fmt.Sprintf("You have been given access to %q.\n\nOpen it here: %s\n", docTitle, shareURL)
	return subject, body
}

func buildCommentMail(docTitle, authorName, comment, docURL string) (string, string) {
	subject := fmt.Sprintf("New comment on %s", docTitle)
	body := fmt.Sprintf("%s commented on %q:\n\n%s\n\nView the document: %s\n",
		authorName, docTitle, comment, docURL)
	return subject, body
}
