package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"

	"github.com/resend/resend-go/v3"

	"public-pulse/internal/config"
	"public-pulse/internal/domain"
	"public-pulse/internal/pkg/i18n"
)

//go:embed templates/*.html
var templateFiles embed.FS

type Service interface {
	SendStatusUpdateEmail(ctx context.Context, toEmail, recipientName, issueTitle string, status domain.IssueStatus) error
	SendDepartmentAssignedEmail(ctx context.Context, toEmail, recipientName, issueTitle, departmentName string) error
}

type service struct {
	client    *resend.Client
	config    *config.Config
	templates *template.Template
}

// NewService returns a Resend-backed sender, or a sender that only logs when no API key
// is configured.
func NewService(cfg *config.Config) Service {
	if cfg.ResendAPIKey == "" {
		return noopService{}
	}

	return &service{
		client:    resend.NewClient(cfg.ResendAPIKey),
		config:    cfg,
		templates: template.Must(template.ParseFS(templateFiles, "templates/layout.html")),
	}
}

func (s *service) render(templateName string, data any) (string, error) {
	tmpl, err := s.templates.Clone()
	if err != nil {
		return "", err
	}
	if _, err := tmpl.ParseFS(templateFiles, "templates/"+templateName); err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(toEmail, subject, templateName string, data any) error {
	body, err := s.render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Public Pulse <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body,
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendStatusUpdateEmail(ctx context.Context, toEmail, recipientName, issueTitle string, status domain.IssueStatus) error {
	color := "#f59e0b"
	switch status {
	case domain.StatusClosed:
		color = "#10b981"
	case domain.StatusPaused:
		color = "#6b7280"
	}

	data := struct {
		Title      string
		Name       string
		IssueTitle string
		Status     string
		Color      string
		Link       string
	}{
		Title:      "Issue Status Updated",
		Name:       recipientName,
		IssueTitle: issueTitle,
		Status:     string(status),
		Color:      color,
		Link:       fmt.Sprintf("https://%s/issues", s.config.Domain),
	}
	subject := i18n.Format(s.config.DefaultLocale, i18n.KeyStatusEmailSubject, issueTitle)
	return s.sendEmail(toEmail, subject, "status_update.html", data)
}

func (s *service) SendDepartmentAssignedEmail(ctx context.Context, toEmail, recipientName, issueTitle, departmentName string) error {
	data := struct {
		Title          string
		Name           string
		IssueTitle     string
		DepartmentName string
		Link           string
	}{
		Title:          "Issue Assigned",
		Name:           recipientName,
		IssueTitle:     issueTitle,
		DepartmentName: departmentName,
		Link:           fmt.Sprintf("https://%s/issues", s.config.Domain),
	}
	subject := i18n.Format(s.config.DefaultLocale, i18n.KeyStatusEmailSubject, issueTitle)
	return s.sendEmail(toEmail, subject, "department_assigned.html", data)
}

type noopService struct{}

func (noopService) SendStatusUpdateEmail(ctx context.Context, toEmail, recipientName, issueTitle string, status domain.IssueStatus) error {
	log.Printf("Email disabled, skipping status update for %q (%s)", issueTitle, status)
	return nil
}

func (noopService) SendDepartmentAssignedEmail(ctx context.Context, toEmail, recipientName, issueTitle, departmentName string) error {
	log.Printf("Email disabled, skipping department assignment for %q", issueTitle)
	return nil
}
