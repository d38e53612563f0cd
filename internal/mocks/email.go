package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"public-pulse/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendStatusUpdateEmail(ctx context.Context, toEmail, recipientName, issueTitle string, status domain.IssueStatus) error {
	args := m.Called(ctx, toEmail, recipientName, issueTitle, status)
	return args.Error(0)
}

func (m *EmailService) SendDepartmentAssignedEmail(ctx context.Context, toEmail, recipientName, issueTitle, departmentName string) error {
	args := m.Called(ctx, toEmail, recipientName, issueTitle, departmentName)
	return args.Error(0)
}
