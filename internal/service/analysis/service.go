package analysis

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"public-pulse/internal/domain"
	"public-pulse/internal/llm"
)

const severityPrompt = `You are an expert at analyzing community issues and assigning appropriate severity scores.

Scale:
1-2: Minor inconvenience, low impact, affects very few people
3-4: Moderate issue, localized impact, affects a small group
5-6: Significant issue, notable impact, affects a neighborhood
7-8: Serious issue, substantial impact, affects many people or poses health/safety risks
9-10: Critical emergency, severe impact, immediate danger to public, infrastructure failure

Analyze the issue title and description, then return ONLY a single number between 1 and 10 representing the severity.`

const departmentPrompt = `You are an expert at analyzing community issues and assigning them to the most appropriate government department.

Available departments: %s

Your task is to analyze the issue title and description, then determine which department would be most responsible for handling this issue.
Return ONLY the exact name of the most appropriate department from the list above.`

// DepartmentSource supplies departments in stored order.
type DepartmentSource interface {
	Names(ctx context.Context) ([]domain.Department, error)
}

type Service interface {
	Severity(ctx context.Context, title, description string) (int, error)
	Department(ctx context.Context, title, description string) (*uuid.UUID, error)
	Analyze(ctx context.Context, title, description string) domain.Analysis
}

type service struct {
	llm         llm.Client
	departments DepartmentSource
	timeout     time.Duration
}

func NewService(client llm.Client, departments DepartmentSource, timeout time.Duration) Service {
	return &service{
		llm:         client,
		departments: departments,
		timeout:     timeout,
	}
}

func (s *service) complete(ctx context.Context, system, user string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.llm.Complete(ctx, system, user)
}

func issueMessage(title, description, ask string) string {
	return fmt.Sprintf("Title: %s\nDescription: %s\n\n%s", title, description, ask)
}

// Severity asks the model for a 1-10 score. A reply without a number scores the
// default; a failed call is returned as an error.
func (s *service) Severity(ctx context.Context, title, description string) (int, error) {
	reply, err := s.complete(ctx, severityPrompt, issueMessage(title, description, "Severity score (1-10):"))
	if err != nil {
		return domain.DefaultSeverity, fmt.Errorf("severity classification: %w", err)
	}
	return ParseSeverity(reply), nil
}

// Department asks the model to pick one of the stored departments. No departments, or
// a reply that matches none of them, yields nil.
func (s *service) Department(ctx context.Context, title, description string) (*uuid.UUID, error) {
	departments, err := s.departments.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	if len(departments) == 0 {
		log.Println("No departments found, skipping department classification")
		return nil, nil
	}

	names := make([]string, len(departments))
	for i, d := range departments {
		names[i] = d.Name
	}

	system := fmt.Sprintf(departmentPrompt, strings.Join(names, ", "))
	reply, err := s.complete(ctx, system, issueMessage(title, description, "Most appropriate department:"))
	if err != nil {
		return nil, fmt.Errorf("department classification: %w", err)
	}
	return MatchDepartment(reply, departments), nil
}

// Analyze never fails: if either classifier errors the whole verdict falls back to
// severity 5 with no department.
func (s *service) Analyze(ctx context.Context, title, description string) domain.Analysis {
	log.Printf("Analyzing severity for issue: %s", title)
	severity, err := s.Severity(ctx, title, description)
	if err != nil {
		log.Printf("Issue analysis failed, using defaults: %v", err)
		return domain.DefaultAnalysis()
	}

	departmentID, err := s.Department(ctx, title, description)
	if err != nil {
		log.Printf("Issue analysis failed, using defaults: %v", err)
		return domain.DefaultAnalysis()
	}

	return domain.Analysis{Severity: severity, DepartmentID: departmentID}
}

var firstInteger = regexp.MustCompile(`\d+`)

// ParseSeverity takes the first run of digits in reply and clamps it into [1,10].
func ParseSeverity(reply string) int {
	digits := firstInteger.FindString(reply)
	if digits == "" {
		return domain.DefaultSeverity
	}

	score, err := strconv.Atoi(digits)
	if err != nil {
		// only overflow gets here
		return domain.MaxSeverity
	}
	return min(max(score, domain.MinSeverity), domain.MaxSeverity)
}

// MatchDepartment returns the first department whose name contains the reply or is
// contained in it, ignoring case. A blank reply matches nothing.
func MatchDepartment(reply string, departments []domain.Department) *uuid.UUID {
	answer := strings.ToLower(strings.TrimSpace(reply))
	if answer == "" {
		return nil
	}

	for _, d := range departments {
		name := strings.ToLower(d.Name)
		if name == "" {
			continue
		}
		if strings.Contains(answer, name) || strings.Contains(name, answer) {
			id := d.ID
			return &id
		}
	}
	return nil
}
