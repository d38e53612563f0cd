package service

import (
	"github.com/redis/go-redis/v9"

	"public-pulse/internal/config"
	"public-pulse/internal/llm"
	"public-pulse/internal/repository"
	"public-pulse/internal/service/analysis"
	"public-pulse/internal/service/auth"
	"public-pulse/internal/service/comment"
	"public-pulse/internal/service/dashboard"
	"public-pulse/internal/service/department"
	"public-pulse/internal/service/email"
	"public-pulse/internal/service/image"
	"public-pulse/internal/service/issue"
	"public-pulse/internal/service/notification"
	"public-pulse/internal/service/user"
	"public-pulse/internal/service/vote"
	"public-pulse/internal/storage"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Department   department.Service
	Issue        issue.Service
	Image        image.Service
	Comment      comment.Service
	Vote         vote.Service
	Notification notification.Service
	Dashboard    dashboard.Service
	Analysis     analysis.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, tx repository.Transactor, redis *redis.Client, gateway storage.Gateway, llmClient llm.Client, cfg *config.Config) (*Services, error) {
	authService, err := auth.NewService(repos.User, repos.Department, cfg)
	if err != nil {
		return nil, err
	}

	emailService := email.NewService(cfg)
	departmentService := department.NewService(repos.Department, repos.User, repos.Issue, redis)
	analysisService := analysis.NewService(llmClient, departmentService, cfg.ClassifierTimeout)
	imageService := image.NewService(repos.Image, repos.Issue, gateway)

	issueService := issue.NewService(issue.Dependencies{
		Tx:             tx,
		IssueRepo:      repos.Issue,
		ImageRepo:      repos.Image,
		CommentRepo:    repos.Comment,
		StatusRepo:     repos.StatusHistory,
		VoteRepo:       repos.Vote,
		DepartmentRepo: repos.Department,
		UserRepo:       repos.User,
		Images:         imageService,
		Storage:        gateway,
		Analyzer:       analysisService,
		Email:          emailService,
	})

	return &Services{
		Auth:         authService,
		User:         user.NewService(tx, repos.User, repos.Department),
		Department:   departmentService,
		Issue:        issueService,
		Image:        imageService,
		Comment:      comment.NewService(tx, repos.Comment, repos.Issue, repos.Vote),
		Vote:         vote.NewService(tx, repos.Vote),
		Notification: notification.NewService(repos.Notification),
		Dashboard:    dashboard.NewService(repos.Issue, redis),
		Analysis:     analysisService,
		Email:        emailService,
	}, nil
}
