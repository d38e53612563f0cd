package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"public-pulse/internal/config"
	"public-pulse/internal/domain"
	"public-pulse/internal/middleware"
	"public-pulse/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Department   *DepartmentHandler
	Issue        *IssueHandler
	Image        *ImageHandler
	Comment      *CommentHandler
	Vote         *VoteHandler
	Notification *NotificationHandler
	Dashboard    *DashboardHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User, services.Issue),
		Department:   NewDepartmentHandler(services.Department),
		Issue:        NewIssueHandler(services.Issue, cfg.MaxImages, cfg.MaxUploadSize),
		Image:        NewImageHandler(services.Image),
		Comment:      NewCommentHandler(services.Comment),
		Vote:         NewVoteHandler(services.Vote),
		Notification: NewNotificationHandler(services.Notification),
		Dashboard:    NewDashboardHandler(services.Dashboard),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// validateInput turns the first failed rule into a client error naming the field.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.InvalidInput("Invalid request body")
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return domain.InvalidInput(fmt.Sprintf("%s is required", fe.Field()))
	case "oneof":
		return domain.InvalidInput(fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param()))
	case "max":
		return domain.InvalidInput(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	default:
		return domain.InvalidInput(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

// parseBody decodes the request body into input and validates it.
func parseBody(c *fiber.Ctx, input any) error {
	if err := c.BodyParser(input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	return validateInput(input)
}

func paramUUID(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest(fmt.Sprintf("Invalid %s ID", label))
	}
	return id, nil
}

func queryUUID(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, middleware.BadRequest(fmt.Sprintf("Invalid %s", name))
	}
	return &id, nil
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return nil, middleware.Unauthorized("User not authenticated")
	}
	return user, nil
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 10); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
