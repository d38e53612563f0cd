package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"public-pulse/internal/domain"
	"public-pulse/internal/middleware"
	"public-pulse/internal/service/issue"
)

type IssueHandler struct {
	issueService  issue.Service
	maxImages     int
	maxUploadSize int64
}

func NewIssueHandler(issueService issue.Service, maxImages int, maxUploadSize int64) *IssueHandler {
	return &IssueHandler{
		issueService:  issueService,
		maxImages:     maxImages,
		maxUploadSize: maxUploadSize,
	}
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

func formFloat(c *fiber.Ctx, name string) (*float64, error) {
	raw := strings.TrimSpace(c.FormValue(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, middleware.BadRequest(fmt.Sprintf("Invalid %s", name))
	}
	return &v, nil
}

func formString(c *fiber.Ctx, name string) *string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// readUploads opens every file in the "images" field after checking count, size and
// sniffed content type. The returned closer releases all opened files.
func (h *IssueHandler) readUploads(c *fiber.Ctx) ([]domain.Upload, func(), error) {
	noop := func() {}
	if !isMultipart(c) {
		return nil, noop, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, noop, middleware.BadRequest("Invalid multipart form")
	}

	headers := form.File["images"]
	if len(headers) > h.maxImages {
		return nil, noop, middleware.BadRequest(fmt.Sprintf("A maximum of %d images is allowed", h.maxImages))
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	uploads := make([]domain.Upload, 0, len(headers))
	for _, header := range headers {
		if header.Size > h.maxUploadSize {
			closeAll()
			return nil, noop, fiber.NewError(fiber.StatusRequestEntityTooLarge,
				fmt.Sprintf("Image %s exceeds the %d byte limit", header.Filename, h.maxUploadSize))
		}

		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, noop, middleware.BadRequest("Failed to read uploaded image")
		}
		opened = append(opened, file)

		mtype, err := mimetype.DetectReader(file)
		if err != nil {
			closeAll()
			return nil, noop, middleware.BadRequest("Failed to read uploaded image")
		}
		if !strings.HasPrefix(mtype.String(), "image/") {
			closeAll()
			return nil, noop, middleware.BadRequest("Only image files are allowed")
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			closeAll()
			return nil, noop, middleware.BadRequest("Failed to read uploaded image")
		}

		uploads = append(uploads, domain.Upload{
			FileName:    header.Filename,
			Size:        header.Size,
			ContentType: mtype.String(),
			Reader:      file,
		})
	}

	return uploads, closeAll, nil
}

func (h *IssueHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var input domain.CreateIssueInput
	if isMultipart(c) {
		input.Title = strings.TrimSpace(c.FormValue("title"))
		input.Description = strings.TrimSpace(c.FormValue("description"))
		if input.Latitude, err = formFloat(c, "latitude"); err != nil {
			return err
		}
		if input.Longitude, err = formFloat(c, "longitude"); err != nil {
			return err
		}
		if err := validateInput(&input); err != nil {
			return err
		}
	} else if err := parseBody(c, &input); err != nil {
		return err
	}

	uploads, closeUploads, err := h.readUploads(c)
	if err != nil {
		return err
	}
	defer closeUploads()

	created, err := h.issueService.Create(c.Context(), user, input, uploads)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Issue created successfully",
		"issue":   created,
	})
}

func (h *IssueHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	filter := domain.IssueFilter{Search: strings.TrimSpace(c.Query("search"))}
	if raw := c.Query("status"); raw != "" {
		status := domain.IssueStatus(strings.ToUpper(raw))
		filter.Status = &status
	}

	var err error
	if filter.DepartmentID, err = queryUUID(c, "department_id"); err != nil {
		return err
	}
	if filter.AuthorID, err = queryUUID(c, "author_id"); err != nil {
		return err
	}

	result, err := h.issueService.List(c.Context(), filter, params, middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *IssueHandler) Nearby(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if latErr != nil || lngErr != nil {
		return middleware.BadRequest("Valid latitude and longitude are required")
	}

	query := domain.NearbyQuery{
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  c.QueryFloat("radius", issue.DefaultRadiusKm),
	}

	result, err := h.issueService.Nearby(c.Context(), query)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *IssueHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id", "issue")
	if err != nil {
		return err
	}

	found, err := h.issueService.Get(c.Context(), id, middleware.GetCurrentUser(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"issue": found})
}

func (h *IssueHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id", "issue")
	if err != nil {
		return err
	}

	var input domain.UpdateIssueInput
	if isMultipart(c) {
		input.Title = formString(c, "title")
		input.Description = formString(c, "description")
		if input.Latitude, err = formFloat(c, "latitude"); err != nil {
			return err
		}
		if input.Longitude, err = formFloat(c, "longitude"); err != nil {
			return err
		}
		if raw := strings.TrimSpace(c.FormValue("severity")); raw != "" {
			severity, err := strconv.Atoi(raw)
			if err != nil {
				return middleware.BadRequest("Invalid severity")
			}
			input.Severity = &severity
		}
		input.ReplaceImages, _ = strconv.ParseBool(c.FormValue("replace_images"))
		if err := validateInput(&input); err != nil {
			return err
		}
	} else if err := parseBody(c, &input); err != nil {
		return err
	}

	uploads, closeUploads, err := h.readUploads(c)
	if err != nil {
		return err
	}
	defer closeUploads()

	updated, err := h.issueService.Update(c.Context(), id, user, input, uploads)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Issue updated successfully",
		"issue":   updated,
	})
}

func (h *IssueHandler) UpdateStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id", "issue")
	if err != nil {
		return err
	}

	var input domain.UpdateStatusInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.issueService.UpdateStatus(c.Context(), id, user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Issue status updated successfully",
		"issue":   updated,
	})
}

func (h *IssueHandler) AssignDepartment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id", "issue")
	if err != nil {
		return err
	}

	var input domain.AssignDepartmentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.issueService.AssignDepartment(c.Context(), id, user, input)
	if err != nil {
		return err
	}

	message := "Issue assigned to department successfully"
	if input.DepartmentID == nil {
		message = "Issue removed from department successfully"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"issue":   updated,
	})
}

func (h *IssueHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id", "issue")
	if err != nil {
		return err
	}

	if err := h.issueService.Delete(c.Context(), id, user); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Issue deleted successfully"})
}

func (h *IssueHandler) ListAssigned(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var status *domain.IssueStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.IssueStatus(strings.ToUpper(raw))
		status = &s
	}

	result, err := h.issueService.ListAssigned(c.Context(), user, status, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
