// Package upload provides HTTP handlers for profile file uploads.
package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ethiowork-backend/internal/blob"
	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/service"
	"ethiowork-backend/internal/utilities"
)

// Profile uploads are capped below the generic blob ceiling.
const maxProfileFileBytes = 5 << 20

// UploadController handles file upload endpoints
type UploadController struct {
	Service *service.Service
	Storage blob.Storage
}

// NewUploadController creates a new instance of UploadController
func NewUploadController(svc *service.Service, storage blob.Storage) *UploadController {
	return &UploadController{
		Service: svc,
		Storage: storage,
	}
}

// readFormFile reads a single multipart file, enforcing the profile
// byte cap and an extension allowlist. On failure a response has
// already been written and the returned bytes are nil.
func (uc *UploadController) readFormFile(c *gin.Context, field string, allowedExtensions map[string]bool) ([]byte, string) {
	rawFile, err := c.FormFile(field)
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return nil, ""
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return nil, ""
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !allowedExtensions[extension] {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return nil, ""
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return nil, ""
	}
	defer f.Close()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
		return nil, ""
	}

	if int64(len(fileBytes)) > maxProfileFileBytes {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: "File size is larger than 5 MB",
		})
		return nil, ""
	}

	return fileBytes, extension
}

func (uc *UploadController) storeAndPatch(c *gin.Context, acc model.Account, fileBytes []byte, objectPath string, makePatch func(url string) *model.Account) {
	url, err := uc.Storage.Upload(c.Request.Context(), fileBytes, objectPath)
	if err != nil {
		if errors.Is(err, blob.ErrFileTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
				Error: "File exceeds the storage size ceiling",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store file: %s", err.Error()),
		})
		return
	}

	if err := uc.Service.UpdateAccountProfile(c.Request.Context(), acc.ID, makePatch(url)); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	updated, err := uc.Service.GetAccountProfile(c.Request.Context(), acc.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// UploadResume stores a job seeker's resume and points the profile at it.
// @Summary Upload resume file for a job seeker
// @Description Only files smaller than 5 MB with .pdf extension are permitted
// @Tags Upload
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param resume formData file true "Upload your resume file"
// @Success 200 {object} model.Account "Account after the upload"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as job seeker, or account is banned"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 5 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database or storage error"
// @Router /upload/resume [post]
func (uc *UploadController) UploadResume(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	fileBytes, extension := uc.readFormFile(c, "resume", map[string]bool{".pdf": true})
	if fileBytes == nil {
		return
	}

	objectPath := fmt.Sprintf("profiles/%s/resume-%d%s", acc.ID, time.Now().UnixNano(), extension)
	uc.storeAndPatch(c, acc, fileBytes, objectPath, func(url string) *model.Account {
		return &model.Account{SeekerProfile: &model.SeekerProfile{ResumeURL: url}}
	})
}

// UploadProfileImage stores a job seeker's profile image.
// @Summary Upload profile image for a job seeker
// @Description Only files smaller than 5 MB with .jpg, .jpeg, or .png extension are permitted
// @Tags Upload
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param image formData file true "Upload your profile image"
// @Success 200 {object} model.Account "Account after the upload"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as job seeker, or account is banned"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 5 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database or storage error"
// @Router /upload/profile-image [post]
func (uc *UploadController) UploadProfileImage(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	fileBytes, extension := uc.readFormFile(c, "image", imageExtensions)
	if fileBytes == nil {
		return
	}

	objectPath := fmt.Sprintf("profiles/%s/profile-image-%d%s", acc.ID, time.Now().UnixNano(), extension)
	uc.storeAndPatch(c, acc, fileBytes, objectPath, func(url string) *model.Account {
		return &model.Account{SeekerProfile: &model.SeekerProfile{ProfileImageURL: url}}
	})
}

// UploadLogo stores an employer's company logo.
// @Summary Upload logo file for an employer
// @Description Only files smaller than 5 MB with .jpg, .jpeg, or .png extension are permitted
// @Tags Upload
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param logo formData file true "Upload your logo file"
// @Success 200 {object} model.Account "Account after the upload"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer, or account is banned"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 5 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database or storage error"
// @Router /upload/logo [post]
func (uc *UploadController) UploadLogo(c *gin.Context) {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	fileBytes, extension := uc.readFormFile(c, "logo", imageExtensions)
	if fileBytes == nil {
		return
	}

	objectPath := fmt.Sprintf("profiles/%s/logo-%d%s", acc.ID, time.Now().UnixNano(), extension)
	uc.storeAndPatch(c, acc, fileBytes, objectPath, func(url string) *model.Account {
		return &model.Account{EmployerProfile: &model.EmployerProfile{LogoURL: url}}
	})
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}
