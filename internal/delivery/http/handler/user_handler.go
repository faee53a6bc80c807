package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/daterly/members-api/internal/delivery/http/middleware"
	"github.com/daterly/members-api/internal/domain"
	"github.com/daterly/members-api/internal/usecase/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase *users.UserUseCase
}

func NewUserHandler(userUseCase *users.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

// memberListQuery binds the directory filter query string.
type memberListQuery struct {
	Gender   string `form:"gender" binding:"omitempty,oneof=male female"`
	MinAge   int    `form:"min_age" binding:"omitempty,min=18,max=100"`
	MaxAge   int    `form:"max_age" binding:"omitempty,min=18,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created last_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
}

// GetUsers handles GET /users
func (h *UserHandler) GetUsers(c *gin.Context) {
	username, exists := currentUsername(c)
	if !exists {
		return
	}

	var query memberListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid query parameters",
		})
		return
	}

	params := domain.NewUserParams()
	params.Gender = query.Gender
	if query.MinAge != 0 {
		params.MinAge = query.MinAge
	}
	if query.MaxAge != 0 {
		params.MaxAge = query.MaxAge
	}
	if query.OrderBy != "" {
		params.OrderBy = query.OrderBy
	}
	if query.Page != 0 {
		params.Page = query.Page
	}
	if query.PageSize != 0 {
		params.PageSize = query.PageSize
	}

	page, err := h.userUseCase.ListMembers(c.Request.Context(), username, params)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "user not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to list members",
		})
		return
	}

	addPaginationHeader(c, page)
	c.JSON(http.StatusOK, page.Items)
}

// GetUser handles GET /users/:username
func (h *UserHandler) GetUser(c *gin.Context) {
	if _, exists := currentUsername(c); !exists {
		return
	}

	member, err := h.userUseCase.GetMember(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "user not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to get user",
		})
		return
	}

	c.JSON(http.StatusOK, member)
}

// UpdateUser handles PUT /users
func (h *UserHandler) UpdateUser(c *gin.Context) {
	username, exists := currentUsername(c)
	if !exists {
		return
	}

	var req users.MemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	if err := h.userUseCase.UpdateProfile(c.Request.Context(), username, &req); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "user not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "failed to update user",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// AddPhoto handles POST /users/add-photo
func (h *UserHandler) AddPhoto(c *gin.Context) {
	username, exists := currentUsername(c)
	if !exists {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "missing file",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "failed to read file",
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "failed to read file",
		})
		return
	}

	photo, err := h.userUseCase.AddPhoto(
		c.Request.Context(), username,
		content, fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "user not found",
			})
		case errors.Is(err, domain.ErrAssetStore):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
			})
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "problem adding the photo",
			})
		}
		return
	}

	c.Header("Location", fmt.Sprintf("/api/users/%s", username))
	c.JSON(http.StatusCreated, photo)
}

// SetMainPhoto handles PUT /users/set-main-photo/:photoId
func (h *UserHandler) SetMainPhoto(c *gin.Context) {
	username, exists := currentUsername(c)
	if !exists {
		return
	}

	photoID, err := strconv.Atoi(c.Param("photoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid photo id",
		})
		return
	}

	if err := h.userUseCase.SetMainPhoto(c.Request.Context(), username, photoID); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrPhotoNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "not found",
			})
		case errors.Is(err, domain.ErrAlreadyMain):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "this is already your main photo",
			})
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "problem setting main photo",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// DeletePhoto handles DELETE /users/delete-photo/:photoId
func (h *UserHandler) DeletePhoto(c *gin.Context) {
	username, exists := currentUsername(c)
	if !exists {
		return
	}

	photoID, err := strconv.Atoi(c.Param("photoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid photo id",
		})
		return
	}

	if err := h.userUseCase.DeletePhoto(c.Request.Context(), username, photoID); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrPhotoNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "not found",
			})
		case errors.Is(err, domain.ErrMainPhotoDelete):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "cannot delete your main photo",
			})
		case errors.Is(err, domain.ErrAssetStore):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
			})
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "problem deleting photo",
			})
		}
		return
	}

	c.Status(http.StatusOK)
}

func currentUsername(c *gin.Context) (string, bool) {
	username := c.GetString(middleware.ContextUsername)
	if username == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return "", false
	}
	return username, true
}
