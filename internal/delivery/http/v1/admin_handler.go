package v1

import (
	"net/http"
	"strconv"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin")
	{
		admin.GET("/dashboard", handler.Dashboard)
		admin.GET("/contacts", handler.ListContacts)
		admin.GET("/contacts/:id", handler.GetContact)
		admin.PUT("/contacts/:id", handler.UpdateContact)
		admin.DELETE("/contacts/:id", handler.DeleteContact)
	}
}

// Dashboard godoc
// @Summary      Dashboard statistics
// @Description  Returns total, unread, and recent contact submissions.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminUC.DashboardStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard statistics", gin.H{"stats": stats})
}

// ListContacts godoc
// @Summary      List contact submissions
// @Description  Returns paginated contact submissions, newest first.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /admin/contacts [get]
func (h *AdminHandler) ListContacts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.adminUC.ListContacts(c.Request.Context(), page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Contacts retrieved", gin.H{
		"contacts": result.Data,
		"pagination": gin.H{
			"total":      result.Total,
			"page":       result.Page,
			"pageSize":   result.PageSize,
			"totalPages": result.TotalPages,
		},
	})
}

// GetContact godoc
// @Summary      Get a contact submission
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/contacts/{id} [get]
func (h *AdminHandler) GetContact(c *gin.Context) {
	contact, err := h.adminUC.GetContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Contact retrieved", gin.H{"contact": contact})
}

type UpdateContactRequest struct {
	Read *bool `json:"read" binding:"required"`
}

// UpdateContact godoc
// @Summary      Mark a contact read or unread
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string                true  "Contact ID"
// @Param        update  body      UpdateContactRequest  true  "Read flag"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /admin/contacts/{id} [put]
func (h *AdminHandler) UpdateContact(c *gin.Context) {
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Field 'read' is required"))
		return
	}

	if err := h.adminUC.MarkRead(c.Request.Context(), c.Param("id"), *req.Read); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Contact updated", nil)
}

// DeleteContact godoc
// @Summary      Delete a contact submission
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/contacts/{id} [delete]
func (h *AdminHandler) DeleteContact(c *gin.Context) {
	if err := h.adminUC.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Contact deleted", nil)
}
