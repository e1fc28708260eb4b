package boards

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/rmas", h.List)
	r.GET("/rmas/:id", h.Get)
	r.POST("/rmas", h.Create)
	r.PUT("/rmas/:id", h.Update)

	// batch validation + bulk clearance used by the scan screens
	r.POST("/rmas/validate", h.Validate)
	r.POST("/rmas/confirm-clear", h.ConfirmClear)
}

func (h *Handler) List(c *gin.Context) {
	f := ListFilter{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	p := Page{
		Page:  atoiDef(c.Query("page"), 1),
		Limit: atoiDef(c.Query("limit"), 10),
	}
	res, err := h.svc.List(c.Request.Context(), f, p)
	if err != nil {
		c.JSON(toHTTPStatus(err), gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be a number"})
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), gin.H{"message": errMessage(err)})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRmaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "customer, serial, and model are required"})
		return
	}
	id, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), gin.H{"message": errMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "RMA created successfully"})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be a number"})
		return
	}
	var req UpdateRmaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		c.JSON(toHTTPStatus(err), gin.H{"message": errMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated successfully"})
}

func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	res, err := h.svc.ValidateSerials(c.Request.Context(), req.Serials)
	if err != nil {
		c.JSON(toHTTPStatus(err), gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ConfirmClear(c *gin.Context) {
	var req ConfirmClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	count, err := h.svc.ConfirmClear(c.Request.Context(), req.IDs)
	if err != nil {
		c.JSON(toHTTPStatus(err), gin.H{"message": errMessage(err)})
		return
	}
	c.JSON(http.StatusOK, ConfirmClearResponse{Message: "Cleared successfully", Count: count})
}

// ===== helpers =====

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func errMessage(err error) string {
	if api, ok := err.(*APIError); ok {
		return api.Message
	}
	return "Internal server error"
}
