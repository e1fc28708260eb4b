package loans

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/loans/borrow", h.Borrow)
	r.GET("/loans/active/:employeeCode", h.ActiveLoans)
	r.POST("/loans/return", h.Return)
}

func (h *Handler) Borrow(c *gin.Context) {
	var req BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	res, err := h.svc.Borrow(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), gin.H{"message": errMessage(err)})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ActiveLoans(c *gin.Context) {
	code := c.Param("employeeCode")
	rows, err := h.svc.ActiveLoans(c.Request.Context(), code)
	if err != nil {
		c.JSON(toHTTPStatus(err), gin.H{"message": errMessage(err)})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) Return(c *gin.Context) {
	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	res, err := h.svc.Return(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), gin.H{"message": errMessage(err)})
		return
	}
	c.JSON(http.StatusOK, res)
}

func errMessage(err error) string {
	if api, ok := err.(*APIError); ok {
		return api.Message
	}
	return "Server error"
}
