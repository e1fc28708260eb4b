package masters

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ store *Store }

func RegisterRoutes(r gin.IRoutes, conn *sql.DB) {
	h := &Handler{store: NewStore(conn)}
	r.GET("/masters/items", h.Items)
	r.GET("/masters/customers", h.Customers)
	r.GET("/masters/fault-codes", h.FaultCodes)
}

func (h *Handler) Items(c *gin.Context) {
	out, err := h.store.Items(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Customers(c *gin.Context) {
	out, err := h.store.Customers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) FaultCodes(c *gin.Context) {
	out, err := h.store.FaultCodes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, out)
}
