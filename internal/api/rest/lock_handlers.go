package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type LockStatusResponse struct {
	ResourceID string    `json:"resource_id"`
	OwnerToken string    `json:"owner_token"`
	AcquiredAt time.Time `json:"acquired_at"`
	AgeSeconds float64   `json:"age_seconds"`
	Stale      bool      `json:"stale"`
}

type ClearLockResponse struct {
	ResourceID string `json:"resource_id"`
	Deleted    bool   `json:"deleted"`
}

// getLock godoc
// @Summary Inspect the dataset lease
// @Description Show who holds the dataset lease and whether it is past its timeout
// @Tags lock
// @Produce json
// @Success 200 {object} LockStatusResponse
// @Failure 404 {object} ErrorResponse "No lease held"
// @Failure 503 {object} ErrorResponse "Lease store unavailable"
// @Router /lock [get]
func (api *apiDetails) getLock(c *gin.Context) {
	status, err := api.lease.Inspect(c.Request.Context())
	if err != nil {
		api.respondError(c, "Failed to inspect lease", err)
		return
	}

	if !status.Held {
		createErrorResponse(c, http.StatusNotFound, "No lease held for "+api.lease.ResourceID())
		return
	}

	c.JSON(http.StatusOK, LockStatusResponse{
		ResourceID: status.ResourceID,
		OwnerToken: status.OwnerToken,
		AcquiredAt: status.AcquiredAt,
		AgeSeconds: status.Age.Seconds(),
		Stale:      status.Stale,
	})
}

// clearLock godoc
// @Summary Force clear the dataset lease
// @Description Delete the dataset lease whoever holds it. Meant for operators recovering from a stuck holder.
// @Tags lock
// @Produce json
// @Success 200 {object} ClearLockResponse
// @Failure 503 {object} ErrorResponse "Lease store unavailable"
// @Router /lock [delete]
func (api *apiDetails) clearLock(c *gin.Context) {
	deleted, err := api.lease.ForceRelease(c.Request.Context())
	if err != nil {
		api.respondError(c, "Failed to clear lease", err)
		return
	}

	api.logger.Warn("Lease cleared over http",
		"resource_id", api.lease.ResourceID(),
		"deleted", deleted,
		"client_ip", c.ClientIP(),
	)

	c.JSON(http.StatusOK, ClearLockResponse{
		ResourceID: api.lease.ResourceID(),
		Deleted:    deleted,
	})
}
