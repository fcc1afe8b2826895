package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MateusVidalm/ECOTANQUE/internal/syncer"
)

type SyncHandler struct {
	coord *syncer.Coordinator
}

func NewSyncHandler(coord *syncer.Coordinator) *SyncHandler {
	return &SyncHandler{coord: coord}
}

// Trigger — POST /v1/sync
// Runs one push to the central store. Never queued, never background: the
// caller waits for the batches and gets the per-collection outcome.
func (h *SyncHandler) Trigger(c *gin.Context) {
	res, err := h.coord.Sync(c.Request.Context())
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	status := http.StatusOK
	if !res.Ok() {
		// Partial failure: some batches confirmed, others stay pending.
		status = http.StatusBadGateway
	}
	c.JSON(status, res)
}

// Pending — GET /v1/sync/pending
func (h *SyncHandler) Pending(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pending": h.coord.PendingCount()})
}
