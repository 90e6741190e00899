package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// collectionSem limits concurrent collection goroutines to prevent resource exhaustion
var collectionSem = make(chan struct{}, 4) // Max 4 concurrent collection runs

// CollectionStartedResponse represents the 202 response when a run is started
type CollectionStartedResponse struct {
	RunID   string `json:"runId"`
	Status  string `json:"status"`
	PollURL string `json:"pollUrl"`
	Message string `json:"message,omitempty"`
}

// TriggerCollection starts a collection run across all configured sources
// asynchronously
// POST /api/admin/collect
// Returns 202 Accepted immediately with runId and pollUrl
func (a *API) TriggerCollection(c *gin.Context) {
	if a.Collect == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "No collection sources configured",
		})
		return
	}

	runID, err := a.Runs.CreateRun(c.Request.Context(), "api")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to create collection run: %v", err),
		})
		return
	}

	// Spawn goroutine for actual processing
	go func() {
		// Acquire semaphore slot (blocks if max concurrent reached)
		collectionSem <- struct{}{}
		defer func() { <-collectionSem }()

		// Use a background context for the goroutine
		bgCtx := context.Background()
		summary := a.Collect(bgCtx)

		metadata, err := json.Marshal(summary)
		if err != nil {
			log.Error().Err(err).Int64("runID", runID).Msg("Failed to encode run summary")
			metadata = []byte("{}")
		}

		if summary.Succeeded() {
			err = a.Runs.MarkRunCompleted(bgCtx, runID, summary.TotalProducts, 0, string(metadata))
		} else if summary.TotalProducts > 0 {
			// Partial success still counts as completed
			err = a.Runs.MarkRunCompleted(bgCtx, runID, summary.TotalProducts, len(summary.Errors), string(metadata))
		} else {
			err = a.Runs.MarkRunFailed(bgCtx, runID, fmt.Sprintf("All sources failed: %d errors", len(summary.Errors)))
		}
		if err != nil {
			log.Error().Err(err).Int64("runID", runID).Msg("Failed to record run outcome")
		}
	}()

	// Return 202 Accepted immediately
	c.JSON(http.StatusAccepted, CollectionStartedResponse{
		RunID:   strconv.FormatInt(runID, 10),
		Status:  "started",
		PollURL: fmt.Sprintf("/api/admin/collect/status/%d", runID),
		Message: "Collection started for all configured sources",
	})
}

// GetCollectionStatus returns the status of a collection run
// GET /api/admin/collect/status/:runId
func (a *API) GetCollectionStatus(c *gin.Context) {
	runID, err := strconv.ParseInt(c.Param("runId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "runId must be numeric"})
		return
	}

	run, err := a.Runs.GetRun(c.Request.Context(), runID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to lookup run"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Run not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": run})
}

// ListCollectionRuns returns recent collection runs
// GET /api/admin/collect/runs?limit=20
func (a *API) ListCollectionRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := a.Runs.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to lookup runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": runs})
}
