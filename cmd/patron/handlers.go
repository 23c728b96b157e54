package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/folio-org/mod-patron-sub000/pkg/account"
	"github.com/folio-org/mod-patron-sub000/pkg/apierr"
	"github.com/folio-org/mod-patron-sub000/pkg/batch"
	"github.com/folio-org/mod-patron-sub000/pkg/holds"
	"github.com/folio-org/mod-patron-sub000/pkg/models"
)

var (
	accounts    *account.Aggregator
	holdManager *holds.Manager
	batches     *batch.Aggregator
)

// okapiHeaders collects the tenant/auth headers forwarded verbatim on every
// backend call.
func okapiHeaders(c *gin.Context) map[string]string {
	headers := make(map[string]string)
	for name, values := range c.Request.Header {
		if strings.HasPrefix(name, "X-Okapi-") && len(values) > 0 {
			headers[name] = values[0]
		}
	}
	return headers
}

func respondError(c *gin.Context, err error) {
	status, body := apierr.Classify(err)
	c.JSON(status, body)
}

func boolQuery(c *gin.Context, name string) (bool, bool) {
	value, err := strconv.ParseBool(c.DefaultQuery(name, "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be true or false"})
		return false, false
	}
	return value, true
}

func getAccountHandler(c *gin.Context) {
	includeLoans, ok := boolQuery(c, "includeLoans")
	if !ok {
		return
	}
	includeHolds, ok := boolQuery(c, "includeHolds")
	if !ok {
		return
	}
	includeCharges, ok := boolQuery(c, "includeCharges")
	if !ok {
		return
	}

	result, err := accounts.GetAccount(c.Request.Context(), c.Param("patronId"),
		includeLoans, includeHolds, includeCharges, okapiHeaders(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func createItemHoldHandler(c *gin.Context) {
	var input models.HoldCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation error",
			"errors": map[string]string{
				"field": "request",
				"error": err.Error(),
			},
		})
		return
	}

	hold, err := holdManager.CreateItemHold(c.Request.Context(),
		c.Param("patronId"), c.Param("itemId"), input, okapiHeaders(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hold)
}

func createInstanceHoldHandler(c *gin.Context) {
	var input models.HoldCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation error",
			"errors": map[string]string{
				"field": "request",
				"error": err.Error(),
			},
		})
		return
	}

	hold, err := holdManager.CreateInstanceHold(c.Request.Context(),
		c.Param("patronId"), c.Param("instanceId"), input, okapiHeaders(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hold)
}

func cancelHoldHandler(c *gin.Context) {
	var cancellation models.HoldCancellation
	if err := c.ShouldBindJSON(&cancellation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation error",
			"errors": map[string]string{
				"field": "request",
				"error": err.Error(),
			},
		})
		return
	}

	hold, err := holdManager.CancelHold(c.Request.Context(),
		c.Param("holdId"), cancellation, okapiHeaders(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hold)
}

func createBatchHandler(c *gin.Context) {
	var request models.BatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation error",
			"errors": map[string]string{
				"field": "request",
				"error": err.Error(),
			},
		})
		return
	}

	created, err := batches.Create(c.Request.Context(), request,
		c.Param("patronId"), okapiHeaders(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func getBatchStatusHandler(c *gin.Context) {
	instance := models.BatchInstance{
		InstanceID: c.Query("instanceId"),
		Title:      c.Query("title"),
	}

	status, err := batches.Status(c.Request.Context(),
		c.Param("batchId"), instance, okapiHeaders(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"details": "Host localhost:8080 is active",
	})
}
