package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio-org/mod-patron-sub000/pkg/account"
	"github.com/folio-org/mod-patron-sub000/pkg/batch"
	"github.com/folio-org/mod-patron-sub000/pkg/circuitbreaker"
	"github.com/folio-org/mod-patron-sub000/pkg/gateway"
	"github.com/folio-org/mod-patron-sub000/pkg/holds"
	"github.com/folio-org/mod-patron-sub000/pkg/policy"
	"github.com/folio-org/mod-patron-sub000/pkg/settings"
)

func main() {
	log.Println("Starting patron gateway...")

	okapiURL := getEnv("OKAPI_URL", "http://localhost:9130")
	breaker := circuitbreaker.NewCircuitBreaker(5, 30*time.Second)
	gw := gateway.New(okapiURL, gateway.WithBreaker(breaker))

	db := settings.InitDB()
	store := settings.NewStore(db)
	flags := settings.NewFeatureFlags(gw, store)

	accounts = account.NewAggregator(gw)
	holdManager = holds.NewManager(gw, policy.NewResolver(gw), flags)
	batches = batch.NewAggregator(gw)

	r := gin.Default()

	r.GET("/patron/account/:patronId", getAccountHandler)
	r.POST("/patron/account/:patronId/item/:itemId/hold", createItemHoldHandler)
	r.POST("/patron/account/:patronId/instance/:instanceId/hold", createInstanceHoldHandler)
	r.POST("/patron/account/:patronId/hold/:holdId/cancel", cancelHoldHandler)
	r.POST("/patron/account/:patronId/batch", createBatchHandler)
	r.GET("/patron/batch/:batchId/status", getBatchStatusHandler)
	r.GET("/manage/health", healthCheck)

	port := getEnv("PORT", "8080")
	log.Printf("Patron gateway starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
