package controllers

import (
	"time"

	"salesboard/src/clients/salesapi"
	"salesboard/src/services"
	"salesboard/src/utils"
)

type Controller struct {
	TransactionService services.TransactionServiceI
	SeedService        services.SeedServiceI
	ReportService      services.ReportServiceI
	SalesClient        salesapi.SalesAPIClientI
	Cache              utils.ResponseCache
	CacheTTL           time.Duration
}

func NewController(
	transactionService services.TransactionServiceI,
	seedService services.SeedServiceI,
	reportService services.ReportServiceI,
	salesClient salesapi.SalesAPIClientI,
	cache utils.ResponseCache,
	cacheTTL time.Duration,
) *Controller {
	return &Controller{
		TransactionService: transactionService,
		SeedService:        seedService,
		ReportService:      reportService,
		SalesClient:        salesClient,
		Cache:              cache,
		CacheTTL:           cacheTTL,
	}
}
