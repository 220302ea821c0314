package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parcelworks/lotscope/internal/acquisition"
	"github.com/parcelworks/lotscope/internal/analyzer"
	"github.com/parcelworks/lotscope/internal/config"
	"github.com/parcelworks/lotscope/internal/models"
	"github.com/parcelworks/lotscope/internal/repository"
)

// AnalysisHandler serves development-potential analyses
type AnalysisHandler struct {
	cfg     *config.Config
	parcels *acquisition.Client
	repo    *repository.ParcelRepository
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(cfg *config.Config, parcels *acquisition.Client, repo *repository.ParcelRepository) *AnalysisHandler {
	return &AnalysisHandler{
		cfg:     cfg,
		parcels: parcels,
		repo:    repo,
	}
}

// AnalyzeRequest identifies a parcel by street address or APN.
type AnalyzeRequest struct {
	Address string `json:"address" binding:"required"`
	TOCTier int    `json:"toc_tier,omitempty"`
	AsOf    string `json:"as_of,omitempty"`
}

// Analyze handles POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	ctx := c.Request.Context()

	apn := acquisition.ParseAPN(req.Address)
	if apn == "" {
		resolved, err := h.parcels.ResolveAddress(ctx, req.Address)
		if err != nil {
			h.writeLookupError(c, err)
			return
		}
		apn = resolved
	}

	rec, err := h.loadRecord(ctx, apn)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	if req.TOCTier > 0 {
		rec.ManualTOCTier = req.TOCTier
	}

	c.JSON(http.StatusOK, h.analyze(*rec, req.AsOf))
}

// GetParcel handles GET /api/v1/parcels/:apn
func (h *AnalysisHandler) GetParcel(c *gin.Context) {
	rec, err := h.loadRecord(c.Request.Context(), c.Param("apn"))
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetParcelAnalysis handles GET /api/v1/parcels/:apn/analysis
func (h *AnalysisHandler) GetParcelAnalysis(c *gin.Context) {
	rec, err := h.loadRecord(c.Request.Context(), c.Param("apn"))
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.analyze(*rec, c.Query("as_of")))
}

// Rules handles GET /api/v1/rules, listing the statutory programs the
// engine evaluates.
func (h *AnalysisHandler) Rules(c *gin.Context) {
	rules := analyzer.Registry()
	out := make([]gin.H, 0, len(rules))
	for _, r := range rules {
		out = append(out, gin.H{"id": r.ID, "description": r.Description})
	}
	c.JSON(http.StatusOK, gin.H{"programs": out, "default_vintage": analyzer.DefaultVintage})
}

func (h *AnalysisHandler) analyze(rec models.PropertyRecord, asOf string) models.DevelopmentAnalysis {
	vintage := asOf
	if vintage == "" {
		vintage = h.cfg.RuleVintage
	}
	engine := analyzer.NewService(analyzer.RuleSetFor(vintage))
	return engine.Analyze(rec)
}

// loadRecord returns the cached record for an APN, fetching from the county
// service on a miss. Cache failures degrade to a live fetch.
func (h *AnalysisHandler) loadRecord(ctx context.Context, apn string) (*models.PropertyRecord, error) {
	clean := acquisition.ParseAPN(apn)
	if clean == "" {
		return nil, acquisition.ErrNotFound
	}

	key := acquisition.FormatAPN(clean)
	if h.repo != nil {
		rec, err := h.repo.Get(ctx, key)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, repository.ErrNoRecord) {
			log.Printf("parcel cache read failed for %s: %v", key, err)
		}
	}

	rec, err := h.parcels.FetchByAPN(ctx, clean)
	if err != nil {
		return nil, err
	}

	if h.repo != nil {
		if err := h.repo.Put(ctx, rec); err != nil {
			log.Printf("parcel cache write failed for %s: %v", rec.APN, err)
		}
	}
	return rec, nil
}

func (h *AnalysisHandler) writeLookupError(c *gin.Context, err error) {
	if errors.Is(err, acquisition.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "parcel not found"})
		return
	}
	log.Printf("parcel lookup failed: %v", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "parcel service unavailable"})
}
