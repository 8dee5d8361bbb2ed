package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/export"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
)

// GenerateMealPlanRequest is the body of POST /meal-plans/generate.
type GenerateMealPlanRequest struct {
	DailyP       float64  `json:"dailyP"`
	DailyC       float64  `json:"dailyC"`
	DailyF       float64  `json:"dailyF"`
	Allergens    []string `json:"allergens"`
	DietTags     []string `json:"dietTags"`
	Preset       string   `json:"preset"`
	AllowRepeats bool     `json:"allowRepeats"`
	Debug        *bool    `json:"debug"`
	Seed         *uint64  `json:"seed"`
	Save         bool     `json:"save"`
}

type MealPlanHandler struct {
	mealPlanService service.IMealPlanService
	exporter        export.Exporter
}

// NewMealPlanHandler creates a handler. exporter may be nil when exports are
// not configured.
func NewMealPlanHandler(mealPlanService service.IMealPlanService, exporter export.Exporter) *MealPlanHandler {
	return &MealPlanHandler{
		mealPlanService: mealPlanService,
		exporter:        exporter,
	}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup, generateLimit ...gin.HandlerFunc) {
	plans := router.Group("/meal-plans")
	{
		plans.POST("/generate", append(generateLimit, h.Generate)...)
		plans.GET("/:id", h.GetPlan)
		plans.POST("/:id/export", h.ExportPlan)
	}
}

func (h *MealPlanHandler) Generate(c *gin.Context) {
	var req GenerateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.mealPlanService.Generate(c.Request.Context(), service.GenerateRequest{
		DailyP:       req.DailyP,
		DailyC:       req.DailyC,
		DailyF:       req.DailyF,
		Allergens:    req.Allergens,
		DietTags:     req.DietTags,
		Preset:       req.Preset,
		AllowRepeats: req.AllowRepeats,
		Debug:        req.Debug,
		Seed:         req.Seed,
		Save:         req.Save,
	})
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MealPlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.mealPlanService.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "plan": plan})
}

func (h *MealPlanHandler) ExportPlan(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "plan export is not configured"})
		return
	}
	id := c.Param("id")
	plan, err := h.mealPlanService.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrPlanNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal plan"})
		return
	}

	res, err := h.exporter.Export(c.Request.Context(), id, plan)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to export meal plan"})
		return
	}
	c.JSON(http.StatusOK, res)
}
