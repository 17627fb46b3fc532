package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/petify/reservation-slots-service/internal/config"
	"github.com/petify/reservation-slots-service/internal/core/domain"
	"github.com/petify/reservation-slots-service/internal/core/json_types"
	"github.com/petify/reservation-slots-service/internal/core/ports/in"
	"github.com/petify/reservation-slots-service/internal/core/ports/out"
)

type SlotSchedulerController struct {
	useCase in.SlotSchedulerUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewSlotSchedulerController(useCase in.SlotSchedulerUseCase, cfg *config.Config, logger out.LoggerPort) *SlotSchedulerController {
	return &SlotSchedulerController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *SlotSchedulerController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/reservations")
	api.Use(JWTAuth([]byte(c.cfg.Auth.JWTSecret)))
	{
		api.GET("/slots/available", c.getAvailableSlots)
		api.GET("/my-slots", c.getMySlots)

		staff := api.Group("")
		staff.Use(RequireRoles(domain.RoleAdmin, domain.RoleShelter))
		{
			staff.POST("/slots", c.createSlot)
			staff.POST("/slots/batch", c.createBatchSlots)
			staff.DELETE("/slots/:slotId", c.deleteSlot)
			staff.DELETE("/slots", c.deleteAllSlots)
			staff.GET("/slots", c.getAllSlots)
			staff.GET("/slots/pet/:petId", c.getSlotsByPet)
			staff.GET("/slots/user/:username", c.getSlotsByUser)
			staff.PATCH("/slots/:slotId/reactivate", c.reactivateSlot)
		}

		visitors := api.Group("")
		visitors.Use(RequireRoles(domain.RoleUser, domain.RoleAdmin))
		{
			visitors.PATCH("/slots/:slotId/reserve", c.reserveSlot)
			visitors.PATCH("/slots/:slotId/cancel", c.cancelReservation)
		}
	}
}

type CreateSlotRequest struct {
	PetID     int64               `json:"petId"`
	StartTime json_types.DateTime `json:"startTime"`
	EndTime   json_types.DateTime `json:"endTime"`
}

type TimeWindowRequest struct {
	Start json_types.ClockTime `json:"start"`
	End   json_types.ClockTime `json:"end"`
}

type CreateBatchSlotsRequest struct {
	PetIDs      []int64             `json:"petIds"`
	AllPets     bool                `json:"allPets"`
	StartDate   json_types.Date     `json:"startDate"`
	EndDate     json_types.Date     `json:"endDate"`
	TimeWindows []TimeWindowRequest `json:"timeWindows"`
}

func (c *SlotSchedulerController) createSlot(ctx *gin.Context) {
	var req CreateSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeBadRequest(ctx, err.Error())
		return
	}

	if req.PetID <= 0 {
		writeBadRequest(ctx, "pet id must be a positive number")
		return
	}
	if req.StartTime.Date.IsZero() || req.EndTime.Date.IsZero() {
		writeBadRequest(ctx, "startTime and endTime are required")
		return
	}

	slot, err := c.useCase.CreateSlot(ctx.Request.Context(), req.PetID, req.StartTime.Date, req.EndTime.Date)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, slot)
}

func (c *SlotSchedulerController) createBatchSlots(ctx *gin.Context) {
	var req CreateBatchSlotsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeBadRequest(ctx, err.Error())
		return
	}

	if req.StartDate.Date.IsZero() || req.EndDate.Date.IsZero() {
		writeBadRequest(ctx, "startDate and endDate are required")
		return
	}

	windows := make([]domain.TimeWindow, 0, len(req.TimeWindows))
	for _, w := range req.TimeWindows {
		windows = append(windows, domain.TimeWindow{
			Start: w.Start.Offset(),
			End:   w.End.Offset(),
		})
	}

	created, err := c.useCase.CreateBatchSlots(ctx.Request.Context(), domain.BatchSlotRequest{
		PetIDs:      req.PetIDs,
		AllPets:     req.AllPets,
		StartDate:   req.StartDate.Date,
		EndDate:     req.EndDate.Date,
		TimeWindows: windows,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (c *SlotSchedulerController) deleteSlot(ctx *gin.Context) {
	slotID, ok := c.slotIDParam(ctx)
	if !ok {
		return
	}

	if err := c.useCase.DeleteSlot(ctx.Request.Context(), slotID); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *SlotSchedulerController) deleteAllSlots(ctx *gin.Context) {
	if err := c.useCase.DeleteAllSlots(ctx.Request.Context()); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *SlotSchedulerController) getAllSlots(ctx *gin.Context) {
	slots, err := c.useCase.GetAllSlots(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, slots)
}

func (c *SlotSchedulerController) getAvailableSlots(ctx *gin.Context) {
	slots, err := c.useCase.GetAvailableSlots(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, slots)
}

func (c *SlotSchedulerController) getSlotsByPet(ctx *gin.Context) {
	petID, err := strconv.ParseInt(ctx.Param("petId"), 10, 64)
	if err != nil || petID <= 0 {
		writeBadRequest(ctx, "pet id must be a positive number")
		return
	}

	slots, err := c.useCase.GetSlotsByPetID(ctx.Request.Context(), petID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, slots)
}

func (c *SlotSchedulerController) getSlotsByUser(ctx *gin.Context) {
	username := ctx.Param("username")
	if username == "" {
		writeBadRequest(ctx, "username must not be empty")
		return
	}

	slots, err := c.useCase.GetSlotsByUser(ctx.Request.Context(), username)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, slots)
}

func (c *SlotSchedulerController) getMySlots(ctx *gin.Context) {
	slots, err := c.useCase.GetSlotsByUser(ctx.Request.Context(), CurrentActor(ctx).Username)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, slots)
}

func (c *SlotSchedulerController) reserveSlot(ctx *gin.Context) {
	slotID, ok := c.slotIDParam(ctx)
	if !ok {
		return
	}

	slot, err := c.useCase.ReserveSlot(ctx.Request.Context(), slotID, CurrentActor(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, slot)
}

func (c *SlotSchedulerController) cancelReservation(ctx *gin.Context) {
	slotID, ok := c.slotIDParam(ctx)
	if !ok {
		return
	}

	slot, err := c.useCase.CancelReservation(ctx.Request.Context(), slotID, CurrentActor(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, slot)
}

func (c *SlotSchedulerController) reactivateSlot(ctx *gin.Context) {
	slotID, ok := c.slotIDParam(ctx)
	if !ok {
		return
	}

	slot, err := c.useCase.ReactivateCancelledSlot(ctx.Request.Context(), slotID, CurrentActor(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, slot)
}

func (c *SlotSchedulerController) slotIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	slotID, err := uuid.Parse(ctx.Param("slotId"))
	if err != nil {
		writeBadRequest(ctx, "invalid slot id format")
		return uuid.Nil, false
	}
	return slotID, true
}
