package main

import (
	"log"
	"net/http"
	"resort/src/db"
	"resort/src/engine"
	"resort/src/middlewares"
	"resort/src/models"
	"resort/src/types"
	"resort/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func allocationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/allocations", middlewares.RequirePermission(types.PERM_VIEW_ALLOCATIONS), func(ctx *gin.Context) {
			var query struct {
				ResourceID *uint                   `form:"resource"`
				Status     *types.AllocationStatus `form:"status"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			model := db.Model(&models.Allocation{}).Order("starts_at asc")
			if query.ResourceID != nil {
				model = model.Where("resource_id = ?", *query.ResourceID)
			}
			if query.Status != nil {
				model = model.Where("status = ?", *query.Status)
			}
			var allocations []models.Allocation
			if err := model.Find(&allocations).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": allocations, "count": len(allocations)})
		}).
		GET("/allocations/:id", middlewares.RequirePermission(types.PERM_VIEW_ALLOCATIONS), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var allocation models.Allocation
			if err := db.
				Model(&models.Allocation{}).
				Where(&models.Allocation{ID: params.ID}).
				Preload("Resource").
				First(&allocation).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": allocation})
		}).
		POST("/allocations", middlewares.RequirePermission(types.PERM_CREATE_ALLOCATION), func(ctx *gin.Context) {
			var body types.CreateAllocationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			startsAt, err := utils.ParseSlotTime(body.StartsAt)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not parse starts_at", "code": engine.CodeInvalidTimeRange})
				return
			}
			endsAt, err := utils.ParseSlotTime(body.EndsAt)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not parse ends_at", "code": engine.CodeInvalidTimeRange})
				return
			}
			db := db.GetDb()
			var resource models.Resource
			if err := db.
				Model(&models.Resource{}).
				Where(&models.Resource{ID: body.ResourceID}).
				First(&resource).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			allocation, err := eng.Reserve(ctx.Request.Context(), engine.EvaluateRequest{
				ResourceID: resource.ID,
				ItemType:   resource.ItemType,
				ItemID:     &resource.ID,
				StartsAt:   startsAt,
				EndsAt:     endsAt,
				PartySize:  body.PartySize,
			}, ctx.GetUint("id"))
			if err != nil {
				if engine.IsConflict(err) {
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": engine.CodeConflict})
					return
				}
				if code := engine.ErrCode(err); code != "" {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": code})
					return
				}
				log.Printf("Error reserving resource [%d]: %s\n", resource.ID, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": allocation})
		}).
		PUT("/allocations/:id/status", middlewares.RequirePermission(types.PERM_MANAGE_ALLOCATIONS), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateAllocationStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := transitionAllocation(ctx, params.ID, body.Status); err != nil {
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PUT("/allocations/:id/cancel", middlewares.RequirePermission(types.PERM_MANAGE_ALLOCATIONS), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			if err := transitionAllocation(ctx, params.ID, types.ALLOCATION_CANCELLED); err != nil {
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

// transitionAllocation loads the allocation, checks the status machine and
// persists the new status. It writes the HTTP response on failure so callers
// only handle the success path.
func transitionAllocation(ctx *gin.Context, id uint, to types.AllocationStatus) error {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var allocation models.Allocation
		if err := tx.
			Model(&models.Allocation{}).
			Where(&models.Allocation{ID: id}).
			First(&allocation).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return err
		}
		if err := eng.ValidateTransition(allocation.Status, to); err != nil {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": engine.ErrCode(err)})
			return err
		}
		if err := tx.
			Model(&models.Allocation{}).
			Where("id = ?", id).
			Update("status", to).
			Error; err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("Allocation [%d] transition to %s failed: %s\n", id, to, err.Error())
	}
	return err
}
