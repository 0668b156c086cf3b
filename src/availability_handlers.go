package main

import (
	"net/http"
	"resort/src/config"
	"resort/src/controllers"
	"resort/src/engine"
	"resort/src/middlewares"
	"resort/src/types"
	"resort/src/utils"

	"github.com/gin-gonic/gin"
)

func availabilityHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/availability", middlewares.RequirePermission(types.PERM_VIEW_ALLOCATIONS), func(ctx *gin.Context) {
			result, status, err := controllers.CheckAvailability(ctx, eng)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error(), "code": engine.ErrCode(err)})
				return
			}
			ctx.JSON(status, gin.H{"data": result})
		}).
		GET("/availability/blocked", middlewares.RequirePermission(types.PERM_VIEW_ALLOCATIONS), func(ctx *gin.Context) {
			var query types.AvailabilityQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			startsAt, err := utils.ParseSlotTime(query.StartsAt)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not parse start", "code": engine.CodeInvalidTimeRange})
				return
			}
			endsAt, err := utils.ParseSlotTime(query.EndsAt)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not parse end", "code": engine.CodeInvalidTimeRange})
				return
			}
			if !startsAt.Before(endsAt) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "window start must precede end", "code": engine.CodeInvalidTimeRange})
				return
			}
			dates, err := eng.Detector().BlockedDates(ctx.Request.Context(), query.ResourceID, startsAt, endsAt)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			blocked := make([]string, 0, len(dates))
			for _, date := range dates {
				blocked = append(blocked, date.Format(config.DATE_PARSE_FORMAT))
			}
			ctx.JSON(http.StatusOK, gin.H{"data": blocked, "count": len(blocked)})
		}).
		GET("/rates/quote", middlewares.RequirePermission(types.PERM_VIEW_RATES), func(ctx *gin.Context) {
			result, status, err := controllers.ResolveRate(ctx, eng)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error(), "code": engine.ErrCode(err)})
				return
			}
			ctx.JSON(status, gin.H{"data": result})
		})
	return g
}
