package controllers

import (
	"errors"
	"log"
	"net/http"
	"resort/src/db"
	"resort/src/engine"
	"resort/src/models"
	"resort/src/types"
	"resort/src/utils"

	"github.com/gin-gonic/gin"
)

// CheckAvailability answers an availability+pricing query for one resource and
// interval. Conflict ("not available") is a normal 200 response with
// available=false, not an error.
func CheckAvailability(ctx *gin.Context, eng *engine.Engine) (*engine.AvailabilityPricingResult, int, error) {
	var query types.AvailabilityQueryParams
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, http.StatusBadRequest, err
	}
	startsAt, err := utils.ParseSlotTime(query.StartsAt)
	if err != nil {
		return nil, http.StatusBadRequest, engine.NewError(engine.CodeInvalidTimeRange, "could not parse interval start")
	}
	endsAt, err := utils.ParseSlotTime(query.EndsAt)
	if err != nil {
		return nil, http.StatusBadRequest, engine.NewError(engine.CodeInvalidTimeRange, "could not parse interval end")
	}

	var resource models.Resource
	db := db.GetDb()
	if err := db.
		Model(&models.Resource{}).
		Where(&models.Resource{ID: query.ResourceID}).
		First(&resource).
		Error; err != nil {
		log.Printf("Error retrieving resource [%d]: %s\n", query.ResourceID, err.Error())
		return nil, http.StatusNotFound, errors.New("resource not found")
	}

	itemID := resource.ID
	result, err := eng.Evaluate(ctx.Request.Context(), engine.EvaluateRequest{
		ResourceID:          resource.ID,
		ItemType:            resource.ItemType,
		ItemID:              &itemID,
		StartsAt:            startsAt,
		EndsAt:              endsAt,
		PartySize:           query.PartySize,
		ExcludeAllocationID: query.ExcludeAllocationID,
	})
	if err != nil {
		if engine.ErrCode(err) != "" {
			return nil, http.StatusBadRequest, err
		}
		return nil, http.StatusUnprocessableEntity, err
	}
	return result, http.StatusOK, nil
}

// ResolveRate is the bare quote endpoint; no conflict checking. A nil
// applied_rule_id in the response means the zero-price fallback fired.
func ResolveRate(ctx *gin.Context, eng *engine.Engine) (*engine.PricingResult, int, error) {
	var query types.QuoteQueryParams
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, http.StatusBadRequest, err
	}
	date, err := utils.ParseSlotDate(query.Date)
	if err != nil {
		return nil, http.StatusBadRequest, engine.NewError(engine.CodeInvalidTimeRange, "could not parse quote date")
	}

	result, err := eng.ResolveRate(ctx.Request.Context(), query.ItemType, query.ItemID, date, query.Nights)
	if err != nil {
		if engine.ErrCode(err) != "" {
			return nil, http.StatusBadRequest, err
		}
		return nil, http.StatusUnprocessableEntity, err
	}
	return result, http.StatusOK, nil
}
