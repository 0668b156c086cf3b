package main

import (
	"fmt"
	"log"
	"net/http"
	"resort/src/config"
	"resort/src/db"
	"resort/src/engine"
	"resort/src/middlewares"
	"resort/src/models"
	"resort/src/types"
	"resort/src/utils"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func rateHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rates", middlewares.RequirePermission(types.PERM_VIEW_RATES), func(ctx *gin.Context) {
			var query struct {
				ItemType *types.ItemType `form:"item_type"`
				Active   *bool           `form:"active"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			model := db.Model(&models.RateRule{}).Preload("Modifiers", func(db *gorm.DB) *gorm.DB {
				return db.Order("position asc, id asc")
			})
			if query.ItemType != nil {
				model = model.Where("applicable_item_type = ?", *query.ItemType)
			}
			if query.Active != nil {
				model = model.Where("is_active = ?", *query.Active)
			}
			var rules []models.RateRule
			if err := model.Find(&rules).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rules, "count": len(rules)})
		}).
		GET("/rates/:id", middlewares.RequirePermission(types.PERM_VIEW_RATES), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var rule models.RateRule
			if err := db.
				Model(&models.RateRule{}).
				Where(&models.RateRule{ID: params.ID}).
				Preload("Modifiers", func(db *gorm.DB) *gorm.DB {
					return db.Order("position asc, id asc")
				}).
				First(&rule).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rule})
		}).
		POST("/rates", middlewares.RequirePermission(types.PERM_MANAGE_RATES), func(ctx *gin.Context) {
			var body types.CreateRateRuleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			rule, err := buildRateRule(&body)
			if err != nil {
				abortWithEngineError(ctx, err)
				return
			}
			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(rule).Error; err != nil {
					return err
				}
				trail := models.TrailLog{
					Action:    "create",
					Entity:    "rate_rule",
					EntityID:  rule.ID,
					Initiator: ctx.GetUint("id"),
				}
				return tx.Create(&trail).Error
			})
			if err != nil {
				log.Printf("Error creating rate rule: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			store.InvalidateRules(ctx.Request.Context(), rule.ApplicableItemType)
			ctx.JSON(http.StatusCreated, gin.H{"data": rule})
		}).
		PUT("/rates/:id", middlewares.RequirePermission(types.PERM_MANAGE_RATES), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateRateRuleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var rule models.RateRule
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.RateRule{}).
					Where(&models.RateRule{ID: params.ID}).
					First(&rule).
					Error; err != nil {
					return err
				}
				updates := map[string]any{}
				if body.Name != nil {
					updates["name"] = *body.Name
				}
				if body.BasePrice != nil {
					updates["base_price"] = *body.BasePrice
				}
				if body.Priority != nil {
					updates["priority"] = *body.Priority
				}
				if body.IsActive != nil {
					updates["is_active"] = *body.IsActive
				}
				minStay := rule.MinStay
				if body.MinStay != nil {
					minStay = *body.MinStay
					updates["min_stay"] = minStay
				}
				maxStay := rule.MaxStay
				if body.MaxStay != nil {
					maxStay = body.MaxStay
					updates["max_stay"] = *maxStay
				}
				if err := validateStayBounds(minStay, maxStay); err != nil {
					return err
				}
				if len(updates) == 0 {
					return nil
				}
				if err := tx.Model(&models.RateRule{}).Where("id = ?", rule.ID).Updates(updates).Error; err != nil {
					return err
				}
				trail := models.TrailLog{
					Action:    "update",
					Entity:    "rate_rule",
					EntityID:  rule.ID,
					Initiator: ctx.GetUint("id"),
				}
				return tx.Create(&trail).Error
			})
			if err != nil {
				if engine.ErrCode(err) != "" {
					abortWithEngineError(ctx, err)
					return
				}
				log.Printf("Error updating rate rule [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			store.InvalidateRules(ctx.Request.Context(), rule.ApplicableItemType)
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/rates/:id", middlewares.RequirePermission(types.PERM_MANAGE_RATES), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var rule models.RateRule
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.RateRule{}).
					Where(&models.RateRule{ID: params.ID}).
					First(&rule).
					Error; err != nil {
					return err
				}
				if err := tx.Delete(&models.RateRule{}, params.ID).Error; err != nil {
					return err
				}
				trail := models.TrailLog{
					Action:    "delete",
					Entity:    "rate_rule",
					EntityID:  params.ID,
					Initiator: ctx.GetUint("id"),
				}
				return tx.Create(&trail).Error
			})
			if err != nil {
				log.Printf("Error deleting rate rule [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			store.InvalidateRules(ctx.Request.Context(), rule.ApplicableItemType)
			ctx.Status(http.StatusNoContent)
		}).
		POST("/rates/:id/modifiers", middlewares.RequirePermission(types.PERM_MANAGE_RATES), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateModifierRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := engine.ValidateModifier(body.Type, body.Value); err != nil {
				abortWithEngineError(ctx, err)
				return
			}
			db := db.GetDb()
			var rule models.RateRule
			var modifier models.RateModifier
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.RateRule{}).
					Where(&models.RateRule{ID: params.ID}).
					First(&rule).
					Error; err != nil {
					return err
				}
				var count int64
				if err := tx.Model(&models.RateModifier{}).Where("rate_rule_id = ?", rule.ID).Count(&count).Error; err != nil {
					return err
				}
				modifier = models.RateModifier{
					RateRuleID:   rule.ID,
					Name:         body.Name,
					ModifierType: body.Type,
					Value:        body.Value,
					Condition:    body.Condition,
					Position:     uint(count + 1),
				}
				return tx.Create(&modifier).Error
			})
			if err != nil {
				log.Printf("Error adding modifier to rate rule [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			store.InvalidateRules(ctx.Request.Context(), rule.ApplicableItemType)
			ctx.JSON(http.StatusCreated, gin.H{"data": modifier})
		})
	return g
}

// buildRateRule validates a create request ahead of any I/O and maps it onto
// the model. Every rejection carries a machine-readable code.
func buildRateRule(body *types.CreateRateRuleRequestBody) (*models.RateRule, error) {
	if !types.ValidItemType(body.ItemType) {
		return nil, engine.NewError(engine.CodeInvalidResource, fmt.Sprintf("unknown item type %q", body.ItemType))
	}
	if !types.ValidRateType(body.RateType) {
		return nil, engine.NewError(engine.CodeInvalidResource, fmt.Sprintf("unknown rate type %q", body.RateType))
	}
	if !config.IsSupportedCurrency(body.Currency) {
		return nil, engine.NewError(engine.CodeUnsupportedCurrency, fmt.Sprintf("currency %q is not supported", body.Currency))
	}

	var startDate, endDate *time.Time
	if body.StartDate != nil {
		t, err := utils.ParseSlotDate(*body.StartDate)
		if err != nil {
			return nil, engine.NewError(engine.CodeInvalidTimeRange, "could not parse start date")
		}
		startDate = &t
	}
	if body.EndDate != nil {
		t, err := utils.ParseSlotDate(*body.EndDate)
		if err != nil {
			return nil, engine.NewError(engine.CodeInvalidTimeRange, "could not parse end date")
		}
		endDate = &t
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, engine.NewError(engine.CodeInvalidTimeRange, "rate end date precedes start date")
	}

	minStay := body.MinStay
	if minStay == 0 {
		minStay = 1
	}
	if err := validateStayBounds(minStay, body.MaxStay); err != nil {
		return nil, err
	}

	modifiers := make([]models.RateModifier, 0, len(body.Modifiers))
	for i, mod := range body.Modifiers {
		if err := engine.ValidateModifier(mod.Type, mod.Value); err != nil {
			return nil, err
		}
		modifiers = append(modifiers, models.RateModifier{
			Name:         mod.Name,
			ModifierType: mod.Type,
			Value:        mod.Value,
			Condition:    mod.Condition,
			Position:     uint(i + 1),
		})
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}
	return &models.RateRule{
		Name:               body.Name,
		RateType:           body.RateType,
		BasePrice:          body.BasePrice,
		Currency:           body.Currency,
		ApplicableItemType: body.ItemType,
		ApplicableItemID:   body.ItemID,
		StartDate:          startDate,
		EndDate:            endDate,
		DaysOfWeek:         types.WeekdaySet(body.DaysOfWeek),
		MinStay:            minStay,
		MaxStay:            body.MaxStay,
		Priority:           body.Priority,
		IsActive:           isActive,
		Modifiers:          modifiers,
	}, nil
}

func validateStayBounds(minStay uint, maxStay *uint) error {
	if minStay < 1 {
		return engine.NewError(engine.CodeInvalidStayBounds, "min stay must be at least 1")
	}
	if maxStay != nil && *maxStay < minStay {
		return engine.NewError(engine.CodeInvalidStayBounds, "max stay is lower than min stay")
	}
	return nil
}

func abortWithEngineError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": engine.ErrCode(err)})
}
