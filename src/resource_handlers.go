package main

import (
	"fmt"
	"log"
	"net/http"
	"resort/src/db"
	"resort/src/middlewares"
	"resort/src/models"
	"resort/src/types"
	"resort/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func resourceHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/resources", middlewares.RequirePermission(types.PERM_VIEW_RESOURCES), func(ctx *gin.Context) {
			var query struct {
				ItemType *types.ItemType `form:"item_type"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			model := db.Model(&models.Resource{})
			if query.ItemType != nil {
				model = model.Where("item_type = ?", *query.ItemType)
			}
			var resources []models.Resource
			if err := model.Find(&resources).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": resources, "count": len(resources)})
		}).
		GET("/resources/:id", middlewares.RequirePermission(types.PERM_VIEW_RESOURCES), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var resource models.Resource
			if err := db.
				Model(&models.Resource{}).
				Where(&models.Resource{ID: params.ID}).
				First(&resource).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": resource})
		}).
		POST("/resources", middlewares.RequirePermission(types.PERM_MANAGE_RESOURCES), func(ctx *gin.Context) {
			var body types.CreateResourceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !types.ValidItemType(body.ItemType) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown item type %q", body.ItemType)})
				return
			}
			resource := models.Resource{
				Name:     body.Name,
				Slug:     utils.ResourceSlug(body.Name),
				ItemType: body.ItemType,
				Capacity: body.Capacity,
				Status:   types.RESOURCE_ACTIVE,
				Metadata: body.Metadata,
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				return tx.Create(&resource).Error
			})
			if err != nil {
				log.Printf("Error creating resource: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": resource})
		}).
		PUT("/resources/:id/disable", middlewares.RequirePermission(types.PERM_MANAGE_RESOURCES), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.Resource{}).
					Where(&models.Resource{ID: params.ID}).
					Update("status", types.RESOURCE_DISABLED).
					Error
			})
			if err != nil {
				log.Printf("Error disabling resource [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
