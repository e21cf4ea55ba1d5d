package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"storefront/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productListCachePrefix = "products:list:"
	productListCacheTTL    = 5 * time.Minute
)

type ProductController struct {
	Products repository.ProductRepository
	Cache    *redis.Client
	Logger   *zap.Logger
}

// GetProducts retrieves paginated products, newest first, with a short-lived
// Redis cache in front. Cache failures fall through to the database.
func (pc *ProductController) GetProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perPage", "10"))
	if err != nil || perPage <= 0 {
		perPage = 10
	}

	cacheKey := fmt.Sprintf("%sp%d:n%d", productListCachePrefix, page, perPage)
	if cached, err := pc.Cache.Get(c.Request.Context(), cacheKey).Bytes(); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		return
	}

	products, total, err := pc.Products.FindAll(c.Request.Context(), page, perPage)
	if err != nil {
		pc.Logger.Error("Failed to fetch products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	response := gin.H{
		"products": products,
		"meta": gin.H{
			"page":       page,
			"perPage":    perPage,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(perPage))),
		},
	}

	pc.cacheResponseAsync(cacheKey, response)
	c.JSON(http.StatusOK, response)
}

func (pc *ProductController) cacheResponseAsync(cacheKey string, response gin.H) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		jsonBytes, err := json.Marshal(response)
		if err != nil {
			pc.Logger.Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := pc.Cache.Set(ctx, cacheKey, jsonBytes, productListCacheTTL).Err(); err != nil {
			pc.Logger.Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}
