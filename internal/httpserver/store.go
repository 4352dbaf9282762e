package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	storesvc "gamestore/internal/service/store"
)

func whoamiHandler(svc StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := svc.Whoami(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func themeHandler(svc StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		theme, err := svc.Theme(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, theme)
	}
}

func categoriesHandler(svc StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := storesvc.CategoriesQuery{
			Page:    intQuery(c, "page"),
			MaxPage: intQuery(c, "max_page"),
			Parent:  c.Query("parent"),
		}
		out, err := svc.Categories(c.Request.Context(), q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func productsHandler(svc StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := storesvc.ProductsQuery{
			Page:     intQuery(c, "page"),
			MaxPage:  intQuery(c, "max_page"),
			Category: c.Query("category"),
			Details:  boolQuery(c, "details"),
		}
		if v, ok := c.GetQuery("only_enabled"); ok {
			enabled := v == "true" || v == "1"
			q.OnlyEnabled = &enabled
		}
		out, err := svc.Products(c.Request.Context(), q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func productHandler(svc StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		out, err := svc.Product(c.Request.Context(), id, boolQuery(c, "details"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func customersHandler(svc StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := storesvc.CustomersQuery{
			Page:       intQuery(c, "page"),
			MaxPage:    intQuery(c, "max_page"),
			Sort:       c.Query("sort"),
			DateFilter: c.Query("date_filter"),
		}
		out, err := svc.Customers(c.Request.Context(), q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

func boolQuery(c *gin.Context, name string) bool {
	v := c.Query(name)
	return v == "true" || v == "1"
}
