package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/kedaipos/counter/internal/core/domain"
	"github.com/kedaipos/counter/internal/core/ports"
)

// StoreHandler serves store selection and catalog loading.
type StoreHandler struct {
	catalog ports.CatalogService
}

func NewStoreHandler(catalog ports.CatalogService) *StoreHandler {
	return &StoreHandler{catalog: catalog}
}

type storeView struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type selectStoreRequest struct {
	StoreID string `json:"storeId" validate:"required"`
}

type categoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type menuView struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"categoryId"`
	Available  bool            `json:"isAvailable"`
	Stock      int             `json:"stock"`
	ImageURL   string          `json:"imageUrl,omitempty"`
}

type catalogResponse struct {
	Store      storeView      `json:"store"`
	Categories []categoryView `json:"categories"`
	Menus      []menuView     `json:"menus"`
}

// List returns the stores the session may choose from.
//
// @Summary      List eligible stores
// @Tags         stores
// @Produce      json
// @Success      200  {array}   storeView
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /pos/stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	stores, err := h.catalog.EligibleStores(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}

	views := make([]storeView, 0, len(stores))
	for _, st := range stores {
		views = append(views, toStoreView(st))
	}
	return c.JSON(http.StatusOK, views)
}

// Select pins the session to a store. One-way for the session's lifetime.
//
// @Summary      Select a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        body  body  selectStoreRequest  true  "Store choice"
// @Success      204   "store selected"
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /pos/stores/select [post]
func (h *StoreHandler) Select(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	var req selectStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.catalog.SelectStore(c.Request().Context(), sessionID, req.StoreID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Catalog returns categories and menus for the selected store.
//
// @Summary      Load the selected store's catalog
// @Tags         stores
// @Produce      json
// @Success      200  {object}  catalogResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /pos/catalog [get]
func (h *StoreHandler) Catalog(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	result, err := h.catalog.Catalog(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}

	categories := make([]categoryView, 0, len(result.Categories))
	for _, cat := range result.Categories {
		categories = append(categories, categoryView{ID: cat.ID, Name: cat.Name})
	}
	menus := make([]menuView, 0, len(result.Menus))
	for _, m := range result.Menus {
		menus = append(menus, menuView{
			ID:         m.ID,
			Name:       m.Name,
			Price:      m.Price,
			CategoryID: m.CategoryID,
			Available:  m.Available,
			Stock:      m.Stock,
			ImageURL:   m.ImageURL,
		})
	}

	return c.JSON(http.StatusOK, catalogResponse{
		Store:      toStoreView(result.Store),
		Categories: categories,
		Menus:      menus,
	})
}

func toStoreView(st domain.Store) storeView {
	return storeView{ID: st.ID, Code: st.Code, Name: st.Name, Location: st.Location}
}
