package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/moneta-finance/moneta/internal/api/auth"
	"github.com/moneta-finance/moneta/internal/api/flash"
	"github.com/moneta-finance/moneta/internal/api/models"
	"github.com/moneta-finance/moneta/internal/assets"
	"github.com/moneta-finance/moneta/web/templates/pages"
)

const (
	dashboardPath = "/dashboard"

	assetNotFoundMessage = "Asset not found or access denied."
)

func parseUintParam(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.Convert[uint](id)
}

// assetID reads the asset_id path parameter. It aborts with 404 if it isn't a number.
func assetID(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c.Param("asset_id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func assetInput(c *gin.Context) assets.Input {
	return assets.Input{
		Name:        c.PostForm("asset_name"),
		Income:      c.PostForm("asset_income"),
		Expenditure: c.PostForm("asset_expenditure"),
	}
}

// Dashboard lists the user's assets. On POST it also asks the assistant.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	user := auth.CurrentUser(c)

	items, err := h.assets.List(ctx, user.ID)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	data := models.DashboardPage{
		Page:             h.page(c, "Dashboard"),
		Assets:           models.ToAssets(items),
		Summary:          models.ToSummary(assets.Summarize(items)),
		AssistantEnabled: h.assistant.Enabled(),
	}

	status := http.StatusOK
	if c.Request.Method == http.MethodPost {
		data.Prompt = c.PostForm("prompt")
		data.IncludeAsset = c.PostForm("include_asset") != ""

		if data.Prompt != "" {
			response, err := h.assistant.Ask(ctx, data.Prompt, data.IncludeAsset, items)
			if err != nil {
				log.Error("Assistant request failed", "user", user.Username, "error", err)
				data.AddNotice(string(flash.Danger), "The assistant is unavailable right now.")
				status = http.StatusBadGateway
			} else {
				data.Response = template.HTML(response) //nolint:gosec
			}
		}
	}

	render(c, status, pages.Dashboard(data))
}

func (h *Handler) AddAssetForm(c *gin.Context) {
	render(c, http.StatusOK, pages.AssetForm(models.AssetForm{Page: h.page(c, "Add asset")}))
}

func (h *Handler) AddAsset(c *gin.Context) {
	user := auth.CurrentUser(c)
	in := assetInput(c)

	if _, err := h.assets.Add(c.Request.Context(), user.ID, in); err != nil {
		var verr *assets.ValidationError
		if errors.As(err, &verr) {
			h.renderInvalidAsset(c, "Add asset", 0, in, verr)
			return
		}
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	redirectWithFlash(c, flash.Success, "Asset added successfully!", dashboardPath)
}

func (h *Handler) RemoveAsset(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	if err := h.assets.Remove(c.Request.Context(), user.ID, id); err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			redirectWithFlash(c, flash.Danger, assetNotFoundMessage, dashboardPath)
			return
		}
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	redirectWithFlash(c, flash.Success, "Asset removed successfully!", dashboardPath)
}

func (h *Handler) ModifyAssetForm(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	asset, err := h.assets.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			redirectWithFlash(c, flash.Danger, assetNotFoundMessage, dashboardPath)
			return
		}
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	render(c, http.StatusOK, pages.AssetForm(models.ToAssetForm(h.page(c, "Modify asset"), *asset)))
}

func (h *Handler) ModifyAsset(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}
	user := auth.CurrentUser(c)
	in := assetInput(c)

	if err := h.assets.Modify(c.Request.Context(), user.ID, id, in); err != nil {
		var verr *assets.ValidationError
		switch {
		case errors.As(err, &verr):
			h.renderInvalidAsset(c, "Modify asset", id, in, verr)
		case errors.Is(err, assets.ErrAssetNotFound):
			redirectWithFlash(c, flash.Danger, assetNotFoundMessage, dashboardPath)
		default:
			c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		}
		return
	}

	redirectWithFlash(c, flash.Success, "Asset updated successfully!", dashboardPath)
}

// renderInvalidAsset shows the form again with the submitted values.
func (h *Handler) renderInvalidAsset(c *gin.Context, title string, id uint, in assets.Input, verr *assets.ValidationError) {
	form := models.AssetForm{
		Page:        h.page(c, title),
		ID:          id,
		Name:        in.Name,
		Income:      in.Income,
		Expenditure: in.Expenditure,
	}
	form.AddNotice(string(flash.Danger), verr.Error()+".")
	render(c, http.StatusBadRequest, pages.AssetForm(form))
}
