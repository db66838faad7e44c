package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/regieops/tpe-manager/internal/apiserver/database"
	"github.com/regieops/tpe-manager/internal/apiserver/service"
	"github.com/regieops/tpe-manager/internal/common/cnst"
	"github.com/regieops/tpe-manager/internal/common/dto"
	"github.com/regieops/tpe-manager/internal/common/errorx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PaginatedTPEResponse is the list-view page envelope
type PaginatedTPEResponse struct {
	Items      []*database.TPE `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// ListTPEs handles the paginated, filtered list view
func (h *Handler) ListTPEs(c *gin.Context) {
	var query dto.TPEListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.errHandler.Handle(c, errorx.ErrBadRequest.WithDetail("cause", err.Error()))
		return
	}

	if query.Page < 1 {
		query.Page = cnst.DefaultPage
	}
	if query.PageSize < 1 {
		query.PageSize = cnst.DefaultPageSize
	}
	if query.PageSize > cnst.MaxPageSize {
		query.PageSize = cnst.MaxPageSize
	}
	switch cnst.ConnectionType(query.ConnectionType) {
	case "", cnst.ConnectionEthernet, cnst.ConnectionMobile:
	default:
		h.errHandler.Handle(c, errorx.ErrInvalidConnectionType.WithDetail("connection_type", query.ConnectionType))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	filter := database.TPEFilter{
		Search:         query.Search,
		TPEModel:       query.TPEModel,
		ConnectionType: query.ConnectionType,
	}
	items, total, err := h.db.ListTPEs(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(query.PageSize)))
	if totalPages < 1 {
		totalPages = 1
	}

	if items == nil {
		items = []*database.TPE{}
	}
	c.JSON(http.StatusOK, PaginatedTPEResponse{
		Items:      items,
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: totalPages,
	})
}

// GetTPE handles fetching a single terminal record
func (h *Handler) GetTPE(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	tpe, err := h.db.GetTPE(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = errorx.ErrTPENotFound
		}
		h.errHandler.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, tpe)
}

// CreateTPE handles terminal record creation
func (h *Handler) CreateTPE(c *gin.Context) {
	var req dto.CreateTPERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errHandler.Handle(c, errorx.ErrBadRequest.WithDetail("cause", err.Error()))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	var tpe *database.TPE
	err := h.db.Transaction(ctx, func(ctx context.Context) error {
		normalized, err := h.tpeSvc.NormalizeCreate(ctx, &req)
		if err != nil {
			return err
		}
		tpe = normalized
		return h.db.CreateTPE(ctx, tpe)
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			err = errorx.ErrShopIDExists
		}
		h.errHandler.Handle(c, err)
		return
	}

	h.logger.Info("terminal record created",
		zap.Uint("id", tpe.ID),
		zap.String("shop_id", tpe.ShopID),
		zap.String("service_name", tpe.ServiceName))
	c.JSON(http.StatusCreated, tpe)
}

// UpdateTPE handles partial terminal record updates
func (h *Handler) UpdateTPE(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	var req dto.UpdateTPERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errHandler.Handle(c, errorx.ErrBadRequest.WithDetail("cause", err.Error()))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	var tpe *database.TPE
	err = h.db.Transaction(ctx, func(ctx context.Context) error {
		existing, err := h.db.GetTPE(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.ErrTPENotFound
			}
			return err
		}
		if err := h.tpeSvc.NormalizeUpdate(existing, &req); err != nil {
			return err
		}
		tpe = existing
		return h.db.UpdateTPE(ctx, tpe)
	})
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	c.JSON(http.StatusOK, tpe)
}

// DeleteTPE handles terminal record deletion
func (h *Handler) DeleteTPE(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.db.DeleteTPE(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = errorx.ErrTPENotFound
		}
		h.errHandler.Handle(c, err)
		return
	}

	h.logger.Info("terminal record deleted", zap.Uint("id", id))
	c.Status(http.StatusNoContent)
}

// GetTPEStats handles the dashboard summary counts
func (h *Handler) GetTPEStats(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	stats, err := h.db.GetTPEStats(ctx)
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportTPEs streams the full record set as an xlsx attachment
func (h *Handler) ExportTPEs(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	tpes, err := h.db.ListAllTPEs(ctx)
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	buf, err := service.ExportTPEs(tpes)
	if err != nil {
		h.errHandler.Handle(c, err)
		return
	}

	filename := service.ExportFilename(time.Now())
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, excelContentType, buf.Bytes())
}
