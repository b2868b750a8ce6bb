package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tshirt_studio_v1/internal/api/dto"
	"tshirt_studio_v1/internal/middleware"
	"tshirt_studio_v1/internal/model"
	"tshirt_studio_v1/internal/service"
)

// ==================== SessionController 定制会话控制器 ====================

// SessionController 定制会话控制器
type SessionController struct {
	sessionService *service.CustomizationService
	previewService *service.PreviewService
}

// NewSessionController 创建定制会话控制器
func NewSessionController(sessionService *service.CustomizationService, previewService *service.PreviewService) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		previewService: previewService,
	}
}

// respondSessionErr 会话查询错误统一映射
func respondSessionErr(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotSessionOwner):
		status = http.StatusForbidden
	}
	ctx.JSON(status, gin.H{
		"code":    status,
		"message": err.Error(),
	})
}

// ==================== 会话接口 ====================

// CreateSession 创建定制会话
// @Summary 创建定制会话
// @Tags Session
// @Produce json
// @Success 201 {object} dto.SessionView
// @Router /api/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	sess := c.sessionService.Create(ctx.Request.Context(), middleware.CurrentUserID(ctx))

	ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "success",
		"data":    dto.NewSessionView(sess),
	})
}

// GetSession 获取会话状态
// @Summary 获取会话选择状态与派生值
// @Tags Session
// @Param id path string true "会话ID"
// @Produce json
// @Success 200 {object} dto.SessionView
// @Failure 404 {object} map[string]interface{}
// @Router /api/sessions/{id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	sess, err := c.sessionService.Get(ctx.Request.Context(), ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    dto.NewSessionView(sess),
	})
}

// DeleteSession 丢弃定制会话
// @Summary 丢弃定制会话
// @Tags Session
// @Param id path string true "会话ID"
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/sessions/{id} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	if err := c.sessionService.Delete(ctx.Request.Context(), ctx.Param("id"), middleware.CurrentUserID(ctx)); err != nil {
		respondSessionErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
	})
}

// UpdateSelection 变更选择项
// @Summary 变更颜色/尺码/名称/描述/数量
// @Tags Session
// @Accept json
// @Param id path string true "会话ID"
// @Param body body dto.UpdateSelectionRequest true "变更内容"
// @Produce json
// @Success 200 {object} dto.SessionView
// @Router /api/sessions/{id} [patch]
func (c *SessionController) UpdateSelection(ctx *gin.Context) {
	var req dto.UpdateSelectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	var quantity *string
	if req.Quantity != nil {
		raw := req.Quantity.String()
		quantity = &raw
	}

	sess, err := c.sessionService.ApplySelection(ctx.Request.Context(), ctx.Param("id"), middleware.CurrentUserID(ctx),
		service.SelectionChange{
			ColorKey:    req.ColorKey,
			SizeKey:     req.SizeKey,
			ProductName: req.ProductName,
			Description: req.Description,
			Quantity:    quantity,
		})
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    dto.NewSessionView(sess),
	})
}

// UploadArtwork 上传设计图
// @Summary 上传设计图（multipart，字段名 file）
// @Tags Session
// @Accept multipart/form-data
// @Param id path string true "会话ID"
// @Param file formData file true "设计图文件"
// @Produce json
// @Success 200 {object} dto.SessionView
// @Failure 400 {object} map[string]interface{}
// @Router /api/sessions/{id}/artwork [post]
func (c *SessionController) UploadArtwork(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: 缺少上传文件",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "文件打开失败: " + err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "文件读取失败: " + err.Error(),
		})
		return
	}

	sess, accepted, err := c.sessionService.UploadArtwork(
		ctx.Request.Context(), ctx.Param("id"), middleware.CurrentUserID(ctx),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data,
	)
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}

	// 校验拒绝不是异常：通知已写入会话，随视图一起返回
	if !accepted {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": sess.Notification.Message,
			"data":    dto.NewSessionView(sess),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    dto.NewSessionView(sess),
	})
}

// OpenSizeChart 打开尺码表弹窗
// @Summary 打开尺码表弹窗
// @Tags Session
// @Param id path string true "会话ID"
// @Produce json
// @Success 200 {object} dto.SessionView
// @Router /api/sessions/{id}/size-chart/open [post]
func (c *SessionController) OpenSizeChart(ctx *gin.Context) {
	c.setSizeChart(ctx, true)
}

// CloseSizeChart 关闭尺码表弹窗
// @Summary 关闭尺码表弹窗
// @Tags Session
// @Param id path string true "会话ID"
// @Produce json
// @Success 200 {object} dto.SessionView
// @Router /api/sessions/{id}/size-chart/close [post]
func (c *SessionController) CloseSizeChart(ctx *gin.Context) {
	c.setSizeChart(ctx, false)
}

func (c *SessionController) setSizeChart(ctx *gin.Context, visible bool) {
	sess, err := c.sessionService.SetSizeChartVisible(ctx.Request.Context(), ctx.Param("id"), middleware.CurrentUserID(ctx), visible)
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    dto.NewSessionView(sess),
	})
}

// GetPreview 获取预览渲染描述
// @Summary 获取预览渲染描述
// @Tags Session
// @Param id path string true "会话ID"
// @Produce json
// @Success 200 {object} service.RenderDescription
// @Router /api/sessions/{id}/preview [get]
func (c *SessionController) GetPreview(ctx *gin.Context) {
	sess, err := c.sessionService.Get(ctx.Request.Context(), ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    c.previewService.Derive(sess),
	})
}

// RequestHandoff 校验并交接
// @Summary 校验当前选择并向下一阶段交接
// @Tags Session
// @Param id path string true "会话ID"
// @Produce json
// @Success 200 {object} dto.HandoffResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/sessions/{id}/handoff [post]
func (c *SessionController) RequestHandoff(ctx *gin.Context) {
	payload, sess, err := c.sessionService.RequestHandoff(ctx.Request.Context(), ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrNotSessionOwner) {
			respondSessionErr(ctx, err)
			return
		}
		// 交接投递失败属于基础设施错误，向调用方展示，不静默吞掉
		ctx.JSON(http.StatusBadGateway, gin.H{
			"code":    502,
			"message": err.Error(),
		})
		return
	}

	// 校验未通过：无载荷产出，通知已写入会话
	if payload == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": sess.Notification.Message,
			"data":    gin.H{"session": dto.NewSessionView(sess)},
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.HandoffResponse{
			Payload: payload,
			Session: dto.NewSessionView(sess),
		},
	})
}

// ==================== 目录接口 ====================

// GetColors 颜色目录
// @Summary 颜色目录
// @Tags Catalog
// @Produce json
// @Success 200 {array} model.ColorOption
// @Router /api/catalog/colors [get]
func (c *SessionController) GetColors(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    model.Colors(),
	})
}

// GetSizes 尺码目录
// @Summary 尺码目录
// @Tags Catalog
// @Produce json
// @Success 200 {array} string
// @Router /api/catalog/sizes [get]
func (c *SessionController) GetSizes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    model.Sizes(),
	})
}

// GetSizeChart 尺码表
// @Summary 尺码表（单位厘米）
// @Tags Catalog
// @Produce json
// @Success 200 {array} model.SizeChartRow
// @Router /api/catalog/size-chart [get]
func (c *SessionController) GetSizeChart(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    model.SizeChart(),
	})
}
