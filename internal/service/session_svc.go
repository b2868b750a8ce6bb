package service

import (
	"bytes"
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"tshirt_studio_v1/internal/middleware"
	"tshirt_studio_v1/internal/model"
	"tshirt_studio_v1/internal/repository"
	"tshirt_studio_v1/pkg/utils"
)

// ==================== CustomizationService 定制会话服务 ====================

// CustomizationService 商品定制会话服务
// 负责上传校验与转码、选择项变更、通知槽位、以及交接载荷的组装
type CustomizationService struct {
	sessions repository.SessionRepository
	handoff  HandoffSubmitter
}

// NewCustomizationService 创建定制会话服务
func NewCustomizationService(sessions repository.SessionRepository, handoff HandoffSubmitter) *CustomizationService {
	return &CustomizationService{
		sessions: sessions,
		handoff:  handoff,
	}
}

// ==================== 会话生命周期 ====================

// Create 创建新会话（默认选择：白色 / M / 数量 1）
func (s *CustomizationService) Create(ctx context.Context, userID int64) *model.CustomizationSession {
	sess := model.NewCustomizationSession(uuid.NewString(), userID)
	s.sessions.Save(sess)
	return sess
}

// Get 读取会话快照
func (s *CustomizationService) Get(ctx context.Context, id string, userID int64) (*model.CustomizationSession, error) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	return sess, nil
}

// Delete 结束会话，同时停掉挂起的通知定时器
func (s *CustomizationService) Delete(ctx context.Context, id string, userID int64) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	s.sessions.Delete(id)
	return nil
}

// ==================== 上传与转码 ====================

// UploadArtwork 接收上传文件，校验后转码为 data URI 并整体替换设计图
// 校验失败只产生通知，原有设计图保持不变；accepted 标识本次是否被接受
func (s *CustomizationService) UploadArtwork(ctx context.Context, id string, userID int64,
	fileName, mimeType string, data []byte) (sess *model.CustomizationSession, accepted bool, err error) {

	if _, err := s.Get(ctx, id, userID); err != nil {
		return nil, false, err
	}

	// 1. 类型校验：声明的 MIME 必须是 image/*
	if !utils.IsImageMime(mimeType) {
		sess, err := s.notify(id, "Please upload a valid image file")
		return sess, false, err
	}

	// 2. 大小校验：10MiB 上限
	if int64(len(data)) > model.MaxArtworkBytes {
		sess, err := s.notify(id, "File size must be less than 10MB")
		return sess, false, err
	}

	// 3. 解码验证：文件声明是图片但读不出来时不得污染现有状态
	img, decodeErr := imaging.Decode(bytes.NewReader(data))
	if decodeErr != nil {
		sess, err := s.notify(id, "Could not read image file")
		return sess, false, err
	}
	bounds := img.Bounds()

	// 4. 转码并整体替换
	artwork := &model.Artwork{
		DataURI:   utils.BuildDataURI(mimeType, data),
		FileName:  fileName,
		MimeType:  mimeType,
		SizeBytes: int64(len(data)),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}

	if _, ok := s.sessions.Update(id, func(sess *model.CustomizationSession) {
		sess.SetArtwork(artwork)
	}); !ok {
		return nil, false, ErrSessionNotFound
	}
	notified, nErr := s.notify(id, "Image uploaded successfully!")
	return notified, true, nErr
}

// ==================== 选择项变更 ====================

// SelectionChange 一次选择项变更，未给出的字段保持原值
type SelectionChange struct {
	ColorKey    *string
	SizeKey     *string
	ProductName *string
	Description *string
	Quantity    *string // 原样接收输入框内容，服务端负责钳制
}

// ApplySelection 应用选择项变更
// 所有 setter 都是全函数：非法数量钳制到 1，目录外的颜色/尺码保持原值
func (s *CustomizationService) ApplySelection(ctx context.Context, id string, userID int64,
	change SelectionChange) (*model.CustomizationSession, error) {

	if _, err := s.Get(ctx, id, userID); err != nil {
		return nil, err
	}

	sess, ok := s.sessions.Update(id, func(sess *model.CustomizationSession) {
		if change.ColorKey != nil {
			if _, ok := model.FindColor(*change.ColorKey); ok {
				sess.ColorKey = *change.ColorKey
			}
		}
		if change.SizeKey != nil {
			if model.ValidSize(*change.SizeKey) {
				sess.SizeKey = *change.SizeKey
			}
		}
		if change.ProductName != nil {
			sess.ProductName = *change.ProductName
		}
		if change.Description != nil {
			sess.Description = *change.Description
		}
		if change.Quantity != nil {
			sess.Quantity = ClampQuantity(*change.Quantity)
		}
		sess.Touch()
	})
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// ClampQuantity 解析数量输入并钳制
// 结果恒为 max(1, 解析值)，解析失败按 1 处理
func ClampQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ==================== 尺码表弹窗 ====================

// SetSizeChartVisible 打开/关闭尺码表弹窗，不影响其他任何选择项
func (s *CustomizationService) SetSizeChartVisible(ctx context.Context, id string, userID int64,
	visible bool) (*model.CustomizationSession, error) {

	if _, err := s.Get(ctx, id, userID); err != nil {
		return nil, err
	}
	sess, ok := s.sessions.Update(id, func(sess *model.CustomizationSession) {
		sess.SizeChartVisible = visible
		sess.Touch()
	})
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// ==================== 交接 ====================

// RequestHandoff 校验当前选择并向下一阶段交接
// 前置条件按固定顺序短路检查，第一个未满足项产生通知且不做任何其他变更；
// payload 为 nil 表示校验未通过。给定相同状态重复调用产生等价载荷（幂等）
func (s *CustomizationService) RequestHandoff(ctx context.Context, id string, userID int64) (
	payload *model.HandoffPayload, sess *model.CustomizationSession, err error) {

	sess, err = s.Get(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	if vErr := sess.CanHandoff(); vErr != nil {
		notified, nErr := s.notify(id, vErr.Error())
		return nil, notified, nErr
	}

	payload = sess.BuildHandoffPayload()

	// 交接调用只发起一次，不重试不排队；失败属于基础设施错误，向上抛给调用方
	if err := s.handoff.Submit(ctx, payload); err != nil {
		return nil, sess, err
	}

	// 记录操作人，便于排查是谁在什么会话上发起的交接
	if info := middleware.GetAuditInfo(ctx); info != nil {
		log.Printf("定制交接完成: session=%s operator=%s(%d) name=%q qty=%d",
			id, info.Username, info.UserID, payload.Name, payload.Quantity)
	}
	return payload, sess, nil
}

// ==================== 通知槽位 ====================

// notify 写入单槽位通知并调度 3 秒后的清除
// 槽位后写覆盖先写；清除定时器带 token，只清除自己那条，旧定时器同时被停掉
// 会话在归属检查之后、写入之前被并发删除时返回 ErrSessionNotFound
func (s *CustomizationService) notify(id string, message string) (*model.CustomizationSession, error) {
	token := uuid.NewString()

	sess, ok := s.sessions.Update(id, func(sess *model.CustomizationSession) {
		sess.Notification = &model.Notification{
			Message:   message,
			Token:     token,
			ExpiresAt: time.Now().Add(model.NotificationTTL),
		}
	})
	if !ok {
		return nil, ErrSessionNotFound
	}

	timer := time.AfterFunc(model.NotificationTTL, func() {
		s.sessions.Update(id, func(sess *model.CustomizationSession) {
			if sess.Notification != nil && sess.Notification.Token == token {
				sess.Notification = nil
			}
		})
	})
	s.sessions.SwapClearTimer(id, timer)

	return sess, nil
}
