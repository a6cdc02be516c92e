package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrPortfolioNotFound   = errors.New("作品集不存在或无权访问")
	ErrSlugInvalid         = errors.New("slug 格式不正确")
	ErrSlugTaken           = errors.New("slug 已被占用")
	ErrTemplateNotFound    = errors.New("模板不存在")
	ErrTemplateTitleExist  = errors.New("模板标题已存在")
	ErrTemplateInUse       = errors.New("模板仍被作品集引用")
	ErrTemplatePremiumOnly = errors.New("该模板仅限高级套餐使用")
	ErrPublishLimitReached = errors.New("免费套餐同时只能发布一个作品集")
	ErrContactNotFound     = errors.New("留言不存在")
	ErrContactDuplicate    = errors.New("同一邮箱对该作品集只能留言一次")
	ErrRateLimited         = errors.New("请求过于频繁，请稍后再试")
	ErrWebhookInvalid      = errors.New("webhook 签名校验失败")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrFileNotSupported    = errors.New("不支持的文件类型")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrPortfolioNotFound:   NotFound,
	ErrSlugInvalid:         BadRequest,
	ErrSlugTaken:           Conflict,
	ErrTemplateNotFound:    NotFound,
	ErrTemplateTitleExist:  Conflict,
	ErrTemplateInUse:       BadRequest,
	ErrTemplatePremiumOnly: Forbidden,
	ErrPublishLimitReached: Forbidden,
	ErrContactNotFound:     NotFound,
	ErrContactDuplicate:    Conflict,
	ErrRateLimited:         TooManyRequests,
	ErrWebhookInvalid:      Unauthorized,
	ErrUserNotFound:        NotFound,
	ErrFileNotSupported:    BadRequest,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
