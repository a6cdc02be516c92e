package util

import (
	"regexp"
	"strings"
)

const (
	SlugMinLength = 3
	SlugMaxLength = 50
)

var (
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	nonAlnumSeries = regexp.MustCompile(`[^a-z0-9]+`)
)

// GenerateSlug 由展示名派生 slug：小写、连续非字母数字折叠为单个连字符、
// 去除首尾连字符、截断到 50 字符
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = nonAlnumSeries.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > SlugMaxLength {
		slug = strings.Trim(slug[:SlugMaxLength], "-")
	}
	return slug
}

// ValidateSlug 校验 slug 格式：3-50 位，仅小写字母、数字与中间连字符
func ValidateSlug(slug string) bool {
	if len(slug) < SlugMinLength || len(slug) > SlugMaxLength {
		return false
	}
	return slugPattern.MatchString(slug)
}
