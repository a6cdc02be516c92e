package consts

const (
	MimePrefixImage = "image"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// FreePlanPublishLimit 免费套餐允许同时发布的作品集数量
const FreePlanPublishLimit = 1
