package consts

const (
	AccountRoleKey      = "account:role:"
	AccountPlanKey      = "account:plan:"
	AccountUserCountKey = "account:user:count"

	PortfolioViewDirtyKey = "portfolio:view:dirty"

	RateLimitContactKey = "ratelimit:contact:"
)
