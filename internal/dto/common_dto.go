package dto

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// NormalizePage clamps page/limit query values to sane bounds.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
