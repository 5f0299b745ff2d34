package constants

const (
	BrowseCatalog     = "browse_catalog"
	CreateRequest     = "create_request"
	ViewOwnRequests   = "view_own_requests"
	ManageListings    = "manage_listings"
	ReviewRequests    = "review_requests"
	ViewPlatformStats = "view_platform_stats"
)
