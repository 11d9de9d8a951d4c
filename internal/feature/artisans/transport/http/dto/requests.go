// Package dto defines request and response payloads for artisan endpoints.
package dto

// PortfolioItemPayload is one portfolio entry in an update request.
type PortfolioItemPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title" binding:"required"`
	ImageURL    string `json:"image_url" binding:"required,url"`
	Description string `json:"description"`
}

// UpdateProfileReq is the wholesale profile update payload.
type UpdateProfileReq struct {
	Name         string                 `json:"name" binding:"required"`
	Specialty    string                 `json:"specialty" binding:"required"`
	AvatarURL    string                 `json:"avatar_url"`
	Location     string                 `json:"location"`
	Experience   string                 `json:"experience"`
	Availability string                 `json:"availability"`
	Workplace    string                 `json:"workplace"`
	Phone        string                 `json:"phone"`
	Instagram    string                 `json:"instagram"`
	Portfolio    []PortfolioItemPayload `json:"portfolio"`
}

// ToggleFollowRes reports the follow state after a toggle.
type ToggleFollowRes struct {
	Following bool `json:"following"`
}

// ConnectionsRes lists the artisan ids on each side of the follow graph.
type ConnectionsRes struct {
	Following []string `json:"following"`
	Followers []string `json:"followers"`
}
