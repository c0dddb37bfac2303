package dto

// SelectPackageRequest points the authenticated user at a subscription package
type SelectPackageRequest struct {
	PackageID string `json:"packageId" binding:"required"`
}
