// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"
	KeyWarning = "warning"
	KeyInfo    = "info"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserSuspended      = "user.suspended"

	// Profiles
	KeyProfileCreated        = "profile.created"
	KeyProfileUpdated        = "profile.updated"
	KeyProfileDeleted        = "profile.deleted"
	KeyProfileNotFound       = "profile.not_found"
	KeyProfileVerified       = "profile.verified"
	KeyProfileAlreadyClaimed = "profile.already_claimed"

	// Claims
	KeyClaimSubmitted        = "claim.submitted"
	KeyClaimApproved         = "claim.approved"
	KeyClaimRejected         = "claim.rejected"
	KeyClaimNotFound         = "claim.not_found"
	KeyClaimDuplicatePending = "claim.duplicate_pending"
	KeyClaimInvalidState     = "claim.invalid_state"

	// Portfolio
	KeyPortfolioItemCreated  = "portfolio.item_created"
	KeyPortfolioItemUpdated  = "portfolio.item_updated"
	KeyPortfolioItemDeleted  = "portfolio.item_deleted"
	KeyPortfolioItemNotFound = "portfolio.item_not_found"

	// Import
	KeyImportCompleted = "import.completed"
	KeyImportFailed    = "import.failed"

	// Extraction
	KeyExtractionCompleted = "extraction.completed"
	KeyExtractionFailed    = "extraction.failed"

	// Admin
	KeyAdminActionSuccess   = "admin.action_success"
	KeyAdminAccessDenied    = "admin.access_denied"
	KeyAdminUserSuspended   = "admin.user_suspended"
	KeyAdminUserUnsuspended = "admin.user_unsuspended"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooShort = "validation.too_short"
	KeyValidationTooLong  = "validation.too_long"
	KeyValidationEmail    = "validation.invalid_email"
	KeyValidationPassword = "validation.invalid_password"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
