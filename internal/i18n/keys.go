// internal/i18n/keys.go
package i18n

// Message keys used by the response helpers and handlers.
const (
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthEmailTaken         = "auth.email_taken"

	KeyAdminAccessDenied = "admin.access_denied"

	KeyValidationInvalid = "validation.invalid"

	KeyProductNotFound = "product.not_found"
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyReviewSubmitted = "product.review_submitted"
	KeyImagesUploaded  = "product.images_uploaded"

	KeyOrderNotFound  = "order.not_found"
	KeyOrderForbidden = "order.forbidden"
	KeyOrderDelivered = "order.delivered"

	KeyPaymentVerified = "payment.verified"
	KeyPaymentFailed   = "payment.failed"

	KeyRateLimited = "rate.limited"
)
