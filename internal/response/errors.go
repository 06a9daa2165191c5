package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrPendingApproval    ErrCode = "PENDING_APPROVAL"
	ErrTooManyAttempts    ErrCode = "TOO_MANY_LOGIN_ATTEMPTS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrAdminAccessOnly  ErrCode = "ADMIN_ACCESS_ONLY"
	ErrCannotDeleteSelf ErrCode = "CANNOT_DELETE_SELF"
	ErrLastAdmin        ErrCode = "LAST_ADMIN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrInvalidID  ErrCode = "INVALID_ID"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrEmailExists ErrCode = "EMAIL_EXISTS"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal           ErrCode = "INTERNAL_ERROR"
	ErrServiceUnavailable ErrCode = "SERVICE_UNAVAILABLE"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Incorrect email or password."
	case ErrPendingApproval:
		return "Your account is pending approval."
	case ErrTooManyAttempts:
		return "Too many failed login attempts. Please try again later."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Could not validate credentials."

	case ErrAdminAccessOnly:
		return "Admin access required."
	case ErrCannotDeleteSelf:
		return "Cannot delete yourself."
	case ErrLastAdmin:
		return "This change would leave the system without an admin."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."

	case ErrNotFound:
		return "User not found."
	case ErrEmailExists:
		return "Email already registered."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "Internal server error."
	case ErrServiceUnavailable:
		return "Service temporarily unavailable."
	default:
		return "An unexpected error occurred."
	}
}
