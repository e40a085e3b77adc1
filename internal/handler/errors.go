package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"
	ErrMsgInvalidPathParam  = "Invalid %s path parameter"

	// SSE
	ErrMsgTelegramIDRequired = "telegram_id query parameter is required"
)

// User-facing messages for mapped service errors
const (
	ErrMsgGenericServerError      = "Something went wrong"
	ErrMsgUnknownError            = "Unknown error"
	ErrMsgInvalidInputError       = "Invalid request. Please check your inputs."
	ErrMsgUserNotFoundError       = "User not found. Open the app from Telegram to register."
	ErrMsgPlanetNotFoundError     = "Planet not found"
	ErrMsgNoActiveExpedition      = "No active expedition found"
	ErrMsgResourceNotFoundError   = "Resource not found"
	ErrMsgActiveExpeditionError   = "You already have an active expedition"
	ErrMsgExpeditionExpiredError  = "Expedition time has expired. Return to the ship."
	ErrMsgExpeditionNotEndedError = "Expedition has not ended yet"
	ErrMsgInvalidStateError       = "The expedition is not in a state that allows this action"
)

// Success messages for API responses
const (
	MsgUserRegistered    = "User registered successfully"
	MsgUpgradeGranted    = "Upgrade granted successfully"
	MsgCatalogInvalidate = "Catalog cache invalidated"
)
