package service

import "errors"

var (
	ErrDraftIncomplete      = errors.New("draft incomplete")
	ErrInvalidHandler       = errors.New("invalid handler")
	ErrInvalidDeliveryMode  = errors.New("invalid delivery mode")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidDateField     = errors.New("invalid date field")
	ErrDateRangeRequired    = errors.New("date range required")
	ErrInvalidDeliveryFee   = errors.New("invalid delivery fee")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrOrderIDRequired      = errors.New("order id required")
	ErrOrderNotFound        = errors.New("order not found")
	ErrStoreUnavailable     = errors.New("record store unavailable")
	ErrConversationRequired = errors.New("conversation required")
	ErrIntakeUnavailable    = errors.New("intake model unavailable")
	ErrInvalidToken         = errors.New("invalid staff token")
	ErrAuthDisabled         = errors.New("staff auth disabled")
)
