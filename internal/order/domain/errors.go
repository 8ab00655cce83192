package domain

// CheckoutError 结算业务错误
// Code 与调用方约定的错误码一一对应，供接口层映射 HTTP 状态。
type CheckoutError struct {
	Code    string
	Message string
}

func (e *CheckoutError) Error() string { return e.Message }

var (
	ErrNotAuthenticated     = &CheckoutError{Code: "NOT_AUTHENTICATED", Message: "user not authenticated"}
	ErrMissingParams        = &CheckoutError{Code: "MISSING_PARAMS", Message: "missing required parameters"}
	ErrInvalidPayMethod     = &CheckoutError{Code: "INVALID_PAYMENT_METHOD", Message: "invalid payment method"}
	ErrInvalidAddress       = &CheckoutError{Code: "INVALID_ADDRESS", Message: "address not found or not owned by user"}
	ErrItemNotFound         = &CheckoutError{Code: "ITEM_NOT_FOUND", Message: "sku not found"}
	ErrInsufficientStock    = &CheckoutError{Code: "INSUFFICIENT_STOCK", Message: "insufficient stock"}
	ErrConcurrencyExhausted = &CheckoutError{Code: "CONCURRENCY_EXHAUSTED", Message: "stock update retries exhausted"}
	ErrCommitFailed         = &CheckoutError{Code: "COMMIT_FAILED", Message: "failed to commit order"}
)
