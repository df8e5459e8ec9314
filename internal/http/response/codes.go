package response

// 错误响应使用的 HTTP 状态码
const (
	CodeBadRequest       = 400
	CodeUnauthorized     = 401
	CodeNotFound         = 404
	CodeMethodNotAllowed = 405
	CodeTooManyRequests  = 429
	CodeInternal         = 500
	CodeBadGateway       = 502
)
