// Package constants provides shared constant values used throughout the application.
//
// The routes_const.go file defines general-purpose constants related to routing,
// request parameters and HTTP headers. These constants ensure consistent API
// patterns and URL structure throughout the application.
package constants

// Base Routes define the root URL paths for different parts of the API.
const (
	// APIBasePath is the root path prefix for all API endpoints.
	APIBasePath = "/api"

	// HealthPath is the endpoint for health checks and system status.
	HealthPath = "/health"
)

// Query Parameters define common query string parameter names.
const (
	// QueryParamPath is the query parameter for dotted settings paths.
	QueryParamPath = "path"

	// QueryParamDefault is the query parameter for the fallback value of a
	// settings lookup.
	QueryParamDefault = "default"
)

// HTTP Headers define header names used by handlers and middleware.
const (
	// HeaderContentType is the standard content type header.
	HeaderContentType = "Content-Type"

	// HeaderAuthorization is the standard authorization header.
	HeaderAuthorization = "Authorization"

	// HeaderXNonce carries the anti-forgery token on mutating requests.
	HeaderXNonce = "X-LocaleWatch-Nonce"

	// HeaderXContentTypeOptions prevents MIME type sniffing.
	HeaderXContentTypeOptions = "X-Content-Type-Options"

	// HeaderXFrameOptions controls whether the response may be framed.
	HeaderXFrameOptions = "X-Frame-Options"

	// HeaderRetryAfter tells a rate-limited client when to retry.
	HeaderRetryAfter = "Retry-After"
)

// HTTP Status Codes define the commonly returned response statuses.
const (
	// StatusOK indicates a successful request.
	StatusOK = 200

	// StatusCreated indicates that a resource was created.
	StatusCreated = 201

	// StatusNoContent indicates success with no response body.
	StatusNoContent = 204
)

// Header Values define standard values for the headers above.
const (
	// ContentTypeJSON is the JSON content type.
	ContentTypeJSON = "application/json"

	// ContentTypeOptionsNoSniff disables MIME sniffing.
	ContentTypeOptionsNoSniff = "nosniff"

	// FrameOptionsDeny forbids framing entirely.
	FrameOptionsDeny = "DENY"
)
