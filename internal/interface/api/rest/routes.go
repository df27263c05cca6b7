package rest

const (
	// auth
	RouteSignup      = "/signup"
	RouteVerifyEmail = "/verify-email/:token"
	RouteLogin       = "/login"

	// files
	RouteUploadFile   = "/upload-file"
	RouteListFiles    = "/list-files"
	RouteDownloadFile = "/download-file/:id"
	RouteDownload     = "/download/:token"

	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
