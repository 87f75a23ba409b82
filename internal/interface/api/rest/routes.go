package rest

const (
	// auth
	RouteRegister = "/register"
	RouteLogin    = "/login"
	RouteLogout   = "/logout"

	// storage
	RouteUpload     = "/upload"
	RouteFolders    = "/folders"
	RouteFolder     = RouteFolders + "/:name"
	RouteFiles      = "/files"
	RouteFileFolder = RouteFiles + "/:file_id/folder"

	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
