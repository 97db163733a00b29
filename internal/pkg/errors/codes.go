package errors

import "net/http"

var (
	ErrInvalidGeometry = New(
		"INVALID_GEOMETRY",
		"Invalid geometry. Must be a closed Polygon ring",
		http.StatusBadRequest,
	)

	ErrAreaTooLarge = New(
		"AREA_TOO_LARGE",
		"Area too large",
		http.StatusBadRequest,
	)

	ErrUpstreamFetch = New(
		"UPSTREAM_FETCH_ERROR",
		"OSM data service request failed",
		http.StatusBadGateway,
	)

	ErrNoRoadData = New(
		"NO_ROAD_DATA",
		"No road data found for analysis",
		http.StatusUnprocessableEntity,
	)

	ErrPersistence = New(
		"PERSISTENCE_ERROR",
		"Failed to persist analysis records",
		http.StatusInternalServerError,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrTaskNotFound = New(
		"NOT_FOUND",
		"Task not found",
		http.StatusNotFound,
	)

	ErrAreaNotFound = New(
		"NOT_FOUND",
		"Area not found",
		http.StatusNotFound,
	)

	ErrAnalysisInProgress = New(
		"ANALYSIS_IN_PROGRESS",
		"An analysis for this area is already running",
		http.StatusConflict,
	)

	ErrDispatchFailed = New(
		"DISPATCH_FAILED",
		"Failed to enqueue the next analysis stage",
		http.StatusInternalServerError,
	)

	ErrAnalysisTimeout = New(
		"ANALYSIS_TIMEOUT",
		"Analysis did not finish in time",
		http.StatusGatewayTimeout,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
