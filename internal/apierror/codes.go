package apierror

// Error type URIs following the urn:wellspring:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:wellspring:error:validation"

	// TypeNotFound indicates the requested route or resource was not found (404)
	TypeNotFound = "urn:wellspring:error:not_found"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:wellspring:error:rate_limit"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:wellspring:error:internal"

	// TypeStorageUnavailable indicates the record store could not be read or written (503)
	TypeStorageUnavailable = "urn:wellspring:error:storage_unavailable"

	// TypeInvalidCategory indicates an unknown activity category in the path (400)
	TypeInvalidCategory = "urn:wellspring:error:invalid_category"

	// TypeInvalidWindow indicates a days parameter outside 1..365 (400)
	TypeInvalidWindow = "urn:wellspring:error:invalid_window"

	// TypeInvalidRecordID indicates a client-supplied record ID that is not a UUIDv7 (400)
	TypeInvalidRecordID = "urn:wellspring:error:invalid_record_id"

	// TypeFutureTimestamp indicates a record ID timestamp too far in the future (400)
	TypeFutureTimestamp = "urn:wellspring:error:future_timestamp"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:wellspring:error:bad_request"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation         = "Validation Error"
	TitleNotFound           = "Resource Not Found"
	TitleRateLimit          = "Rate Limit Exceeded"
	TitleInternal           = "Internal Server Error"
	TitleStorageUnavailable = "Storage Unavailable"
	TitleInvalidCategory    = "Unknown Activity Category"
	TitleInvalidWindow      = "Invalid Window"
	TitleInvalidRecordID    = "Invalid Record ID"
	TitleFutureTimestamp    = "Future Timestamp Not Allowed"
	TitleBadRequest         = "Bad Request"
)
