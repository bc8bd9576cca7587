package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/wellspring/backend/internal/apierror"
	"github.com/JonnyWalker81/wellspring/backend/internal/logger"
	"github.com/JonnyWalker81/wellspring/backend/internal/repository"
	"github.com/JonnyWalker81/wellspring/backend/internal/service"
)

// Seconds a client should wait before retrying a failed storage read
const (
	storageRetryAfter     = 5
	circuitOpenRetryAfter = 30
)

// writeServiceError maps a service error onto a problem response. Storage
// failures are 503, caller mistakes are 400, anything else is 500.
func writeServiceError(c *gin.Context, err error, msg string) {
	requestID := apierror.GetRequestID(c)
	log := logger.Ctx(c.Request.Context())

	var storageErr *repository.StorageError
	switch {
	case errors.As(err, &storageErr):
		retryAfter := storageRetryAfter
		if errors.Is(err, repository.ErrCircuitOpen) {
			retryAfter = circuitOpenRetryAfter
		}
		log.Error(msg,
			logger.Err(err),
			logger.Backend(storageErr.Backend),
			logger.Category(string(storageErr.Category)),
		)
		apierror.WriteProblem(c, apierror.NewStorageUnavailableError(requestID, retryAfter))

	case errors.Is(err, repository.ErrUnknownCategory):
		log.Debug(msg, logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInvalidCategoryError(requestID, c.Param("category")))

	case errors.Is(err, service.ErrInvalidPayload):
		log.Debug(msg, logger.Err(err))
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "The activity could not be saved. Please check the entry and try again."))

	case errors.Is(err, service.ErrFutureTimestamp):
		log.Debug(msg, logger.Err(err))
		apierror.WriteProblem(c, apierror.NewFutureTimestampError(requestID, "id"))

	case errors.Is(err, service.ErrInvalidRecordID):
		log.Debug(msg, logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInvalidRecordIDError(requestID, c.GetString(recordIDKey)))

	default:
		log.Error(msg, logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}
