package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"rental-service/internal/domain/apperror"
	"rental-service/internal/domain/entity"
	"rental-service/internal/domain/repository"
	"rental-service/pkg/logger"
	"rental-service/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

const remoteFetchFailed = "Failed to fetch from OwnerRez API"

// PropertyService reads and writes properties across OwnerRez and the local store
type PropertyService struct {
	ownerRez   repository.OwnerRezRepository
	properties repository.PropertyRepository
	audits     repository.SyncAuditRepository
	ensurer    *ThumbnailEnsurer
	validate   *validator.Validate
	metrics    *metrics.Metrics
	logger     logger.Logger
	now        func() time.Time
}

// NewPropertyService creates a new property service
func NewPropertyService(
	ownerRez repository.OwnerRezRepository,
	properties repository.PropertyRepository,
	audits repository.SyncAuditRepository,
	ensurer *ThumbnailEnsurer,
	m *metrics.Metrics,
	logger logger.Logger,
) *PropertyService {
	return &PropertyService{
		ownerRez:   ownerRez,
		properties: properties,
		audits:     audits,
		ensurer:    ensurer,
		validate:   newValidator(),
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// GetProperty looks the property up in both sources and merges the results. A remote
// failure is returned as remoteErr and does not fail the call; a local store failure does.
func (s *PropertyService) GetProperty(ctx context.Context, id string) (result MergeResult, remoteErr string, err error) {
	remote, rerr := s.ownerRez.GetProperty(ctx, id)
	if rerr != nil {
		remoteErr = remoteErrorSummary(rerr)
		s.logger.Warn("OwnerRez property lookup failed", "propertyId", id, "error", rerr)
	}

	var local *entity.LocalProperty
	if ownerRezID, perr := strconv.ParseInt(id, 10, 64); perr == nil {
		local, err = s.properties.FindByOwnerRezID(ctx, ownerRezID)
		if err != nil {
			s.metrics.ErrorsCount.WithLabelValues("get_property").Inc()
			s.logger.Error("Local property lookup failed", "propertyId", id, "error", err)
			return nil, remoteErr, err
		}
	}

	result = MergeProperty(remote, local, remoteErr)
	s.metrics.PropertyMerges.WithLabelValues(result.Source()).Inc()

	if found, ok := result.(FoundProperty); ok && s.ensurer != nil {
		result = s.ensurer.Ensure(ctx, []FoundProperty{found})[0]
	}

	return result, remoteErr, nil
}

func remoteErrorSummary(err error) string {
	var apiErr *apperror.RemoteAPIError
	if errors.As(err, &apiErr) {
		return apiErr.Summary()
	}
	return remoteFetchFailed
}

// UpdateProperty forwards an update to OwnerRez and returns its response. On success the
// local document's sync time is refreshed. Every attempt is audited.
func (s *PropertyService) UpdateProperty(ctx context.Context, id string, body json.RawMessage, actorID, requestID string) (json.RawMessage, error) {
	data, err := s.ownerRez.UpdateProperty(ctx, id, body)

	audit := &entity.SyncAudit{
		Operation:  entity.SyncOpPropertyUpdate,
		ResourceID: id,
		ActorID:    actorID,
		Success:    err == nil,
		RequestID:  requestID,
	}
	if err != nil {
		audit.Error = err.Error()
	}
	if aerr := s.audits.Record(ctx, audit); aerr != nil {
		s.logger.Warn("Failed to record sync audit", "operation", audit.Operation, "error", aerr)
	}

	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("update_property").Inc()
		s.logger.Error("Failed to update property in OwnerRez", "propertyId", id, "error", err)
		return nil, err
	}

	if ownerRezID, perr := strconv.ParseInt(id, 10, 64); perr == nil {
		if terr := s.properties.TouchSyncedAt(ctx, ownerRezID, s.now().UTC()); terr != nil {
			s.logger.Warn("Failed to record property sync time", "propertyId", id, "error", terr)
		}
	}

	return data, nil
}

// SaveLocalProperty validates and stores the locally owned fields of a property
func (s *PropertyService) SaveLocalProperty(ctx context.Context, id string, input *entity.LocalPropertyInput) (*entity.LocalProperty, error) {
	ownerRezID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || ownerRezID <= 0 {
		return nil, &apperror.ValidationError{Fields: []string{"id"}, Message: "Property ID must be a positive integer"}
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, toValidationError(err)
	}

	property, err := s.properties.UpsertByOwnerRezID(ctx, ownerRezID, input)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("save_local_property").Inc()
		s.logger.Error("Failed to save local property", "propertyId", id, "error", err)
		return nil, err
	}

	s.logger.Info("Local property saved", "propertyId", id)
	return property, nil
}
