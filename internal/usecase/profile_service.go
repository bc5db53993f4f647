package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rental-service/internal/domain/apperror"
	"rental-service/internal/domain/entity"
	"rental-service/internal/domain/repository"
	"rental-service/pkg/logger"
	"rental-service/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// ErrProfileReload is returned when the user disappears between the update and the re-read
var ErrProfileReload = errors.New("failed to retrieve updated user data")

// ProfileService updates account profiles and mirrors name and phone to the linked OwnerRez guest
type ProfileService struct {
	users    repository.UserRepository
	ownerRez repository.OwnerRezRepository
	audits   repository.SyncAuditRepository
	validate *validator.Validate
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	users repository.UserRepository,
	ownerRez repository.OwnerRezRepository,
	audits repository.SyncAuditRepository,
	m *metrics.Metrics,
	logger logger.Logger,
) *ProfileService {
	return &ProfileService{
		users:    users,
		ownerRez: ownerRez,
		audits:   audits,
		validate: newValidator(),
		metrics:  m,
		logger:   logger,
	}
}

// ParseFullName splits a full name into the first token and the rest
func ParseFullName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// UpdateProfile validates and stores the profile of user, then pushes name and phone to
// OwnerRez when the account is linked to a guest. The push never fails the update.
func (s *ProfileService) UpdateProfile(ctx context.Context, user *entity.User, req *entity.ProfileUpdateRequest, requestID string) (*entity.User, error) {
	if err := s.validateProfile(user, req); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"fullName": req.FullName,
		"phone":    req.Phone,
		"dob":      req.Dob,
	}
	if req.ProfileImage != "" {
		fields["profileImage"] = req.ProfileImage
	}
	if user.Role == entity.RoleAdmin {
		fields["contactPerson"] = req.ContactPerson
		fields["mailingAddress"] = req.MailingAddress
		fields["desiredService"] = req.DesiredService
		fields["proofOfOwnership"] = req.ProofOfOwnership
		fields["businessLicenseNumber"] = req.BusinessLicenseNumber
		fields["taxId"] = req.TaxID
		fields["bankAccountInfo"] = req.BankAccountInfo
		fields["taxForm"] = req.TaxForm
	}

	userID := user.ID.Hex()
	if err := s.users.UpdateProfile(ctx, userID, fields); err != nil {
		s.logger.Error("Failed to update profile", "userId", userID, "error", err)
		return nil, err
	}

	if user.GuestID != nil {
		s.propagateToGuest(ctx, userID, *user.GuestID, req, requestID)
	}

	updated, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &apperror.PersistenceError{Op: "reload user", Err: ErrProfileReload}
	}

	s.logger.Info("Profile updated", "userId", userID)
	return updated, nil
}

// validateProfile checks the role-independent fields first, then the admin ones
func (s *ProfileService) validateProfile(user *entity.User, req *entity.ProfileUpdateRequest) error {
	if err := s.validate.Struct(req); err != nil {
		verr := toValidationError(err)
		if ve, ok := verr.(*apperror.ValidationError); ok {
			ve.Message = "Full name, phone, and date of birth are required: missing " + strings.Join(ve.Fields, ", ")
		}
		return verr
	}

	if user.Role != entity.RoleAdmin {
		return nil
	}

	if missing := missingFields(
		[2]string{"mailingAddress", req.MailingAddress},
		[2]string{"desiredService", req.DesiredService},
	); len(missing) > 0 {
		return &apperror.ValidationError{
			Fields:  missing,
			Message: "Mailing address and desired service are required for admin users: missing " + strings.Join(missing, ", "),
		}
	}

	if missing := missingFields(
		[2]string{"proofOfOwnership", req.ProofOfOwnership},
		[2]string{"businessLicenseNumber", req.BusinessLicenseNumber},
		[2]string{"bankAccountInfo", req.BankAccountInfo},
		[2]string{"taxForm", req.TaxForm},
	); len(missing) > 0 {
		return &apperror.ValidationError{
			Fields:  missing,
			Message: "Proof of ownership, business license number, bank account info, and tax form are required for admin users: missing " + strings.Join(missing, ", "),
		}
	}

	return nil
}

func (s *ProfileService) propagateToGuest(ctx context.Context, userID string, guestID int64, req *entity.ProfileUpdateRequest, requestID string) {
	first, last := ParseFullName(req.FullName)
	update := entity.GuestUpdate{
		FirstName: first,
		LastName:  last,
		Phones: []entity.Phone{
			{Number: req.Phone, Type: "mobile", IsDefault: true},
		},
	}

	err := s.ownerRez.UpdateGuest(ctx, guestID, update)

	audit := &entity.SyncAudit{
		Operation:  entity.SyncOpGuestUpdate,
		ResourceID: strconv.FormatInt(guestID, 10),
		ActorID:    userID,
		Success:    err == nil,
		RequestID:  requestID,
	}
	if err != nil {
		audit.Error = err.Error()
		s.metrics.PropagationFailures.WithLabelValues(entity.SyncOpGuestUpdate).Inc()
		s.logger.Error("OwnerRez guest update failed, keeping local profile update",
			"userId", userID,
			"guestId", guestID,
			"error", err)
	}

	if aerr := s.audits.Record(ctx, audit); aerr != nil {
		s.logger.Warn("Failed to record sync audit", "operation", audit.Operation, "error", aerr)
	}
}

// ChangePassword replaces the password of a password-based account
func (s *ProfileService) ChangePassword(ctx context.Context, user *entity.User, req *entity.PasswordChangeRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return toValidationError(err)
	}

	if user.AuthProvider == entity.AuthProviderGoogle || user.Password == "" {
		return &apperror.ValidationError{
			Fields:  []string{"oldPassword"},
			Message: "Password cannot be changed for accounts that sign in with Google",
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return &apperror.ValidationError{
			Fields:  []string{"oldPassword"},
			Message: "Current password is incorrect",
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	userID := user.ID.Hex()
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		s.logger.Error("Failed to update password", "userId", userID, "error", err)
		return err
	}

	s.logger.Info("Password changed", "userId", userID)
	return nil
}
