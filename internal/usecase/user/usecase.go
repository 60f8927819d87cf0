package user

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	domain "rest-user-client/internal/domain/user"
)

// Transport defines the interface for performing one HTTP exchange per call
// against the remote API. It abstracts the wire layer, allowing the real
// client and test doubles to be used interchangeably.
type Transport interface {
	Get(ctx context.Context, path string, out any) error        // Fetch and decode a resource
	Post(ctx context.Context, path string, body, out any) error // Create a resource from body
	Put(ctx context.Context, path string, body, out any) error  // Replace a resource with body
	Delete(ctx context.Context, path string) error              // Remove a resource, no response body
}

const usersPath = "/users"

// Usecase exposes the fixed CRUD shortcuts over the remote "users"
// collection. Records pass through without local validation; the remote
// service alone decides what shapes it accepts.
type Usecase struct {
	api Transport   // Wire layer for the remote API
	log *zap.Logger // Logger for structured logging
}

// New creates a new instance of Usecase with the provided transport and logger.
func New(api Transport, log *zap.Logger) *Usecase {
	return &Usecase{api: api, log: log}
}

// ListUsers returns every user record the remote service serves.
func (uc *Usecase) ListUsers(ctx context.Context) ([]domain.Record, error) {
	uc.log.Info("listing users")

	var records []domain.Record
	if err := uc.api.Get(ctx, usersPath, &records); err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	return records, nil
}

// GetUser fetches a single user record by id.
func (uc *Usecase) GetUser(ctx context.Context, id string) (domain.Record, error) {
	uc.log.Info("getting user", zap.String("id", id))

	var record domain.Record
	if err := uc.api.Get(ctx, userPath(id), &record); err != nil {
		uc.log.Error("failed to get user", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return record, nil
}

// CreateUser sends a new record and returns it as created by the remote
// service, server-assigned id included.
func (uc *Usecase) CreateUser(ctx context.Context, record domain.Record) (domain.Record, error) {
	uc.log.Info("creating user")

	var created domain.Record
	if err := uc.api.Post(ctx, usersPath, record, &created); err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return created, nil
}

// UpdateUser replaces the record stored under id and returns the result.
func (uc *Usecase) UpdateUser(ctx context.Context, id string, record domain.Record) (domain.Record, error) {
	uc.log.Info("updating user", zap.String("id", id))

	var updated domain.Record
	if err := uc.api.Put(ctx, userPath(id), record, &updated); err != nil {
		uc.log.Error("failed to update user", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return updated, nil
}

// DeleteUser removes the record stored under id. The remote service performs
// the deletion; there is no follow-up read to verify it. The caller keeps id
// to report what was removed.
func (uc *Usecase) DeleteUser(ctx context.Context, id string) error {
	uc.log.Info("deleting user", zap.String("id", id))

	if err := uc.api.Delete(ctx, userPath(id)); err != nil {
		uc.log.Error("failed to delete user", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// userPath builds the resource path for a single user id.
func userPath(id string) string {
	return usersPath + "/" + url.PathEscape(id)
}
