// Package service implements the signup workflow between HTTP handlers and
// the activity registry.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/activity-signup/internal/metrics"
	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
	"github.com/Shivanand-hulikatti/activity-signup/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Registry is the subset of the activity repository the service depends on.
type Registry interface {
	List(ctx context.Context) ([]model.Activity, error)
	Signup(ctx context.Context, name, email string) error
	Unregister(ctx context.Context, name, email string) error
}

// ActivityService orchestrates activity listing and roster changes.
type ActivityService struct {
	activities Registry
	log        *zap.Logger
	metrics    *metrics.Metrics
}

// NewActivityService constructs an ActivityService. A nil metrics disables
// outcome counting.
func NewActivityService(activities Registry, log *zap.Logger, m *metrics.Metrics) *ActivityService {
	return &ActivityService{activities: activities, log: log, metrics: m}
}

// ListActivities returns every activity in registry order.
func (s *ActivityService) ListActivities(ctx context.Context) ([]model.Activity, error) {
	activities, err := s.activities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// Signup adds email to the named activity. The email is taken as-is.
func (s *ActivityService) Signup(ctx context.Context, activity, email string) (string, error) {
	err := s.activities.Signup(ctx, activity, email)
	s.count(s.signups(), activity, err)
	if err != nil {
		s.log.Debug("signup rejected",
			zap.String("activity", activity), zap.String("email", email), zap.Error(err))
		if isDomainError(err) {
			return "", err
		}
		return "", fmt.Errorf("signup: %w", err)
	}

	s.log.Info("participant signed up", zap.String("activity", activity), zap.String("email", email))
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

// Unregister removes email from the named activity.
func (s *ActivityService) Unregister(ctx context.Context, activity, email string) (string, error) {
	err := s.activities.Unregister(ctx, activity, email)
	s.count(s.unregistrations(), activity, err)
	if err != nil {
		s.log.Debug("unregister rejected",
			zap.String("activity", activity), zap.String("email", email), zap.Error(err))
		if isDomainError(err) {
			return "", err
		}
		return "", fmt.Errorf("unregister: %w", err)
	}

	s.log.Info("participant unregistered", zap.String("activity", activity), zap.String("email", email))
	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}

func isDomainError(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrAlreadyRegistered) ||
		errors.Is(err, repository.ErrActivityFull)
}

func (s *ActivityService) signups() *prometheus.CounterVec {
	if s.metrics == nil {
		return nil
	}
	return s.metrics.Signups
}

func (s *ActivityService) unregistrations() *prometheus.CounterVec {
	if s.metrics == nil {
		return nil
	}
	return s.metrics.Unregistrations
}

// count records an outcome. Unknown activity names are collapsed into a
// single label value to keep cardinality bounded.
func (s *ActivityService) count(c *prometheus.CounterVec, activity string, err error) {
	if c == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		if errors.Is(err, repository.ErrNotFound) && !errors.Is(err, repository.ErrParticipantNotFound) {
			activity = "unknown"
		}
	}
	c.WithLabelValues(activity, outcome).Inc()
}
