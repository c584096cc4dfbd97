package playability

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/tennis-playability/pkg/errors"
)

// Service is the form controller behind both the HTML form and the JSON API.
type Service interface {
	Fields() []Field
	Selection(ctx context.Context, sessionID string) (Selection, error)
	Select(ctx context.Context, sessionID string, values map[string]string) (Selection, error)
	Preview(ctx context.Context, sessionID string) (Payload, error)
	Check(ctx context.Context, sessionID string) (Outcome, error)
	Predict(ctx context.Context, sel Selection) (Outcome, error)
}

type service struct {
	store     SelectionStore
	predictor Predictor
	logger    *slog.Logger
}

// NewService wires the form controller.
func NewService(store SelectionStore, predictor Predictor, logger *slog.Logger) Service {
	return &service{
		store:     store,
		predictor: predictor,
		logger:    logger.With("component", "playability.service"),
	}
}

func (s *service) Fields() []Field {
	return Fields()
}

func (s *service) Selection(ctx context.Context, sessionID string) (Selection, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Selection{}, nil
	}
	sel, ok, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSessionError, "failed to load selections", err)
	}
	if !ok || sel == nil {
		return Selection{}, nil
	}
	return sel, nil
}

// Select applies the submitted values to the session. Fields absent from values keep
// their current selection; invalid input leaves the stored state untouched.
func (s *service) Select(ctx context.Context, sessionID string, values map[string]string) (Selection, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.Wrap(apperrors.CodeSessionError, "session id is required", nil)
	}
	current, err := s.Selection(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	next := current.Clone()
	for name, value := range values {
		if next, err = Apply(next, name, value); err != nil {
			return nil, err
		}
	}
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSessionError, "failed to save selections", err)
	}
	return next, nil
}

func (s *service) Preview(ctx context.Context, sessionID string) (Payload, error) {
	sel, err := s.Selection(ctx, sessionID)
	if err != nil {
		return Payload{}, err
	}
	payload, err := Collect(sel)
	if err != nil {
		s.logger.Warn("preview rejected", "error", err)
		return Payload{}, err
	}
	return payload, nil
}

func (s *service) Check(ctx context.Context, sessionID string) (Outcome, error) {
	sel, err := s.Selection(ctx, sessionID)
	if err != nil {
		return Outcome{}, err
	}
	return s.Predict(ctx, sel)
}

func (s *service) Predict(ctx context.Context, sel Selection) (Outcome, error) {
	payload, err := Collect(sel)
	if err != nil {
		s.logger.Warn("prediction rejected", "error", err)
		return Outcome{}, err
	}

	prediction, err := s.predictor.Predict(ctx, payload)
	if err != nil {
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			reqErr = &RequestError{Message: err.Error(), Err: err}
		}
		s.logger.Error("prediction failed", "status", reqErr.Status, "error", err)
		return Outcome{}, reqErr
	}
	s.logger.Info("prediction received", "can_play", prediction.CanPlay)

	return Outcome{Payload: payload, Prediction: prediction}, nil
}
