package playability

import "context"

// Predictor calls the external inference endpoint. Failures are reported as *RequestError.
type Predictor interface {
	Predict(ctx context.Context, payload Payload) (Prediction, error)
}

// SelectionStore keeps the per-session selection state.
type SelectionStore interface {
	Load(ctx context.Context, sessionID string) (Selection, bool, error)
	Save(ctx context.Context, sessionID string, sel Selection) error
}
