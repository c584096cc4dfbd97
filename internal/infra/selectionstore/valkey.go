package selectionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/tennis-playability/internal/domain/playability"
)

// ValkeyStore keeps selections in a Valkey-compatible database so several instances can
// serve the same session.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "playability"
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *ValkeyStore) Load(ctx context.Context, sessionID string) (playability.Selection, bool, error) {
	if sessionID == "" {
		return nil, false, nil
	}
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(sessionID)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var sel playability.Selection
	if err := json.Unmarshal([]byte(payload), &sel); err != nil {
		return nil, false, fmt.Errorf("decode selection: %w", err)
	}
	return sel, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, sessionID string, sel playability.Selection) error {
	payload, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(sessionID)).Value(string(payload))
	var cmd valkey.Completed
	if s.ttl > 0 {
		ttl := s.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(sessionID string) string {
	return fmt.Sprintf("%s:selection:%s", s.prefix, sessionID)
}

var _ playability.SelectionStore = (*ValkeyStore)(nil)
