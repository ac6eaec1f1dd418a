package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iamcryptofennec/simple-store/internal/domain"
)

//go:generate mockgen -source internal/cart/persist.go -destination=internal/cart/persist_mock_test.go -package=cart

// SchemaVersion is written next to the items. Records carrying any other
// version are ignored on load.
const SchemaVersion = 0

// Persister is the durable side of the store. Load returns nil items when
// nothing has been saved yet.
type Persister interface {
	Load(ctx context.Context) ([]domain.CartItem, error)
	Save(ctx context.Context, items []domain.CartItem) error
}

// KV is any durable key-value storage able to hold one blob per key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Record is the persisted envelope: {"state":{"items":[...]},"version":0}.
// Only items are stored; totals and counts are derived on read.
type Record struct {
	State   RecordState `json:"state"`
	Version int         `json:"version"`
}

type RecordState struct {
	Items []domain.CartItem `json:"items"`
}

// ErrVersionMismatch is returned by Decode for records written under an
// unknown schema version.
type ErrVersionMismatch struct {
	Got, Want int
}

func (e *ErrVersionMismatch) Error() string {
	return fmt.Sprintf("cart record version %d, want %d", e.Got, e.Want)
}

func Encode(items []domain.CartItem) ([]byte, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	return json.Marshal(Record{
		State:   RecordState{Items: items},
		Version: SchemaVersion,
	})
}

func Decode(raw []byte) ([]domain.CartItem, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode cart record: %w", err)
	}
	if rec.Version != SchemaVersion {
		return nil, &ErrVersionMismatch{Got: rec.Version, Want: SchemaVersion}
	}
	return rec.State.Items, nil
}

// KVPersister stores the cart record under a fixed key.
type KVPersister struct {
	kv  KV
	key string
}

func NewKVPersister(kv KV, key string) *KVPersister {
	return &KVPersister{kv: kv, key: key}
}

func (p *KVPersister) Load(ctx context.Context) ([]domain.CartItem, error) {
	raw, ok, err := p.kv.Get(ctx, p.key)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", p.key, err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	return Decode(raw)
}

func (p *KVPersister) Save(ctx context.Context, items []domain.CartItem) error {
	raw, err := Encode(items)
	if err != nil {
		return err
	}
	if err := p.kv.Set(ctx, p.key, raw); err != nil {
		return fmt.Errorf("write %q: %w", p.key, err)
	}
	return nil
}
