package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/kv"
	"github.com/aretw0/jotter/pkg/storage"
)

// Session bundles the layers of an open store: the key-value backend, the
// slot adapter on top of it and the note service owning the collection.
type Session struct {
	Service *core.Service
	Adapter *storage.Adapter
	Store   kv.Store
}

// Close releases the backend.
func (s *Session) Close() error {
	return s.Service.Close()
}

// New opens the store at uri and returns a service holding its collection.
//
//	svc, err := jotter.New("./notes", jotter.WithVersioning(true))
//
// The URI argument is backend-specific (directory for 'fs', database file for
// 'sqlite', URL or address for 'redis', DSN for 'postgres').
func New(uri string, opts ...Option) (*core.Service, error) {
	sess, err := Open(context.Background(), uri, opts...)
	if err != nil {
		return nil, err
	}
	return sess.Service, nil
}

// Open is New for callers that also need the backend or the adapter.
func Open(ctx context.Context, uri string, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := initStore(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	adapter, err := newAdapter(store, o)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	svcOpts := []core.Option{core.WithEventBuffer(o.eventBuffer)}
	if o.logger != nil {
		svcOpts = append(svcOpts, core.WithLogger(o.logger))
	}
	service := core.NewService(adapter, svcOpts...)

	if err := load(ctx, service, adapter, o); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Session{Service: service, Adapter: adapter, Store: store}, nil
}

func newAdapter(store kv.Store, o *options) (*storage.Adapter, error) {
	codec, err := storage.CodecByName(o.format)
	if err != nil {
		return nil, err
	}

	adapterOpts := []storage.Option{
		storage.WithCodec(codec),
		storage.WithReadOnly(o.readOnly),
	}
	if o.key != "" {
		adapterOpts = append(adapterOpts, storage.WithKey(o.key))
	}
	if o.logger != nil {
		adapterOpts = append(adapterOpts, storage.WithLogger(o.logger))
	}
	return storage.New(store, adapterOpts...), nil
}

// load populates the service from its slot, optionally discarding a slot
// that cannot be decoded.
func load(ctx context.Context, service *core.Service, adapter *storage.Adapter, o *options) error {
	err := service.Reload(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, core.ErrCorruptState) || !o.discardCorrupt {
		return err
	}

	if o.logger != nil {
		o.logger.Warn("discarding corrupt notes slot", "key", adapter.Key(), "error", err)
	}
	if !o.readOnly {
		if err := adapter.Reset(ctx); err != nil {
			return fmt.Errorf("failed to discard corrupt slot: %w", err)
		}
	}
	// The slot is gone (or ignored), so the session starts empty.
	return nil
}
