package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/MKhiriev/flow-bank/internal/logger"
)

// readJSON decodes the value under key into dst. A missing key and a value
// that is not valid JSON both report found=false; the latter is logged and
// otherwise treated as if nothing were stored. dst is left untouched unless
// the whole value decodes.
func readJSON(ctx context.Context, kv KeyValueStore, key string, dst any) (bool, error) {
	_, decoded, err := readStored(ctx, kv, key, dst)
	return decoded, err
}

// readStored is readJSON that also reports whether key holds any value at
// all, decodable or not.
func readStored(ctx context.Context, kv KeyValueStore, key string, dst any) (present, decoded bool, err error) {
	log := logger.FromContext(ctx)

	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("error reading %q: %w", key, err)
	}

	// json.Unmarshal keeps whatever it decoded before a type error
	target := reflect.ValueOf(dst).Elem()
	fresh := reflect.New(target.Type())
	if err := json.Unmarshal(raw, fresh.Interface()); err != nil {
		log.Warn().Err(err).Str("func", "store.readStored").Str("key", key).Msg("ignoring malformed stored value")
		return true, false, nil
	}
	target.Set(fresh.Elem())

	return true, true, nil
}

func encodeJSON(key string, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error encoding %q: %w", key, err)
	}
	return raw, nil
}
