package session

import (
	"context"
	"reflect"
)

// LegacyVersion is the release that deprecated the array-style accessors.
const LegacyVersion = "1.9"

// HookSessionGet is triggered by OffsetGet to resolve attributes missing from the raw store.
const HookSessionGet = "session:get"

// RawStore is the request-scoped key/value store behind the deprecated accessors.
// It is separate from the Storage used by Get, Set, Has and Remove, so values
// written through one API are not visible through the other.
type RawStore map[string]any

// Notifier receives deprecation notices.
type Notifier interface {
	Notice(ctx context.Context, msg, version string) bool
}

// HookTrigger dispatches plugin hooks.
type HookTrigger interface {
	Trigger(ctx context.Context, hook, typ string, params map[string]any, returnValue any) any
}

type noopNotifier struct{}

func (noopNotifier) Notice(context.Context, string, string) bool { return false }

// Raw returns the store used by the deprecated accessors.
func (s *Session) Raw() RawStore {
	return s.raw
}

// OffsetSet writes value straight to the raw store.
//
// Deprecated: Use Set.
func (s *Session) OffsetSet(key string, value any) {
	s.deprecated("OffsetSet")
	s.raw[key] = value
}

// OffsetGet reads key from the raw store. On a miss the session:get hook is
// triggered with key as type and the result is cached in the raw store.
//
// Deprecated: Use Get.
func (s *Session) OffsetGet(key string) any {
	s.deprecated("OffsetGet")

	if v, ok := s.raw[key]; ok && v != nil {
		return v
	}

	var value any
	if s.hooks != nil {
		value = s.hooks.Trigger(context.Background(), HookSessionGet, key, nil, nil)
	}
	if value != nil {
		s.notifier.Notice(context.Background(), "Plugin hook session:get has been deprecated.", LegacyVersion)
	}

	s.raw[key] = value
	return value
}

// OffsetUnset deletes key from the raw store.
//
// Deprecated: Use Remove.
func (s *Session) OffsetUnset(key string) {
	s.deprecated("OffsetUnset")
	delete(s.raw, key)
}

// OffsetExists reports whether key is set in the raw store or resolves to a
// truthy value through OffsetGet.
//
// Deprecated: Use Has.
func (s *Session) OffsetExists(key string) bool {
	s.deprecated("OffsetExists")

	if v, ok := s.raw[key]; ok && v != nil {
		return true
	}
	return truthy(s.OffsetGet(key))
}

// IsSet is an alias of OffsetExists.
//
// Deprecated: Use Has.
func (s *Session) IsSet(key string) bool {
	s.deprecated("IsSet")
	return s.OffsetExists(key)
}

// Del removes key through the façade storage.
//
// Deprecated: Use Remove.
func (s *Session) Del(key string) {
	s.deprecated("Del")
	s.Remove(key)
}

func (s *Session) deprecated(method string) {
	s.notifier.Notice(context.Background(), "Session::"+method+" has been deprecated.", LegacyVersion)
}

// truthy mirrors the loose boolean conversion old call sites relied on:
// nil, false, zero numbers, "", "0" and empty collections are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
