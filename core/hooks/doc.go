// Package hooks implements the plugin hook service: named extension points whose
// handlers may inspect and replace a value as it passes through.
//
// A hook is identified by a name and a type. Handlers are registered for an exact
// pair or with the "all" wildcard in either position, and run in ascending priority
// order (registration order breaks ties). Each handler receives the current value
// and either returns a replacement with ok=true or leaves it untouched with ok=false.
//
//	svc := hooks.New()
//	svc.Register("session:get", "cart", func(ctx context.Context, h hooks.Event) (any, bool) {
//		return []int{1, 2, 3}, true
//	}, hooks.DefaultPriority)
//
//	v := svc.Trigger(ctx, "session:get", "cart", nil, nil) // []int{1, 2, 3}
//
// The service is safe for concurrent use. Handlers may register or unregister
// other handlers; changes apply to the next Trigger call.
package hooks
