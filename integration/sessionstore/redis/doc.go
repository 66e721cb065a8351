// Package redis implements session.SaveHandler on Redis.
//
// Each session is stored as a JSON document under prefix+id with the TTL passed
// to Write. Redis expires keys itself, so GC is a no-op.
//
// Values go through encoding/json: numbers come back as float64, slices as
// []any and structs as map[string]any.
package redis
