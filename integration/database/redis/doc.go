// Package redis provides Redis client initialization and health checking on top
// of go-redis.
//
// Connect validates the redis:// or rediss:// URL, creates a client and pings it
// with exponential backoff until it answers, the retries run out or
// Config.ConnectTimeout passes.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// KV adapts a client to a plain byte store. The autoload manager uses it to
// persist its component map:
//
//	autoloader := autoload.New(autoload.WithStorage(redis.NewKV(client, redis.WithKeyPrefix("engine:"))))
package redis
