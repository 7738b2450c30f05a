// Package redis opens go-redis clients from a URL-based Config and exposes
// health and shutdown hooks for the application runtime.
//
//	client, err := redis.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	app := dispatch.New(
//		dispatch.WithShutdownHook(redis.Shutdown(client)),
//	)
package redis
