// Package health serves liveness and readiness probes.
//
//	checks := health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}
//	r.Get("/health/ready", health.ReadinessHandler(checks))
package health
