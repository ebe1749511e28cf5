// Package health serves liveness and readiness probes.
//
// [LivenessHandler] always answers OK. [ReadinessHandler] runs a set of named
// [Checks] concurrently and answers 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "codec": cookieCodecCheck,
//	}, health.WithLogger(log)))
//
// Responses are plain text ("OK" / "Service Unavailable") unless the client
// sends Accept: application/json or ?format=json, in which case a [Response]
// is encoded.
package health
