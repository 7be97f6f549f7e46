// Package clickup wraps the ClickUp REST API (v2) with typed models,
// token authentication, client-side rate limiting, and retry with
// exponential backoff.
//
// The client enforces a token bucket matched to ClickUp's documented
// rate limit before every request and retries 429/5xx responses,
// honoring Retry-After. Task listing follows ClickUp's page-based
// pagination transparently.
//
// Tasks convert to tql.Record values via Task.Record for client-side
// filtering with the Task Query Language.
package clickup
