// Package endpoint serves health reports over HTTP in the draft
// application/health+json format.
//
// Handler turns a GET request into health.Options, runs the checks through
// a health.Engine and writes the Result:
//
//	GET /health?include=db,cache&timeoutMs=2000&level=detailed
//
// Query parameters:
//
//   - include, exclude: component names, repeatable or comma separated
//     (includeComponents and excludeComponents are accepted as aliases)
//   - timeoutMs: positive per-check timeout in milliseconds
//   - level: "detailed" asks for per-component results
//
// Details are included only when the caller asks for them and the
// configured auth.Authorizer admits the identity found in the request
// context (see auth.Middleware). The response status is 200 for a healthy
// report and 503 otherwise. Malformed parameters get 400 and a rate limited
// request gets 429.
package endpoint
