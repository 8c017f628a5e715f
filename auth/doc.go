// Package auth decides who may see health details.
//
// Authentication turns request headers into an Identity (JWT bearer tokens
// or API keys). Authorization answers a single question: may this identity
// view component details? The ShowDetails policy mirrors the usual
// never / always / when_authorized switch, optionally narrowed to roles.
//
// The health endpoint itself stays public: Middleware attaches an anonymous
// identity when credentials are missing or invalid, and the endpoint simply
// withholds details.
package auth
