// Package identity carries the authenticated caller identity through the
// request context.
//
// An Identity is attached by the token middleware and read by endpoints that
// gate mutating operations on the curator or admin role. Read access to the
// broker is unrestricted and never consults an Identity.
package identity
