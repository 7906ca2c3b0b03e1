// Package common contains shared constants and sentinel errors used across
// bucketlist components.
package common

// AuthorizationHeaderName is the gRPC metadata key used to carry the
// access token on inbound requests.
const AuthorizationHeaderName = "authorization"

// BearerPrefix is the optional scheme prefix in front of the token value.
const BearerPrefix = "Bearer "
