// Package observability owns prometheus collectors for detection and dispatch.
package observability
