// Package domain models dealer locations, postal-code resolution, and
// shopper leads for the dealer locator.
//
// # Postal Codes
//
// Only 5-digit US ZIP codes are accepted ("75080"). ZIP+4 and other shapes
// are rejected by [ValidatePostalCode] before any cache or provider access.
//
// # Distances
//
// Distances are great-circle distances on a sphere of radius
// [EarthRadiusMiles] computed with the haversine formula (see [DistanceMiles]).
// The haversine term is clamped to [0, 1] so antipodal and near-identical
// points never produce NaN. Results are in statute miles.
//
// # Errors
//
// Two error kinds cross component boundaries:
//
//	ValidationError  malformed postal code, non-positive radius or limit,
//	                 invalid lead input. Always detected before I/O.
//	ResolutionError  the geocoding provider failed, timed out, or had no
//	                 match. The message is fixed; the cause is kept for logs.
//
// Callers test for them with [IsValidation] and [IsResolution].
package domain
