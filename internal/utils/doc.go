// Package utils holds the low-level helpers shared by the vendor adapters:
// JSON-over-HTTP round-trips ([DoPostSync], [DoPostRaw], [DoGet]) that report
// non-2xx answers as [HTTPStatusError], plus small string and pointer helpers.
package utils
