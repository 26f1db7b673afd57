// Package types defines the records the renderer formats: issues, pull
// requests, comments, events, milestones, commits and files, plus the query
// that describes an issue listing.
//
// Records arrive as generic maps (decoded JSON or YAML) and are turned into
// these structs with Decode.
package types
