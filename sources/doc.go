// Package sources manages capability source providers: pluggable
// backends that supply tool, skill, extension, channel, and manifest
// records for indexing.
//
// A Registry aggregates every registered provider's records into one
// SourceSet, which feeds the discovery engine's Initialize and
// RefreshIndex operations.
package sources
