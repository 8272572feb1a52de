// Package capability defines the capability descriptor model and the
// normalizer that converts heterogeneous source records into it.
//
// A capability is any indexable ability an agent can use: a tool, a
// skill, an extension, or a communication channel. Sources supply
// records in their own shapes (tool metadata, skill files, extension
// manifests, channel definitions, hand-authored manifest entries); the
// normalizer is the only code that understands those shapes and maps
// each of them onto the uniform [Descriptor].
//
// # Descriptor Identity
//
// Descriptor IDs follow the "{kind}:{name}" convention, e.g.
// "tool:web-search" or "skill:summarize". IDs are unique within one
// index generation; re-adding an existing ID overwrites in place.
//
// # Normalization
//
//	set := capability.SourceSet{
//	    Tools:  []capability.ToolRecord{{Name: "web-search", Description: "Search the web"}},
//	    Skills: []capability.SkillRecord{{Name: "summarize", RequiredTools: []string{"web-search"}}},
//	}
//	descs := capability.Normalize(set, logger)
//
// Malformed records (missing name) are skipped with a warning; the
// remaining records are normalized undisturbed.
package capability
