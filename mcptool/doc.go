// Package mcptool ingests MCP server tool listings into capability
// records. It understands both structured jsonschema input schemas and
// plain decoded maps, and reads tags, category, and security metadata
// from the tool's Meta block.
package mcptool
