// Package commands defines the confcms CLI, which prints conference content
// straight from the CMS backends.
//
// Commands
//
//   - speakers   Print every speaker as JSON
//   - stages     Print every stage as JSON
//   - sponsors   Print every sponsor as JSON
//   - jobs       Print every job posting as JSON
//   - snapshot   Print all four lists in one JSON object
//   - prefix     Print the Content Hub field prefix for a type identifier
//
// # Implementation
//
// The root command loads the configuration and builds the content provider
// before any subcommand runs. Visibility filters apply to the MCP tools only,
// so the CLI always prints the unfiltered lists.
package commands
