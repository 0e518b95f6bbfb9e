package cli

// Message constants
const (
	MsgRootShort = "Compile privacy and security scripts from declarative collections"
	MsgRootLong  = `scrub compiles OS-specific privacy and security tweaks, described in
declarative YAML collections, into a single executable script. Tweaks are
grouped into categories, can share code through reusable functions, and may
declare a revert counterpart that undoes them.`

	MsgScriptShort = "Compile a script from a collection"
	MsgScriptLong  = `Compile selected tweaks into a single script and print it to stdout.

With no arguments every script in the collection is compiled. Pass script
names to restrict the selection, --level to filter by recommendation tier
(strict includes standard), and --revert to emit the inverse script instead.`
	MsgScriptExample = `  # Compile every tweak for the current OS
  scrub script

  # Compile only the recommended standard tweaks for linux
  scrub script --os linux --level standard

  # Compile two specific tweaks
  scrub script "Clear bash history" "Clear DNS cache"

  # Emit the script that undoes the standard tweaks
  scrub script --level standard --revert

  # Compile from a remote collection
  scrub script --url https://example.org/collections/linux.yaml`

	MsgRunShort = "Compile and execute a script"
	MsgRunLong  = `Compile selected tweaks exactly like 'scrub script', then execute the
result. POSIX collections run in an embedded shell; batchfile collections
are written to a temporary file and handed to the operating system.`
	MsgRunExample = `  # Apply the standard tweaks for this machine
  scrub run --level standard

  # Undo them again
  scrub run --level standard --revert`

	MsgListShort = "List categories and scripts in a collection"
	MsgListLong  = `Show the collection's category tree with every script and its
recommendation tier.`

	MsgDocsShort = "Show documentation for a script or category"
	MsgDocsLong  = `Render the documentation of a single script or category: what it does,
its recommendation tier, whether it can be reverted, and reference links.`
	MsgDocsExample = `  scrub docs "Clear bash history"`

	MsgVersionShort = "Print version information"
)
