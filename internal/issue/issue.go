// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	JobFileParseErrorId Id = iota + 1
	JobNotFoundId
	EmptyCommandId
	NoPackageFoundId
	WatcherFailedId
	ConfigLoadFailedId
)

type (
	// Id identifies an issue in the catalog.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is a documentation link shown under an issue.
	HttpLink string

	// Issue is a catalogued explanation of a common failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

// Id returns the catalog identifier.
func (i *Issue) Id() Id { return i.id }

// MarkdownMsg returns the raw Markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink { return slices.Clone(i.docLinks) }

// Render renders the issue for the terminal using the given glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(style string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), style)
}

var (
	render = glamour.Render

	configDocs HttpLink = "https://dystroy.org/bacon/config/"

	jobFileParseErrorIssue = &Issue{
		id: JobFileParseErrorId,
		mdMsg: `
# Failed to parse the job file!

bacon found a settings file but could not read it.

## Common issues:
- Invalid CUE or TOML syntax (missing quotes, braces, brackets)
- Unknown field names, e.g. ` + "`extra_args`" + ` instead of ` + "`additional_job_args`" + `
- A job without ` + "`command`" + ` or ` + "`command_line`" + `

## Things you can try:
~~~
$ bacon config show
~~~`,
		docLinks: []HttpLink{configDocs},
	}

	jobNotFoundIssue = &Issue{
		id: JobNotFoundId,
		mdMsg: `
# Job not found!

The requested job is not defined in the default jobs, your preferences, or the
package's bacon file.

## Things you can try:
- List the available jobs:
~~~
$ bacon jobs
~~~
- Scope a test job with ` + "`bacon resolve test:my_test`",
		docLinks: []HttpLink{configDocs},
	}

	emptyCommandIssue = &Issue{
		id: EmptyCommandId,
		mdMsg: `
# The job has an empty command!

A job needs at least the executable to run. If the command only holds
environment variables, check that they are defined.

## Example:
~~~cue
jobs: check: command: ["cargo", "check", "--color", "always"]
~~~`,
		docLinks: []HttpLink{configDocs},
	}

	noPackageFoundIssue = &Issue{
		id: NoPackageFoundId,
		mdMsg: `
# No package found!

bacon looks for a Cargo.toml or a bacon file in the given directory and its
parents.

## Things you can try:
- Run bacon from inside your project
- Pass the project directory with ` + "`--path`",
	}

	watcherFailedIssue = &Issue{
		id: WatcherFailedId,
		mdMsg: `
# The file watcher stopped!

This usually means the system ran out of inotify watches or file descriptors.

## Things you can try:
~~~
$ sudo sysctl fs.inotify.max_user_watches=524288
~~~
- Add large generated directories to the job's ` + "`ignore`" + ` list`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load your preferences!

The user preferences file could not be loaded; built-in defaults are used.

## Things you can try:
- Check the file in your config directory (` + "`$XDG_CONFIG_HOME/bacon/prefs.cue`" + `)
- Pass another file with ` + "`--config`",
		docLinks: []HttpLink{configDocs},
	}

	issues = map[Id]*Issue{
		jobFileParseErrorIssue.Id(): jobFileParseErrorIssue,
		jobNotFoundIssue.Id():       jobNotFoundIssue,
		emptyCommandIssue.Id():      emptyCommandIssue,
		noPackageFoundIssue.Id():    noPackageFoundIssue,
		watcherFailedIssue.Id():     watcherFailedIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, id := range slices.Sorted(maps.Keys(issues)) {
		out = append(out, issues[id])
	}
	return out
}

// Get returns the issue with the given id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
