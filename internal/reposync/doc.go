// Package reposync mirrors remote git repositories into local working copies.
//
// A Service resolves remote addresses to repository handles and opens them as
// Repository values that clone, pull, switch branches, and extract added lines
// between revisions. Authorship queries are answered by Service.Committer.
// Every git invocation receives its working directory explicitly, so the
// working directory of the calling process is never changed.
//
// Operations are synchronous and unlocked: callers serialize work on the same
// local copy and bound its latency through the supplied context.
package reposync
