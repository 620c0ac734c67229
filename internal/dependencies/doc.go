// Package dependencies assembles the reposync service graph, substituting
// operating-system defaults for collaborators that callers leave unset.
package dependencies
