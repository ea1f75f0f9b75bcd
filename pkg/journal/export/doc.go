// Package export writes journal entries to JSON or CSV. It backs the
// history command's --format flag and the retention pruner's
// archive-before-delete option.
package export
