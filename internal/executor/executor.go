// Package executor defines the interface for running a snippet on a remote
// execution service.
package executor

import "context"

// Request is one execution of a piece of source code.
// LanguageID is the execution service's language identifier (the catalog
// stores the mapping). Runs defaults to 1 when zero.
type Request struct {
	SourceCode string `json:"sourceCode"`
	LanguageID int64  `json:"languageId"`
	Runs       int    `json:"runs,omitempty"`
}

// Result is the finished job. StatusID is the terminal status reported by
// the service; Raw is the full job resource as indented JSON, passed through
// opaquely: stdout, stderr, timings and whatever else the service includes.
// The client does not interpret terminal statuses: success, compile error
// and runtime error all land here, distinguished only inside Raw.
type Result struct {
	StatusID int    `json:"statusId"`
	Raw      []byte `json:"-"`
}

// Runner submits code and blocks until the job leaves the queue.
type Runner interface {
	Execute(ctx context.Context, req Request) (*Result, error)
}
