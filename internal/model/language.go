package model

// Language is one entry of the supported-language catalog.
//
// ID is the remote execution service's language identifier; we store it
// verbatim so a snippet's language can be mapped straight to a submission.
// The catalog is only ever replaced wholesale, never edited row by row.
type Language struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
