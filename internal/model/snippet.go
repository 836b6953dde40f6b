package model

// Snippet represents a saved code snippet.
//
// Name, Language and Code are plain strings (NULL in storage scans to "").
// ExampleCode, Stdin and ExpectedOutput are pointers because they are
// genuinely optional: absent and empty are different states, and the
// full-overwrite edit path (see SnippetEdit) can null them out.
//
// UserID is the owning user and is never zero for a stored snippet;
// anonymous sessions cannot write.
type Snippet struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Language       string  `json:"language"`
	Code           string  `json:"code"`
	ExampleCode    *string `json:"exampleCode,omitempty"`
	Stdin          *string `json:"stdin,omitempty"`
	ExpectedOutput *string `json:"expectedOutput,omitempty"`
	Private        bool    `json:"private"`
	UserID         int64   `json:"userId"`
}

// SnippetEdit carries the field set for the full-overwrite edit operation.
//
// EVERY field is written on edit, supplied or not: a nil pointer writes NULL
// over whatever was stored before. Callers that want to keep a field must
// resend it. This "last write replaces everything" behaviour is intentional
// and load-bearing: do not convert it into a patch-style partial update.
// The narrow three-field update is a separate operation (UpdateMeta).
type SnippetEdit struct {
	Name           *string `json:"name"`
	Language       *string `json:"language"`
	Code           *string `json:"code"`
	ExampleCode    *string `json:"exampleCode"`
	Stdin          *string `json:"stdin"`
	ExpectedOutput *string `json:"expectedOutput"`
	Private        *bool   `json:"private"`
}
