package model

// LanguageCount is one row of the snippets-per-language aggregate.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int64  `json:"count"`
}

// UserCount is one row of the snippets-per-owner aggregate.
type UserCount struct {
	UserID int64 `json:"userId"`
	Count  int64 `json:"count"`
}

// Overview bundles the point-in-time aggregate report.
type Overview struct {
	TotalUsers         int64           `json:"totalUsers"`
	TotalSnippets      int64           `json:"totalSnippets"`
	TotalLanguages     int64           `json:"totalLanguages"`
	SnippetsByLanguage []LanguageCount `json:"snippetsByLanguage"`
	SnippetsByUser     []UserCount     `json:"snippetsByUser"`
}

// QueryResult holds the outcome of an operator-supplied query: column names
// in SELECT order and every row, values as the driver returned them.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
