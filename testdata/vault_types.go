package vault

// ReadNoteArgs are the arguments for reading a note.
type ReadNoteArgs struct {
	Path string `json:"path" jsonschema:"Path to the note relative to the vault root"`
}

// WriteNoteArgs are the arguments for creating or overwriting a note.
type WriteNoteArgs struct {
	Path    string `json:"path" jsonschema:"Path to the note relative to the vault root"`
	Content string `json:"content" jsonschema:"Full markdown content of the note"`
	Append  bool   `json:"append,omitempty" jsonschema:"Append to the note instead of overwriting"`
}

// MoveNoteArgs are the arguments for moving or renaming a note.
type MoveNoteArgs struct {
	Path        string `json:"path" jsonschema:"Current path of the note"`
	Destination string `json:"destination" jsonschema:"New path for the note"`
}

// DeleteNoteArgs are the arguments for deleting a note.
type DeleteNoteArgs struct {
	Path  string `json:"path" jsonschema:"Path to the note relative to the vault root"`
	Trash bool   `json:"trash,omitempty" jsonschema:"Move to trash instead of deleting permanently"`
}

// BulkTagArgs are the arguments for tagging a set of notes at once.
type BulkTagArgs struct {
	Paths  []string `json:"paths" jsonschema:"Paths of the notes to modify"`
	Tag    string   `json:"tag" jsonschema:"Tag to add or remove"`
	Action string   `json:"action,omitempty" jsonschema:"Tag action: 'add' (default), 'remove'"`
	DryRun bool     `json:"dry_run,omitempty" jsonschema:"Report what would change without writing"`
}

// BulkMoveArgs are the arguments for moving a set of notes at once.
type BulkMoveArgs struct {
	Paths       []string `json:"paths" jsonschema:"Paths of the notes to move"`
	Destination string   `json:"destination" jsonschema:"Folder to move the notes into"`
	DryRun      bool     `json:"dry_run,omitempty" jsonschema:"Report what would change without writing"`
}

// SearchNotesArgs are the arguments for full-text search.
type SearchNotesArgs struct {
	Query string `json:"query" jsonschema:"Text to search for"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
}

// SearchByDateArgs are the arguments for date-filtered search.
type SearchByDateArgs struct {
	DateType string `json:"type,omitempty" jsonschema:"Date to filter on: 'created' or 'modified'"`
	Since    string `json:"since" jsonschema:"Earliest date to include (YYYY-MM-DD)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
}
