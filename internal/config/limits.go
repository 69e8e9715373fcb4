package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxConversationTitleLength is the maximum length for conversation titles.
	// Same as folder names since both are path labels.
	MaxConversationTitleLength = 255

	// MaxPathLength bounds a full materialized path. Deep hierarchies hit
	// this before any index key limit does.
	MaxPathLength = 4096

	// MaxIconLength is the maximum length of a conversation icon identifier.
	MaxIconLength = 64

	// MaxArchiveSize is the largest YAML archive accepted by import, in bytes.
	MaxArchiveSize = 10 << 20
)
