package logger

// Shared log field name constants, so queries over the structured
// logs stay consistent across the project.
const (
	// FieldTraceID request trace id
	FieldTraceID = "traceId"

	// FieldFolderID folder identifier
	FieldFolderID = "folderId"

	// FieldFileID file identifier
	FieldFileID = "fileId"

	// FieldParentID parent folder identifier
	FieldParentID = "parentId"

	// FieldName entity display name
	FieldName = "name"

	// FieldMime content type
	FieldMime = "mime"

	// FieldSize content size in bytes
	FieldSize = "size"

	// FieldDuration elapsed time
	FieldDuration = "duration"

	// FieldMethod handler or method name
	FieldMethod = "method"

	// FieldError error message
	FieldError = "error"

	// FieldBucket storage bucket name
	FieldBucket = "bucket"

	// FieldFileKey storage object key
	FieldFileKey = "fileKey"
)
