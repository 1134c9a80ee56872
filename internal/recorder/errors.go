package recorder

import "codeberg.org/mutker/devconsole/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDBPath = errors.ErrorCode("recorder_invalid_db_path")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("recorder_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("recorder_schema_validation_failed")
	ErrSchemaMigrationFailed  = errors.ErrorCode("recorder_schema_migration_failed")
	ErrTransactionFailed      = errors.ErrorCode("recorder_transaction_failed")

	// Storage Errors
	ErrStorageInit  = errors.ErrInitFailed
	ErrStorageClose = errors.ErrShutdownFailed
	ErrStorageQuery = errors.ErrorCode("recorder_storage_query_failed")

	// Recording Errors
	ErrRecordFailed     = errors.ErrorCode("recorder_record_failed")
	ErrClosed           = errors.ErrorCode("recorder_closed")
	ErrOperationTimeout = errors.ErrTimeout
)
