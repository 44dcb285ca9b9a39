package entity

// SessionState tracks the lifecycle of one edit session.
type SessionState string

const (
	SessionStateOpening SessionState = "OPENING"
	SessionStateEditing SessionState = "EDITING"
	SessionStateExited  SessionState = "EXITED"
)

// EditMode selects which columns of a table accept edits.
type EditMode string

const (
	EditModeAll          EditMode = "ALL"
	EditModeSingleColumn EditMode = "SINGLE_COLUMN"
)

// AuditAction labels the session events recorded on the audit trail.
type AuditAction string

const (
	AuditSessionOpened AuditAction = "SESSION_OPENED"
	AuditCellCommitted AuditAction = "CELL_COMMITTED"
	AuditEditRejected  AuditAction = "EDIT_REJECTED"
	AuditCSVLoaded     AuditAction = "CSV_LOADED"
	AuditCSVSaved      AuditAction = "CSV_SAVED"
	AuditXLSXExported  AuditAction = "XLSX_EXPORTED"
	AuditSessionExited AuditAction = "SESSION_EXITED"
)
