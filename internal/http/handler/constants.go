package handler

const (
	paramCaseID    = "case_id"
	paramFileID    = "file_id"
	paramSessionID = "session_id"

	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	msgCaseIDRequired          = "case_id is required"
	msgFileIDRequired          = "file_id is required"
	msgSessionIDRequired       = "session_id is required"
	msgFileIDsRequired         = "fileIds must name at least one asset"
	msgInvalidRequestBody      = "invalid request body"
	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgSessionCancelled        = "edit session cancelled"
	msgDraftSaved              = "draft saved"
)
