package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument     = 1000
	ErrCodeRequestTooLarge     = 1002
	ErrCodeInvalidID           = 1004
	ErrCodeUnsupportedFileType = 1005
	ErrCodeMissingRequired     = 1009

	// Domain state (2xxx)
	ErrCodeBoardNotFound  = 2001
	ErrCodeThreadNotFound = 2002
	ErrCodeFileNotFound   = 2003

	// Internal/system (4xxx)
	ErrCodeInternal     = 4001
	ErrCodeStoreFailure = 4002
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 413:
		return ErrCodeRequestTooLarge
	case 500:
		return ErrCodeInternal
	default:
		return 0
	}
}
