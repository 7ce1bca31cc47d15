package sheeterr

// Error carries a short machine code plus the message shown on the
// status line. The wrapped cause stays private to log output.
type Error struct {
	errorCode  string
	msgToUser  string // public
	dbgInfoErr error  // private, for debugging

	blocking bool // optional, whether the UI should treat it as a blocking failure
}

func (e *Error) Error() string {
	return e.msgToUser
}

func (e *Error) ErrorCode() string {
	return e.errorCode
}

func (e *Error) DebugInfo() error {
	return e.dbgInfoErr
}

func (e *Error) SetDebug(err error) *Error {
	e.dbgInfoErr = err
	return e
}

func (e *Error) Blocking() bool {
	return e.blocking
}

func (e *Error) SetBlocking() *Error {
	e.blocking = true
	return e
}

func New(errorCode string, msgToUser string) *Error {
	return &Error{
		errorCode: errorCode,
		msgToUser: msgToUser,
	}
}

const (
	ErrCodeBadDelayDays    = "bad_delay_days"
	ErrCodeBadVariantCount = "bad_variant_count"
	ErrCodeNoStudent       = "no_student_selected"
	ErrCodeRubricLoad      = "rubric_load_failed"
	ErrCodeRosterLoad      = "roster_load_failed"
	ErrCodeRosterEmpty     = "roster_empty"
	ErrCodeReportRender    = "report_render_failed"
	ErrCodeClipboard       = "clipboard_unavailable"
)

func ErrBadDelayDays() *Error {
	return New(
		ErrCodeBadDelayDays,
		"delay days must be a non-negative whole number",
	)
}

func ErrBadVariantCount() *Error {
	return New(
		ErrCodeBadVariantCount,
		"variant count must be a positive whole number",
	)
}

func ErrNoStudentSelected() *Error {
	return New(
		ErrCodeNoStudent,
		"please select a group and a student first",
	)
}

func ErrRubricLoad() *Error {
	return New(
		ErrCodeRubricLoad,
		"failed to load grading criteria",
	).SetBlocking()
}

func ErrRosterLoad() *Error {
	return New(
		ErrCodeRosterLoad,
		"failed to load the student roster",
	).SetBlocking()
}

func ErrRosterEmpty() *Error {
	return New(
		ErrCodeRosterEmpty,
		"the student roster is empty, add rows to it first",
	)
}

func ErrReportRender() *Error {
	return New(
		ErrCodeReportRender,
		"failed to render the grade sheet",
	)
}

func ErrClipboardUnavailable() *Error {
	return New(
		ErrCodeClipboard,
		"copying images to the clipboard is not supported on this platform",
	)
}
