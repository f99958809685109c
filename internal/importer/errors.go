package importer

import "fmt"

// Kind categorizes pipeline errors for HTTP status mapping.
type Kind int

const (
	// KindUnknown represents an unclassified error.
	KindUnknown Kind = iota
	// KindInvalidInput indicates the request was malformed.
	KindInvalidInput
	// KindUpstreamFetch indicates the source page could not be retrieved.
	KindUpstreamFetch
	// KindModelInvocation indicates the extraction service call failed.
	KindModelInvocation
	// KindResponseParse indicates the extraction reply could not be
	// parsed or validated.
	KindResponseParse
)

// User-facing messages are short Arabic strings; the storefront serves a
// Moroccan market. Internal detail stays in the wrapped cause and the logs.
const (
	MsgURLRequired   = "الرابط مطلوب"
	MsgFetchFailed   = "فشل في جلب الصفحة. يرجى التأكد من الرابط."
	MsgModelFailed   = "تعذر الاتصال بخدمة الذكاء الاصطناعي. يرجى المحاولة لاحقًا."
	MsgParseFailed   = "تعذر قراءة بيانات المنتج. يرجى المحاولة مرة أخرى."
	MsgUnexpected    = "حدث خطأ غير متوقع"
	MsgTitleRequired = "عنوان المنتج أو وصفه مطلوب"
)

// PipelineError carries a category, a user message, and the original cause.
type PipelineError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

func fetchErr(cause error) *PipelineError {
	return &PipelineError{Kind: KindUpstreamFetch, Message: MsgFetchFailed, Cause: cause}
}

func modelErr(cause error) *PipelineError {
	return &PipelineError{Kind: KindModelInvocation, Message: MsgModelFailed, Cause: cause}
}

func parseErr(cause error) *PipelineError {
	return &PipelineError{Kind: KindResponseParse, Message: MsgParseFailed, Cause: cause}
}
