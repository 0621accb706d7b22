package domain

// Keyword names one declarative instruction of the dialog script.
// The set is closed: the dispatcher maps each keyword to exactly one
// handler, and extension means adding a constant plus a handler.
type Keyword string

const (
	// KeywordUseWebsite declares a website resource.
	// Compile: registers a crawl job. Runtime: associates the collection.
	KeywordUseWebsite Keyword = "USE WEBSITE"

	// KeywordUseKB declares a knowledge-base resource.
	KeywordUseKB Keyword = "USE KB"

	// KeywordCreateDraft composes an email draft, merging in the most
	// recent previously sent message to the same recipient.
	KeywordCreateDraft Keyword = "CREATE DRAFT"

	// KeywordFind queries the session's associated collections.
	KeywordFind Keyword = "FIND"

	// KeywordPlay renders media content on the active channel.
	KeywordPlay Keyword = "PLAY"

	// KeywordQRCode generates a QR code image from data.
	KeywordQRCode Keyword = "QR CODE"

	// KeywordSendSMS dispatches a short message through a provider.
	KeywordSendSMS Keyword = "SEND SMS"

	// KeywordClearWebsites removes all associated collections from the
	// session.
	KeywordClearWebsites Keyword = "CLEAR WEBSITES"
)

// ResourceKeyword returns the resource kind a keyword declares, or false
// when the keyword does not declare a resource. These are the keywords the
// compile pass registers.
func (k Keyword) ResourceKeyword() (ResourceKind, bool) {
	switch k {
	case KeywordUseWebsite:
		return ResourceWebsite, true
	case KeywordUseKB:
		return ResourceKB, true
	default:
		return "", false
	}
}

// Invocation is one keyword call extracted from script source.
// It exists only on the compiler side; the runtime receives the keyword
// name and evaluated arguments directly.
type Invocation struct {
	// Keyword is the invoked keyword.
	Keyword Keyword

	// Args are the literal or resolved argument values, in order.
	Args []string

	// Line is the 1-based source line of the invocation.
	Line int
}

// Arg returns the i-th argument or an empty string when absent.
func (inv Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}
	return inv.Args[i]
}
