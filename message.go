package linksum

import "time"

// Message is an inbound chat message at the boundary of the system. The
// hosting chat framework is responsible for populating it; linksum only
// needs to locate a URL inside the content.
type Message struct {
	// ChatID identifies the conversation (group or direct).
	ChatID string

	// Sender is the display name of the chat, used against the group
	// exclusion list.
	Sender string

	// Content is either a bare URL, free text, or a structured share-card
	// payload when IsShare is set.
	Content string

	IsGroup bool
	IsShare bool
}

// Reply is the outbound boundary: either sanitized, length-capped article
// text (possibly summarized) or a terminal user-facing error message.
type Reply struct {
	// Text is the user-visible reply body.
	Text string

	// Article is the accepted extraction result, when one was produced.
	Article *Article
}

// PendingShare is a share message cached while awaiting an explicit trigger.
// At most one entry exists per chat key; a new share overwrites the previous
// one.
type PendingShare struct {
	ChatID     string
	RawContent string
	InsertedAt time.Time
}

// ShareCache holds pending shares with a TTL. Implementations must
// serialize all three operations; the cache is the only shared mutable
// resource across concurrent extraction requests.
type ShareCache interface {
	// Put stores content for a chat, overwriting any existing entry with a
	// fresh timestamp.
	Put(chatID, content string)

	// TakeIfPresent atomically removes and returns the entry for a chat.
	TakeIfPresent(chatID string) (PendingShare, bool)

	// EvictExpired removes every entry older than the TTL as of now.
	EvictExpired(now time.Time)
}
