package pipeline

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/linksum"
)

// processingNotice is sent once when work on a share begins; it is
// suppressed on retries.
const processingNotice = "🎉正在为您生成总结，请稍候..."

// terminalErrorText is the generic user-facing message after the retry
// budget is exhausted. Kept deliberately vague: the real cause is usually
// a login wall, an access restriction, or network instability, and the
// user's options are the same either way.
const terminalErrorText = "抱歉，无法获取文章内容。可能是因为:\n" +
	"1. 文章需要登录或已过期\n" +
	"2. 文章有特殊的访问限制\n" +
	"3. 网络连接不稳定\n\n" +
	"建议您:\n" +
	"- 直接打开链接查看\n" +
	"- 稍后重试\n" +
	"- 尝试其他文章"

// UrlExtractor runs one full orchestration for a payload. Satisfied by
// *Orchestrator; narrowed to an interface so the service is testable
// without a real pipeline.
type UrlExtractor interface {
	Extract(ctx context.Context, payload string) (*linksum.Article, error)
}

// NotifyFunc delivers an out-of-band notice to a chat (the "processing
// started" message). May be nil.
type NotifyFunc func(chatID, text string)

// Service is the chat-facing entry point. It owns the pending-share cache
// and decides, per message, whether to extract now, cache for a later
// trigger, or do nothing.
type Service struct {
	cfg        linksum.Config
	classifier *linksum.Classifier
	cache      linksum.ShareCache
	extractor  UrlExtractor
	summarizer linksum.Summarizer
	notify     NotifyFunc
	logger     *slog.Logger
	now        func() time.Time
	maxRetries int
}

// ServiceParams holds the service dependencies. Summarizer and Notify may
// be nil.
type ServiceParams struct {
	Config     linksum.Config
	Classifier *linksum.Classifier
	Cache      linksum.ShareCache
	Extractor  UrlExtractor
	Summarizer linksum.Summarizer
	Notify     NotifyFunc
	Logger     *slog.Logger

	// Clock overrides the time source for tests.
	Clock func() time.Time

	// MaxRetries overrides the retry budget; <0 means zero retries.
	MaxRetries *int
}

// NewService creates a Service.
func NewService(p ServiceParams) *Service {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := p.Clock
	if now == nil {
		now = time.Now
	}
	maxRetries := DefaultMaxRetries
	if p.MaxRetries != nil {
		maxRetries = max(*p.MaxRetries, 0)
	}
	return &Service{
		cfg:        p.Config,
		classifier: p.Classifier,
		cache:      p.Cache,
		extractor:  p.Extractor,
		summarizer: p.Summarizer,
		notify:     p.Notify,
		logger:     logger,
		now:        now,
		maxRetries: maxRetries,
	}
}

// HandleMessage processes one inbound message. A nil reply with a nil
// error means the message was not for us (or was cached for a later
// trigger) and the request ends silently.
func (s *Service) HandleMessage(ctx context.Context, msg linksum.Message) (*linksum.Reply, error) {
	s.cache.EvictExpired(s.now())

	if msg.IsShare {
		return s.handleShare(ctx, msg)
	}
	return s.handleText(ctx, msg)
}

func (s *Service) handleShare(ctx context.Context, msg linksum.Message) (*linksum.Reply, error) {
	if !msg.IsGroup {
		return s.process(ctx, msg.ChatID, msg.Content)
	}

	if s.shouldAutoSum(msg) {
		return s.process(ctx, msg.ChatID, msg.Content)
	}

	// No auto-trigger for this group: hold the share until someone sends
	// the trigger word.
	s.cache.Put(msg.ChatID, msg.Content)
	s.logger.Debug("cached pending share", "chat_id", msg.ChatID)
	return nil, nil
}

func (s *Service) handleText(ctx context.Context, msg linksum.Message) (*linksum.Reply, error) {
	content := stripMention(strings.TrimSpace(msg.Content))

	if msg.IsGroup && strings.Contains(content, s.cfg.TriggerWord) {
		if pending, ok := s.cache.TakeIfPresent(msg.ChatID); ok {
			return s.process(ctx, msg.ChatID, pending.RawContent)
		}

		// No pending share; the rest of the message may itself be a URL.
		url := strings.TrimSpace(strings.ReplaceAll(content, s.cfg.TriggerWord, ""))
		if url != "" && s.classifier.Classify(url).Admissible {
			return s.process(ctx, msg.ChatID, url)
		}
		return nil, nil
	}

	if !msg.IsGroup && s.classifier.Classify(content).Admissible {
		return s.process(ctx, msg.ChatID, content)
	}

	return nil, nil
}

// process runs one logical extraction request, including its retries, and
// shapes the outcome for the user.
func (s *Service) process(ctx context.Context, chatID, payload string) (*linksum.Reply, error) {
	if s.notify != nil {
		s.notify(chatID, processingNotice)
	}

	article, err := Retry(ctx, s.maxRetries, func(ctx context.Context) (*linksum.Article, error) {
		return s.extractor.Extract(ctx, payload)
	})
	if err != nil {
		switch linksum.ErrorCode(err) {
		case linksum.EINVALID, linksum.EDENIED:
			// Policy rejections are silent: the request is simply not
			// processed.
			s.logger.Debug("request not processed", "chat_id", chatID, "err", err)
			return nil, nil
		case linksum.EBLOCKED:
			return &linksum.Reply{Text: linksum.ErrorMessage(err)}, err
		default:
			s.logger.Warn("extraction exhausted retries", "chat_id", chatID, "err", err)
			return &linksum.Reply{Text: terminalErrorText}, err
		}
	}

	text := article.Body
	if s.summarizer != nil {
		summary, serr := s.summarizer.Summarize(ctx, article.Body)
		if serr != nil {
			s.logger.Warn("summarization failed, returning extracted text", "err", serr)
		} else {
			text = summary
		}
	}

	return &linksum.Reply{Text: text, Article: article}, nil
}

// shouldAutoSum reports whether a group share triggers extraction without
// an explicit keyword.
func (s *Service) shouldAutoSum(msg linksum.Message) bool {
	if !s.cfg.AutoSum {
		return false
	}
	return !slices.Contains(s.cfg.BlackGroupList, msg.Sender)
}

// stripMention removes a leading @mention from group messages.
func stripMention(content string) string {
	if !strings.HasPrefix(content, "@") {
		return content
	}
	parts := strings.SplitN(content, " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
