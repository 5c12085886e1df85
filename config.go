package linksum

import "time"

// Extractor backend names recognized by Config.Backend.
const (
	BackendHeuristic   = "heuristic"
	BackendReadability = "readability"
	BackendTrafilatura = "trafilatura"
)

// Summarizer backend names recognized by Config.Summarizer.
const (
	SummarizerNone   = "none"
	SummarizerOpenAI = "openai"
	SummarizerGemini = "gemini"
)

// Config is the recognized configuration surface.
type Config struct {
	// MaxWords caps extracted text length in characters.
	MaxWords int `yaml:"max_words"`

	// WhiteURLList restricts extraction to these URL prefixes when
	// non-empty.
	WhiteURLList []string `yaml:"white_url_list"`

	// BlackURLList denies these URL prefixes. Deny always wins.
	BlackURLList []string `yaml:"black_url_list"`

	// BlackGroupList names group chats excluded from auto-triggering.
	BlackGroupList []string `yaml:"black_group_list"`

	// AutoSum extracts without an explicit trigger keyword in group chats.
	AutoSum bool `yaml:"auto_sum"`

	// CacheTimeout is the pending-share TTL in seconds.
	CacheTimeout int `yaml:"cache_timeout"`

	// TriggerWord is the keyword that releases a pending share in group
	// chats.
	TriggerWord string `yaml:"trigger_word"`

	// Backend selects the tier-1 extractor implementation.
	Backend string `yaml:"backend"`

	// FetchTimeoutSec bounds one static HTTP fetch.
	FetchTimeoutSec int `yaml:"fetch_timeout"`

	// RenderTimeoutSec bounds one headless render.
	RenderTimeoutSec int `yaml:"render_timeout"`

	// SettleDelaySec is the fixed wait after page load before reading the
	// rendered DOM.
	SettleDelaySec int `yaml:"settle_delay"`

	// MaxRenderers caps concurrent headless pages.
	MaxRenderers int `yaml:"max_renderers"`

	// Summarizer selects the downstream summarization backend.
	Summarizer string `yaml:"summarizer"`

	// Prompt is prepended to the extracted text when summarizing.
	Prompt string `yaml:"prompt"`

	// APIBase and APIKey configure the summarizer backend.
	APIBase string `yaml:"api_base"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// DefaultConfig returns the configuration defaults. The default deny list
// covers WeChat Channels resources that never carry article text.
func DefaultConfig() Config {
	return Config{
		MaxWords: 8000,
		BlackURLList: []string{
			"https://support.weixin.qq.com",
			"https://channels-aladin.wxqcloud.qq.com",
		},
		AutoSum:          true,
		CacheTimeout:     300,
		TriggerWord:      "总结",
		Backend:          BackendHeuristic,
		FetchTimeoutSec:  25,
		RenderTimeoutSec: 20,
		SettleDelaySec:   2,
		MaxRenderers:     2,
		Summarizer:       SummarizerNone,
		Prompt: "我需要对下面引号内文档进行总结，总结输出包括以下三个部分：\n" +
			"📖 一句话总结\n🔑 关键要点,用数字序号列出3-5个文章的核心内容\n" +
			"🏷 标签: #xx #xx\n请使用emoji让你的表达更生动\n\n",
	}
}

// FetchTimeout returns the static fetch timeout as a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

// RenderTimeout returns the render timeout as a duration.
func (c Config) RenderTimeout() time.Duration {
	return time.Duration(c.RenderTimeoutSec) * time.Second
}

// SettleDelay returns the post-load settle delay as a duration.
func (c Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelaySec) * time.Second
}

// CacheTTL returns the pending-share TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTimeout) * time.Second
}

// Validate returns an error if the configuration is unusable.
func (c Config) Validate() error {
	if c.MaxWords <= 0 {
		return Errorf(EINVALID, "max_words must be positive")
	}
	if c.CacheTimeout <= 0 {
		return Errorf(EINVALID, "cache_timeout must be positive")
	}
	switch c.Backend {
	case BackendHeuristic, BackendReadability, BackendTrafilatura:
	default:
		return Errorf(EINVALID, "unknown backend %q", c.Backend)
	}
	switch c.Summarizer {
	case SummarizerNone, SummarizerOpenAI, SummarizerGemini:
	default:
		return Errorf(EINVALID, "unknown summarizer %q", c.Summarizer)
	}
	return nil
}
