package zhconv

import (
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"
)

// OpenCC is the conversion facade. A value carries a current config and
// the dictionary set it converts with; the zero-cost per-direction
// shortcuts ignore the current config.
//
// Constructing a facade never fails: an unknown config name falls back to
// "s2t" and the reason is retained for LastError.
type OpenCC struct {
	dict      *Dictionary
	config    Config
	lastError string
}

// defaultDict is the process-wide dictionary, loaded on first touch from
// the embedded seed data.
var (
	defaultDictOnce sync.Once
	defaultDict     *Dictionary
)

func sharedDictionary() *Dictionary {
	defaultDictOnce.Do(func() {
		d, err := embeddedDictionary()
		if err != nil {
			// the embedded data ships with the binary; failing to parse
			// it is a build defect, not a runtime condition
			panic("zhconv: embedded dictionaries unreadable: " + err.Error())
		}
		tracer().Infof("loaded embedded dictionary set: %s", d)
		defaultDict = d
	})
	return defaultDict
}

// New returns a facade over the shared dictionary set. An unrecognized
// config name selects "s2t" and records the reason; consult LastError.
func New(config string) *OpenCC {
	return NewWithDictionary(sharedDictionary(), config)
}

// NewWithDictionary returns a facade over a caller-supplied dictionary
// set, with the same config fallback behaviour as New.
func NewWithDictionary(d *Dictionary, config string) *OpenCC {
	c := &OpenCC{dict: d, config: S2T}
	c.SetConfig(config)
	return c
}

// SetConfig switches the pipeline. Unknown names keep the facade usable:
// the config becomes "s2t" and the reason is recorded for LastError.
func (c *OpenCC) SetConfig(name string) {
	cfg, ok := ParseConfig(name)
	if !ok {
		c.config = S2T
		c.lastError = fmt.Sprintf("invalid config %q, using s2t", name)
		tracer().Infof("%s", c.lastError)
		return
	}
	c.config = cfg
	c.lastError = ""
}

// Config returns the canonical name of the current config.
func (c *OpenCC) Config() string {
	return c.config.String()
}

// LastError returns the most recent recorded problem, or "" if none.
func (c *OpenCC) LastError() string {
	return c.lastError
}

// Dictionary exposes the dictionary set behind the facade.
func (c *OpenCC) Dictionary() *Dictionary {
	return c.dict
}

// Convert runs the current config's pipeline over text. With punctuation
// enabled, the pipeline's S2T/T2S round additionally maps punctuation.
func (c *OpenCC) Convert(text string, punctuation bool) string {
	return c.config.convertWith(c.dict, text, punctuation)
}

// Per-direction shortcuts. Each runs its named pipeline regardless of the
// facade's current config.

func (c *OpenCC) S2T(text string, punctuation bool) string { return S2T.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) T2S(text string, punctuation bool) string { return T2S.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) S2Tw(text string, punctuation bool) string { return S2Tw.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) Tw2S(text string, punctuation bool) string { return Tw2S.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) S2Twp(text string, punctuation bool) string { return S2Twp.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) Tw2Sp(text string, punctuation bool) string { return Tw2Sp.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) S2Hk(text string, punctuation bool) string { return S2Hk.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) Hk2S(text string, punctuation bool) string { return Hk2S.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) T2Tw(text string, punctuation bool) string { return T2Tw.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) T2Twp(text string, punctuation bool) string { return T2Twp.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) Tw2T(text string, punctuation bool) string { return Tw2T.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) Tw2Tp(text string, punctuation bool) string { return Tw2Tp.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) T2Hk(text string, punctuation bool) string { return T2Hk.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) Hk2T(text string, punctuation bool) string { return Hk2T.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) T2Jp(text string, punctuation bool) string { return T2Jp.convertWith(c.dict, text, punctuation) }
func (c *OpenCC) Jp2T(text string, punctuation bool) string { return Jp2T.convertWith(c.dict, text, punctuation) }

// zhoCheckPrefix bounds how many code points ZhoCheck inspects.
const zhoCheckPrefix = 100

// ZhoCheck classifies the script of text:
//
//	1  Traditional Chinese
//	2  Simplified Chinese
//	0  mixed, non-Chinese, or empty
//
// It strips everything but BMP CJK Unified Ideographs from a bounded
// prefix, then compares the effect of the t2s and s2t pipelines on it.
func ZhoCheck(text string) int {
	return zhoCheckWith(sharedDictionary(), text)
}

func zhoCheckWith(d *Dictionary, text string) int {
	stripped := cjkPrefix(text, zhoCheckPrefix)
	if stripped == "" {
		return 0
	}
	a := T2S.convertWith(d, stripped, false)
	b := S2T.convertWith(d, stripped, false)
	switch {
	case a != stripped && b == stripped:
		return 1
	case b != stripped && a == stripped:
		return 2
	default:
		return 0
	}
}

// cjkPrefix keeps the CJK Unified Ideographs (and Extension A) of the
// first n code points of text.
func cjkPrefix(text string, n int) string {
	var b []rune
	seen := 0
	for _, r := range text {
		if seen >= n {
			break
		}
		seen++
		if (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF) {
			b = append(b, r)
		}
	}
	return string(b)
}

// SetVerboseLogging raises the diagnostic channel to informational level,
// or mutes it back down to errors only. Disabled by default.
func SetVerboseLogging(on bool) {
	if on {
		tracer().SetTraceLevel(tracing.LevelInfo)
		return
	}
	tracer().SetTraceLevel(tracing.LevelError)
}
