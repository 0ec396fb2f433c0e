package zhconv

import "strings"

// Config names one of the sixteen supported conversion pipelines.
type Config int

const (
	S2T Config = iota // Simplified → Traditional
	T2S               // Traditional → Simplified
	S2Tw              // Simplified → Traditional (Taiwan)
	Tw2S              // Traditional (Taiwan) → Simplified
	S2Twp             // Simplified → Traditional (Taiwan, with phrases)
	Tw2Sp             // Traditional (Taiwan, with phrases) → Simplified
	S2Hk              // Simplified → Traditional (Hong Kong)
	Hk2S              // Traditional (Hong Kong) → Simplified
	T2Tw              // Traditional → Traditional (Taiwan)
	T2Twp             // Traditional → Traditional (Taiwan, with phrases)
	Tw2T              // Traditional (Taiwan) → Traditional
	Tw2Tp             // Traditional (Taiwan, with phrases) → Traditional
	T2Hk              // Traditional → Traditional (Hong Kong)
	Hk2T              // Traditional (Hong Kong) → Traditional
	T2Jp              // Traditional → Japanese Shinjitai
	Jp2T              // Japanese Shinjitai → Traditional
	numConfigs
)

var configNames = [numConfigs]string{
	"s2t", "t2s", "s2tw", "tw2s", "s2twp", "tw2sp", "s2hk", "hk2s",
	"t2tw", "t2twp", "tw2t", "tw2tp", "t2hk", "hk2t", "t2jp", "jp2t",
}

// String returns the canonical lowercase name of the config.
func (c Config) String() string {
	if c < 0 || c >= numConfigs {
		return "invalid"
	}
	return configNames[c]
}

// ParseConfig resolves a config name, ignoring case and surrounding
// blanks. It reports false for unknown or empty names.
func ParseConfig(name string) (Config, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	for c := Config(0); c < numConfigs; c++ {
		if configNames[c] == trimmed {
			return c, true
		}
	}
	return 0, false
}

// SupportedConfigs lists the canonical names of all configs.
func SupportedConfigs() []string {
	out := make([]string, numConfigs)
	copy(out, configNames[:])
	return out
}

// IsSupportedConfig reports whether name parses as a config.
func IsSupportedConfig(name string) bool {
	_, ok := ParseConfig(name)
	return ok
}

// A round is one pass of the segmentation engine: an ordered dictionary
// group identified by its union key. Rounds compose sequentially; the
// output of one is the input of the next.
type round struct {
	key UnionKey
}

// configRounds expands every config into its round sequence.
var configRounds = [numConfigs][]round{
	S2T:   {{UnionS2T}},
	T2S:   {{UnionT2S}},
	S2Tw:  {{UnionS2T}, {UnionTwVariantsOnly}},
	Tw2S:  {{UnionTwRevPair}, {UnionT2S}},
	S2Twp: {{UnionS2T}, {UnionTwPhrasesOnly}, {UnionTwVariantsOnly}},
	Tw2Sp: {{UnionTw2SpR1TwRevTriple}, {UnionT2S}},
	S2Hk:  {{UnionS2T}, {UnionHkVariantsOnly}},
	Hk2S:  {{UnionHkRevPair}, {UnionT2S}},
	T2Tw:  {{UnionTwVariantsOnly}},
	T2Twp: {{UnionTwPhrasesOnly}, {UnionTwVariantsOnly}},
	Tw2T:  {{UnionTwRevPair}},
	Tw2Tp: {{UnionTwRevPair}, {UnionTwPhrasesRevOnly}},
	T2Hk:  {{UnionHkVariantsOnly}},
	Hk2T:  {{UnionHkRevPair}},
	T2Jp:  {{UnionJpVariantsOnly}},
	Jp2T:  {{UnionJpRevTriple}},
}

// rounds returns the round sequence for c. With punctuation enabled, the
// S2T or T2S round of the pipeline is substituted by its _PUNCT variant,
// which appends the matching punctuation dictionary to the group. Configs
// without such a round are unaffected by the flag.
func (c Config) rounds(punctuation bool) []round {
	rr := configRounds[c]
	if !punctuation {
		return rr
	}
	out := make([]round, len(rr))
	for i, r := range rr {
		switch r.key {
		case UnionS2T:
			out[i] = round{UnionS2TPunct}
		case UnionT2S:
			out[i] = round{UnionT2SPunct}
		default:
			out[i] = r
		}
	}
	return out
}

// convertWith runs the full pipeline of c against text using d's
// dictionaries and cached unions.
func (c Config) convertWith(d *Dictionary, text string, punctuation bool) string {
	if text == "" {
		return ""
	}
	for _, r := range c.rounds(punctuation) {
		u := d.UnionFor(r.key)
		text = segmentReplace(text, u.Dicts(), u)
	}
	return text
}
