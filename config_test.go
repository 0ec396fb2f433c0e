package zhconv

import (
	"reflect"
	"testing"
)

func TestParseConfig(t *testing.T) {
	for c := Config(0); c < numConfigs; c++ {
		got, ok := ParseConfig(c.String())
		if !ok || got != c {
			t.Fatalf("ParseConfig(%q) = (%v,%v)", c.String(), got, ok)
		}
	}
	// case and blank insensitive
	for _, name := range []string{"S2T", "s2T", " s2t ", "S2TWP", "Tw2Tp"} {
		if _, ok := ParseConfig(name); !ok {
			t.Fatalf("ParseConfig(%q) must succeed", name)
		}
	}
	for _, name := range []string{"", "   ", "invalid", "t2xyz", "s2t2s"} {
		if _, ok := ParseConfig(name); ok {
			t.Fatalf("ParseConfig(%q) must fail", name)
		}
	}
}

func TestSupportedConfigs(t *testing.T) {
	want := []string{
		"s2t", "t2s", "s2tw", "tw2s", "s2twp", "tw2sp", "s2hk", "hk2s",
		"t2tw", "t2twp", "tw2t", "tw2tp", "t2hk", "hk2t", "t2jp", "jp2t",
	}
	if got := SupportedConfigs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("SupportedConfigs() = %v", got)
	}
	for _, name := range want {
		if !IsSupportedConfig(name) {
			t.Fatalf("IsSupportedConfig(%q) = false", name)
		}
	}
	if IsSupportedConfig("nope") {
		t.Fatal("IsSupportedConfig must reject unknown names")
	}
}

func TestConfigRoundExpansion(t *testing.T) {
	cases := []struct {
		cfg  Config
		want []UnionKey
	}{
		{S2T, []UnionKey{UnionS2T}},
		{T2S, []UnionKey{UnionT2S}},
		{S2Tw, []UnionKey{UnionS2T, UnionTwVariantsOnly}},
		{Tw2S, []UnionKey{UnionTwRevPair, UnionT2S}},
		{S2Twp, []UnionKey{UnionS2T, UnionTwPhrasesOnly, UnionTwVariantsOnly}},
		{Tw2Sp, []UnionKey{UnionTw2SpR1TwRevTriple, UnionT2S}},
		{S2Hk, []UnionKey{UnionS2T, UnionHkVariantsOnly}},
		{Hk2S, []UnionKey{UnionHkRevPair, UnionT2S}},
		{T2Tw, []UnionKey{UnionTwVariantsOnly}},
		{T2Twp, []UnionKey{UnionTwPhrasesOnly, UnionTwVariantsOnly}},
		{Tw2T, []UnionKey{UnionTwRevPair}},
		{Tw2Tp, []UnionKey{UnionTwRevPair, UnionTwPhrasesRevOnly}},
		{T2Hk, []UnionKey{UnionHkVariantsOnly}},
		{Hk2T, []UnionKey{UnionHkRevPair}},
		{T2Jp, []UnionKey{UnionJpVariantsOnly}},
		{Jp2T, []UnionKey{UnionJpRevTriple}},
	}
	for _, c := range cases {
		var got []UnionKey
		for _, r := range c.cfg.rounds(false) {
			got = append(got, r.key)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("%s rounds = %v, want %v", c.cfg, got, c.want)
		}
	}
}

func TestPunctuationSubstitutesRound(t *testing.T) {
	if got := S2T.rounds(true); got[0].key != UnionS2TPunct {
		t.Fatalf("s2t with punctuation = %v", got)
	}
	if got := Tw2Sp.rounds(true); got[0].key != UnionTw2SpR1TwRevTriple || got[1].key != UnionT2SPunct {
		t.Fatalf("tw2sp with punctuation = %v", got)
	}
	// no S2T/T2S round → the flag changes nothing
	if got := T2Jp.rounds(true); got[0].key != UnionJpVariantsOnly {
		t.Fatalf("t2jp with punctuation = %v", got)
	}
}

func TestUnionGroupsMatchSpecTable(t *testing.T) {
	want := [numUnionKeys][]dictSlot{
		UnionS2T:                {slotSTPhrases, slotSTCharacters},
		UnionS2TPunct:           {slotSTPhrases, slotSTCharacters, slotSTPunctuations},
		UnionT2S:                {slotTSPhrases, slotTSCharacters},
		UnionT2SPunct:           {slotTSPhrases, slotTSCharacters, slotTSPunctuations},
		UnionTwPhrasesOnly:      {slotTWPhrases},
		UnionTwVariantsOnly:     {slotTWVariants},
		UnionTwPhrasesRevOnly:   {slotTWPhrasesRev},
		UnionTwRevPair:          {slotTWVariantsRevPhrases, slotTWVariantsRev},
		UnionTw2SpR1TwRevTriple: {slotTWPhrasesRev, slotTWVariantsRevPhrases, slotTWVariantsRev},
		UnionHkVariantsOnly:     {slotHKVariants},
		UnionHkRevPair:          {slotHKVariantsRevPhrases, slotHKVariantsRev},
		UnionJpVariantsOnly:     {slotJPVariants},
		UnionJpRevTriple:        {slotJPSPhrases, slotJPSCharacters, slotJPVariantsRev},
	}
	if !reflect.DeepEqual(unionGroups, want) {
		t.Fatal("union groups diverge from the documented table")
	}
}
