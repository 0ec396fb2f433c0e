package zhconv

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed dicts/*.txt
var embeddedDicts embed.FS

// Dictionary is the container of all named dictionary slots used by the
// conversion pipelines. Slots are nullable: a snapshot may omit some of
// them, and pipelines that touch an absent slot simply match nothing
// through it.
//
// A Dictionary is populated once and never mutated afterwards. The cached
// starter unions hang off it (see unions.go) so independent Dictionary
// values never share conversion state.
type Dictionary struct {
	STCharacters         *DictEntry
	STPhrases            *DictEntry
	STPunctuations       *DictEntry
	TSCharacters         *DictEntry
	TSPhrases            *DictEntry
	TSPunctuations       *DictEntry
	TWPhrases            *DictEntry
	TWPhrasesRev         *DictEntry
	TWVariants           *DictEntry
	TWVariantsRev        *DictEntry
	TWVariantsRevPhrases *DictEntry
	HKVariants           *DictEntry
	HKVariantsRev        *DictEntry
	HKVariantsRevPhrases *DictEntry
	JPSCharacters        *DictEntry
	JPSPhrases           *DictEntry
	JPVariants           *DictEntry
	JPVariantsRev        *DictEntry

	unions unionCache
}

// dictSlot identifies one named dictionary slot. The snapshot schema, the
// plain-text file table and the union groups all refer to slots through
// this enum rather than to struct fields.
type dictSlot int

const (
	slotSTCharacters dictSlot = iota
	slotSTPhrases
	slotSTPunctuations
	slotTSCharacters
	slotTSPhrases
	slotTSPunctuations
	slotTWPhrases
	slotTWPhrasesRev
	slotTWVariants
	slotTWVariantsRev
	slotTWVariantsRevPhrases
	slotHKVariants
	slotHKVariantsRev
	slotHKVariantsRevPhrases
	slotJPSCharacters
	slotJPSPhrases
	slotJPVariants
	slotJPVariantsRev
	numDictSlots
)

// slotNames holds the snapshot field name of every slot, in canonical
// serialization order.
var slotNames = [numDictSlots]string{
	"st_characters",
	"st_phrases",
	"st_punctuations",
	"ts_characters",
	"ts_phrases",
	"ts_punctuations",
	"tw_phrases",
	"tw_phrases_rev",
	"tw_variants",
	"tw_variants_rev",
	"tw_variants_rev_phrases",
	"hk_variants",
	"hk_variants_rev",
	"hk_variants_rev_phrases",
	"jps_characters",
	"jps_phrases",
	"jp_variants",
	"jp_variants_rev",
}

// slotFiles holds the plain-text dictionary filename of every slot.
var slotFiles = [numDictSlots]string{
	"STCharacters.txt",
	"STPhrases.txt",
	"STPunctuations.txt",
	"TSCharacters.txt",
	"TSPhrases.txt",
	"TSPunctuations.txt",
	"TWPhrases.txt",
	"TWPhrasesRev.txt",
	"TWVariants.txt",
	"TWVariantsRev.txt",
	"TWVariantsRevPhrases.txt",
	"HKVariants.txt",
	"HKVariantsRev.txt",
	"HKVariantsRevPhrases.txt",
	"JPShinjitaiCharacters.txt",
	"JPShinjitaiPhrases.txt",
	"JPVariants.txt",
	"JPVariantsRev.txt",
}

// slotByName resolves a snapshot field name to its slot.
func slotByName(name string) (dictSlot, bool) {
	for s := dictSlot(0); s < numDictSlots; s++ {
		if slotNames[s] == name {
			return s, true
		}
	}
	return 0, false
}

// slot returns a pointer to the field backing s.
func (d *Dictionary) slot(s dictSlot) **DictEntry {
	switch s {
	case slotSTCharacters:
		return &d.STCharacters
	case slotSTPhrases:
		return &d.STPhrases
	case slotSTPunctuations:
		return &d.STPunctuations
	case slotTSCharacters:
		return &d.TSCharacters
	case slotTSPhrases:
		return &d.TSPhrases
	case slotTSPunctuations:
		return &d.TSPunctuations
	case slotTWPhrases:
		return &d.TWPhrases
	case slotTWPhrasesRev:
		return &d.TWPhrasesRev
	case slotTWVariants:
		return &d.TWVariants
	case slotTWVariantsRev:
		return &d.TWVariantsRev
	case slotTWVariantsRevPhrases:
		return &d.TWVariantsRevPhrases
	case slotHKVariants:
		return &d.HKVariants
	case slotHKVariantsRev:
		return &d.HKVariantsRev
	case slotHKVariantsRevPhrases:
		return &d.HKVariantsRevPhrases
	case slotJPSCharacters:
		return &d.JPSCharacters
	case slotJPSPhrases:
		return &d.JPSPhrases
	case slotJPVariants:
		return &d.JPVariants
	case slotJPVariantsRev:
		return &d.JPVariantsRev
	}
	panic("zhconv: unknown dictionary slot")
}

// entries returns the DictEntry values for an ordered slot list, keeping
// nils so a union can be built over partially populated dictionaries.
func (d *Dictionary) entries(slots []dictSlot) []*DictEntry {
	out := make([]*DictEntry, len(slots))
	for i, s := range slots {
		out[i] = *d.slot(s)
	}
	return out
}

// String summarizes how many slots are populated.
func (d *Dictionary) String() string {
	n := 0
	for s := dictSlot(0); s < numDictSlots; s++ {
		if e := *d.slot(s); e.Len() > 0 {
			n++
		}
	}
	return fmt.Sprintf("<Dictionary with %d loaded dicts>", n)
}

// FromDicts loads all dictionary files from base. Files that exist on the
// filesystem under base take precedence; missing ones fall back to the
// embedded copies shipped with the library. The chosen source of each file
// is reported on the diagnostic channel.
func FromDicts(base string) (*Dictionary, error) {
	d := &Dictionary{}
	for s := dictSlot(0); s < numDictSlots; s++ {
		entry, err := loadSlotFile(base, slotFiles[s])
		if err != nil {
			return nil, fmt.Errorf("loading dict %s (%s): %w", slotNames[s], slotFiles[s], err)
		}
		*d.slot(s) = entry
	}
	return d, nil
}

func loadSlotFile(base, filename string) (*DictEntry, error) {
	fsPath := filepath.Join(base, filename)
	if f, err := os.Open(fsPath); err == nil {
		defer f.Close()
		tracer().Infof("loading %s from filesystem (%s)", filename, fsPath)
		return LoadDictEntry(f)
	}
	f, err := embeddedDicts.Open("dicts/" + filename)
	if err != nil {
		return nil, fmt.Errorf("not on filesystem and not embedded: %w", err)
	}
	defer f.Close()
	tracer().Infof("loading %s from embedded data", filename)
	return LoadDictEntry(f)
}

// embeddedDictionary loads the seed dictionaries bundled with the library.
func embeddedDictionary() (*Dictionary, error) {
	d := &Dictionary{}
	for s := dictSlot(0); s < numDictSlots; s++ {
		f, err := embeddedDicts.Open("dicts/" + slotFiles[s])
		if err != nil {
			return nil, fmt.Errorf("embedded dict %s: %w", slotFiles[s], err)
		}
		entry, err := LoadDictEntry(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("embedded dict %s: %w", slotFiles[s], err)
		}
		*d.slot(s) = entry
	}
	return d, nil
}
