package zhconv

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromDictsPrefersFilesystemOverEmbedded(t *testing.T) {
	dir := t.TempDir()
	// override one file; the other seventeen fall back to embedded data
	override := filepath.Join(dir, "STCharacters.txt")
	if err := os.WriteFile(override, []byte("汉\tZZZ\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := FromDicts(dir)
	if err != nil {
		t.Fatal(err)
	}
	if d.STCharacters.Dict["汉"] != "ZZZ" {
		t.Fatalf("filesystem override ignored: %q", d.STCharacters.Dict["汉"])
	}
	if d.TSCharacters.Len() == 0 {
		t.Fatal("embedded fallback did not populate the other slots")
	}
}

func TestFromDictsEmbeddedOnly(t *testing.T) {
	d, err := FromDicts(filepath.Join(t.TempDir(), "no-such-dir"))
	if err != nil {
		t.Fatal(err)
	}
	for s := dictSlot(0); s < numDictSlots; s++ {
		if (*d.slot(s)).Len() == 0 {
			t.Fatalf("slot %s empty after embedded load", slotNames[s])
		}
	}
}

func TestSlotByName(t *testing.T) {
	for s := dictSlot(0); s < numDictSlots; s++ {
		got, ok := slotByName(slotNames[s])
		if !ok || got != s {
			t.Fatalf("slotByName(%q) = (%v,%v)", slotNames[s], got, ok)
		}
	}
	if _, ok := slotByName("unknown_block"); ok {
		t.Fatal("unknown names must not resolve")
	}
}

func TestDictionaryString(t *testing.T) {
	d := &Dictionary{STCharacters: NewDictEntry(map[string]string{"汉": "漢"})}
	if got := d.String(); got != "<Dictionary with 1 loaded dicts>" {
		t.Fatalf("String() = %q", got)
	}
}
