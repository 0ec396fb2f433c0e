// Package office rewrites the text-bearing XML members of zipped Office
// and EPUB documents through a zhconv conversion facade.
//
// A document is read as a zip archive, its text-bearing members (per
// format) are converted, optionally with font attribute values protected
// from conversion, and the archive is written back out. EPUB output keeps
// the mimetype member first and uncompressed, as the format requires.
package office

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/zhconvkit/zhconv"
)

func tracer() tracing.Trace {
	return tracing.Select("zhconv.office")
}

// Formats lists the supported document formats.
var Formats = []string{"docx", "xlsx", "pptx", "odt", "ods", "odp", "epub"}

// IsSupportedFormat reports whether format names a convertible document type.
func IsSupportedFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Result reports the outcome of a document conversion. The file-based
// entry point leaves Data nil; the in-memory one fills it with the
// converted archive.
type Result struct {
	Success bool
	Message string
	Data    []byte
}

// Convert rewrites the document at inputPath into outputPath.
func Convert(inputPath, outputPath, format string, conv *zhconv.OpenCC, punctuation, keepFont bool) Result {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return Result{Message: fmt.Sprintf("reading %s: %v", inputPath, err)}
	}
	r := ConvertData(data, format, conv, punctuation, keepFont)
	if !r.Success {
		return r
	}
	if err := os.WriteFile(outputPath, r.Data, 0o644); err != nil {
		return Result{Message: fmt.Sprintf("writing %s: %v", outputPath, err)}
	}
	return Result{Success: true, Message: r.Message}
}

// ConvertData rewrites a document held in memory and returns the new
// archive bytes in the result.
func ConvertData(data []byte, format string, conv *zhconv.OpenCC, punctuation, keepFont bool) Result {
	if !IsSupportedFormat(format) {
		return Result{Message: fmt.Sprintf("unsupported format: %s", format)}
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{Message: fmt.Sprintf("opening archive: %v", err)}
	}

	fontPattern := fontPatterns[format]
	converted := 0
	rewritten := make(map[string][]byte)
	for _, f := range zr.File {
		if !isTargetMember(format, f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Result{Message: fmt.Sprintf("reading member %s: %v", f.Name, err)}
		}
		xml, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return Result{Message: fmt.Sprintf("reading member %s: %v", f.Name, err)}
		}
		text := string(xml)
		var fonts map[string]string
		if keepFont && fontPattern != nil {
			text, fonts = maskFonts(text, fontPattern)
		}
		text = conv.Convert(text, punctuation)
		for marker, font := range fonts {
			text = strings.ReplaceAll(text, marker, font)
		}
		rewritten[f.Name] = []byte(text)
		converted++
	}
	if converted == 0 {
		return Result{Message: fmt.Sprintf("no convertible XML fragments found for format: %s", format)}
	}
	tracer().Infof("converted %d member(s) of a %s document", converted, format)

	out, err := repack(zr, rewritten, format == "epub")
	if err != nil {
		return Result{Message: err.Error()}
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("converted %d fragment(s) in %s document", converted, format),
		Data:    out,
	}
}

// isTargetMember decides whether a member holds convertible text for the
// given format.
func isTargetMember(format, name string) bool {
	switch format {
	case "docx":
		return name == "word/document.xml"
	case "xlsx":
		return name == "xl/sharedStrings.xml"
	case "pptx":
		if !strings.HasPrefix(name, "ppt/") || !strings.HasSuffix(name, ".xml") {
			return false
		}
		base := path.Base(name)
		return strings.HasPrefix(base, "slide") ||
			strings.Contains(base, "notesSlide") ||
			strings.Contains(base, "slideMaster") ||
			strings.Contains(base, "slideLayout") ||
			strings.Contains(base, "comment")
	case "odt", "ods", "odp":
		return name == "content.xml"
	case "epub":
		lower := strings.ToLower(name)
		return strings.HasSuffix(lower, ".xhtml") ||
			strings.HasSuffix(lower, ".opf") ||
			strings.HasSuffix(lower, ".ncx")
	}
	return false
}

// fontPatterns captures font attribute values per format. Group 1 is the
// prefix, group 2 the font name to protect, group 3 the suffix.
var fontPatterns = map[string]*regexp.Regexp{
	"docx": regexp.MustCompile(`(w:(?:eastAsia|ascii|hAnsi|cs)=")(.*?)(")`),
	"xlsx": regexp.MustCompile(`(val=")(.*?)(")`),
	"pptx": regexp.MustCompile(`(typeface=")(.*?)(")`),
	"odt":  regexp.MustCompile(`((?:style:font-name(?:-asian|-complex)?|svg:font-family|style:name)=["'])([^"']+)(["'])`),
	"ods":  regexp.MustCompile(`((?:style:font-name(?:-asian|-complex)?|svg:font-family|style:name)=["'])([^"']+)(["'])`),
	"odp":  regexp.MustCompile(`((?:style:font-name(?:-asian|-complex)?|svg:font-family|style:name)=["'])([^"']+)(["'])`),
	"epub": regexp.MustCompile(`(font-family\s*:\s*)([^;"']+)([;"']?)`),
}

// maskFonts replaces every font attribute value with a marker that no
// dictionary can match, and returns the marker→value table for restoring
// after conversion.
func maskFonts(text string, pattern *regexp.Regexp) (string, map[string]string) {
	fonts := make(map[string]string)
	counter := 0
	masked := pattern.ReplaceAllStringFunc(text, func(m string) string {
		groups := pattern.FindStringSubmatch(m)
		marker := fmt.Sprintf("__F_O_N_T_%d__", counter)
		counter++
		fonts[marker] = groups[2]
		return groups[1] + marker + groups[3]
	})
	return masked, fonts
}

// repack writes the archive back out, substituting rewritten members.
// EPUB archives get the mimetype member first and uncompressed.
func repack(zr *zip.Reader, rewritten map[string][]byte, epub bool) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if epub {
		mime := memberNamed(zr, "mimetype")
		if mime == nil {
			return nil, fmt.Errorf("mimetype member is missing; EPUB requires it")
		}
		data, err := readMember(mime)
		if err != nil {
			return nil, err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
	}

	for _, f := range zr.File {
		if epub && f.Name == "mimetype" {
			continue
		}
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		data, ok := rewritten[f.Name]
		if !ok {
			var err error
			if data, err = readMember(f); err != nil {
				return nil, err
			}
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func memberNamed(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("reading member %s: %w", f.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
