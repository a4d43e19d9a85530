package translate

import "strings"

// languageCodes maps human language names (as written in configuration) to
// the ISO 639-3 codes the detector reports. Names absent from this table map
// to the empty string, which never matches a detected code — translation is
// never skipped for unrecognized target names.
var languageCodes = map[string]string{
	"english":    "eng",
	"spanish":    "spa",
	"french":     "fra",
	"german":     "deu",
	"italian":    "ita",
	"portuguese": "por",
	"dutch":      "nld",
	"russian":    "rus",
	"japanese":   "jpn",
	"korean":     "kor",
	"chinese":    "cmn",
	"mandarin":   "cmn",
	"arabic":     "arb",
	"hindi":      "hin",
	"polish":     "pol",
	"swedish":    "swe",
	"danish":     "dan",
	"finnish":    "fin",
	"norwegian":  "nob",
	"czech":      "ces",
	"turkish":    "tur",
	"ukrainian":  "ukr",
	"greek":      "ell",
	"hebrew":     "heb",
	"indonesian": "ind",
	"vietnamese": "vie",
	"thai":       "tha",
	"hungarian":  "hun",
	"romanian":   "ron",
	"bulgarian":  "bul",
	"persian":    "pes",
	"farsi":      "pes",
}

// codeForLanguage resolves a human language name to its ISO 639-3 code.
// Returns "" for unknown names.
func codeForLanguage(name string) string {
	return languageCodes[strings.ToLower(strings.TrimSpace(name))]
}
