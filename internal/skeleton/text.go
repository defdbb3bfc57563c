package skeleton

import "github.com/tidwall/gjson"

const (
	textSectionKey = "skeleton"
	textVersionKey = "spine"
)

// TextVersion returns the string at skeleton.spine of a JSON skeleton
// document. Invalid documents and structural mismatches yield ("", false).
func TextVersion(doc string) (string, bool) {
	if !gjson.Valid(doc) {
		return "", false
	}
	root := gjson.Parse(doc)
	if !root.IsObject() {
		return "", false
	}
	section := root.Get(textSectionKey)
	if !section.IsObject() {
		return "", false
	}
	v := section.Get(textVersionKey)
	if v.Type != gjson.String || v.Str == "" {
		return "", false
	}
	return v.Str, true
}
